package driver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondq/wick/pkg/chem"
)

// h2Funcs lays out the STO-3G basis for H2 at 0.735 A.
func h2Funcs(t *testing.T) ([]basisFunction, []nucleus) {
	t.Helper()

	mol, err := chem.Preset{
		Name: "h2", Geometry: "H 0 0 0; H 0 0 0.735",
		Multiplicity: 1, Basis: "sto-3g",
	}.Molecule()
	require.NoError(t, err)

	d, err := New(mol)
	require.NoError(t, err)
	return d.funcs, d.nuclei
}

func TestBoys(t *testing.T) {
	// F_n(0) = 1/(2n+1).
	assert.InDelta(t, 1.0, boys(0, 0), 1e-12)
	assert.InDelta(t, 1.0/3.0, boys(0, 1), 1e-12)
	assert.InDelta(t, 0.2, boys(0, 2), 1e-12)

	// Large-x asymptote: F_0(x) -> sqrt(pi/x)/2.
	assert.InDelta(t, 0.5*math.Sqrt(math.Pi/100), boys(100, 0), 1e-9)

	// Monotone decreasing in x.
	assert.Greater(t, boys(0.1, 0), boys(0.5, 0))
	assert.Greater(t, boys(0.5, 0), boys(2.0, 0))
}

func TestOverlap_H2(t *testing.T) {
	funcs, _ := h2Funcs(t)
	s := overlap(funcs)
	require.Len(t, s, 2)

	// Contracted STO-3G functions are normalized.
	assert.InDelta(t, 1.0, s[0][0], 1e-4)
	assert.InDelta(t, 1.0, s[1][1], 1e-4)

	// Symmetric with a bonding-range off-diagonal overlap.
	assert.InDelta(t, s[0][1], s[1][0], 1e-12)
	assert.Greater(t, s[0][1], 0.3)
	assert.Less(t, s[0][1], 1.0)
}

func TestKineticAndAttraction_H2(t *testing.T) {
	funcs, nuclei := h2Funcs(t)

	k := kinetic(funcs)
	assert.InDelta(t, k[0][1], k[1][0], 1e-12)
	assert.Greater(t, k[0][0], 0.0)

	v := nuclearAttraction(funcs, nuclei)
	assert.InDelta(t, v[0][1], v[1][0], 1e-12)
	assert.Less(t, v[0][0], 0.0)
	assert.Equal(t, v[0][0], v[1][1]) // homonuclear symmetry
}

func TestRepulsion_Symmetry(t *testing.T) {
	funcs, _ := h2Funcs(t)
	eri := repulsion(funcs)

	// Chemist-order tensor carries the 8-fold permutational symmetry.
	assert.InDelta(t, eri[0][0][0][1], eri[0][0][1][0], 1e-10)
	assert.InDelta(t, eri[0][0][0][1], eri[0][1][0][0], 1e-10)
	assert.InDelta(t, eri[0][0][0][1], eri[1][0][0][0], 1e-10)
	assert.InDelta(t, eri[0][1][0][1], eri[1][0][1][0], 1e-10)

	// Coulomb self-repulsion dominates the exchange-range entries.
	assert.Greater(t, eri[0][0][0][0], eri[0][1][0][1])
	assert.Greater(t, eri[0][0][0][0], 0.0)
}
