package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fabricatedData builds a two-orbital MolecularData with recognizable
// tensor entries for checking the spin-orbital expansion.
func fabricatedData() *MolecularData {
	one := [][]float64{
		{-1.25, 0.05},
		{0.05, -0.47},
	}
	two := make([][][][]float64, 2)
	for i := range two {
		two[i] = make([][][]float64, 2)
		for j := range two[i] {
			two[i][j] = make([][]float64, 2)
			for k := range two[i][j] {
				two[i][j][k] = make([]float64, 2)
				for l := range two[i][j][k] {
					two[i][j][k][l] = float64(1000*i + 100*j + 10*k + l)
				}
			}
		}
	}
	return &MolecularData{
		OneBody:     one,
		TwoBody:     two,
		NumOrbitals: 2,
		NumAlpha:    1,
		NumBeta:     1,
	}
}

func TestMolecularData_SpinOneBody(t *testing.T) {
	d := fabricatedData()
	h1 := d.SpinOneBody()
	require.Len(t, h1, 4)

	// Alpha and beta blocks repeat the spatial matrix.
	assert.Equal(t, d.OneBody[0][0], h1[0][0])
	assert.Equal(t, d.OneBody[0][1], h1[0][1])
	assert.Equal(t, d.OneBody[1][0], h1[3][2])
	assert.Equal(t, d.OneBody[1][1], h1[3][3])

	// Spin off-diagonal blocks vanish.
	for p := 0; p < 2; p++ {
		for q := 2; q < 4; q++ {
			assert.Zero(t, h1[p][q])
			assert.Zero(t, h1[q][p])
		}
	}
}

func TestMolecularData_SpinTwoBody(t *testing.T) {
	d := fabricatedData()
	h2 := d.SpinTwoBody()
	require.Len(t, h2, 4)

	// h2[p][q][r][s] = (ps|qr) when the spins of p,s and q,r pair up.
	// All-alpha entry.
	assert.Equal(t, d.TwoBody[0][1][0][1], h2[0][0][1][1])
	// Mixed-spin entry: p,s alpha and q,r beta.
	assert.Equal(t, d.TwoBody[0][0][1][1], h2[0][3][3][0])

	// Spin-forbidden entries vanish: p alpha paired with s beta.
	assert.Zero(t, h2[0][1][3][2])
	assert.Zero(t, h2[0][0][1][3])
}

func TestMolecularData_NumSpinOrbitals(t *testing.T) {
	d := fabricatedData()
	assert.Equal(t, 4, d.NumSpinOrbitals())
}
