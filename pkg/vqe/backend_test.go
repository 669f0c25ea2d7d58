package vqe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondq/wick/internal/statevec"
	"github.com/secondq/wick/pkg/pauli"
)

func TestBackendNames(t *testing.T) {
	assert.Equal(t, []string{"statevector"}, BackendNames())
}

func TestNewBackend(t *testing.T) {
	_, err := newBackend("qasm")
	assert.ErrorIs(t, err, ErrUnknownBackend)

	for _, name := range []string{"statevector", "Statevector", " STATEVECTOR "} {
		b, err := newBackend(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, "statevector", b.Name())
	}
}

func TestStatevectorEnergy(t *testing.T) {
	op := mustOperator(t, 2,
		pauli.MustTerm(-1, "ZZ"),
		pauli.MustTerm(0.6, "XI"),
		pauli.MustTerm(0.4, "IX"),
	)
	ansatz, err := NewAnsatz("ryrz", 2, 2, EntangleLinear)
	require.NoError(t, err)
	backend, err := newBackend("statevector")
	require.NoError(t, err)

	// All angles zero prepares |00>, where only the ZZ term survives.
	zero := make([]float64, ansatz.NumParameters())
	e0, err := backend.Energy(ansatz, zero, op)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, e0, 1e-12)

	params := make([]float64, ansatz.NumParameters())
	for i := range params {
		params[i] = 0.1 * float64(i+1)
	}
	got, err := backend.Energy(ansatz, params, op)
	require.NoError(t, err)

	st, err := ansatz.Prepare(params)
	require.NoError(t, err)
	want, err := statevec.Expectation(st, op)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStatevectorEnergy_BadParameters(t *testing.T) {
	op := mustOperator(t, 1, pauli.MustTerm(1, "Z"))
	ansatz, err := NewAnsatz("ry", 1, 1, EntangleFull)
	require.NoError(t, err)
	backend, err := newBackend("statevector")
	require.NoError(t, err)

	_, err = backend.Energy(ansatz, []float64{0.1}, op)
	assert.ErrorIs(t, err, ErrBadParameters)
}
