package vqe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnsatz_ParameterCounts(t *testing.T) {
	tests := []struct {
		name   string
		family string
		qubits int
		depth  int
		want   int
	}{
		{"ry single qubit", "ry", 1, 1, 2},
		{"ry pipeline width", "ry", 4, 3, 16},
		{"ry deep", "ry", 2, 5, 12},
		{"ryrz doubles the count", "ryrz", 4, 3, 32},
		{"ryrz single layer", "ryrz", 2, 1, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := NewAnsatz(tc.family, tc.qubits, tc.depth, EntangleFull)
			require.NoError(t, err)
			assert.Equal(t, tc.want, a.NumParameters())
			assert.Equal(t, tc.qubits, a.NumQubits())
			assert.Equal(t, tc.family, a.Name())
		})
	}
}

func TestNewAnsatz_Validation(t *testing.T) {
	tests := []struct {
		name    string
		family  string
		qubits  int
		depth   int
		ent     Entanglement
		wantErr error
	}{
		{"unknown family", "uccsd", 2, 1, EntangleFull, ErrUnknownAnsatz},
		{"zero depth", "ry", 2, 0, EntangleFull, ErrBadDepth},
		{"zero qubits", "ry", 0, 1, EntangleFull, ErrBadQubits},
		{"bad entanglement", "ry", 2, 1, Entanglement("ring"), ErrUnknownEntanglement},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAnsatz(tc.family, tc.qubits, tc.depth, tc.ent)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNewAnsatz_NormalizesNames(t *testing.T) {
	a, err := NewAnsatz(" RY ", 2, 1, Entanglement("Linear"))
	require.NoError(t, err)
	assert.Equal(t, "ry", a.Name())
}

func TestAnsatz_ZeroAnglesPrepareVacuum(t *testing.T) {
	for _, family := range AnsatzNames() {
		a, err := NewAnsatz(family, 3, 2, EntangleFull)
		require.NoError(t, err)

		st, err := a.Prepare(make([]float64, a.NumParameters()))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, st.Probability(0), 1e-12, "family %s", family)
	}
}

func TestAnsatz_RejectsWrongParameterCount(t *testing.T) {
	a, err := NewAnsatz("ry", 2, 1, EntangleLinear)
	require.NoError(t, err)

	_, err = a.Prepare(make([]float64, a.NumParameters()+1))
	assert.ErrorIs(t, err, ErrBadParameters)
}

func TestAnsatz_EntanglementChangesTheState(t *testing.T) {
	params := []float64{0.4, 1.2, -0.3, 0.9, 0.15, -1.1, 0.6, 0.2, -0.5}

	full, err := NewAnsatz("ry", 3, 2, EntangleFull)
	require.NoError(t, err)
	linear, err := NewAnsatz("ry", 3, 2, EntangleLinear)
	require.NoError(t, err)

	fullState, err := full.Prepare(params)
	require.NoError(t, err)
	linearState, err := linear.Prepare(params)
	require.NoError(t, err)

	var diff float64
	fullAmps := fullState.Amplitudes()
	linearAmps := linearState.Amplitudes()
	for x := range fullAmps {
		d := fullAmps[x] - linearAmps[x]
		diff += real(d)*real(d) + imag(d)*imag(d)
	}
	assert.Greater(t, diff, 1e-6)
}

func TestAnsatzNames(t *testing.T) {
	assert.Equal(t, []string{"ry", "ryrz"}, AnsatzNames())
}
