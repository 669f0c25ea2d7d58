package statevec

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondq/wick/pkg/pauli"
)

func TestZero(t *testing.T) {
	s := Zero(2)

	assert.Equal(t, 2, s.NumQubits())
	amps := s.Amplitudes()
	require.Len(t, amps, 4)
	assert.Equal(t, complex128(1), amps[0])
	for x := 1; x < 4; x++ {
		assert.Zero(t, amps[x])
	}
}

func TestRY_RotatesAmplitudes(t *testing.T) {
	theta := math.Pi / 3

	s := Zero(1)
	s.RY(0, theta)

	amps := s.Amplitudes()
	assert.InDelta(t, math.Cos(theta/2), real(amps[0]), 1e-12)
	assert.InDelta(t, math.Sin(theta/2), real(amps[1]), 1e-12)
	assert.Zero(t, imag(amps[0]))
	assert.Zero(t, imag(amps[1]))
}

func TestRY_PiFlipsTheQubit(t *testing.T) {
	s := Zero(1)
	s.RY(0, math.Pi)

	assert.InDelta(t, 0, s.Probability(0), 1e-12)
	assert.InDelta(t, 1, s.Probability(1), 1e-12)
}

func TestRZ_AppliesConditionalPhase(t *testing.T) {
	theta := 0.8

	s := Zero(1)
	s.RZ(0, theta)
	amps := s.Amplitudes()
	assert.InDelta(t, 0, cmplx.Abs(amps[0]-cmplx.Exp(complex(0, -theta/2))), 1e-12)

	s = Zero(1)
	s.RY(0, math.Pi)
	s.RZ(0, theta)
	amps = s.Amplitudes()
	assert.InDelta(t, 0, cmplx.Abs(amps[1]-cmplx.Exp(complex(0, theta/2))), 1e-12)
}

func TestCZ_FlipsDoublyOccupiedSign(t *testing.T) {
	s := Zero(2)
	s.RY(0, math.Pi)
	s.RY(1, math.Pi)
	s.CZ(0, 1)

	amps := s.Amplitudes()
	assert.InDelta(t, 0, cmplx.Abs(amps[3]-(-1)), 1e-12)
}

func TestCX_PropagatesControl(t *testing.T) {
	s := Zero(2)
	s.RY(0, math.Pi)
	s.CX(0, 1)

	assert.InDelta(t, 1, s.Probability(3), 1e-12)
	assert.InDelta(t, 0, s.Probability(1), 1e-12)
}

func TestGates_PreserveNorm(t *testing.T) {
	s := Zero(3)
	s.RY(0, 0.31)
	s.RY(1, 1.7)
	s.RZ(2, -0.9)
	s.CZ(0, 1)
	s.CX(1, 2)
	s.RY(2, 2.4)

	var norm float64
	for x := uint64(0); x < 8; x++ {
		norm += s.Probability(x)
	}
	assert.InDelta(t, 1.0, norm, 1e-12)
}

func TestExpectation_RotatedSingleQubit(t *testing.T) {
	z, err := pauli.NewOperator(1, pauli.MustTerm(1, "Z"))
	require.NoError(t, err)
	x, err := pauli.NewOperator(1, pauli.MustTerm(1, "X"))
	require.NoError(t, err)

	for _, theta := range []float64{0, 0.4, math.Pi / 2, 2.2, math.Pi} {
		s := Zero(1)
		s.RY(0, theta)

		ez, err := Expectation(s, z)
		require.NoError(t, err)
		ex, err := Expectation(s, x)
		require.NoError(t, err)

		assert.InDelta(t, math.Cos(theta), ez, 1e-12, "theta=%v", theta)
		assert.InDelta(t, math.Sin(theta), ex, 1e-12, "theta=%v", theta)
	}
}

func TestExpectation_MatchesDenseMatrix(t *testing.T) {
	op, err := pauli.NewOperator(2,
		pauli.MustTerm(0.5, "XY"),
		pauli.MustTerm(-0.25, "ZZ"),
		pauli.MustTerm(0.75, "IX"),
	)
	require.NoError(t, err)

	s := Zero(2)
	s.RY(0, 0.3)
	s.RY(1, 1.1)
	s.CZ(0, 1)
	s.RZ(0, 0.7)

	re, im, err := op.Matrices()
	require.NoError(t, err)

	amps := s.Amplitudes()
	var want complex128
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			m := complex(re.At(y, x), im.At(y, x))
			want += cmplx.Conj(amps[y]) * m * amps[x]
		}
	}

	got, err := Expectation(s, op)
	require.NoError(t, err)
	assert.InDelta(t, real(want), got, 1e-12)
	assert.InDelta(t, 0, imag(want), 1e-12)
}

func TestExpectation_QubitMismatch(t *testing.T) {
	op, err := pauli.NewOperator(2, pauli.IdentityTerm(1, 2))
	require.NoError(t, err)

	_, err = Expectation(Zero(1), op)
	assert.ErrorIs(t, err, pauli.ErrQubitMismatch)
}

func TestGates_RejectBadQubits(t *testing.T) {
	assert.Panics(t, func() { Zero(1).RY(1, 0.1) })
	assert.Panics(t, func() { Zero(2).CZ(1, 1) })
	assert.Panics(t, func() { Zero(2).CX(0, 2) })
}
