// Package statevec simulates pure qubit states under the small gate
// set the variational ansatz circuits need. Amplitudes are indexed by
// computational basis state with qubit 0 least significant.
package statevec

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/secondq/wick/pkg/pauli"
)

// State is an n-qubit pure state.
type State struct {
	n    int
	amps []complex128
}

// Zero prepares |0...0> on n qubits.
func Zero(n int) *State {
	if n < 1 || n > 63 {
		panic(fmt.Sprintf("statevec: unsupported qubit count %d", n))
	}
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &State{n: n, amps: amps}
}

// NumQubits returns the register width.
func (s *State) NumQubits() int { return s.n }

// Amplitudes returns a copy of the basis amplitudes.
func (s *State) Amplitudes() []complex128 {
	out := make([]complex128, len(s.amps))
	copy(out, s.amps)
	return out
}

// Probability returns |<x|s>|^2.
func (s *State) Probability(x uint64) float64 {
	if x >= uint64(len(s.amps)) {
		return 0
	}
	a := s.amps[x]
	return real(a)*real(a) + imag(a)*imag(a)
}

func (s *State) checkQubit(q int) {
	if q < 0 || q >= s.n {
		panic(fmt.Sprintf("statevec: qubit %d out of range on %d-qubit state", q, s.n))
	}
}

// RY rotates qubit q about the Y axis by theta.
func (s *State) RY(q int, theta float64) {
	s.checkQubit(q)
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	mask := uint64(1) << q
	for x := uint64(0); x < uint64(len(s.amps)); x++ {
		if x&mask != 0 {
			continue
		}
		a0, a1 := s.amps[x], s.amps[x|mask]
		s.amps[x] = c*a0 - sn*a1
		s.amps[x|mask] = sn*a0 + c*a1
	}
}

// RZ rotates qubit q about the Z axis by theta.
func (s *State) RZ(q int, theta float64) {
	s.checkQubit(q)
	lo := cmplx.Exp(complex(0, -theta/2))
	hi := cmplx.Exp(complex(0, theta/2))
	mask := uint64(1) << q
	for x := uint64(0); x < uint64(len(s.amps)); x++ {
		if x&mask == 0 {
			s.amps[x] *= lo
		} else {
			s.amps[x] *= hi
		}
	}
}

// CZ applies a controlled phase flip between qubits a and b.
func (s *State) CZ(a, b int) {
	s.checkQubit(a)
	s.checkQubit(b)
	if a == b {
		panic("statevec: CZ needs two distinct qubits")
	}
	mask := uint64(1)<<a | uint64(1)<<b
	for x := uint64(0); x < uint64(len(s.amps)); x++ {
		if x&mask == mask {
			s.amps[x] = -s.amps[x]
		}
	}
}

// CX applies a controlled NOT with control c and target t.
func (s *State) CX(c, t int) {
	s.checkQubit(c)
	s.checkQubit(t)
	if c == t {
		panic("statevec: CX needs two distinct qubits")
	}
	cMask := uint64(1) << c
	tMask := uint64(1) << t
	for x := uint64(0); x < uint64(len(s.amps)); x++ {
		if x&cMask != 0 && x&tMask == 0 {
			s.amps[x], s.amps[x|tMask] = s.amps[x|tMask], s.amps[x]
		}
	}
}

// Expectation evaluates <s|op|s>, discarding the imaginary residue a
// Hermitian operator leaves at rounding level.
func Expectation(s *State, op *pauli.Operator) (float64, error) {
	if op.NumQubits() != s.n {
		return 0, fmt.Errorf("%w: operator on %d qubits, state on %d",
			pauli.ErrQubitMismatch, op.NumQubits(), s.n)
	}
	var acc complex128
	for _, term := range op.Terms() {
		for x := uint64(0); x < uint64(len(s.amps)); x++ {
			if s.amps[x] == 0 {
				continue
			}
			y, phase := term.ActOn(x)
			acc += cmplx.Conj(s.amps[y]) * phase * s.amps[x]
		}
	}
	return real(acc), nil
}
