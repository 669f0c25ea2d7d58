package fermion

import (
	"errors"
	"fmt"
)

// Sentinel errors for operator construction and transformation.
var (
	ErrBadShape       = errors.New("integral tensors have inconsistent shapes")
	ErrBadOccupation  = errors.New("occupation counts do not fit the mode layout")
	ErrAlreadyShifted = errors.New("operator already carries a particle-hole reference")
)

// Operator is a second-quantized Hamiltonian held as its one- and
// two-body integral tensors, plus an optional particle-hole reference
// produced by ParticleHole.
type Operator struct {
	modes int
	h1    [][]float64
	h2    [][][][]float64

	// holes marks modes occupied in the reference determinant; the
	// qubit encodings swap creators and annihilators on those modes.
	// nil means the bare vacuum reference.
	holes []bool

	// shift is folded into the identity coefficient of the encoded
	// operator, completing H - <ref|H|ref>.
	shift float64
}

// New builds an operator from one- and two-body integral tensors,
// which are deep-copied. h1 must be n x n and h2 must be n^4 for the
// same n.
func New(h1 [][]float64, h2 [][][][]float64) (*Operator, error) {
	n := len(h1)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty one-body tensor", ErrBadShape)
	}
	for p, row := range h1 {
		if len(row) != n {
			return nil, fmt.Errorf("%w: h1 row %d has length %d, want %d", ErrBadShape, p, len(row), n)
		}
	}
	if len(h2) != n {
		return nil, fmt.Errorf("%w: h2 spans %d modes, h1 spans %d", ErrBadShape, len(h2), n)
	}
	for p := range h2 {
		if len(h2[p]) != n {
			return nil, fmt.Errorf("%w: h2[%d]", ErrBadShape, p)
		}
		for q := range h2[p] {
			if len(h2[p][q]) != n {
				return nil, fmt.Errorf("%w: h2[%d][%d]", ErrBadShape, p, q)
			}
			for r := range h2[p][q] {
				if len(h2[p][q][r]) != n {
					return nil, fmt.Errorf("%w: h2[%d][%d][%d]", ErrBadShape, p, q, r)
				}
			}
		}
	}

	return &Operator{
		modes: n,
		h1:    copyMatrix(h1),
		h2:    copyTensor(h2),
	}, nil
}

// Modes returns the spin-orbital count, which is also the qubit count
// of the encoded operator.
func (o *Operator) Modes() int { return o.modes }

// Shift returns the scalar carried from a particle-hole
// transformation, zero for untransformed operators.
func (o *Operator) Shift() float64 { return o.shift }

// IsParticleHole reports whether the operator is referenced to a
// particle-hole determinant.
func (o *Operator) IsParticleHole() bool { return o.holes != nil }

// ParticleHole re-references the operator to the Hartree-Fock
// determinant with numAlpha and numBeta electrons filled from the
// bottom of each spin block. It returns the transformed operator and
// the energy shift, shift = -<ref|H|ref>, so that every eigenvalue of
// the result equals the corresponding original eigenvalue plus the
// shift and the reference itself lands at zero.
func (o *Operator) ParticleHole(numAlpha, numBeta int) (*Operator, float64, error) {
	if o.holes != nil {
		return nil, 0, ErrAlreadyShifted
	}
	if o.modes%2 != 0 {
		return nil, 0, fmt.Errorf("%w: %d modes cannot split into spin blocks", ErrBadOccupation, o.modes)
	}
	m := o.modes / 2
	if numAlpha < 0 || numBeta < 0 || numAlpha > m || numBeta > m {
		return nil, 0, fmt.Errorf("%w: %d alpha / %d beta over %d spatial orbitals",
			ErrBadOccupation, numAlpha, numBeta, m)
	}

	holes := make([]bool, o.modes)
	for i := 0; i < numAlpha; i++ {
		holes[i] = true
	}
	for i := 0; i < numBeta; i++ {
		holes[m+i] = true
	}

	shift := -o.referenceEnergy(holes)

	return &Operator{
		modes: o.modes,
		h1:    copyMatrix(o.h1),
		h2:    copyTensor(o.h2),
		holes: holes,
		shift: shift,
	}, shift, nil
}

// referenceEnergy evaluates <ref|H|ref> for the determinant marked by
// holes: sum_i h1[ii] plus the Coulomb-minus-exchange pair sum.
func (o *Operator) referenceEnergy(holes []bool) float64 {
	var e float64
	for i := 0; i < o.modes; i++ {
		if !holes[i] {
			continue
		}
		e += o.h1[i][i]
		for j := 0; j < o.modes; j++ {
			if !holes[j] {
				continue
			}
			e += 0.5 * (o.h2[i][j][j][i] - o.h2[i][j][i][j])
		}
	}
	return e
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

func copyTensor(t [][][][]float64) [][][][]float64 {
	out := make([][][][]float64, len(t))
	for p := range t {
		out[p] = make([][][]float64, len(t[p]))
		for q := range t[p] {
			out[p][q] = make([][]float64, len(t[p][q]))
			for r := range t[p][q] {
				out[p][q][r] = make([]float64, len(t[p][q][r]))
				copy(out[p][q][r], t[p][q][r])
			}
		}
	}
	return out
}
