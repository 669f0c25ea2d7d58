package eigen

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/secondq/wick/pkg/pauli"
)

// MaxQubits bounds dense diagonalization. The real embedding doubles
// the dimension, so n qubits factorize a 2^(n+1) square matrix.
const MaxQubits = 10

// hermTol is the imaginary residue tolerated on merged coefficients
// before an operator is rejected as non-Hermitian.
const hermTol = 1e-10

// Sentinel errors for the dense solver.
var (
	ErrNotHermitian = errors.New("operator is not hermitian")
	ErrTooLarge     = errors.New("operator exceeds dense solver capacity")
	ErrFactorize    = errors.New("symmetric eigendecomposition did not converge")
)

// Result is one eigenpair. State holds the unit-norm eigenvector over
// computational basis indices, qubit 0 least significant.
type Result struct {
	Eigenvalue float64
	State      []complex128
}

// Ground diagonalizes the operator and returns its minimum eigenvalue
// with the matching eigenvector.
func Ground(op *pauli.Operator) (Result, error) {
	eig, err := factorize(op, true)
	if err != nil {
		return Result{}, err
	}

	dim := 1 << op.NumQubits()
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Column 0 of the embedding holds (Re psi; Im psi) for the lowest
	// eigenvalue.
	state := make([]complex128, dim)
	for i := 0; i < dim; i++ {
		state[i] = complex(vecs.At(i, 0), vecs.At(dim+i, 0))
	}
	return Result{Eigenvalue: eig.Values(nil)[0], State: state}, nil
}

// Values returns the spectrum in ascending order, one entry per basis
// state. The embedding doubles every eigenvalue, so adjacent pairs
// collapse to their mean.
func Values(op *pauli.Operator) ([]float64, error) {
	eig, err := factorize(op, false)
	if err != nil {
		return nil, err
	}
	doubled := eig.Values(nil)
	vals := make([]float64, 0, len(doubled)/2)
	for i := 0; i+1 < len(doubled); i += 2 {
		vals = append(vals, 0.5*(doubled[i]+doubled[i+1]))
	}
	return vals, nil
}

// factorize lowers the operator to its real symmetric embedding and
// runs the gonum eigendecomposition.
func factorize(op *pauli.Operator, vectors bool) (*mat.EigenSym, error) {
	if op.NumQubits() > MaxQubits {
		return nil, fmt.Errorf("%w: %d qubits, max %d", ErrTooLarge, op.NumQubits(), MaxQubits)
	}
	if !op.IsHermitian(hermTol) {
		return nil, ErrNotHermitian
	}

	re, im, err := op.Matrices()
	if err != nil {
		return nil, err
	}

	// A Hermitian H = A + iB embeds as the real symmetric
	//
	//	[ A -B ]
	//	[ B  A ]
	//
	// whose spectrum is that of H with every eigenvalue doubled and
	// whose eigenvectors stack (Re psi; Im psi).
	dim := 1 << op.NumQubits()
	emb := mat.NewSymDense(2*dim, nil)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			a := re.At(i, j)
			emb.SetSym(i, j, a)
			emb.SetSym(dim+i, dim+j, a)
		}
		for j := 0; j < dim; j++ {
			emb.SetSym(i, dim+j, -im.At(i, j))
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(emb, vectors) {
		return nil, ErrFactorize
	}
	return &eig, nil
}
