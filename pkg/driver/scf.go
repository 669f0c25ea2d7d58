package driver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SCF failure modes.
var (
	ErrNotConverged     = errors.New("scf did not converge")
	ErrLinearDependence = errors.New("overlap matrix is near-singular")
)

// scfResult carries the converged self-consistent field state.
type scfResult struct {
	electronic      float64
	orbitalEnergies []float64
	coeffs          *mat.Dense // AO rows, MO columns, ascending energy
	iterations      int
}

// symInvSqrt builds the symmetric orthogonalization matrix S^(-1/2)
// from the overlap eigendecomposition.
func symInvSqrt(s [][]float64) (*mat.Dense, error) {
	n := len(s)
	var eig mat.EigenSym
	if ok := eig.Factorize(mat.NewSymDense(n, flatten(s)), true); !ok {
		return nil, errors.New("overlap eigendecomposition failed")
	}

	vals := eig.Values(nil)
	invSqrt := make([]float64, n)
	for i, v := range vals {
		if v < 1e-10 {
			return nil, fmt.Errorf("%w: eigenvalue %.3e", ErrLinearDependence, v)
		}
		invSqrt[i] = 1 / math.Sqrt(v)
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	var tmp, out mat.Dense
	tmp.Mul(&vecs, mat.NewDiagDense(n, invSqrt))
	out.Mul(&tmp, vecs.T())
	return &out, nil
}

// buildG assembles the two-electron part of the Fock matrix from the
// density matrix: G_ij = sum_kl D_kl [(ij|kl) - (il|kj)/2].
func buildG(density [][]float64, eri [][][][]float64) [][]float64 {
	n := len(density)
	g := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					coulomb := eri[i][j][k][l]
					exchange := eri[i][l][k][j]
					g[i][j] += density[k][l] * (coulomb - 0.5*exchange)
				}
			}
		}
	}
	return g
}

// buildDensity forms the closed-shell density matrix from the lowest
// nOcc molecular orbitals, D_ij = 2 sum_o C_io C_jo.
func buildDensity(coeffs *mat.Dense, nOcc int) [][]float64 {
	n, _ := coeffs.Dims()
	d := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for o := 0; o < nOcc; o++ {
				d[i][j] += 2 * coeffs.At(i, o) * coeffs.At(j, o)
			}
		}
	}
	return d
}

// electronicEnergy evaluates E = sum_ij D_ij (Hcore_ij + G_ij/2).
func electronicEnergy(density, t, v, g [][]float64) float64 {
	var e float64
	for i := range density {
		for j := range density[i] {
			e += density[i][j] * (t[i][j] + v[i][j] + 0.5*g[i][j])
		}
	}
	return e
}

// runSCF iterates the Roothaan equations to self-consistency on the
// electronic energy.
func runSCF(s, t, v [][]float64, eri [][][][]float64, nOcc int, tol float64, maxIter int) (*scfResult, error) {
	n := len(s)

	x, err := symInvSqrt(s)
	if err != nil {
		return nil, err
	}

	hcore := mat.NewDense(n, n, flatten(t))
	hcore.Add(hcore, mat.NewDense(n, n, flatten(v)))

	density := newMatrix(n)
	var ePrev float64

	for iter := 1; iter <= maxIter; iter++ {
		g := buildG(density, eri)

		fock := mat.NewDense(n, n, flatten(g))
		fock.Add(fock, hcore)

		// Orthogonalize: F' = X F X, then diagonalize F'.
		var fPrime, tmp mat.Dense
		tmp.Mul(fock, x)
		fPrime.Mul(x, &tmp)

		var eig mat.EigenSym
		if ok := eig.Factorize(mat.NewSymDense(n, fPrime.RawMatrix().Data), true); !ok {
			return nil, errors.New("fock eigendecomposition failed")
		}

		var orthoVecs, coeffs mat.Dense
		eig.VectorsTo(&orthoVecs)
		coeffs.Mul(x, &orthoVecs)

		density = buildDensity(&coeffs, nOcc)
		e := electronicEnergy(density, t, v, g)

		if iter > 1 && math.Abs(e-ePrev) < tol {
			return &scfResult{
				electronic:      e,
				orbitalEnergies: eig.Values(nil),
				coeffs:          &coeffs,
				iterations:      iter,
			}, nil
		}
		ePrev = e
	}

	return nil, fmt.Errorf("%w after %d iterations", ErrNotConverged, maxIter)
}

// flatten lays a square slice matrix out in row-major order.
func flatten(m [][]float64) []float64 {
	n := len(m)
	data := make([]float64, 0, n*n)
	for _, row := range m {
		data = append(data, row...)
	}
	return data
}
