package driver

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// primitive is a single s-type Gaussian exp(-alpha*|r-center|^2)
// scaled by a contraction coefficient. Centers are in Bohr.
type primitive struct {
	alpha  float64
	coeff  float64
	center [3]float64
}

// norm returns the normalization constant of an s-type primitive.
func (p primitive) norm() float64 {
	return math.Pow(2*p.alpha/math.Pi, 0.75)
}

// basisFunction is a contracted Gaussian: a fixed linear combination
// of primitives sharing one center.
type basisFunction struct {
	prims []primitive
}

// nucleus is a point charge at a position in Bohr.
type nucleus struct {
	z      float64
	center [3]float64
}

// dist2 returns the squared distance between two centers.
func dist2(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}

// productCenter returns the center of the Gaussian product theorem
// composite, (a1*r1 + a2*r2)/(a1+a2).
func productCenter(a1, a2 float64, r1, r2 [3]float64) [3]float64 {
	p := a1 + a2
	return [3]float64{
		(a1*r1[0] + a2*r2[0]) / p,
		(a1*r1[1] + a2*r2[1]) / p,
		(a1*r1[2] + a2*r2[2]) / p,
	}
}

// boys evaluates the Boys function F_n(x) through the regularized
// lower incomplete gamma function.
func boys(x float64, n int) float64 {
	nf := float64(n)
	if x == 0 {
		return 1.0 / (2.0*nf + 1.0)
	}
	return mathext.GammaIncReg(nf+0.5, x) * math.Gamma(nf+0.5) / (2.0 * math.Pow(x, nf+0.5))
}
