package driver

import "math"

// overlap computes the AO overlap matrix S.
func overlap(funcs []basisFunction) [][]float64 {
	n := len(funcs)
	res := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for _, a := range funcs[i].prims {
				for _, b := range funcs[j].prims {
					p := a.alpha + b.alpha
					q := a.alpha * b.alpha / p
					pre := a.norm() * b.norm() * a.coeff * b.coeff
					res[i][j] += pre * math.Exp(-q*dist2(a.center, b.center)) * math.Pow(math.Pi/p, 1.5)
				}
			}
		}
	}
	return res
}

// kinetic computes the AO kinetic energy matrix T for s-type
// primitives.
func kinetic(funcs []basisFunction) [][]float64 {
	n := len(funcs)
	res := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for _, a := range funcs[i].prims {
				for _, b := range funcs[j].prims {
					p := a.alpha + b.alpha
					q := a.alpha * b.alpha / p
					pre := a.norm() * b.norm() * a.coeff * b.coeff
					s := pre * math.Exp(-q*dist2(a.center, b.center)) * math.Pow(math.Pi/p, 1.5)

					pc := productCenter(a.alpha, b.alpha, a.center, b.center)
					pg2 := dist2(pc, b.center)

					res[i][j] += 3 * b.alpha * s
					res[i][j] -= 2 * b.alpha * b.alpha * s * (pg2 + 1.5/p)
				}
			}
		}
	}
	return res
}

// nuclearAttraction computes the AO electron-nucleus attraction
// matrix, summed over all nuclei.
func nuclearAttraction(funcs []basisFunction, nuclei []nucleus) [][]float64 {
	n := len(funcs)
	res := newMatrix(n)
	for _, nuc := range nuclei {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				for _, a := range funcs[i].prims {
					for _, b := range funcs[j].prims {
						p := a.alpha + b.alpha
						q := a.alpha * b.alpha / p
						pre := a.norm() * b.norm() * a.coeff * b.coeff

						pc := productCenter(a.alpha, b.alpha, a.center, b.center)
						pg2 := dist2(pc, nuc.center)

						res[i][j] -= nuc.z * pre * math.Exp(-q*dist2(a.center, b.center)) *
							(2 * math.Pi / p) * boys(p*pg2, 0)
					}
				}
			}
		}
	}
	return res
}

// repulsion computes the AO electron repulsion tensor in chemist
// order, res[i][j][k][l] = (ij|kl).
func repulsion(funcs []basisFunction) [][][][]float64 {
	n := len(funcs)
	res := newTensor(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					for _, a := range funcs[i].prims {
						for _, b := range funcs[j].prims {
							for _, c := range funcs[k].prims {
								for _, d := range funcs[l].prims {
									pij := a.alpha + b.alpha
									pkl := c.alpha + d.alpha
									qij := a.alpha * b.alpha / pij
									qkl := c.alpha * d.alpha / pkl

									cij := productCenter(a.alpha, b.alpha, a.center, b.center)
									ckl := productCenter(c.alpha, d.alpha, c.center, d.center)
									denom := 1.0/pij + 1.0/pkl

									pre := a.norm() * b.norm() * c.norm() * d.norm() *
										a.coeff * b.coeff * c.coeff * d.coeff

									res[i][j][k][l] += pre *
										(2 * math.Pi * math.Pi / (pij * pkl)) *
										math.Sqrt(math.Pi/(pij+pkl)) *
										math.Exp(-qij*dist2(a.center, b.center)) *
										math.Exp(-qkl*dist2(c.center, d.center)) *
										boys(dist2(cij, ckl)/denom, 0)
								}
							}
						}
					}
				}
			}
		}
	}
	return res
}

// newMatrix allocates an n-by-n zero matrix.
func newMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// newTensor allocates an n^4 zero tensor.
func newTensor(n int) [][][][]float64 {
	t := make([][][][]float64, n)
	for i := range t {
		t[i] = make([][][]float64, n)
		for j := range t[i] {
			t[i][j] = make([][]float64, n)
			for k := range t[i][j] {
				t[i][j][k] = make([]float64, n)
			}
		}
	}
	return t
}
