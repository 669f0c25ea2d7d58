package driver

import "gonum.org/v1/gonum/mat"

// transformOneBody rotates the core Hamiltonian into the MO basis,
// h_pq = sum_ij C_ip Hcore_ij C_jq.
func transformOneBody(coeffs, hcore *mat.Dense) [][]float64 {
	var tmp, out mat.Dense
	tmp.Mul(hcore, coeffs)
	out.Mul(coeffs.T(), &tmp)
	return denseToSlices(&out)
}

// transformTwoBody rotates the chemist-ordered repulsion tensor into
// the MO basis with four quarter transforms, one AO index at a time.
func transformTwoBody(coeffs *mat.Dense, ao [][][][]float64) [][][][]float64 {
	n := len(ao)
	c := func(i, p int) float64 { return coeffs.At(i, p) }

	t1 := newTensor(n)
	for p := 0; p < n; p++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					for i := 0; i < n; i++ {
						t1[p][j][k][l] += c(i, p) * ao[i][j][k][l]
					}
				}
			}
		}
	}

	t2 := newTensor(n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					for j := 0; j < n; j++ {
						t2[p][q][k][l] += c(j, q) * t1[p][j][k][l]
					}
				}
			}
		}
	}

	t3 := newTensor(n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for l := 0; l < n; l++ {
					for k := 0; k < n; k++ {
						t3[p][q][r][l] += c(k, r) * t2[p][q][k][l]
					}
				}
			}
		}
	}

	mo := newTensor(n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					for l := 0; l < n; l++ {
						mo[p][q][r][s] += c(l, s) * t3[p][q][r][l]
					}
				}
			}
		}
	}

	return mo
}

// denseToSlices copies a gonum matrix into row slices.
func denseToSlices(m *mat.Dense) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}
