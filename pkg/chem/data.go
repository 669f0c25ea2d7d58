package chem

// MolecularData is the driver's product: converged self-consistent
// field results together with the molecular-orbital integrals that
// parameterize the second-quantized Hamiltonian. Instances are built
// once by a driver run and only read afterwards.
type MolecularData struct {
	Molecule         Molecule  `json:"molecule"`
	NuclearRepulsion float64   `json:"nuclear_repulsion"`
	ElectronicEnergy float64   `json:"electronic_energy"`
	TotalEnergy      float64   `json:"total_energy"`
	OrbitalEnergies  []float64 `json:"orbital_energies"`
	SCFIterations    int       `json:"scf_iterations"`

	// MOCoefficients holds the orbital expansion over the AO basis,
	// one column per molecular orbital in ascending energy order.
	MOCoefficients [][]float64 `json:"-"`

	// OneBody is the core Hamiltonian in the MO basis, indexed by
	// spatial orbital.
	OneBody [][]float64 `json:"-"`

	// TwoBody is the electron repulsion tensor in the MO basis in
	// chemist index order: TwoBody[i][j][k][l] = (ij|kl).
	TwoBody [][][][]float64 `json:"-"`

	NumOrbitals int `json:"num_orbitals"`
	NumAlpha    int `json:"num_alpha"`
	NumBeta     int `json:"num_beta"`
}

// NumSpinOrbitals returns the spin-orbital count, twice the spatial
// orbital count.
func (d *MolecularData) NumSpinOrbitals() int {
	return 2 * d.NumOrbitals
}

// SpinOneBody expands the spatial one-body matrix over spin orbitals
// in block ordering: indexes 0..M-1 are alpha, M..2M-1 beta. Matrix
// elements between opposite spins vanish.
func (d *MolecularData) SpinOneBody() [][]float64 {
	m := d.NumOrbitals
	n := 2 * m
	h1 := make([][]float64, n)
	for p := range h1 {
		h1[p] = make([]float64, n)
		for q := range h1[p] {
			if p/m == q/m {
				h1[p][q] = d.OneBody[p%m][q%m]
			}
		}
	}
	return h1
}

// SpinTwoBody expands the chemist-ordered spatial repulsion tensor
// over spin orbitals, arranged so that the Hamiltonian reads
//
//	H = sum h1[p][q] a+p aq + 1/2 sum h2[p][q][r][s] a+p a+q ar as.
//
// In that arrangement h2[p][q][r][s] = (ps|qr) with the spin of p
// matching s and the spin of q matching r.
func (d *MolecularData) SpinTwoBody() [][][][]float64 {
	m := d.NumOrbitals
	n := 2 * m
	h2 := make([][][][]float64, n)
	for p := 0; p < n; p++ {
		h2[p] = make([][][]float64, n)
		for q := 0; q < n; q++ {
			h2[p][q] = make([][]float64, n)
			for r := 0; r < n; r++ {
				h2[p][q][r] = make([]float64, n)
				for s := 0; s < n; s++ {
					if p/m != s/m || q/m != r/m {
						continue
					}
					h2[p][q][r][s] = d.TwoBody[p%m][s%m][q%m][r%m]
				}
			}
		}
	}
	return h2
}
