package eigen_test

import (
	"fmt"
	"log"

	"github.com/secondq/wick/pkg/chem"
	"github.com/secondq/wick/pkg/driver"
	"github.com/secondq/wick/pkg/eigen"
	"github.com/secondq/wick/pkg/fermion"
)

// Example walks the whole pipeline for molecular hydrogen: integrals,
// the second-quantized operator, the particle-hole picture, the qubit
// encoding, and exact diagonalization.
func Example() {
	preset, err := chem.LookupPreset("h2")
	if err != nil {
		log.Fatal(err)
	}
	mol, err := preset.Molecule()
	if err != nil {
		log.Fatal(err)
	}
	drv, err := driver.New(mol)
	if err != nil {
		log.Fatal(err)
	}
	data, err := drv.Run()
	if err != nil {
		log.Fatal(err)
	}

	op, err := fermion.New(data.SpinOneBody(), data.SpinTwoBody())
	if err != nil {
		log.Fatal(err)
	}
	ph, shift, err := op.ParticleHole(data.NumAlpha, data.NumBeta)
	if err != nil {
		log.Fatal(err)
	}
	qop, err := ph.Map("jordan-wigner", 1e-12)
	if err != nil {
		log.Fatal(err)
	}

	res, err := eigen.Ground(qop)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("particle-hole shift: %.3f\n", shift)
	fmt.Printf("electronic ground energy: %.3f\n", res.Eigenvalue-shift)
	// Output:
	// particle-hole shift: 1.837
	// electronic ground energy: -1.857
}
