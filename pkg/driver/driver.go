package driver

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/secondq/wick/pkg/chem"
)

// Default SCF controls.
const (
	DefaultConvergenceTol = 1e-10
	DefaultMaxIterations  = 128
)

// ErrOpenShell reports an electronic configuration outside the
// restricted closed-shell treatment.
var ErrOpenShell = errors.New("restricted driver requires a closed-shell singlet")

// Driver prepares and runs the restricted Hartree-Fock calculation for
// one molecule. The zero value is not usable; construct with New.
type Driver struct {
	mol    chem.Molecule
	funcs  []basisFunction
	nuclei []nucleus
	nOcc   int

	// ConvergenceTol is the SCF energy-change threshold.
	ConvergenceTol float64
	// MaxIterations caps the SCF loop.
	MaxIterations int
}

// New validates the molecule, resolves its basis set, and lays out the
// contracted Gaussians and nuclei in atomic units.
func New(mol chem.Molecule) (*Driver, error) {
	if err := mol.Validate(); err != nil {
		return nil, err
	}

	alpha, beta, err := mol.Occupations()
	if err != nil {
		return nil, err
	}
	if mol.Multiplicity != 1 || alpha != beta {
		return nil, fmt.Errorf("%w: got %d alpha / %d beta electrons", ErrOpenShell, alpha, beta)
	}

	basis, err := chem.LookupBasis(mol.Basis)
	if err != nil {
		return nil, err
	}

	var funcs []basisFunction
	var nuclei []nucleus
	for _, atom := range mol.Atoms {
		shells, err := basis.ShellsFor(atom.Symbol)
		if err != nil {
			return nil, err
		}

		center := [3]float64{
			atom.X * chem.AngstromToBohr,
			atom.Y * chem.AngstromToBohr,
			atom.Z * chem.AngstromToBohr,
		}

		for _, sh := range shells {
			prims := make([]primitive, len(sh.Exponents))
			for i := range sh.Exponents {
				prims[i] = primitive{
					alpha:  sh.Exponents[i],
					coeff:  sh.Coefficients[i],
					center: center,
				}
			}
			funcs = append(funcs, basisFunction{prims: prims})
		}

		z, err := atom.Number()
		if err != nil {
			return nil, err
		}
		nuclei = append(nuclei, nucleus{z: float64(z), center: center})
	}

	return &Driver{
		mol:            mol,
		funcs:          funcs,
		nuclei:         nuclei,
		nOcc:           alpha,
		ConvergenceTol: DefaultConvergenceTol,
		MaxIterations:  DefaultMaxIterations,
	}, nil
}

// NumBasisFunctions returns the AO count of the laid-out basis.
func (d *Driver) NumBasisFunctions() int {
	return len(d.funcs)
}

// Run computes the AO integrals, converges the SCF, and returns the
// molecular data with integrals in the MO basis.
func (d *Driver) Run() (*chem.MolecularData, error) {
	s := overlap(d.funcs)
	t := kinetic(d.funcs)
	v := nuclearAttraction(d.funcs, d.nuclei)
	eri := repulsion(d.funcs)

	scf, err := runSCF(s, t, v, eri, d.nOcc, d.ConvergenceTol, d.MaxIterations)
	if err != nil {
		return nil, fmt.Errorf("scf: %w", err)
	}

	repulsionEnergy, err := d.mol.NuclearRepulsion()
	if err != nil {
		return nil, err
	}

	n := len(d.funcs)
	hcore := mat.NewDense(n, n, flatten(t))
	hcore.Add(hcore, mat.NewDense(n, n, flatten(v)))

	return &chem.MolecularData{
		Molecule:         d.mol,
		NuclearRepulsion: repulsionEnergy,
		ElectronicEnergy: scf.electronic,
		TotalEnergy:      scf.electronic + repulsionEnergy,
		OrbitalEnergies:  scf.orbitalEnergies,
		SCFIterations:    scf.iterations,
		MOCoefficients:   denseToSlices(scf.coeffs),
		OneBody:          transformOneBody(scf.coeffs, hcore),
		TwoBody:          transformTwoBody(scf.coeffs, eri),
		NumOrbitals:      n,
		NumAlpha:         d.nOcc,
		NumBeta:          d.nOcc,
	}, nil
}
