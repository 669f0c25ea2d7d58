// Scan command sweeps the bond length of a diatomic.
package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/secondq/wick/internal/runstore"
	"github.com/secondq/wick/pkg/chem"
	"github.com/secondq/wick/pkg/eigen"
	"github.com/secondq/wick/pkg/vqe"
)

var (
	scanFrom      float64
	scanTo        float64
	scanStep      float64
	scanEncoding  string
	scanThreshold float64
	scanVQE       bool
	scanSave      bool
)

var errNotDiatomic = errors.New("scan requires a two-atom molecule")

var scanCmd = &cobra.Command{
	Use:   "scan [preset]",
	Short: "Sweep the bond length of a diatomic and solve each point",
	Long: `Scan recomputes the pipeline across a range of bond lengths for a
two-atom molecule and prints the dissociation curve: the exact
electronic and total energy per point, optionally with a variational
solve for comparison. Every point is solved through the particle-hole
transformed operator.

Example:
  wick scan
  wick scan h2 --from 0.4 --to 2.0 --step 0.1
  wick scan h2 --vqe
  wick scan heh+ --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	addMoleculeFlags(scanCmd)
	scanCmd.Flags().Float64Var(&scanFrom, "from", 0.4, "first bond length in Angstrom")
	scanCmd.Flags().Float64Var(&scanTo, "to", 2.0, "last bond length in Angstrom")
	scanCmd.Flags().Float64Var(&scanStep, "step", 0.1, "bond length increment in Angstrom")
	scanCmd.Flags().StringVar(&scanEncoding, "encoding", "", "fermion-to-qubit encoding (default from config)")
	scanCmd.Flags().Float64Var(&scanThreshold, "threshold", -1, "coefficient truncation threshold (default from config)")
	scanCmd.Flags().BoolVar(&scanVQE, "vqe", false, "also solve each point variationally")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "persist each point to the run store")
}

// scanPoint is one bond length on the dissociation curve.
type scanPoint struct {
	BondLength       float64  `json:"bond_length"`
	ElectronicEnergy float64  `json:"electronic_energy"`
	NuclearRepulsion float64  `json:"nuclear_repulsion"`
	TotalEnergy      float64  `json:"total_energy"`
	VQETotalEnergy   *float64 `json:"vqe_total_energy,omitempty"`
	VQEDeviation     *float64 `json:"vqe_deviation,omitempty"`
}

func runScan(cmd *cobra.Command, args []string) error {
	mol, err := resolveMolecule(args)
	if err != nil {
		return err
	}
	if len(mol.Atoms) != 2 {
		return fmt.Errorf("%w: %s has %d atoms", errNotDiatomic, mol.Name, len(mol.Atoms))
	}
	if scanStep <= 0 {
		return fmt.Errorf("%w: step %g must be positive", chem.ErrInvalidGeometry, scanStep)
	}
	if scanFrom <= 0 {
		return fmt.Errorf("%w: bond length %g must be positive", chem.ErrInvalidGeometry, scanFrom)
	}
	if scanTo < scanFrom {
		return fmt.Errorf("%w: empty range %g..%g", chem.ErrInvalidGeometry, scanFrom, scanTo)
	}

	encoding, threshold := encodingAndThreshold(scanEncoding, scanThreshold)

	var store *runstore.Store
	if scanSave {
		store, err = openStore()
		if err != nil {
			return err
		}
		defer store.Close()
	}

	var points []scanPoint
	// Half a step of slack absorbs accumulated float error at the end
	// of the range.
	for r := scanFrom; r <= scanTo+scanStep/2; r += scanStep {
		point, records, err := scanOne(mol, r, encoding, threshold)
		if err != nil {
			return fmt.Errorf("bond length %.3f: %w", r, err)
		}
		points = append(points, point)

		if scanSave {
			for _, rec := range records {
				if _, err := store.Save(rec); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
			}
		}
	}

	if flagJSON {
		return printJSON(points)
	}
	printScanTable(mol.Name, points)
	return nil
}

// scanOne solves one bond length and reports the curve point together
// with the records to persist.
func scanOne(base chem.Molecule, r float64, encoding string, threshold float64) (scanPoint, []runstore.Record, error) {
	mol := stretchedMolecule(base, r)

	data, err := runDriver(mol)
	if err != nil {
		return scanPoint{}, nil, err
	}

	qop, shift, err := qubitHamiltonian(data, true, encoding, threshold)
	if err != nil {
		return scanPoint{}, nil, err
	}

	res, err := eigen.Ground(qop)
	if err != nil {
		return scanPoint{}, nil, err
	}

	electronic := res.Eigenvalue - shift
	point := scanPoint{
		BondLength:       r,
		ElectronicEnergy: electronic,
		NuclearRepulsion: data.NuclearRepulsion,
		TotalEnergy:      electronic + data.NuclearRepulsion,
	}

	records := []runstore.Record{{
		Molecule:         mol.Name,
		Geometry:         mol.GeometryString(),
		Basis:            mol.Basis,
		Method:           "exact",
		Encoding:         encoding,
		ElectronicEnergy: electronic,
		NuclearRepulsion: data.NuclearRepulsion,
		TotalEnergy:      point.TotalEnergy,
		EnergyShift:      shift,
	}}

	if scanVQE {
		solver, err := vqe.New(qop, conf.VQE)
		if err != nil {
			return scanPoint{}, nil, err
		}
		vres, err := solver.Run()
		if err != nil {
			return scanPoint{}, nil, err
		}

		vqeElectronic := vres.Eigenvalue - shift
		vqeTotal := vqeElectronic + data.NuclearRepulsion
		deviation := vres.Eigenvalue - res.Eigenvalue
		point.VQETotalEnergy = &vqeTotal
		point.VQEDeviation = &deviation

		records = append(records, runstore.Record{
			Molecule:         mol.Name,
			Geometry:         mol.GeometryString(),
			Basis:            mol.Basis,
			Method:           "vqe",
			Encoding:         encoding,
			ElectronicEnergy: vqeElectronic,
			NuclearRepulsion: data.NuclearRepulsion,
			TotalEnergy:      vqeTotal,
			EnergyShift:      shift,
			Iterations:       vres.Iterations,
			Evaluations:      vres.Evaluations,
			Parameters:       vres.OptimalParameters,
		})
	}

	return point, records, nil
}

// stretchedMolecule places the two atoms along z at separation r,
// keeping everything else about the molecule.
func stretchedMolecule(base chem.Molecule, r float64) chem.Molecule {
	mol := base
	mol.Atoms = []chem.Atom{
		{Symbol: base.Atoms[0].Symbol},
		{Symbol: base.Atoms[1].Symbol, Z: r},
	}
	return mol
}

// printScanTable prints the dissociation curve and its minimum.
func printScanTable(name string, points []scanPoint) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if scanVQE {
		fmt.Fprintln(w, "R (A)\tELECTRONIC (Ha)\tTOTAL (Ha)\tVQE TOTAL (Ha)\tVQE DEV (Ha)")
	} else {
		fmt.Fprintln(w, "R (A)\tELECTRONIC (Ha)\tTOTAL (Ha)")
	}
	for _, p := range points {
		if p.VQETotalEnergy != nil {
			fmt.Fprintf(w, "%.3f\t%.8f\t%.8f\t%.8f\t%+.2e\n",
				p.BondLength, p.ElectronicEnergy, p.TotalEnergy, *p.VQETotalEnergy, *p.VQEDeviation)
		} else {
			fmt.Fprintf(w, "%.3f\t%.8f\t%.8f\n", p.BondLength, p.ElectronicEnergy, p.TotalEnergy)
		}
	}
	w.Flush()

	best := points[0]
	for _, p := range points[1:] {
		if p.TotalEnergy < best.TotalEnergy {
			best = p
		}
	}
	fmt.Printf("\n%s: %d point(s), minimum total energy %.8f Ha at %.3f A\n",
		name, len(points), best.TotalEnergy, best.BondLength)
}
