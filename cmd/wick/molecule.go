// Molecule command runs the electronic-structure driver.
package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/secondq/wick/pkg/chem"
)

var moleculeIntegrals bool

var moleculeCmd = &cobra.Command{
	Use:   "molecule [preset]",
	Short: "Run the Hartree-Fock driver and print the molecular data",
	Long: `Molecule converges the restricted Hartree-Fock problem for a preset
or an ad hoc geometry and prints the energies and orbitals every later
pipeline stage consumes.

Example:
  wick molecule
  wick molecule heh+
  wick molecule --geometry "H 0 0 0; H 0 0 0.9"
  wick molecule h2 --integrals`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMolecule,
}

func init() {
	addMoleculeFlags(moleculeCmd)
	moleculeCmd.Flags().BoolVar(&moleculeIntegrals, "integrals", false, "include the molecular-orbital integrals")
}

// moleculeReport augments the molecular data with the integral tensors
// for --integrals in JSON mode.
type moleculeReport struct {
	*chem.MolecularData
	OneBody [][]float64     `json:"one_body,omitempty"`
	TwoBody [][][][]float64 `json:"two_body,omitempty"`
}

func runMolecule(cmd *cobra.Command, args []string) error {
	mol, err := resolveMolecule(args)
	if err != nil {
		return err
	}

	data, err := runDriver(mol)
	if err != nil {
		return err
	}

	if flagJSON {
		report := moleculeReport{MolecularData: data}
		if moleculeIntegrals {
			report.OneBody = data.OneBody
			report.TwoBody = data.TwoBody
		}
		return printJSON(report)
	}

	fmt.Printf("Molecule:           %s\n", mol.Name)
	fmt.Printf("Geometry:           %s\n", mol.GeometryString())
	fmt.Printf("Basis:              %s\n", mol.Basis)
	fmt.Printf("Electrons:          %d (%d alpha, %d beta)\n",
		data.NumAlpha+data.NumBeta, data.NumAlpha, data.NumBeta)
	fmt.Printf("Spatial orbitals:   %d\n", data.NumOrbitals)
	fmt.Printf("Spin orbitals:      %d\n", data.NumSpinOrbitals())
	fmt.Printf("SCF iterations:     %d\n", data.SCFIterations)
	fmt.Printf("Orbital energies:   %s\n", formatFloats(data.OrbitalEnergies))
	fmt.Printf("Nuclear repulsion:  %.8f Ha\n", data.NuclearRepulsion)
	fmt.Printf("Electronic energy:  %.8f Ha\n", data.ElectronicEnergy)
	fmt.Printf("Total energy:       %.8f Ha\n", data.TotalEnergy)

	if moleculeIntegrals {
		printIntegrals(data)
	}
	return nil
}

// formatFloats renders a float slice as a comma-separated list.
func formatFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return strings.Join(parts, ", ")
}

// printIntegrals dumps the nonzero molecular-orbital integrals in
// chemist index order.
func printIntegrals(data *chem.MolecularData) {
	fmt.Println("\nOne-body integrals (MO basis):")
	for i := range data.OneBody {
		for j, v := range data.OneBody[i] {
			if math.Abs(v) < 1e-10 {
				continue
			}
			fmt.Printf("  h[%d][%d] = %+.8f\n", i, j, v)
		}
	}

	fmt.Println("\nTwo-body integrals (ij|kl):")
	for i := range data.TwoBody {
		for j := range data.TwoBody[i] {
			for k := range data.TwoBody[i][j] {
				for l, v := range data.TwoBody[i][j][k] {
					if math.Abs(v) < 1e-10 {
						continue
					}
					fmt.Printf("  (%d%d|%d%d) = %+.8f\n", i, j, k, l, v)
				}
			}
		}
	}
}
