// Shared helpers for wick CLI commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/secondq/wick/internal/runstore"
	"github.com/secondq/wick/pkg/chem"
	"github.com/secondq/wick/pkg/driver"
	"github.com/secondq/wick/pkg/fermion"
	"github.com/secondq/wick/pkg/pauli"
)

// Molecule selection flags shared by the pipeline commands. Only one
// command runs per invocation, so the commands bind the same vars.
var (
	flagGeometry     string
	flagCharge       int
	flagMultiplicity int
	flagBasis        string
)

// addMoleculeFlags registers the molecule selection flags on a
// pipeline command.
func addMoleculeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagGeometry, "geometry", "", `ad hoc geometry "Symbol x y z; ..." in Angstrom`)
	cmd.Flags().IntVar(&flagCharge, "charge", 0, "total charge for --geometry molecules")
	cmd.Flags().IntVar(&flagMultiplicity, "multiplicity", 1, "spin multiplicity for --geometry molecules")
	cmd.Flags().StringVar(&flagBasis, "basis", "", "basis set override (default from config)")
}

// resolveMolecule builds the molecule a pipeline command works on: an
// ad hoc --geometry if given, else the named preset, else the
// configured default preset.
func resolveMolecule(args []string) (chem.Molecule, error) {
	if flagGeometry != "" {
		atoms, err := chem.ParseGeometry(flagGeometry)
		if err != nil {
			return chem.Molecule{}, err
		}
		basis := flagBasis
		if basis == "" {
			basis = conf.Basis
		}
		return chem.Molecule{
			Name:         "custom",
			Atoms:        atoms,
			Charge:       flagCharge,
			Multiplicity: flagMultiplicity,
			Basis:        basis,
		}, nil
	}

	name := conf.Molecule
	if len(args) > 0 {
		name = args[0]
	}
	preset, err := chem.LookupPreset(name)
	if err != nil {
		return chem.Molecule{}, err
	}
	mol, err := preset.Molecule()
	if err != nil {
		return chem.Molecule{}, err
	}
	if flagBasis != "" {
		mol.Basis = flagBasis
	}
	return mol, nil
}

// encodingAndThreshold applies the configured defaults to per-command
// flag values. A negative threshold means "use the configured value".
func encodingAndThreshold(encoding string, threshold float64) (string, float64) {
	if encoding == "" {
		encoding = conf.Encoding
	}
	if threshold < 0 {
		threshold = conf.Threshold
	}
	return encoding, threshold
}

// runDriver converges the Hartree-Fock problem for the molecule.
func runDriver(mol chem.Molecule) (*chem.MolecularData, error) {
	drv, err := driver.New(mol)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}
	data, err := drv.Run()
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}
	return data, nil
}

// qubitHamiltonian builds the second-quantized operator from the
// molecular integrals, optionally applies the particle-hole
// transformation, and maps the result to a qubit operator. The
// returned shift is zero when the transformation is skipped.
func qubitHamiltonian(data *chem.MolecularData, particleHole bool, encoding string, threshold float64) (*pauli.Operator, float64, error) {
	op, err := fermion.New(data.SpinOneBody(), data.SpinTwoBody())
	if err != nil {
		return nil, 0, fmt.Errorf("fermionic operator: %w", err)
	}

	var shift float64
	if particleHole {
		op, shift, err = op.ParticleHole(data.NumAlpha, data.NumBeta)
		if err != nil {
			return nil, 0, fmt.Errorf("particle-hole: %w", err)
		}
	}

	qop, err := op.Map(encoding, threshold)
	if err != nil {
		return nil, 0, fmt.Errorf("map to qubits: %w", err)
	}
	return qop, shift, nil
}

// openStore resolves the data directory and opens the run store. The
// caller must defer store.Close().
func openStore() (*runstore.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	store, err := runstore.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	return store, nil
}

// saveRun persists a computed energy and reports the stored id.
func saveRun(rec runstore.Record) (string, error) {
	store, err := openStore()
	if err != nil {
		return "", err
	}
	defer store.Close()

	id, err := store.Save(rec)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return id, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
