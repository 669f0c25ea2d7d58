// Vqe command minimizes the qubit Hamiltonian variationally.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/secondq/wick/internal/runstore"
	"github.com/secondq/wick/pkg/eigen"
	"github.com/secondq/wick/pkg/vqe"
)

var (
	vqeEncoding  string
	vqeThreshold float64
	vqeRaw       bool

	vqeAnsatz        string
	vqeDepth         int
	vqeEntanglement  string
	vqeBackend       string
	vqeOptimizer     string
	vqeMaxIterations int
	vqeTolerance     float64
	vqeRestarts      int
	vqeSeed          int64

	vqeVerbose bool
	vqeSave    bool
)

var vqeCmd = &cobra.Command{
	Use:   "vqe [preset]",
	Short: "Minimize the qubit Hamiltonian with the variational solver",
	Long: `Vqe prepares ansatz states on a simulated statevector backend and
minimizes the Hamiltonian expectation value with a classical
optimizer.

The Hamiltonian is particle-hole transformed first, so the
zero-parameter ansatz state is the Hartree-Fock reference and the
search starts from a zero expectation value; --raw skips the
transformation. The minimum is compared against dense diagonalization
whenever the operator is small enough to diagonalize.

Example:
  wick vqe
  wick vqe h2 --depth 2 --restarts 5
  wick vqe heh+ --optimizer nelder-mead --verbose
  wick vqe h2 --raw --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVQE,
}

func init() {
	addMoleculeFlags(vqeCmd)
	vqeCmd.Flags().StringVar(&vqeEncoding, "encoding", "", "fermion-to-qubit encoding (default from config)")
	vqeCmd.Flags().Float64Var(&vqeThreshold, "threshold", -1, "coefficient truncation threshold (default from config)")
	vqeCmd.Flags().BoolVar(&vqeRaw, "raw", false, "minimize the untransformed Hamiltonian")
	vqeCmd.Flags().StringVar(&vqeAnsatz, "ansatz", "", "ansatz family, ry or ryrz (default from config)")
	vqeCmd.Flags().IntVar(&vqeDepth, "depth", 0, "entangling layer count (default from config)")
	vqeCmd.Flags().StringVar(&vqeEntanglement, "entanglement", "", "entanglement layout, full or linear (default from config)")
	vqeCmd.Flags().StringVar(&vqeBackend, "backend", "", "energy evaluation backend (default from config)")
	vqeCmd.Flags().StringVar(&vqeOptimizer, "optimizer", "", "classical optimizer, lbfgs or nelder-mead (default from config)")
	vqeCmd.Flags().IntVar(&vqeMaxIterations, "max-iterations", 0, "major iteration cap per restart (default from config)")
	vqeCmd.Flags().Float64Var(&vqeTolerance, "tolerance", 0, "function convergence tolerance (default from config)")
	vqeCmd.Flags().IntVar(&vqeRestarts, "restarts", 0, "optimizer restarts (default from config)")
	vqeCmd.Flags().Int64Var(&vqeSeed, "seed", 0, "random seed for the initial angles")
	vqeCmd.Flags().BoolVar(&vqeVerbose, "verbose", false, "print per-restart and per-iteration progress to stderr")
	vqeCmd.Flags().BoolVar(&vqeSave, "save", false, "persist the result to the run store")
}

// vqeConfig merges the command flags over the configured defaults.
func vqeConfig() vqe.Config {
	cfg := conf.VQE
	if vqeAnsatz != "" {
		cfg.Ansatz = vqeAnsatz
	}
	if vqeDepth > 0 {
		cfg.Depth = vqeDepth
	}
	if vqeEntanglement != "" {
		cfg.Entanglement = vqeEntanglement
	}
	if vqeBackend != "" {
		cfg.Backend = vqeBackend
	}
	if vqeOptimizer != "" {
		cfg.Optimizer = vqeOptimizer
	}
	if vqeMaxIterations > 0 {
		cfg.MaxIterations = vqeMaxIterations
	}
	if vqeTolerance > 0 {
		cfg.Tolerance = vqeTolerance
	}
	if vqeRestarts > 0 {
		cfg.Restarts = vqeRestarts
	}
	if vqeSeed != 0 {
		cfg.Seed = vqeSeed
	}
	if vqeVerbose {
		cfg.Progress = os.Stderr
	}
	return cfg
}

// vqeReport is the JSON payload of the vqe command. The embedded
// solver result contributes the minimum, parameters, and counters.
type vqeReport struct {
	Molecule     string `json:"molecule"`
	Geometry     string `json:"geometry"`
	Basis        string `json:"basis"`
	Encoding     string `json:"encoding"`
	Qubits       int    `json:"qubits"`
	Ansatz       string `json:"ansatz"`
	Depth        int    `json:"depth"`
	Entanglement string `json:"entanglement"`
	Parameters   int    `json:"parameters"`
	Backend      string `json:"backend"`
	Optimizer    string `json:"optimizer"`

	*vqe.Result

	ExactMinimum *float64 `json:"exact_minimum,omitempty"`
	Deviation    *float64 `json:"deviation,omitempty"`

	ParticleHole     bool    `json:"particle_hole"`
	EnergyShift      float64 `json:"energy_shift"`
	ElectronicEnergy float64 `json:"electronic_energy"`
	NuclearRepulsion float64 `json:"nuclear_repulsion"`
	TotalEnergy      float64 `json:"total_energy"`
	RunID            string  `json:"run_id,omitempty"`
}

func runVQE(cmd *cobra.Command, args []string) error {
	mol, err := resolveMolecule(args)
	if err != nil {
		return err
	}

	data, err := runDriver(mol)
	if err != nil {
		return err
	}

	encoding, threshold := encodingAndThreshold(vqeEncoding, vqeThreshold)

	qop, shift, err := qubitHamiltonian(data, !vqeRaw, encoding, threshold)
	if err != nil {
		return err
	}

	cfg := vqeConfig()
	solver, err := vqe.New(qop, cfg)
	if err != nil {
		return err
	}
	res, err := solver.Run()
	if err != nil {
		return err
	}

	report := vqeReport{
		Molecule:         mol.Name,
		Geometry:         mol.GeometryString(),
		Basis:            mol.Basis,
		Encoding:         encoding,
		Qubits:           qop.NumQubits(),
		Ansatz:           cfg.Ansatz,
		Depth:            cfg.Depth,
		Entanglement:     cfg.Entanglement,
		Parameters:       solver.Ansatz().NumParameters(),
		Backend:          cfg.Backend,
		Optimizer:        cfg.Optimizer,
		Result:           res,
		ParticleHole:     !vqeRaw,
		EnergyShift:      shift,
		ElectronicEnergy: res.Eigenvalue - shift,
		NuclearRepulsion: data.NuclearRepulsion,
	}
	report.TotalEnergy = report.ElectronicEnergy + data.NuclearRepulsion

	if qop.NumQubits() <= eigen.MaxQubits {
		exact, err := eigen.Ground(qop)
		if err != nil {
			return err
		}
		deviation := res.Eigenvalue - exact.Eigenvalue
		report.ExactMinimum = &exact.Eigenvalue
		report.Deviation = &deviation
	}

	if vqeSave {
		id, err := saveRun(runstore.Record{
			Molecule:         report.Molecule,
			Geometry:         report.Geometry,
			Basis:            report.Basis,
			Method:           "vqe",
			Encoding:         report.Encoding,
			ElectronicEnergy: report.ElectronicEnergy,
			NuclearRepulsion: report.NuclearRepulsion,
			TotalEnergy:      report.TotalEnergy,
			EnergyShift:      report.EnergyShift,
			Iterations:       res.Iterations,
			Evaluations:      res.Evaluations,
			Parameters:       res.OptimalParameters,
		})
		if err != nil {
			return err
		}
		report.RunID = id
	}

	if flagJSON {
		return printJSON(report)
	}

	fmt.Printf("Molecule:            %s\n", report.Molecule)
	fmt.Printf("Basis:               %s\n", report.Basis)
	fmt.Printf("Encoding:            %s\n", report.Encoding)
	fmt.Printf("Qubits:              %d\n", report.Qubits)
	fmt.Printf("Ansatz:              %s (depth %d, %s entanglement, %d parameters)\n",
		report.Ansatz, report.Depth, report.Entanglement, report.Parameters)
	fmt.Printf("Backend:             %s\n", report.Backend)
	fmt.Printf("Optimizer:           %s (%d restarts)\n", report.Optimizer, cfg.Restarts)
	fmt.Printf("Status:              %s (converged: %t)\n", res.Status, res.Converged)
	fmt.Printf("Iterations:          %d major, %d evaluations\n", res.Iterations, res.Evaluations)
	fmt.Printf("Minimum:             %.8f Ha\n", res.Eigenvalue)
	if report.ExactMinimum != nil {
		fmt.Printf("Exact minimum:       %.8f Ha\n", *report.ExactMinimum)
		fmt.Printf("Deviation:           %+.2e Ha\n", *report.Deviation)
	}
	if report.ParticleHole {
		fmt.Printf("Particle-hole shift: %.8f Ha\n", report.EnergyShift)
	}
	fmt.Printf("Electronic energy:   %.8f Ha\n", report.ElectronicEnergy)
	fmt.Printf("Nuclear repulsion:   %.8f Ha\n", report.NuclearRepulsion)
	fmt.Printf("Total energy:        %.8f Ha\n", report.TotalEnergy)

	if report.RunID != "" {
		fmt.Printf("\nSaved run %s\n", report.RunID)
	}
	return nil
}
