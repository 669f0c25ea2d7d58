package vqe

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"

	"github.com/secondq/wick/pkg/pauli"
)

// Defaults applied by DefaultConfig.
const (
	DefaultAnsatz        = "ry"
	DefaultDepth         = 3
	DefaultEntanglement  = EntangleFull
	DefaultBackend       = "statevector"
	DefaultOptimizer     = "lbfgs"
	DefaultMaxIterations = 250
	DefaultTolerance     = 1e-8
	DefaultRestarts      = 3
)

// initSpread bounds the random initial rotation angles. Small angles
// keep every start near the zero-parameter state, which for a
// particle-hole operator is the filled reference determinant.
const initSpread = 0.1

// Sentinel errors for solver construction.
var (
	ErrUnknownOptimizer = errors.New("unknown optimizer")
	ErrNotHermitian     = errors.New("operator is not hermitian")
	ErrBadConfig        = errors.New("invalid solver configuration")
)

// Config selects the ansatz and the classical optimization loop.
type Config struct {
	// Ansatz and its shape; see AnsatzNames.
	Ansatz       string
	Depth        int
	Entanglement string

	// Backend evaluates trial-state energies; see BackendNames.
	Backend string

	// Optimizer is "lbfgs" or "nelder-mead".
	Optimizer string

	// MaxIterations caps major iterations per restart. Tolerance is
	// the absolute function-convergence window.
	MaxIterations int
	Tolerance     float64

	// Restarts reruns the optimizer from fresh random angles and keeps
	// the best minimum. Seed fixes the angle stream.
	Restarts int
	Seed     int64

	// Progress receives per-restart and per-iteration lines when
	// non-nil.
	Progress io.Writer
}

// DefaultConfig returns the solver defaults. Seed 0 keeps runs
// reproducible.
func DefaultConfig() Config {
	return Config{
		Ansatz:        DefaultAnsatz,
		Depth:         DefaultDepth,
		Entanglement:  string(DefaultEntanglement),
		Backend:       DefaultBackend,
		Optimizer:     DefaultOptimizer,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Restarts:      DefaultRestarts,
	}
}

// Result is the outcome of a variational minimization.
type Result struct {
	Eigenvalue        float64   `json:"eigenvalue"`
	OptimalParameters []float64 `json:"optimal_parameters"`
	Iterations        int       `json:"iterations"`
	Evaluations       int       `json:"evaluations"`
	Restarts          int       `json:"restarts"`
	Status            string    `json:"status"`
	Converged         bool      `json:"converged"`
}

// VQE minimizes the expectation value of a qubit operator over an
// ansatz manifold.
type VQE struct {
	op      *pauli.Operator
	ansatz  Ansatz
	backend Backend
	cfg     Config
}

// New validates the configuration against the operator and builds the
// solver.
func New(op *pauli.Operator, cfg Config) (*VQE, error) {
	if !op.IsHermitian(1e-10) {
		return nil, ErrNotHermitian
	}
	if cfg.MaxIterations < 1 {
		return nil, fmt.Errorf("%w: max iterations %d", ErrBadConfig, cfg.MaxIterations)
	}
	if cfg.Tolerance <= 0 {
		return nil, fmt.Errorf("%w: tolerance %g", ErrBadConfig, cfg.Tolerance)
	}
	if cfg.Restarts < 1 {
		return nil, fmt.Errorf("%w: restarts %d", ErrBadConfig, cfg.Restarts)
	}
	if _, err := newMethod(cfg.Optimizer); err != nil {
		return nil, err
	}
	backend, err := newBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	ansatz, err := NewAnsatz(cfg.Ansatz, op.NumQubits(), cfg.Depth, Entanglement(cfg.Entanglement))
	if err != nil {
		return nil, err
	}
	return &VQE{op: op, ansatz: ansatz, backend: backend, cfg: cfg}, nil
}

// Ansatz returns the circuit the solver optimizes over.
func (v *VQE) Ansatz() Ansatz { return v.ansatz }

// Run minimizes the expectation value across the configured restarts
// and returns the best minimum found.
func (v *VQE) Run() (*Result, error) {
	energy := func(x []float64) float64 {
		e, err := v.backend.Energy(v.ansatz, x, v.op)
		if err != nil {
			panic(err)
		}
		return e
	}
	prob := optimize.Problem{
		Func: energy,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, energy, x, &fd.Settings{Formula: fd.Central})
		},
	}

	rng := rand.New(rand.NewSource(v.cfg.Seed))
	result := &Result{Restarts: v.cfg.Restarts}
	var best *optimize.Result
	var firstErr error

	for attempt := 1; attempt <= v.cfg.Restarts; attempt++ {
		x0 := make([]float64, v.ansatz.NumParameters())
		for i := range x0 {
			x0[i] = initSpread * (2*rng.Float64() - 1)
		}
		if v.cfg.Progress != nil {
			fmt.Fprintf(v.cfg.Progress, "restart %d/%d\n", attempt, v.cfg.Restarts)
		}

		method, err := newMethod(v.cfg.Optimizer)
		if err != nil {
			return nil, err
		}
		settings := &optimize.Settings{
			MajorIterations: v.cfg.MaxIterations,
			Converger: &optimize.FunctionConverge{
				Absolute:   v.cfg.Tolerance,
				Iterations: 10,
			},
		}
		if v.cfg.Progress != nil {
			settings.Recorder = &progressRecorder{w: v.cfg.Progress}
		}

		res, err := optimize.Minimize(prob, x0, settings, method)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		result.Iterations += res.Stats.MajorIterations
		result.Evaluations += res.Stats.FuncEvaluations
		if best == nil || res.F < best.F {
			best = res
		}
	}
	if best == nil {
		return nil, fmt.Errorf("all %d restarts failed: %w", v.cfg.Restarts, firstErr)
	}

	result.Eigenvalue = best.F
	result.OptimalParameters = best.X
	result.Status = best.Status.String()
	result.Converged = statusConverged(best.Status)
	return result, nil
}

// newMethod builds a fresh gonum method; methods keep state, so every
// restart gets its own.
func newMethod(name string) (optimize.Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lbfgs", "l-bfgs":
		return &optimize.LBFGS{}, nil
	case "nelder-mead", "neldermead", "nm":
		return &optimize.NelderMead{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOptimizer, name)
	}
}

func statusConverged(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.FunctionConvergence, optimize.GradientThreshold,
		optimize.StepConvergence, optimize.MethodConverge:
		return true
	default:
		return false
	}
}

// progressRecorder streams major-iteration energies to a writer.
type progressRecorder struct {
	w io.Writer
}

func (r *progressRecorder) Init() error { return nil }

func (r *progressRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op&optimize.MajorIteration == 0 {
		return nil
	}
	_, err := fmt.Fprintf(r.w, "  iter %4d  energy % .10f  evals %5d\n",
		stats.MajorIterations, loc.F, stats.FuncEvaluations)
	return err
}
