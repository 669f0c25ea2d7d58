package vqe

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/secondq/wick/internal/statevec"
)

// Entanglement names the two-qubit coupling layout of the
// hardware-efficient circuits.
type Entanglement string

const (
	// EntangleFull couples every qubit pair once per entangling layer.
	EntangleFull Entanglement = "full"
	// EntangleLinear couples nearest neighbors only.
	EntangleLinear Entanglement = "linear"
)

// Sentinel errors for ansatz construction and preparation.
var (
	ErrUnknownAnsatz       = errors.New("unknown ansatz")
	ErrUnknownEntanglement = errors.New("unknown entanglement layout")
	ErrBadParameters       = errors.New("parameter vector length mismatch")
	ErrBadDepth            = errors.New("ansatz depth must be positive")
	ErrBadQubits           = errors.New("qubit count must be positive")
)

// Ansatz is a parameterized state-preparation circuit.
type Ansatz interface {
	Name() string
	NumQubits() int
	NumParameters() int
	Prepare(params []float64) (*statevec.State, error)
}

// hardwareEfficient interleaves single-qubit rotation layers with CZ
// entanglers and closes with a final rotation layer. With all angles
// zero it prepares |0...0>.
type hardwareEfficient struct {
	name     string
	qubits   int
	depth    int
	withRZ   bool
	coupling Entanglement
}

// ansatzBuilders registers the circuit families by name.
var ansatzBuilders = map[string]func(qubits, depth int, ent Entanglement) Ansatz{
	"ry": func(q, d int, e Entanglement) Ansatz {
		return &hardwareEfficient{name: "ry", qubits: q, depth: d, coupling: e}
	},
	"ryrz": func(q, d int, e Entanglement) Ansatz {
		return &hardwareEfficient{name: "ryrz", qubits: q, depth: d, withRZ: true, coupling: e}
	},
}

// AnsatzNames lists the registered circuit families in sorted order.
func AnsatzNames() []string {
	names := make([]string, 0, len(ansatzBuilders))
	for name := range ansatzBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewAnsatz builds a registered ansatz over the given register.
func NewAnsatz(name string, qubits, depth int, ent Entanglement) (Ansatz, error) {
	build, ok := ansatzBuilders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have: %s)", ErrUnknownAnsatz, name, strings.Join(AnsatzNames(), ", "))
	}
	if qubits < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadQubits, qubits)
	}
	if depth < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadDepth, depth)
	}
	coupling := Entanglement(strings.ToLower(strings.TrimSpace(string(ent))))
	switch coupling {
	case EntangleFull, EntangleLinear:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntanglement, ent)
	}
	return build(qubits, depth, coupling), nil
}

func (a *hardwareEfficient) Name() string   { return a.name }
func (a *hardwareEfficient) NumQubits() int { return a.qubits }

// NumParameters counts one angle per rotation gate: depth+1 rotation
// layers, each with one RY (and one RZ for the two-axis family) per
// qubit.
func (a *hardwareEfficient) NumParameters() int {
	perLayer := a.qubits
	if a.withRZ {
		perLayer *= 2
	}
	return perLayer * (a.depth + 1)
}

// Prepare runs the circuit on |0...0> with the given angles.
func (a *hardwareEfficient) Prepare(params []float64) (*statevec.State, error) {
	if len(params) != a.NumParameters() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBadParameters, len(params), a.NumParameters())
	}

	st := statevec.Zero(a.qubits)
	idx := 0
	for layer := 0; layer <= a.depth; layer++ {
		for q := 0; q < a.qubits; q++ {
			st.RY(q, params[idx])
			idx++
		}
		if a.withRZ {
			for q := 0; q < a.qubits; q++ {
				st.RZ(q, params[idx])
				idx++
			}
		}
		if layer < a.depth {
			a.entangle(st)
		}
	}
	return st, nil
}

func (a *hardwareEfficient) entangle(st *statevec.State) {
	switch a.coupling {
	case EntangleLinear:
		for q := 0; q+1 < a.qubits; q++ {
			st.CZ(q, q+1)
		}
	default:
		for i := 0; i < a.qubits; i++ {
			for j := i + 1; j < a.qubits; j++ {
				st.CZ(i, j)
			}
		}
	}
}
