package vqe

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/secondq/wick/internal/statevec"
	"github.com/secondq/wick/pkg/pauli"
)

// ErrUnknownBackend is returned for backend names outside the registry.
var ErrUnknownBackend = errors.New("unknown simulation backend")

// Backend evaluates trial-state energies for the solver. The registry's
// only entry simulates a dense statevector in process; the interface
// leaves room for evaluators with different execution models.
type Backend interface {
	// Name returns the name the backend is registered under.
	Name() string
	// Energy prepares the trial state for the parameters and returns
	// the expectation value of the operator in it.
	Energy(a Ansatz, params []float64, op *pauli.Operator) (float64, error)
}

// statevector runs the ansatz circuit on a dense simulated state.
type statevector struct{}

func (statevector) Name() string { return "statevector" }

func (statevector) Energy(a Ansatz, params []float64, op *pauli.Operator) (float64, error) {
	st, err := a.Prepare(params)
	if err != nil {
		return 0, err
	}
	return statevec.Expectation(st, op)
}

// backendBuilders registers the simulation backends by name.
var backendBuilders = map[string]func() Backend{
	"statevector": func() Backend { return statevector{} },
}

// BackendNames lists the registered backend names in sorted order.
func BackendNames() []string {
	names := make([]string, 0, len(backendBuilders))
	for name := range backendBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newBackend resolves a backend name against the registry.
func newBackend(name string) (Backend, error) {
	build, ok := backendBuilders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have: %s)", ErrUnknownBackend, name, strings.Join(BackendNames(), ", "))
	}
	return build(), nil
}
