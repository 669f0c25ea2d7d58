// Package main provides the wick CLI, a pipeline from molecular
// geometries to qubit Hamiltonians and their ground-state energies.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/secondq/wick/internal/runstore"
	"github.com/secondq/wick/pkg/chem"
	"github.com/secondq/wick/pkg/driver"
	"github.com/secondq/wick/pkg/eigen"
	"github.com/secondq/wick/pkg/fermion"
	"github.com/secondq/wick/pkg/vqe"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wick:", err)
		os.Exit(exitCode(err))
	}
}

// userErrors are input mistakes: unknown names, malformed geometries,
// and configurations the pipeline rejects up front.
var userErrors = []error{
	chem.ErrUnknownPreset,
	chem.ErrUnknownBasis,
	chem.ErrUnknownElement,
	chem.ErrInvalidGeometry,
	chem.ErrInvalidMolecule,
	driver.ErrOpenShell,
	fermion.ErrUnknownEncoding,
	fermion.ErrBadOccupation,
	eigen.ErrTooLarge,
	vqe.ErrUnknownAnsatz,
	vqe.ErrUnknownEntanglement,
	vqe.ErrUnknownBackend,
	vqe.ErrUnknownOptimizer,
	vqe.ErrBadDepth,
	vqe.ErrBadConfig,
	runstore.ErrInvalidID,
	runstore.ErrNotFound,
}

// exitCode classifies a subcommand error: user errors exit with
// exitUserError, everything else with exitSysError.
func exitCode(err error) int {
	for _, sentinel := range userErrors {
		if errors.Is(err, sentinel) {
			return exitUserError
		}
	}
	return exitSysError
}
