// Root command for the wick CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/secondq/wick/internal/paths"
	"github.com/secondq/wick/pkg/wick"
)

// Exit codes reported by main.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// conf holds the config.yaml values loaded by PersistentPreRunE so all
// subcommands can read their defaults from it.
var conf config

var rootCmd = &cobra.Command{
	Use:   "wick",
	Short: "Wick maps molecular Hamiltonians to qubits and solves them",
	Long: `Wick runs a small electronic-structure pipeline: a Hartree-Fock
driver produces molecular-orbital integrals, the second-quantized
Hamiltonian built from them is mapped to a qubit operator, and the
ground-state energy is found by dense diagonalization or by a
variational solver on a simulated backend.

The particle-hole transformation re-centers the Hamiltonian on the
Hartree-Fock reference state, so a variational search starts from a
zero expectation value instead of the full electronic energy.`,
	Version:       wick.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version needs no configuration.
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		loaded, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		conf = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.wick-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(moleculeCmd)
	rootCmd.AddCommand(exactCmd)
	rootCmd.AddCommand(vqeCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(runsCmd)
}

// resolveDataDir returns the data directory path with precedence
// --data-dir flag > config.yaml data_dir > WICK_DATA_DIR env >
// $(CWD)/.wick-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, conf.DataDir)
}

// resolveConfigDir returns the configuration directory with precedence
// --config-dir flag > WICK_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
