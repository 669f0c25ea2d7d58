// Config loading for the wick CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/secondq/wick/internal/paths"
	"github.com/secondq/wick/pkg/vqe"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyDataDir   = "data_dir"
	cfgKeyMolecule  = "molecule"
	cfgKeyBasis     = "basis"
	cfgKeyEncoding  = "encoding"
	cfgKeyThreshold = "threshold"

	cfgKeyAnsatz        = "vqe.ansatz"
	cfgKeyDepth         = "vqe.depth"
	cfgKeyEntanglement  = "vqe.entanglement"
	cfgKeyBackend       = "vqe.backend"
	cfgKeyOptimizer     = "vqe.optimizer"
	cfgKeyMaxIterations = "vqe.max_iterations"
	cfgKeyTolerance     = "vqe.tolerance"
	cfgKeyRestarts      = "vqe.restarts"
	cfgKeySeed          = "vqe.seed"
)

// Pipeline defaults applied when config.yaml does not override them.
const (
	defaultMolecule  = "h2"
	defaultBasis     = "sto-3g"
	defaultEncoding  = "jordan-wigner"
	defaultThreshold = 1e-12
)

// config carries the config.yaml values the subcommands read their
// defaults from.
type config struct {
	DataDir   string
	Molecule  string
	Basis     string
	Encoding  string
	Threshold float64
	VQE       vqe.Config
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Wick CLI configuration

# Default molecule preset for the pipeline commands.
molecule: h2

# Basis set for --geometry molecules (presets carry their own).
basis: sto-3g

# Fermion-to-qubit encoding.
encoding: jordan-wigner

# Pauli terms with coefficient magnitude at or below this are dropped.
threshold: 1e-12

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Variational solver defaults.
vqe:
  ansatz: ry
  depth: 3
  entanglement: full
  backend: statevector
  optimizer: lbfgs
  max_iterations: 250
  tolerance: 1e-8
  restarts: 3
  seed: 0
`

// loadConfig reads config.yaml from the resolved config directory
// using Viper. It creates the config directory and a default
// config.yaml on first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (config, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyMolecule, defaultMolecule)
	v.SetDefault(cfgKeyBasis, defaultBasis)
	v.SetDefault(cfgKeyEncoding, defaultEncoding)
	v.SetDefault(cfgKeyThreshold, defaultThreshold)
	v.SetDefault(cfgKeyAnsatz, vqe.DefaultAnsatz)
	v.SetDefault(cfgKeyDepth, vqe.DefaultDepth)
	v.SetDefault(cfgKeyEntanglement, string(vqe.DefaultEntanglement))
	v.SetDefault(cfgKeyBackend, vqe.DefaultBackend)
	v.SetDefault(cfgKeyOptimizer, vqe.DefaultOptimizer)
	v.SetDefault(cfgKeyMaxIterations, vqe.DefaultMaxIterations)
	v.SetDefault(cfgKeyTolerance, vqe.DefaultTolerance)
	v.SetDefault(cfgKeyRestarts, vqe.DefaultRestarts)
	v.SetDefault(cfgKeySeed, 0)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config{}, fmt.Errorf("read config: %w", err)
		}
		// Missing config.yaml is not an error.
	}

	return config{
		DataDir:   v.GetString(cfgKeyDataDir),
		Molecule:  v.GetString(cfgKeyMolecule),
		Basis:     v.GetString(cfgKeyBasis),
		Encoding:  v.GetString(cfgKeyEncoding),
		Threshold: v.GetFloat64(cfgKeyThreshold),
		VQE: vqe.Config{
			Ansatz:        v.GetString(cfgKeyAnsatz),
			Depth:         v.GetInt(cfgKeyDepth),
			Entanglement:  v.GetString(cfgKeyEntanglement),
			Backend:       v.GetString(cfgKeyBackend),
			Optimizer:     v.GetString(cfgKeyOptimizer),
			MaxIterations: v.GetInt(cfgKeyMaxIterations),
			Tolerance:     v.GetFloat64(cfgKeyTolerance),
			Restarts:      v.GetInt(cfgKeyRestarts),
			Seed:          v.GetInt64(cfgKeySeed),
		},
	}, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return paths.Ensure(configDir)
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
