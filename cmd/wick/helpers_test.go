package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondq/wick/internal/runstore"
	"github.com/secondq/wick/pkg/chem"
	"github.com/secondq/wick/pkg/vqe"
)

// setConf installs a config for the duration of the test.
func setConf(t *testing.T, c config) {
	t.Helper()
	old := conf
	conf = c
	t.Cleanup(func() { conf = old })
}

// setMoleculeFlags installs the shared molecule selection flags for
// the duration of the test.
func setMoleculeFlags(t *testing.T, geometry, basis string) {
	t.Helper()
	oldGeometry, oldBasis := flagGeometry, flagBasis
	flagGeometry, flagBasis = geometry, basis
	t.Cleanup(func() { flagGeometry, flagBasis = oldGeometry, oldBasis })
}

func TestLoadConfig_WritesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig(dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, configFileExt))
	assert.Equal(t, "h2", cfg.Molecule)
	assert.Equal(t, "sto-3g", cfg.Basis)
	assert.Equal(t, "jordan-wigner", cfg.Encoding)
	assert.InDelta(t, 1e-12, cfg.Threshold, 0)
	assert.Empty(t, cfg.DataDir)

	assert.Equal(t, vqe.DefaultAnsatz, cfg.VQE.Ansatz)
	assert.Equal(t, vqe.DefaultDepth, cfg.VQE.Depth)
	assert.Equal(t, string(vqe.DefaultEntanglement), cfg.VQE.Entanglement)
	assert.Equal(t, vqe.DefaultBackend, cfg.VQE.Backend)
	assert.Equal(t, vqe.DefaultOptimizer, cfg.VQE.Optimizer)
	assert.Equal(t, vqe.DefaultMaxIterations, cfg.VQE.MaxIterations)
	assert.InDelta(t, vqe.DefaultTolerance, cfg.VQE.Tolerance, 0)
	assert.Equal(t, vqe.DefaultRestarts, cfg.VQE.Restarts)
	assert.Zero(t, cfg.VQE.Seed)
}

func TestLoadConfig_ReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `molecule: heh+
data_dir: /var/lib/wick
threshold: 1e-10
vqe:
  optimizer: nelder-mead
  restarts: 7
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(yaml), 0o644))

	cfg, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "heh+", cfg.Molecule)
	assert.Equal(t, "/var/lib/wick", cfg.DataDir)
	assert.InDelta(t, 1e-10, cfg.Threshold, 0)
	assert.Equal(t, "nelder-mead", cfg.VQE.Optimizer)
	assert.Equal(t, 7, cfg.VQE.Restarts)

	// Keys the file does not set keep their defaults.
	assert.Equal(t, "jordan-wigner", cfg.Encoding)
	assert.Equal(t, vqe.DefaultDepth, cfg.VQE.Depth)
}

func TestLoadConfig_RejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte("molecule: [unclosed"), 0o644))

	_, err := loadConfig(dir)
	assert.Error(t, err)
}

func TestResolveMolecule(t *testing.T) {
	setConf(t, config{Molecule: "h2", Basis: "sto-3g"})

	t.Run("configured default", func(t *testing.T) {
		setMoleculeFlags(t, "", "")
		mol, err := resolveMolecule(nil)
		require.NoError(t, err)
		assert.Equal(t, "h2", mol.Name)
		assert.Len(t, mol.Atoms, 2)
	})

	t.Run("named preset", func(t *testing.T) {
		setMoleculeFlags(t, "", "")
		mol, err := resolveMolecule([]string{"heh+"})
		require.NoError(t, err)
		assert.Equal(t, "heh+", mol.Name)
		assert.Equal(t, 1, mol.Charge)
	})

	t.Run("unknown preset", func(t *testing.T) {
		setMoleculeFlags(t, "", "")
		_, err := resolveMolecule([]string{"benzene"})
		assert.ErrorIs(t, err, chem.ErrUnknownPreset)
	})

	t.Run("ad hoc geometry", func(t *testing.T) {
		setMoleculeFlags(t, "H 0 0 0; H 0 0 0.9", "")
		mol, err := resolveMolecule(nil)
		require.NoError(t, err)
		assert.Equal(t, "custom", mol.Name)
		assert.Equal(t, "sto-3g", mol.Basis)
		assert.InDelta(t, 0.9, mol.Atoms[1].Z, 0)
	})

	t.Run("geometry wins over preset argument", func(t *testing.T) {
		setMoleculeFlags(t, "H 0 0 0; H 0 0 0.9", "")
		mol, err := resolveMolecule([]string{"heh+"})
		require.NoError(t, err)
		assert.Equal(t, "custom", mol.Name)
	})

	t.Run("basis override", func(t *testing.T) {
		setMoleculeFlags(t, "", "sto-3g")
		mol, err := resolveMolecule([]string{"h2"})
		require.NoError(t, err)
		assert.Equal(t, "sto-3g", mol.Basis)
	})

	t.Run("bad geometry", func(t *testing.T) {
		setMoleculeFlags(t, "H 0 0", "")
		_, err := resolveMolecule(nil)
		assert.ErrorIs(t, err, chem.ErrInvalidGeometry)
	})
}

func TestEncodingAndThreshold_Defaults(t *testing.T) {
	setConf(t, config{Encoding: "jordan-wigner", Threshold: 1e-12})

	enc, thr := encodingAndThreshold("", -1)
	assert.Equal(t, "jordan-wigner", enc)
	assert.InDelta(t, 1e-12, thr, 0)

	enc, thr = encodingAndThreshold("jw", 1e-8)
	assert.Equal(t, "jw", enc)
	assert.InDelta(t, 1e-8, thr, 0)

	// Zero is a valid explicit threshold, not a request for the default.
	_, thr = encodingAndThreshold("", 0)
	assert.Zero(t, thr)
}

func TestVQEConfigMergesFlagsOverDefaults(t *testing.T) {
	setConf(t, config{VQE: vqe.DefaultConfig()})
	oldDepth, oldOptimizer, oldVerbose := vqeDepth, vqeOptimizer, vqeVerbose
	t.Cleanup(func() { vqeDepth, vqeOptimizer, vqeVerbose = oldDepth, oldOptimizer, oldVerbose })

	vqeDepth = 5
	vqeOptimizer = "nelder-mead"
	vqeVerbose = true

	cfg := vqeConfig()
	assert.Equal(t, 5, cfg.Depth)
	assert.Equal(t, "nelder-mead", cfg.Optimizer)
	assert.Equal(t, os.Stderr, cfg.Progress)

	// Untouched knobs keep the configured defaults.
	assert.Equal(t, vqe.DefaultAnsatz, cfg.Ansatz)
	assert.Equal(t, vqe.DefaultBackend, cfg.Backend)
	assert.Equal(t, vqe.DefaultRestarts, cfg.Restarts)
	assert.Equal(t, vqe.DefaultMaxIterations, cfg.MaxIterations)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown preset", fmt.Errorf("lookup: %w", chem.ErrUnknownPreset), exitUserError},
		{"run not found", runstore.ErrNotFound, exitUserError},
		{"bad solver config", fmt.Errorf("vqe: %w", vqe.ErrBadConfig), exitUserError},
		{"unknown backend", fmt.Errorf("vqe: %w", vqe.ErrUnknownBackend), exitUserError},
		{"plain failure", errors.New("disk on fire"), exitSysError},
		{"wrapped system failure", fmt.Errorf("open: %w", os.ErrPermission), exitSysError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestStretchedMolecule(t *testing.T) {
	preset, err := chem.LookupPreset("h2")
	require.NoError(t, err)
	base, err := preset.Molecule()
	require.NoError(t, err)

	mol := stretchedMolecule(base, 1.25)
	require.Len(t, mol.Atoms, 2)
	assert.InDelta(t, 1.25, mol.Atoms[0].Distance(mol.Atoms[1]), 1e-12)
	assert.Equal(t, base.Basis, mol.Basis)
	assert.Equal(t, base.Name, mol.Name)

	// The base geometry is untouched.
	assert.InDelta(t, 0.735, base.Atoms[1].Z, 0)
}
