package chem

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownPreset reports a preset name missing from the library.
var ErrUnknownPreset = errors.New("unknown molecule preset")

// Preset is a ready-made molecular configuration for the pipeline
// commands and tests.
type Preset struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Geometry     string `json:"geometry"`
	Charge       int    `json:"charge"`
	Multiplicity int    `json:"multiplicity"`
	Basis        string `json:"basis"`
}

// presets is the built-in molecule library.
var presets = map[string]Preset{
	"h2": {
		Name:         "h2",
		Description:  "hydrogen molecule at the equilibrium bond length",
		Geometry:     "H 0 0 0; H 0 0 0.735",
		Charge:       0,
		Multiplicity: 1,
		Basis:        "sto-3g",
	},
	"h2-stretched": {
		Name:         "h2-stretched",
		Description:  "hydrogen molecule stretched toward dissociation",
		Geometry:     "H 0 0 0; H 0 0 1.5",
		Charge:       0,
		Multiplicity: 1,
		Basis:        "sto-3g",
	},
	"heh+": {
		Name:         "heh+",
		Description:  "helium hydride cation, the simplest heteronuclear system",
		Geometry:     "He 0 0 0; H 0 0 0.772",
		Charge:       1,
		Multiplicity: 1,
		Basis:        "sto-3g",
	},
}

// LookupPreset retrieves a preset by name (case-insensitive).
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (have: %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames returns the library's preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Molecule materializes the preset into a validated Molecule.
func (p Preset) Molecule() (Molecule, error) {
	atoms, err := ParseGeometry(p.Geometry)
	if err != nil {
		return Molecule{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	m := Molecule{
		Name:         p.Name,
		Atoms:        atoms,
		Charge:       p.Charge,
		Multiplicity: p.Multiplicity,
		Basis:        p.Basis,
	}
	if err := m.Validate(); err != nil {
		return Molecule{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return m, nil
}
