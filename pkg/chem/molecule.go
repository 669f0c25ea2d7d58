package chem

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AngstromToBohr converts lengths from Angstrom to atomic units
// (CODATA 2018 Bohr radius, 0.529177210903 A).
const AngstromToBohr = 1.8897261246

// Sentinel errors for molecular input validation.
var (
	ErrUnknownElement  = errors.New("unknown element symbol")
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrInvalidMolecule = errors.New("invalid molecule")
)

// atomicNumbers maps element symbols to nuclear charges for the
// first-row and second-row elements the geometry parser accepts.
var atomicNumbers = map[string]int{
	"H": 1, "He": 2, "Li": 3, "Be": 4, "B": 5,
	"C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
}

// Atom is a nucleus at a fixed position. Coordinates are in Angstrom.
type Atom struct {
	Symbol string  `json:"symbol"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
}

// Number returns the atomic number (nuclear charge) of the atom.
func (a Atom) Number() (int, error) {
	z, ok := atomicNumbers[a.Symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownElement, a.Symbol)
	}
	return z, nil
}

// Distance returns the separation between two atoms in Angstrom.
func (a Atom) Distance(b Atom) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Molecule is a molecular configuration: a geometry plus the charge,
// spin multiplicity, and basis set name that fix its electronic
// structure problem.
type Molecule struct {
	Name         string `json:"name"`
	Atoms        []Atom `json:"atoms"`
	Charge       int    `json:"charge"`
	Multiplicity int    `json:"multiplicity"`
	Basis        string `json:"basis"`
}

// GeometryString renders the atoms in the form ParseGeometry accepts,
// for example "H 0 0 0; H 0 0 0.735".
func (m Molecule) GeometryString() string {
	entries := make([]string, len(m.Atoms))
	for i, a := range m.Atoms {
		entries[i] = fmt.Sprintf("%s %s %s %s", a.Symbol,
			strconv.FormatFloat(a.X, 'g', -1, 64),
			strconv.FormatFloat(a.Y, 'g', -1, 64),
			strconv.FormatFloat(a.Z, 'g', -1, 64))
	}
	return strings.Join(entries, "; ")
}

// ParseGeometry parses a geometry string of semicolon- or
// newline-separated atom entries, each "Symbol x y z" with coordinates
// in Angstrom, for example "H 0 0 0; H 0 0 0.735".
func ParseGeometry(geometry string) ([]Atom, error) {
	entries := strings.FieldsFunc(geometry, func(r rune) bool {
		return r == ';' || r == '\n'
	})

	var atoms []Atom
	for _, entry := range entries {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: entry %q wants \"Symbol x y z\"", ErrInvalidGeometry, strings.TrimSpace(entry))
		}

		symbol := normalizeSymbol(fields[0])
		if _, ok := atomicNumbers[symbol]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownElement, fields[0])
		}

		var coords [3]float64
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: coordinate %q: %v", ErrInvalidGeometry, f, err)
			}
			coords[i] = v
		}

		atoms = append(atoms, Atom{Symbol: symbol, X: coords[0], Y: coords[1], Z: coords[2]})
	}

	if len(atoms) == 0 {
		return nil, fmt.Errorf("%w: no atoms", ErrInvalidGeometry)
	}
	return atoms, nil
}

// normalizeSymbol canonicalizes an element symbol: "h" and "HE" become
// "H" and "He".
func normalizeSymbol(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// NumElectrons returns the electron count: the sum of nuclear charges
// minus the molecular charge.
func (m Molecule) NumElectrons() (int, error) {
	total := 0
	for _, a := range m.Atoms {
		z, err := a.Number()
		if err != nil {
			return 0, err
		}
		total += z
	}
	return total - m.Charge, nil
}

// Occupations returns the alpha and beta electron counts implied by
// the electron count and spin multiplicity.
func (m Molecule) Occupations() (alpha, beta int, err error) {
	n, err := m.NumElectrons()
	if err != nil {
		return 0, 0, err
	}
	unpaired := m.Multiplicity - 1
	if unpaired < 0 || unpaired > n || (n-unpaired)%2 != 0 {
		return 0, 0, fmt.Errorf("%w: multiplicity %d is inconsistent with %d electrons",
			ErrInvalidMolecule, m.Multiplicity, n)
	}
	beta = (n - unpaired) / 2
	alpha = beta + unpaired
	return alpha, beta, nil
}

// NuclearRepulsion returns the nucleus-nucleus repulsion energy in
// Hartree.
func (m Molecule) NuclearRepulsion() (float64, error) {
	var e float64
	for i := range m.Atoms {
		zi, err := m.Atoms[i].Number()
		if err != nil {
			return 0, err
		}
		for j := i + 1; j < len(m.Atoms); j++ {
			zj, err := m.Atoms[j].Number()
			if err != nil {
				return 0, err
			}
			r := m.Atoms[i].Distance(m.Atoms[j]) * AngstromToBohr
			if r == 0 {
				return 0, fmt.Errorf("%w: atoms %d and %d coincide", ErrInvalidMolecule, i, j)
			}
			e += float64(zi*zj) / r
		}
	}
	return e, nil
}

// Validate checks that the molecule describes a well-posed electronic
// structure problem.
func (m Molecule) Validate() error {
	if len(m.Atoms) == 0 {
		return fmt.Errorf("%w: no atoms", ErrInvalidMolecule)
	}
	for _, a := range m.Atoms {
		if _, err := a.Number(); err != nil {
			return err
		}
	}
	n, err := m.NumElectrons()
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("%w: charge %+d leaves %d electrons", ErrInvalidMolecule, m.Charge, n)
	}
	if m.Multiplicity < 1 {
		return fmt.Errorf("%w: multiplicity %d", ErrInvalidMolecule, m.Multiplicity)
	}
	if _, _, err := m.Occupations(); err != nil {
		return err
	}
	return nil
}
