package chem

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownBasis reports a basis set name missing from the registry.
var ErrUnknownBasis = errors.New("unknown basis set")

// Shell is one contracted Gaussian function: paired primitive
// exponents and contraction coefficients. Only s-type shells are
// carried; the integral engine has no higher angular momenta.
type Shell struct {
	Exponents    []float64 `json:"exponents"`
	Coefficients []float64 `json:"coefficients"`
}

// BasisSet maps element symbols to their contracted shells.
type BasisSet struct {
	Name   string
	shells map[string][]Shell
}

// sto3g carries the published STO-3G s-shell parameters for the
// elements whose minimal basis is pure s-type.
var sto3g = &BasisSet{
	Name: "sto-3g",
	shells: map[string][]Shell{
		"H": {{
			Exponents:    []float64{3.425250914, 0.6239137298, 0.1688554040},
			Coefficients: []float64{0.1543289673, 0.5353281423, 0.4446345422},
		}},
		"He": {{
			Exponents:    []float64{6.362421394, 1.158922999, 0.3136497915},
			Coefficients: []float64{0.1543289673, 0.5353281423, 0.4446345422},
		}},
	},
}

// basisSets is the registry of supported basis sets.
var basisSets = map[string]*BasisSet{
	"sto-3g": sto3g,
}

// LookupBasis retrieves a basis set by name. Names are
// case-insensitive and tolerate a dropped hyphen ("STO-3G", "sto3g").
func LookupBasis(name string) (*BasisSet, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if b, ok := basisSets[key]; ok {
		return b, nil
	}
	// Second chance without separators: "sto3g" -> "sto-3g".
	bare := strings.NewReplacer("-", "", "_", "").Replace(key)
	for k, b := range basisSets {
		if strings.NewReplacer("-", "", "_", "").Replace(k) == bare {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (have: %s)", ErrUnknownBasis, name, strings.Join(BasisNames(), ", "))
}

// BasisNames returns the registered basis set names in sorted order.
func BasisNames() []string {
	names := make([]string, 0, len(basisSets))
	for k := range basisSets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ShellsFor returns the contracted shells of an element, erroring when
// the basis set has no data for it.
func (b *BasisSet) ShellsFor(element string) ([]Shell, error) {
	shells, ok := b.shells[normalizeSymbol(element)]
	if !ok {
		return nil, fmt.Errorf("%w: basis %q has no shells for element %q", ErrUnknownBasis, b.Name, element)
	}
	return shells, nil
}

// Elements returns the element symbols covered by the basis set in
// sorted order.
func (b *BasisSet) Elements() []string {
	elems := make([]string, 0, len(b.shells))
	for k := range b.shells {
		elems = append(elems, k)
	}
	sort.Strings(elems)
	return elems
}
