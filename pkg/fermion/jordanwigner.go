package fermion

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/secondq/wick/pkg/pauli"
)

// ErrUnknownEncoding is returned by Map for encoding names outside the
// registry.
var ErrUnknownEncoding = errors.New("unknown fermion-to-qubit encoding")

// encodeFunc expands an operator into Pauli terms, one qubit per mode.
type encodeFunc func(o *Operator) ([]pauli.Term, error)

// encodings registers the supported mappings under canonical names.
var encodings = map[string]encodeFunc{
	"jordan-wigner": jordanWigner,
}

// aliases folds alternate spellings onto canonical names.
var aliases = map[string]string{
	"jw":            "jordan-wigner",
	"jordan_wigner": "jordan-wigner",
	"jordanwigner":  "jordan-wigner",
}

// Encodings lists the canonical encoding names.
func Encodings() []string {
	names := make([]string, 0, len(encodings))
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map encodes the operator on Modes() qubits. The particle-hole shift,
// if any, lands on the identity string, so the encoded operator stands
// alone: its spectrum is the original spectrum plus the shift. Merged
// terms whose coefficient magnitude falls below threshold are dropped;
// threshold <= 0 keeps everything.
func (o *Operator) Map(encoding string, threshold float64) (*pauli.Operator, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if canon, ok := aliases[name]; ok {
		name = canon
	}
	enc, ok := encodings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}

	terms, err := enc(o)
	if err != nil {
		return nil, err
	}
	qop, err := pauli.NewOperator(o.modes, terms...)
	if err != nil {
		return nil, err
	}
	if o.shift != 0 {
		qop = qop.AddIdentity(complex(o.shift, 0))
	}
	return qop.Simplify().Chop(threshold), nil
}

// jordanWigner expands every ladder-operator product over Pauli strings
// with a Z chain below the target mode:
//
//	a+_p -> Z..Z (X - iY)/2    a_p -> Z..Z (X + iY)/2
//
// On the hole modes of a particle-hole operator the two roles swap,
// which re-references the encoding to the filled determinant.
func jordanWigner(o *Operator) ([]pauli.Term, error) {
	n := o.modes
	var out []pauli.Term

	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			c := o.h1[p][q]
			if c == 0 {
				continue
			}
			prod, err := mulLadders(
				ladder(n, p, true, o.holes),
				ladder(n, q, false, o.holes),
			)
			if err != nil {
				return nil, err
			}
			for _, t := range prod {
				out = append(out, t.Scaled(complex(c, 0)))
			}
		}
	}

	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					c := 0.5 * o.h2[p][q][r][s]
					if c == 0 {
						continue
					}
					prod, err := mulLadders(
						ladder(n, p, true, o.holes),
						ladder(n, q, true, o.holes),
						ladder(n, r, false, o.holes),
						ladder(n, s, false, o.holes),
					)
					if err != nil {
						return nil, err
					}
					for _, t := range prod {
						out = append(out, t.Scaled(complex(c, 0)))
					}
				}
			}
		}
	}
	return out, nil
}

// ladder returns the two-term Pauli expansion of one creation or
// annihilation operator. holes flips the role on marked modes.
func ladder(n, mode int, dagger bool, holes []bool) []pauli.Term {
	creator := dagger
	if holes != nil && holes[mode] {
		creator = !creator
	}

	xOps := make([]pauli.Pauli, n)
	yOps := make([]pauli.Pauli, n)
	for i := 0; i < mode; i++ {
		xOps[i] = pauli.Z
		yOps[i] = pauli.Z
	}
	xOps[mode] = pauli.X
	yOps[mode] = pauli.Y

	yCoeff := complex(0, 0.5)
	if creator {
		yCoeff = complex(0, -0.5)
	}
	return []pauli.Term{
		{Coeff: 0.5, Ops: xOps},
		{Coeff: yCoeff, Ops: yOps},
	}
}

// mulLadders multiplies out the two-term expansions of a ladder
// product into a flat term list.
func mulLadders(factors ...[]pauli.Term) ([]pauli.Term, error) {
	acc := factors[0]
	for _, f := range factors[1:] {
		next := make([]pauli.Term, 0, len(acc)*len(f))
		for _, a := range acc {
			for _, b := range f {
				t, err := a.Mul(b)
				if err != nil {
					return nil, err
				}
				next = append(next, t)
			}
		}
		acc = next
	}
	return acc, nil
}
