package pauli

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// MaxDenseQubits bounds the dense matrix realization; beyond it the
// 2^n x 2^n matrices stop being practical.
const MaxDenseQubits = 12

// mergeEps drops coefficients that cancelled to numerical zero during
// a merge.
const mergeEps = 1e-15

// Operator is an immutable weighted sum of Pauli strings over a fixed
// qubit count. Transformations return new operators.
type Operator struct {
	numQubits int
	terms     []Term
}

// NewOperator builds an operator from terms, all of which must span
// numQubits qubits.
func NewOperator(numQubits int, terms ...Term) (*Operator, error) {
	if numQubits < 1 {
		return nil, fmt.Errorf("%w: %d qubits", ErrQubitMismatch, numQubits)
	}
	if numQubits > 63 {
		return nil, fmt.Errorf("%w: %d qubits", ErrTooManyQubits, numQubits)
	}
	cp := make([]Term, len(terms))
	for i, t := range terms {
		if t.NumQubits() != numQubits {
			return nil, fmt.Errorf("%w: term %d spans %d qubits, operator %d",
				ErrQubitMismatch, i, t.NumQubits(), numQubits)
		}
		cp[i] = NewTerm(t.Coeff, t.Ops...)
	}
	return &Operator{numQubits: numQubits, terms: cp}, nil
}

// NumQubits returns the operator width.
func (o *Operator) NumQubits() int { return o.numQubits }

// NumTerms returns the term count.
func (o *Operator) NumTerms() int { return len(o.terms) }

// Terms returns a copy of the term list.
func (o *Operator) Terms() []Term {
	cp := make([]Term, len(o.terms))
	for i, t := range o.terms {
		cp[i] = NewTerm(t.Coeff, t.Ops...)
	}
	return cp
}

// Coeff returns the coefficient of the given letter string, zero when
// absent. Intended for simplified operators.
func (o *Operator) Coeff(letters string) complex128 {
	var c complex128
	for _, t := range o.terms {
		if t.Key() == letters {
			c += t.Coeff
		}
	}
	return c
}

// Simplify merges terms with equal strings, drops exact cancellations,
// and orders terms by their letter form.
func (o *Operator) Simplify() *Operator {
	merged := make(map[string]complex128, len(o.terms))
	byKey := make(map[string][]Pauli, len(o.terms))
	for _, t := range o.terms {
		k := t.Key()
		merged[k] += t.Coeff
		if _, ok := byKey[k]; !ok {
			byKey[k] = NewTerm(0, t.Ops...).Ops
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		if cmplx.Abs(merged[k]) < mergeEps {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	terms := make([]Term, len(keys))
	for i, k := range keys {
		terms[i] = Term{Coeff: merged[k], Ops: byKey[k]}
	}
	return &Operator{numQubits: o.numQubits, terms: terms}
}

// Chop zeroes real and imaginary coefficient parts below the threshold
// and drops terms that vanish entirely, returning a new operator.
// A non-positive threshold returns an unmodified copy.
func (o *Operator) Chop(threshold float64) *Operator {
	if threshold <= 0 {
		return &Operator{numQubits: o.numQubits, terms: o.Terms()}
	}
	var terms []Term
	for _, t := range o.terms {
		re, im := real(t.Coeff), imag(t.Coeff)
		if math.Abs(re) < threshold {
			re = 0
		}
		if math.Abs(im) < threshold {
			im = 0
		}
		if re == 0 && im == 0 {
			continue
		}
		terms = append(terms, NewTerm(complex(re, im), t.Ops...))
	}
	return &Operator{numQubits: o.numQubits, terms: terms}
}

// Add returns the term-wise sum of two operators of equal width.
func (o *Operator) Add(other *Operator) (*Operator, error) {
	if o.numQubits != other.numQubits {
		return nil, fmt.Errorf("%w: %d vs %d", ErrQubitMismatch, o.numQubits, other.numQubits)
	}
	terms := append(o.Terms(), other.Terms()...)
	return (&Operator{numQubits: o.numQubits, terms: terms}).Simplify(), nil
}

// Scale returns the operator with every coefficient multiplied by f.
func (o *Operator) Scale(f complex128) *Operator {
	terms := o.Terms()
	for i := range terms {
		terms[i].Coeff *= f
	}
	return &Operator{numQubits: o.numQubits, terms: terms}
}

// AddIdentity returns the operator with c added to its identity-string
// coefficient.
func (o *Operator) AddIdentity(c complex128) *Operator {
	terms := append(o.Terms(), IdentityTerm(c, o.numQubits))
	return (&Operator{numQubits: o.numQubits, terms: terms}).Simplify()
}

// IsHermitian reports whether the operator is Hermitian within tol:
// since Pauli strings are Hermitian and independent, this is true
// exactly when every merged coefficient is real.
func (o *Operator) IsHermitian(tol float64) bool {
	for _, t := range o.Simplify().terms {
		if math.Abs(imag(t.Coeff)) > tol {
			return false
		}
	}
	return true
}

// Matrices realizes the operator as dense real and imaginary parts,
// M = re + i*im, by applying each string to every basis column.
func (o *Operator) Matrices() (re, im *mat.Dense, err error) {
	if o.numQubits > MaxDenseQubits {
		return nil, nil, fmt.Errorf("%w: %d qubits exceeds dense limit %d",
			ErrTooManyQubits, o.numQubits, MaxDenseQubits)
	}
	dim := 1 << o.numQubits
	re = mat.NewDense(dim, dim, nil)
	im = mat.NewDense(dim, dim, nil)
	for _, t := range o.terms {
		for x := uint64(0); x < uint64(dim); x++ {
			y, phase := t.ActOn(x)
			re.Set(int(y), int(x), re.At(int(y), int(x))+real(phase))
			im.Set(int(y), int(x), im.At(int(y), int(x))+imag(phase))
		}
	}
	return re, im, nil
}

// String renders the simplified operator one term per line.
func (o *Operator) String() string {
	s := o.Simplify()
	lines := make([]string, len(s.terms))
	for i, t := range s.terms {
		lines[i] = t.String()
	}
	return strings.Join(lines, "\n")
}
