package pauli

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Pauli is a single-qubit Pauli operator.
type Pauli byte

// The four single-qubit Paulis.
const (
	I Pauli = iota
	X
	Y
	Z
)

var pauliNames = [...]string{"I", "X", "Y", "Z"}

func (p Pauli) String() string {
	if int(p) < len(pauliNames) {
		return pauliNames[p]
	}
	return fmt.Sprintf("Pauli(%d)", byte(p))
}

// Sentinel errors for term and operator construction.
var (
	ErrQubitMismatch = errors.New("qubit count mismatch")
	ErrInvalidPauli  = errors.New("invalid pauli letter")
	ErrTooManyQubits = errors.New("qubit count exceeds supported width")
)

// mulTable resolves single-qubit products a*b to a Pauli and a phase
// from {1, i, -1, -i} encoded as an exponent of i.
//
// X*Y = iZ, Y*Z = iX, Z*X = iY, and reversed order flips the sign.
var mulTable = [4][4]struct {
	p     Pauli
	phase int // power of i
}{
	I: {I: {I, 0}, X: {X, 0}, Y: {Y, 0}, Z: {Z, 0}},
	X: {I: {X, 0}, X: {I, 0}, Y: {Z, 1}, Z: {Y, 3}},
	Y: {I: {Y, 0}, X: {Z, 3}, Y: {I, 0}, Z: {X, 1}},
	Z: {I: {Z, 0}, X: {Y, 1}, Y: {X, 3}, Z: {I, 0}},
}

// iPowers caches i^k for k in 0..3.
var iPowers = [4]complex128{1, 1i, -1, -1i}

// Term is one weighted Pauli string. Ops[q] acts on qubit q.
type Term struct {
	Coeff complex128
	Ops   []Pauli
}

// NewTerm builds a term over the given Paulis; the slice is copied.
func NewTerm(coeff complex128, ops ...Pauli) Term {
	cp := make([]Pauli, len(ops))
	copy(cp, ops)
	return Term{Coeff: coeff, Ops: cp}
}

// ParseOps converts a letter string such as "XIZY" into Paulis, with
// index 0 acting on qubit 0.
func ParseOps(s string) ([]Pauli, error) {
	ops := make([]Pauli, len(s))
	for i, r := range s {
		switch r {
		case 'I', 'i':
			ops[i] = I
		case 'X', 'x':
			ops[i] = X
		case 'Y', 'y':
			ops[i] = Y
		case 'Z', 'z':
			ops[i] = Z
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidPauli, r)
		}
	}
	return ops, nil
}

// MustTerm builds a term from a letter string, panicking on bad input.
// Intended for fixed literals.
func MustTerm(coeff complex128, letters string) Term {
	ops, err := ParseOps(letters)
	if err != nil {
		panic(err)
	}
	return Term{Coeff: coeff, Ops: ops}
}

// IdentityTerm returns the n-qubit identity string with the given
// coefficient.
func IdentityTerm(coeff complex128, n int) Term {
	return Term{Coeff: coeff, Ops: make([]Pauli, n)}
}

// NumQubits returns the string width.
func (t Term) NumQubits() int { return len(t.Ops) }

// IsIdentity reports whether every position is I.
func (t Term) IsIdentity() bool {
	for _, p := range t.Ops {
		if p != I {
			return false
		}
	}
	return true
}

// Key returns the letter form of the string, usable as a map key.
func (t Term) Key() string {
	var b strings.Builder
	b.Grow(len(t.Ops))
	for _, p := range t.Ops {
		b.WriteString(p.String())
	}
	return b.String()
}

// Mul multiplies two strings qubit-wise, accumulating the algebra
// phase into the coefficient.
func (t Term) Mul(u Term) (Term, error) {
	if len(t.Ops) != len(u.Ops) {
		return Term{}, fmt.Errorf("%w: %d vs %d", ErrQubitMismatch, len(t.Ops), len(u.Ops))
	}
	ops := make([]Pauli, len(t.Ops))
	phase := 0
	for q := range t.Ops {
		e := mulTable[t.Ops[q]][u.Ops[q]]
		ops[q] = e.p
		phase += e.phase
	}
	return Term{Coeff: t.Coeff * u.Coeff * iPowers[phase%4], Ops: ops}, nil
}

// Scaled returns the term with its coefficient multiplied by f.
func (t Term) Scaled(f complex128) Term {
	return Term{Coeff: f * t.Coeff, Ops: t.Ops}
}

// masks returns the X-type and Z-type bit masks of the string: X and Y
// set the x bit, Z and Y set the z bit.
func (t Term) masks() (xMask, zMask uint64) {
	for q, p := range t.Ops {
		switch p {
		case X:
			xMask |= 1 << q
		case Y:
			xMask |= 1 << q
			zMask |= 1 << q
		case Z:
			zMask |= 1 << q
		}
	}
	return xMask, zMask
}

// ActOn applies the string to a computational basis ket, returning the
// resulting basis index and the accumulated phase times the term
// coefficient: coeff * P |x> = phase |y>.
func (t Term) ActOn(x uint64) (y uint64, phase complex128) {
	phase = t.Coeff
	for q, p := range t.Ops {
		bit := (x >> q) & 1
		switch p {
		case Y:
			if bit == 0 {
				phase *= 1i
			} else {
				phase *= -1i
			}
		case Z:
			if bit == 1 {
				phase = -phase
			}
		}
	}
	xMask, _ := t.masks()
	return x ^ xMask, phase
}

// String renders the term as coefficient and letters, qubit 0 first.
func (t Term) String() string {
	return fmt.Sprintf("%s %s", formatCoeff(t.Coeff), t.Key())
}

// formatCoeff prints a coefficient, dropping a negligible imaginary
// part.
func formatCoeff(c complex128) string {
	if math.Abs(imag(c)) < 1e-12 {
		return fmt.Sprintf("%+.10f", real(c))
	}
	return fmt.Sprintf("(%+.10f%+.10fi)", real(c), imag(c))
}
