package pauli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOperator_Validation(t *testing.T) {
	_, err := NewOperator(0)
	assert.ErrorIs(t, err, ErrQubitMismatch)

	_, err = NewOperator(64)
	assert.ErrorIs(t, err, ErrTooManyQubits)

	_, err = NewOperator(2, MustTerm(1, "XYZ"))
	assert.ErrorIs(t, err, ErrQubitMismatch)
}

func TestOperator_Simplify(t *testing.T) {
	op, err := NewOperator(2,
		MustTerm(0.5, "XZ"),
		MustTerm(0.25, "XZ"),
		MustTerm(1, "IZ"),
		MustTerm(-1, "IZ"),
		MustTerm(0.1, "ZI"),
	)
	require.NoError(t, err)

	s := op.Simplify()
	assert.Equal(t, 2, s.NumTerms())

	// Duplicates merged, exact cancellations dropped, sorted order.
	terms := s.Terms()
	assert.Equal(t, "XZ", terms[0].Key())
	assert.Equal(t, complex128(0.75), terms[0].Coeff)
	assert.Equal(t, "ZI", terms[1].Key())
}

func TestOperator_Chop(t *testing.T) {
	op, err := NewOperator(1,
		MustTerm(complex(1e-12, 0.4), "X"),
		MustTerm(1e-12, "Z"),
		MustTerm(0.9, "Y"),
	)
	require.NoError(t, err)

	chopped := op.Chop(1e-8)
	assert.Equal(t, 2, chopped.NumTerms())

	// The X coefficient keeps only its imaginary part.
	assert.Equal(t, complex128(0.4i), chopped.Coeff("X"))
	assert.Equal(t, complex128(0), chopped.Coeff("Z"))
	assert.Equal(t, complex128(0.9), chopped.Coeff("Y"))

	// Non-positive threshold leaves everything alone.
	assert.Equal(t, 3, op.Chop(0).NumTerms())
}

func TestOperator_AddAndScale(t *testing.T) {
	a, err := NewOperator(2, MustTerm(1, "XI"), MustTerm(0.5, "ZZ"))
	require.NoError(t, err)
	b, err := NewOperator(2, MustTerm(-1, "XI"), MustTerm(0.5, "ZZ"))
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.NumTerms())
	assert.Equal(t, complex128(1), sum.Coeff("ZZ"))

	scaled := a.Scale(2)
	assert.Equal(t, complex128(2), scaled.Coeff("XI"))
	// The source operator is untouched.
	assert.Equal(t, complex128(1), a.Coeff("XI"))

	wide, err := NewOperator(3, MustTerm(1, "XII"))
	require.NoError(t, err)
	_, err = a.Add(wide)
	assert.ErrorIs(t, err, ErrQubitMismatch)
}

func TestOperator_AddIdentity(t *testing.T) {
	op, err := NewOperator(2, MustTerm(0.25, "II"), MustTerm(1, "ZZ"))
	require.NoError(t, err)

	shifted := op.AddIdentity(0.75)
	assert.Equal(t, complex128(1), shifted.Coeff("II"))
	assert.Equal(t, complex128(0.25), op.Coeff("II"))
}

func TestOperator_IsHermitian(t *testing.T) {
	herm, err := NewOperator(2, MustTerm(0.5, "XY"), MustTerm(-1.25, "ZI"))
	require.NoError(t, err)
	assert.True(t, herm.IsHermitian(1e-10))

	// An i*XX term breaks Hermiticity...
	skew, err := NewOperator(2, MustTerm(1i, "XX"))
	require.NoError(t, err)
	assert.False(t, skew.IsHermitian(1e-10))

	// ...unless it cancels against its conjugate partner.
	cancel, err := NewOperator(2, MustTerm(1i, "XX"), MustTerm(-1i, "XX"))
	require.NoError(t, err)
	assert.True(t, cancel.IsHermitian(1e-10))
}

func TestOperator_Matrices(t *testing.T) {
	t.Run("Z on qubit 0", func(t *testing.T) {
		op, err := NewOperator(2, MustTerm(1, "ZI"))
		require.NoError(t, err)

		re, im, err := op.Matrices()
		require.NoError(t, err)

		// Basis order 00, 01, 10, 11 with qubit 0 as the low bit.
		want := []float64{1, -1, 1, -1}
		for x := 0; x < 4; x++ {
			assert.InDelta(t, want[x], re.At(x, x), 1e-12)
			assert.InDelta(t, 0, im.At(x, x), 1e-12)
		}
	})

	t.Run("Y is antisymmetric imaginary", func(t *testing.T) {
		op, err := NewOperator(1, MustTerm(1, "Y"))
		require.NoError(t, err)

		re, im, err := op.Matrices()
		require.NoError(t, err)

		assert.InDelta(t, 0, re.At(0, 1), 1e-12)
		assert.InDelta(t, 0, re.At(1, 0), 1e-12)
		assert.InDelta(t, -1, im.At(0, 1), 1e-12)
		assert.InDelta(t, 1, im.At(1, 0), 1e-12)
	})

	t.Run("width cap", func(t *testing.T) {
		op, err := NewOperator(MaxDenseQubits+1, IdentityTerm(1, MaxDenseQubits+1))
		require.NoError(t, err)
		_, _, err = op.Matrices()
		assert.ErrorIs(t, err, ErrTooManyQubits)
	})
}

func TestOperator_TermsIsACopy(t *testing.T) {
	op, err := NewOperator(1, MustTerm(1, "Z"))
	require.NoError(t, err)

	terms := op.Terms()
	terms[0].Coeff = 99
	terms[0].Ops[0] = X

	assert.Equal(t, complex128(1), op.Coeff("Z"))
}
