// Package eigen diagonalizes qubit operators exactly.
//
// Operators are lowered to dense matrices and factorized with gonum's
// symmetric eigensolver through the standard real embedding of a
// Hermitian matrix. The solver is meant for the few-qubit systems the
// pipeline produces; MaxQubits bounds the accepted width.
package eigen
