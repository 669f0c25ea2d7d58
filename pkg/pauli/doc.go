// Package pauli implements weighted sums of Pauli strings, the qubit
// operators produced by fermion-to-qubit encodings. It carries the
// single-qubit product algebra with phase tracking, duplicate-term
// merging, threshold truncation, and a dense matrix realization built
// by bit-mask application instead of explicit Kronecker products.
//
// Qubit 0 is index 0 of a term's operator slice and the least
// significant bit of a computational basis index.
package pauli
