// Package vqe estimates the minimum eigenvalue of a qubit operator
// variationally. A hardware-efficient ansatz prepares trial states, a
// registered backend evaluates their energies, and a gonum optimizer
// drives the parameters toward the lowest expectation value. The only
// built-in backend simulates a dense statevector in process.
//
// Operators referenced to a particle-hole determinant start the search
// at the mean-field point: the all-zero parameter vector prepares the
// filled reference, so small random initializations stay inside its
// basin.
package vqe
