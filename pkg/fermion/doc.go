// Package fermion implements the second-quantized Hamiltonian
//
//	H = sum_pq h1[p][q] a+p aq + 1/2 sum_pqrs h2[p][q][r][s] a+p a+q ar as
//
// over spin-orbital modes, its particle-hole transformation, and its
// encoding into qubit operators. Spin orbitals use block ordering:
// for M spatial orbitals, modes 0..M-1 are alpha and M..2M-1 beta.
//
// Operators are immutable: the particle-hole transformation and the
// qubit encodings return new values and leave their receiver intact.
package fermion
