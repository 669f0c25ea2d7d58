// Package driver computes molecular integrals and runs the restricted
// Hartree-Fock procedure that produces the MolecularData feeding the
// operator pipeline: overlap, kinetic, nuclear-attraction, and
// electron-repulsion integrals over contracted s-type Gaussians,
// a closed-shell SCF with symmetric orthogonalization, and the
// transformation of the converged integrals to the molecular-orbital
// basis.
package driver
