// Package chem models molecules, Gaussian basis sets, and the integral
// data produced by the Hartree-Fock driver. It carries the domain
// vocabulary shared by the driver, operator, and solver packages:
// atoms and molecules on the input side, MolecularData on the output
// side.
//
// All coordinates entering the package are in Angstrom; all energies
// and integrals leaving it are in Hartree atomic units.
package chem
