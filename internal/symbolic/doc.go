// Package symbolic is a small deterministic expression kernel: exact
// rational constants, symbols, n-ary sums and products, integer powers,
// and exponentials, with simplification, substitution, differentiation,
// and numeric evaluation.
//
// It exists to derive the lake closed form the way it is derived on
// paper (general solution from the integrating factor, constant of
// integration fixed by the initial condition) and to verify the result
// against the governing equation, rather than to be a general CAS.
// Simplification is canonicalizing: like terms and like factors combine,
// children are sorted, so equal expressions compare structurally equal.
package symbolic
