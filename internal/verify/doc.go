// Package verify differentially tests gcd-producing candidates against the
// Euclidean oracle.
//
// A Candidate is any alternative gcd implementation, typically backed by a
// MILP formulation handed to a solver. Check runs the oracle and the
// candidate independently on the same pair and compares the results;
// Sweep enumerates a bounded positive domain and reports the first (and
// therefore minimal, under ascending order) failing pair.
//
// Every check is stateless and independent. A candidate that cannot
// produce a definite value (infeasible model, solver error, timeout) is a
// CandidateError, which is a different failure kind from a Mismatch and is
// never coerced into a numeric result.
package verify
