package verify

import (
	"errors"
	"fmt"
)

var (
	// ErrMismatch is the kind behind MismatchError.
	ErrMismatch = errors.New("gcd mismatch")

	// ErrCandidate is the kind behind CandidateError.
	ErrCandidate = errors.New("candidate failure")
)

// MismatchError reports that the oracle and a candidate disagree on the gcd
// of a pair. It carries both values and the candidate's status metadata so
// the failure is reproducible from the message alone.
type MismatchError struct {
	A, B      int64
	Want, Got int64
	Candidate string
	Status    map[string]string
}

func (e *MismatchError) Error() string {
	if e == nil {
		return ""
	}
	// Status access goes through statusField so a candidate that omitted
	// its termination metadata cannot turn the mismatch into a secondary
	// formatting failure.
	return fmt.Sprintf("gcd mismatch for (%d, %d): oracle says %d, %s says %d (solver status: %s)",
		e.A, e.B, e.Want, e.Candidate, e.Got, statusField(e.Status, "status"))
}

func (e *MismatchError) Unwrap() error { return ErrMismatch }

// CandidateError reports that a candidate produced no definite gcd value:
// the underlying solve was infeasible, unbounded, errored, or timed out.
// Distinct from MismatchError; a timeout is inconclusive, not a mismatch.
type CandidateError struct {
	A, B      int64
	Candidate string
	Status    map[string]string
	Err       error
}

func (e *CandidateError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("candidate %s failed on (%d, %d) (solver status: %s)",
		e.Candidate, e.A, e.B, statusField(e.Status, "status"))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CandidateError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCandidate, e.Err}
	}
	return []error{ErrCandidate}
}
