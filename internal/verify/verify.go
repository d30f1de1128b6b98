package verify

import (
	"context"
	"errors"
	"time"

	"milpgcd/internal/gcd"
)

// NotAvailable is the sentinel substituted for absent status metadata when
// formatting diagnostics.
const NotAvailable = "not available"

// Config carries the solver-selection options a caller forwards to a
// candidate. The harness does not interpret these beyond TimeLimit; they
// are passed through opaquely.
//
// There are no hidden process-wide defaults: the zero value means "no
// export, no deadline, no extra args", and anything else is supplied
// explicitly at the call site.
type Config struct {
	// OutputPath, when non-empty, asks the candidate to export its model
	// or solution artifacts to this location.
	OutputPath string

	// TimeLimit bounds a single candidate solve. Zero means no deadline.
	// Applied by the harness via context so a pathological sample cannot
	// stall a whole sweep.
	TimeLimit time.Duration

	// SolverArgs are extra arguments for CLI-backed candidates.
	SolverArgs []string
}

// Result is what a candidate reports for one pair.
//
// Status is the candidate-supplied termination metadata (solver status
// text, objective value, backend name). Keys are optional by design:
// readers must go through Field, which substitutes NotAvailable instead of
// failing on absence.
type Result struct {
	GCD    int64
	Status map[string]string
}

// Field returns the named status entry, or NotAvailable when the candidate
// did not supply it.
func (r Result) Field(key string) string {
	return statusField(r.Status, key)
}

func statusField(status map[string]string, key string) string {
	if v, ok := status[key]; ok && v != "" {
		return v
	}
	return NotAvailable
}

// Candidate is a gcd-producing function under test.
//
// Solve must either return a definite positive gcd value or an error; it
// must never encode failure as a numeric result. Implementations should
// honor ctx cancellation since the harness uses it for per-call deadlines.
type Candidate interface {
	Name() string
	Solve(ctx context.Context, a, b int64, cfg Config) (Result, error)
}

// Outcome is the reportable record of one differential check.
type Outcome struct {
	A, B   int64
	Oracle int64

	// Result holds the candidate's answer when it produced one.
	Result Result
}

// Check computes the oracle's gcd for (a, b), invokes the candidate on the
// same pair with cfg forwarded unchanged, and compares for exact equality.
//
// Errors:
//   - gcd.ErrNonPositive if the pair is outside the positive domain;
//   - *CandidateError if the candidate produced no definite value
//     (solver failure or TimeLimit exceeded);
//   - *MismatchError if the values disagree.
//
// The returned Outcome is valid whenever the oracle ran, so callers can
// report the reference value even for failing checks.
func Check(ctx context.Context, cand Candidate, a, b int64, cfg Config) (Outcome, error) {
	want, err := gcd.GCD(a, b)
	if err != nil {
		return Outcome{A: a, B: b}, err
	}
	out := Outcome{A: a, B: b, Oracle: want}

	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}

	res, err := cand.Solve(ctx, a, b, cfg)
	if err != nil {
		status := res.Status
		if errors.Is(err, context.DeadlineExceeded) {
			status = map[string]string{"status": "timeout"}
		}
		return out, &CandidateError{A: a, B: b, Candidate: cand.Name(), Status: status, Err: err}
	}
	out.Result = res

	if res.GCD != want {
		return out, &MismatchError{A: a, B: b, Want: want, Got: res.GCD,
			Candidate: cand.Name(), Status: res.Status}
	}
	return out, nil
}
