package verify

import (
	"context"
	"errors"
	"fmt"

	"milpgcd/internal/trace"
)

// SweepConfig describes a differential campaign over a bounded domain.
type SweepConfig struct {
	// Min and Max bound the inclusive positive domain [Min, Max]^2.
	Min, Max int64

	// Budget caps the number of checks. Zero means the full square.
	Budget int

	// KeepGoing continues past failures instead of stopping at the first.
	KeepGoing bool

	// Check is forwarded unchanged to every candidate invocation.
	Check Config

	// Sink receives one event per check. Nil disables recording.
	Sink trace.Sink
}

// SweepResult summarizes a campaign.
type SweepResult struct {
	Checked    int
	Mismatches []*MismatchError
	Failures   []*CandidateError
}

// Failed reports whether any check ended in a mismatch or candidate failure.
func (r *SweepResult) Failed() bool {
	return r != nil && (len(r.Mismatches) > 0 || len(r.Failures) > 0)
}

// Sweep enumerates all pairs in [Min, Max]^2 in ascending row-major order
// and checks each against the candidate. Ascending order makes the first
// reported failure the minimal one under that order, so no separate
// shrinking pass is needed for exhaustive campaigns.
//
// The error return is reserved for configuration problems and context
// cancellation; verification failures live in the SweepResult.
func Sweep(ctx context.Context, cand Candidate, cfg SweepConfig) (*SweepResult, error) {
	if cfg.Min < 1 {
		return nil, fmt.Errorf("sweep: min must be >= 1 (got %d)", cfg.Min)
	}
	if cfg.Max < cfg.Min {
		return nil, fmt.Errorf("sweep: max %d < min %d", cfg.Max, cfg.Min)
	}

	res := &SweepResult{}
	for a := cfg.Min; a <= cfg.Max; a++ {
		for b := cfg.Min; b <= cfg.Max; b++ {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			if cfg.Budget > 0 && res.Checked >= cfg.Budget {
				return res, nil
			}

			out, err := Check(ctx, cand, a, b, cfg.Check)
			res.Checked++

			switch {
			case err == nil:
				trace.SafeRecord(cfg.Sink, trace.CheckEvent{
					Kind: trace.EventCheckPassed, A: a, B: b,
					Oracle: out.Oracle, Candidate: out.Result.GCD,
					Status: out.Result.Status,
				})
			default:
				var mm *MismatchError
				var cf *CandidateError
				switch {
				case errors.As(err, &mm):
					res.Mismatches = append(res.Mismatches, mm)
					trace.SafeRecord(cfg.Sink, trace.CheckEvent{
						Kind: trace.EventCheckMismatch, A: a, B: b,
						Oracle: mm.Want, Candidate: mm.Got, Status: mm.Status,
					})
				case errors.As(err, &cf):
					res.Failures = append(res.Failures, cf)
					trace.SafeRecord(cfg.Sink, trace.CheckEvent{
						Kind: trace.EventCheckCandidateFailed, A: a, B: b,
						Oracle: out.Oracle, Status: cf.Status,
					})
				default:
					// oracle-level errors (out-of-domain config) abort the sweep
					return res, err
				}
				if !cfg.KeepGoing {
					return res, nil
				}
			}
		}
	}
	return res, nil
}

// Shrink greedily minimizes a failing pair: it repeatedly tries to replace
// each coordinate with a smaller value (halving first, then decrementing)
// while the candidate still fails the check, and returns the smallest
// reproducing pair found. Intended for failures discovered outside
// ascending sweeps (random sampling, user-reported pairs).
func Shrink(ctx context.Context, cand Candidate, a, b int64, cfg Config) (int64, int64) {
	fails := func(x, y int64) bool {
		if x < 1 || y < 1 {
			return false
		}
		_, err := Check(ctx, cand, x, y, cfg)
		return errors.Is(err, ErrMismatch) || errors.Is(err, ErrCandidate)
	}

	if !fails(a, b) {
		return a, b
	}

	shrunk := true
	for shrunk {
		shrunk = false
		for _, next := range [][2]int64{{a / 2, b}, {a, b / 2}, {a - 1, b}, {a, b - 1}} {
			if (next[0] != a || next[1] != b) && fails(next[0], next[1]) {
				a, b = next[0], next[1]
				shrunk = true
				break
			}
		}
	}
	return a, b
}
