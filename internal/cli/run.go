package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"milpgcd/internal/milp"
	"milpgcd/internal/solver"
	"milpgcd/internal/trace"
	"milpgcd/internal/verify"
)

// Result is the reportable outcome of a CLI run.
type Result struct {
	ExitCode int
}

// Run is the high-level entrypoint suitable for black-box tests. It accepts
// the argument slice (excluding argv[0]), writes the report to out, and
// returns the semantic exit code plus any error.
func Run(ctx context.Context, args []string, out io.Writer) (Result, error) {
	inv, err := ParseInvocation(args)
	if err != nil {
		return Result{ExitCode: ExitCode(err)}, err
	}
	return Execute(ctx, inv, out)
}

// Execute wires the selected backend and runs either a single differential
// check or a sweep, printing a deterministic report to out.
func Execute(ctx context.Context, inv Invocation, out io.Writer) (Result, error) {
	cand, err := buildCandidate(inv)
	if err != nil {
		return Result{ExitCode: ExitCode(err)}, err
	}

	cfg := verify.Config{
		OutputPath: inv.ModelPath,
		TimeLimit:  inv.TimeLimit,
		SolverArgs: inv.SolverArgs,
	}

	if inv.PairMode {
		return executePair(ctx, inv, cand, cfg, out)
	}
	return executeSweep(ctx, inv, cand, cfg, out)
}

func buildCandidate(inv Invocation) (verify.Candidate, error) {
	switch inv.Backend {
	case BackendBnB:
		return milp.Candidate{}, nil
	case BackendGLPK:
		return solver.Candidate{Path: inv.SolverPath}, nil
	default:
		return nil, invalidInvocationf("no candidate for backend %q", inv.Backend)
	}
}

func executePair(ctx context.Context, inv Invocation, cand verify.Candidate, cfg verify.Config, out io.Writer) (Result, error) {
	outcome, err := verify.Check(ctx, cand, inv.A, inv.B, cfg)
	if err != nil {
		fmt.Fprintln(out, err.Error())
		return Result{ExitCode: failureExitCode(err)}, err
	}

	fmt.Fprintf(out, "gcd(%d, %d) = %d (oracle and %s agree, solver status: %s)\n",
		inv.A, inv.B, outcome.Oracle, cand.Name(), outcome.Result.Field("status"))
	return Result{ExitCode: ExitSuccess}, nil
}

func executeSweep(ctx context.Context, inv Invocation, cand verify.Candidate, cfg verify.Config, out io.Writer) (Result, error) {
	var rec *trace.Recorder
	var sink trace.Sink = trace.NopSink{}
	if inv.TracePath != "" {
		rec = trace.NewRecorder()
		sink = rec
	}

	res, err := verify.Sweep(ctx, cand, verify.SweepConfig{
		Min:       inv.Min,
		Max:       inv.Max,
		Budget:    inv.Budget,
		KeepGoing: inv.KeepGoing,
		Check:     cfg,
		Sink:      sink,
	})
	if err != nil {
		return Result{ExitCode: ExitInternalError}, err
	}

	fmt.Fprintf(out, "checked %d pairs in [%d, %d]^2 against %s: %d mismatches, %d candidate failures\n",
		res.Checked, inv.Min, inv.Max, cand.Name(), len(res.Mismatches), len(res.Failures))
	for _, mm := range res.Mismatches {
		fmt.Fprintln(out, mm.Error())
	}
	for _, cf := range res.Failures {
		fmt.Fprintln(out, cf.Error())
	}

	if rec != nil {
		if err := writeTrace(rec, cand.Name(), inv.TracePath); err != nil {
			return Result{ExitCode: ExitInternalError}, err
		}
		fmt.Fprintf(out, "trace written to %s\n", inv.TracePath)
	}

	switch {
	case len(res.Mismatches) > 0:
		return Result{ExitCode: ExitMismatch}, nil
	case len(res.Failures) > 0:
		return Result{ExitCode: ExitCandidateFailure}, nil
	default:
		return Result{ExitCode: ExitSuccess}, nil
	}
}

func writeTrace(rec *trace.Recorder, backend, path string) error {
	tr := rec.Trace(backend)
	b, err := tr.CanonicalJSON()
	if err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

func failureExitCode(err error) int {
	switch {
	case errors.Is(err, verify.ErrMismatch):
		return ExitMismatch
	case errors.Is(err, verify.ErrCandidate):
		return ExitCandidateFailure
	default:
		return ExitCode(err)
	}
}
