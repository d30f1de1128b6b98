// Package cli canonicalizes command-line input into a deterministic
// invocation and orchestrates differential verification runs.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

const (
	ExitSuccess           = 0
	ExitMismatch          = 1
	ExitCandidateFailure  = 2
	ExitInvalidInvocation = 3
	ExitInternalError     = 4
)

// Backend selects the candidate implementation under test.
type Backend string

const (
	// BackendBnB is the in-process branch-and-bound MILP candidate.
	BackendBnB Backend = "bnb"

	// BackendGLPK shells out to the glpsol binary.
	BackendGLPK Backend = "glpsol"
)

// Invocation is the fully canonicalized, deterministic description of a
// run. All relative paths are resolved against WorkDir, which must be
// absolute when given; this keeps the process CWD out of the behavior.
type Invocation struct {
	Backend Backend

	// PairMode checks the single pair (A, B) instead of sweeping.
	PairMode bool
	A, B     int64

	// Min and Max bound the sweep domain [Min, Max]^2.
	Min, Max int64

	// Budget caps the number of sweep checks; zero means the full square.
	Budget int

	// KeepGoing continues a sweep past the first failure.
	KeepGoing bool

	// TimeLimit bounds each candidate solve; zero means none.
	TimeLimit time.Duration

	// SolverPath overrides the external solver binary for BackendGLPK.
	SolverPath string

	// TracePath, when non-empty, is where the canonical campaign trace is
	// written.
	TracePath string

	// ModelPath, when non-empty, is forwarded to the candidate as the
	// model export location.
	ModelPath string

	// SolverArgs are forwarded opaquely to CLI-backed candidates.
	SolverArgs []string
}

// InvocationError carries a semantic exit code alongside the message.
type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation parses CLI flags into a canonical Invocation.
//
// Determinism goals:
//   - Does not read env vars.
//   - Does not read or assume the process CWD.
//   - Output paths are absolute, or resolved under an explicit absolute
//     --workdir.
func ParseInvocation(args []string) (Invocation, error) {
	fs := flag.NewFlagSet("milpgcd", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	var (
		backend    string
		a, b       int64
		min, max   int64
		budget     int
		keepGoing  bool
		timeLimit  time.Duration
		workDir    string
		tracePath  string
		modelPath  string
		solverPath string
		solverArgs string
	)

	fs.StringVar(&backend, "backend", string(BackendBnB), "Candidate backend: bnb|glpsol")
	fs.Int64Var(&a, "a", 0, "First value of a single pair to check (requires --b).")
	fs.Int64Var(&b, "b", 0, "Second value of a single pair to check (requires --a).")
	fs.Int64Var(&min, "min", 1, "Sweep domain lower bound (inclusive).")
	fs.Int64Var(&max, "max", 100, "Sweep domain upper bound (inclusive).")
	fs.IntVar(&budget, "budget", 0, "Cap on the number of sweep checks (0 = full square).")
	fs.BoolVar(&keepGoing, "keep-going", false, "Continue the sweep past the first failure.")
	fs.DurationVar(&timeLimit, "time-limit", 0, "Per-solve deadline (0 = none).")
	fs.StringVar(&workDir, "workdir", "", "Absolute directory relative paths resolve under.")
	fs.StringVar(&tracePath, "trace", "", "Canonical campaign trace output path (optional).")
	fs.StringVar(&modelPath, "model", "", "Model export path forwarded to the candidate (optional).")
	fs.StringVar(&solverPath, "solver-path", "", "External solver executable for --backend=glpsol.")
	fs.StringVar(&solverArgs, "solver-args", "", "Extra space-separated arguments for the external solver.")

	if err := fs.Parse(args); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 0 {
		return Invocation{}, invalidInvocationf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}

	inv := Invocation{
		Min:        min,
		Max:        max,
		Budget:     budget,
		KeepGoing:  keepGoing,
		TimeLimit:  timeLimit,
		SolverPath: solverPath,
	}

	var err error
	if inv.Backend, err = parseBackend(backend); err != nil {
		return Invocation{}, err
	}

	if a != 0 || b != 0 {
		if a < 1 || b < 1 {
			return Invocation{}, invalidInvocationf("--a and --b must both be positive (got %d, %d)", a, b)
		}
		inv.PairMode = true
		inv.A, inv.B = a, b
	} else {
		if min < 1 {
			return Invocation{}, invalidInvocationf("--min must be >= 1 (got %d)", min)
		}
		if max < min {
			return Invocation{}, invalidInvocationf("--max %d is below --min %d", max, min)
		}
		if budget < 0 {
			return Invocation{}, invalidInvocationf("--budget must be >= 0 (got %d)", budget)
		}
	}

	if timeLimit < 0 {
		return Invocation{}, invalidInvocationf("--time-limit must be >= 0 (got %v)", timeLimit)
	}

	if workDir != "" {
		workDir = filepath.Clean(workDir)
		if !filepath.IsAbs(workDir) {
			return Invocation{}, invalidInvocationf("--workdir must be an absolute path (got %q)", workDir)
		}
	}
	if inv.TracePath, err = resolveOutputPath(workDir, tracePath, "--trace"); err != nil {
		return Invocation{}, err
	}
	if inv.ModelPath, err = resolveOutputPath(workDir, modelPath, "--model"); err != nil {
		return Invocation{}, err
	}

	if s := strings.TrimSpace(solverArgs); s != "" {
		inv.SolverArgs = strings.Fields(s)
	}

	return inv, nil
}

func parseBackend(raw string) (Backend, error) {
	n := strings.ToLower(strings.TrimSpace(raw))
	switch Backend(n) {
	case BackendBnB, BackendGLPK:
		return Backend(n), nil
	case "":
		return "", invalidInvocationf("--backend is required")
	default:
		return "", invalidInvocationf("invalid --backend %q (expected bnb|glpsol)", raw)
	}
}

// resolveOutputPath canonicalizes an optional output path. Relative paths
// require an absolute workDir so resolution never consults the CWD.
func resolveOutputPath(workDir, p, flagName string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", nil
	}
	clean := filepath.Clean(p)
	if filepath.IsAbs(clean) {
		return clean, nil
	}
	if workDir == "" {
		return "", invalidInvocationf("%s is relative (%q) and no --workdir was given", flagName, p)
	}
	return filepath.Clean(filepath.Join(workDir, clean)), nil
}

// ExitCode extracts a semantic exit code from a ParseInvocation error.
// Unknown errors map to ExitInternalError.
func ExitCode(err error) int {
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	if err == nil {
		return ExitSuccess
	}
	return ExitInternalError
}
