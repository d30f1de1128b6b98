package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"milpgcd/internal/verify"
)

// ErrSolverNotFound reports that no solver executable could be resolved.
var ErrSolverNotFound = errors.New("solver: executable not found")

// DefaultBinary is the external solver invoked when no path is configured.
const DefaultBinary = "glpsol"

// Candidate computes gcd by exporting the Bézout model in LP format and
// invoking an external GLPK solver binary on it. It implements
// verify.Candidate.
//
// The model file and the solver's solution file live in a per-call temp
// directory; when verify.Config.OutputPath is set, the model is exported
// there as well so a failing solve can be replayed by hand.
type Candidate struct {
	// Path overrides the solver executable; empty means DefaultBinary
	// resolved via PATH.
	Path string
}

func (Candidate) Name() string { return "glpsol" }

func (c Candidate) Solve(ctx context.Context, a, b int64, cfg verify.Config) (verify.Result, error) {
	if a < 1 || b < 1 {
		return verify.Result{}, fmt.Errorf("glpsol: inputs must be positive, got (%d, %d)", a, b)
	}

	path, err := c.resolve()
	if err != nil {
		return verify.Result{}, err
	}

	dir, err := os.MkdirTemp("", "milpgcd-glpsol-*")
	if err != nil {
		return verify.Result{}, fmt.Errorf("glpsol: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	modelPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "solution.txt")
	model := FormatLP(a, b)
	if err := os.WriteFile(modelPath, model, 0o644); err != nil {
		return verify.Result{}, fmt.Errorf("glpsol: write model: %w", err)
	}
	if cfg.OutputPath != "" {
		if err := os.WriteFile(cfg.OutputPath, model, 0o644); err != nil {
			return verify.Result{}, fmt.Errorf("glpsol: export model: %w", err)
		}
	}

	runner := &Runner{Path: path}
	args := append([]string{"--lp", modelPath, "-o", solPath}, cfg.SolverArgs...)
	run, err := runner.Run(ctx, args...)
	if err != nil {
		return verify.Result{}, err
	}
	if run.ExitCode != 0 {
		return verify.Result{Status: map[string]string{"solver": "glpsol"}},
			fmt.Errorf("glpsol: exited with code %d: %s", run.ExitCode, firstLine(run.Stderr))
	}

	solText, err := os.ReadFile(solPath)
	if err != nil {
		return verify.Result{}, fmt.Errorf("glpsol: read solution: %w", err)
	}
	info := ParseSolution(solText)
	status := info.StatusMap("glpsol")

	if !strings.Contains(info.Status, "OPTIMAL") {
		return verify.Result{Status: status},
			fmt.Errorf("glpsol: no definite optimum for (%d, %d)", a, b)
	}
	if !info.HasObjective {
		return verify.Result{Status: status},
			fmt.Errorf("glpsol: solution for (%d, %d) has no objective value", a, b)
	}

	return verify.Result{
		GCD:    int64(math.Round(info.Objective)),
		Status: status,
	}, nil
}

func (c Candidate) resolve() (string, error) {
	bin := c.Path
	if bin == "" {
		bin = DefaultBinary
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrSolverNotFound, bin)
	}
	return path, nil
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
