package solver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"syscall"
)

// RunResult captures one solver process invocation.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes a solver binary in an isolated, deterministic
// environment.
//
// Isolation is an allowlist: the child process starts with an EMPTY
// environment, so host variables (solver license paths, locale settings
// that change number formatting, etc.) cannot leak into the solve.
type Runner struct {
	// Path is the solver executable. Required; resolve via exec.LookPath
	// before constructing the Runner.
	Path string

	// Env lists the only environment variables the solver may see.
	Env map[string]string
}

// Run starts the solver with the given arguments and waits for completion
// or context cancellation. On cancellation the entire process group is
// killed, so solver-spawned helpers die with it; the context error is
// returned wrapped.
func (r *Runner) Run(ctx context.Context, args ...string) (*RunResult, error) {
	if r.Path == "" {
		return nil, fmt.Errorf("solver: runner has no executable path")
	}

	cmd := exec.CommandContext(ctx, r.Path, args...)
	cmd.Env = isolatedEnv(r.Env)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("solver: start %s: %w", r.Path, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var err error
	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			// negative pid kills the whole process group
			syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		}
		<-done
		return nil, fmt.Errorf("solver: run cancelled: %w", ctx.Err())
	case err = <-done:
	}

	exitCode := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("solver: run %s: %w", r.Path, err)
		}
		exitCode = exitErr.ExitCode()
	}

	return &RunResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
	}, nil
}

// isolatedEnv builds the allowlisted environment. The environment starts
// empty; only declared variables are added, never the host's.
func isolatedEnv(env map[string]string) []string {
	if len(env) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	return out
}
