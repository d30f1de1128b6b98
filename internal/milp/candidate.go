package milp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"milpgcd/internal/gcd"
	"milpgcd/internal/solver"
	"milpgcd/internal/verify"
)

// BezoutProblem builds the MILP whose optimum is gcd(a, b):
//
//	minimize   a*u + b*v
//	subject to a*u + b*v >= 1
//	           u, v integer
//
// By Bézout's identity the smallest positive value of a*u + b*v over the
// integers is exactly gcd(a, b). The unrestricted integers are split into
// nonnegative pairs u = p - q, v = r - s. The box is sized from the
// coefficients extended Euclid produces: they witness the optimum, so
// |u| <= |x| and |v| <= |y| keep the search finite without excluding it.
//
// Variable order: x = (p, q, r, s).
func BezoutProblem(a, b int64) *Problem {
	x, y, _ := gcd.ExtGCD(a, b)
	ub := float64(max(x, -x, 1))
	vb := float64(max(y, -y, 1))
	af := float64(a)
	bf := float64(b)
	return &Problem{
		C: []float64{af, -af, bf, -bf},
		// row 0: -(a*u + b*v) <= -1, rows 1-4: upper bounds
		G: mat.NewDense(5, 4, []float64{
			-af, af, -bf, bf,
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}),
		H:       []float64{-1, ub, ub, vb, vb},
		Integer: []bool{true, true, true, true},
	}
}

// seedSolution is the trivial incumbent gcd(a, b) <= min(a, b):
// u=1, v=0 (value a) or u=0, v=1 (value b).
func seedSolution(a, b int64) *Solution {
	if a <= b {
		return &Solution{X: []float64{1, 0, 0, 0}, Objective: float64(a)}
	}
	return &Solution{X: []float64{0, 0, 1, 0}, Objective: float64(b)}
}

// Candidate computes gcd via the Bézout MILP, solved in-process by
// branch-and-bound. It implements verify.Candidate.
type Candidate struct {
	// NodeBudget overrides the branch-and-bound default when nonzero.
	NodeBudget int
}

func (Candidate) Name() string { return "bnb" }

// Solve builds the Bézout model for (a, b), optionally exports it in LP
// format to cfg.OutputPath, and returns the integer optimum as the gcd.
func (c Candidate) Solve(ctx context.Context, a, b int64, cfg verify.Config) (verify.Result, error) {
	if a < 1 || b < 1 {
		return verify.Result{}, fmt.Errorf("bnb: inputs must be positive, got (%d, %d)", a, b)
	}

	if cfg.OutputPath != "" {
		if err := os.WriteFile(cfg.OutputPath, solver.FormatLP(a, b), 0o644); err != nil {
			return verify.Result{}, fmt.Errorf("bnb: export model: %w", err)
		}
	}

	prob := BezoutProblem(a, b)
	prob.NodeBudget = c.NodeBudget

	sol, err := prob.Solve(ctx, seedSolution(a, b))
	if err != nil {
		return verify.Result{Status: map[string]string{
			"solver": "bnb",
			"status": statusFor(err),
		}}, err
	}

	g := int64(math.Round(sol.Objective))
	return verify.Result{
		GCD: g,
		Status: map[string]string{
			"solver":    "bnb",
			"status":    "INTEGER OPTIMAL",
			"objective": strconv.FormatInt(g, 10),
			"nodes":     strconv.Itoa(sol.Nodes),
		},
	}, nil
}

func statusFor(err error) string {
	switch {
	case err == nil:
		return "INTEGER OPTIMAL"
	case errors.Is(err, ErrInfeasible):
		return "INFEASIBLE"
	case errors.Is(err, ErrNoIntegerSolution):
		return "NO INTEGER SOLUTION"
	case errors.Is(err, ErrNodeBudget):
		return "NODE BUDGET EXHAUSTED"
	default:
		return "ERROR"
	}
}
