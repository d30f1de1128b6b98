// Package milp solves small mixed-integer linear programs by LP-relaxation
// branch-and-bound over gonum's simplex implementation, and exposes the
// Bézout gcd formulation as a verification candidate.
package milp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

var (
	// ErrInfeasible reports that the root LP relaxation has no feasible point.
	ErrInfeasible = errors.New("milp: relaxation infeasible")

	// ErrNoIntegerSolution reports that branch-and-bound exhausted the tree
	// without finding an integer feasible point.
	ErrNoIntegerSolution = errors.New("milp: no integer feasible solution")

	// ErrNodeBudget reports that the node budget ran out before the tree
	// was exhausted.
	ErrNodeBudget = errors.New("milp: node budget exhausted")
)

// intTol is the tolerance under which a relaxation value counts as integral.
const intTol = 1e-6

// simplexTol loosens gonum's pivot tolerance. The relaxations here are
// heavily degenerate (the cutoff slab is thinner than one lattice step),
// and the default tolerance makes Bland's rule stall on them.
const simplexTol = 1e-8

// Problem is a minimization MILP in standard-ish form:
//
//	minimize   C^T x
//	subject to A x  = B   (optional)
//	           G x <= H   (optional)
//	           x >= 0
//
// with integrality required for every variable whose Integer mask entry is
// true. Variables must be bounded above through G rows for branch-and-bound
// to terminate.
type Problem struct {
	C []float64
	A *mat.Dense
	B []float64
	G *mat.Dense
	H []float64

	// Integer marks which variables carry an integrality constraint.
	// Must have the same length as C.
	Integer []bool

	// NodeBudget caps the number of branch-and-bound nodes solved.
	// Zero means DefaultNodeBudget.
	NodeBudget int
}

// DefaultNodeBudget bounds the search when the caller does not.
const DefaultNodeBudget = 20000

// Solution is an integer feasible optimum.
type Solution struct {
	X         []float64
	Objective float64

	// Nodes is the number of relaxations solved, incumbent seeding excluded.
	Nodes int
}

// branchRow is one bound cut added below the root: Coeff * x[Var] <= RHS
// with Coeff in {+1, -1} (floor and ceiling branches respectively).
type branchRow struct {
	Var   int
	Coeff float64
	RHS   float64
}

type node struct {
	cuts []branchRow
}

// Solve runs branch-and-bound and returns the best integer feasible
// solution. seed, when non-nil, is used as the initial incumbent; it must
// be integer feasible for the problem (the caller vouches for it).
//
// The incumbent participates as a cutoff row C x <= incumbent - step in
// every relaxation, so subtrees that cannot improve become LP-infeasible
// instead of relying on the bound comparison alone.
func (p *Problem) Solve(ctx context.Context, seed *Solution) (Solution, error) {
	if len(p.Integer) != len(p.C) {
		return Solution{}, fmt.Errorf("milp: integrality mask has %d entries for %d variables",
			len(p.Integer), len(p.C))
	}

	budget := p.NodeBudget
	if budget == 0 {
		budget = DefaultNodeBudget
	}

	var incumbent *Solution
	if seed != nil {
		s := *seed
		incumbent = &s
	}
	step := p.objectiveStep()
	nodes := 0

	// depth-first: reach integer feasible leaves early so the cutoff
	// tightens as soon as possible
	stack := []node{{}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return Solution{}, err
		}
		if nodes >= budget {
			return Solution{}, ErrNodeBudget
		}

		var cur node
		cur, stack = stack[len(stack)-1], stack[:len(stack)-1]

		var cutoff *float64
		if incumbent != nil {
			c := incumbent.Objective - step
			cutoff = &c
		}

		x, z, err := p.solveRelaxation(cur.cuts, cutoff)
		nodes++
		if err != nil {
			// with an incumbent, an infeasible root just means the
			// incumbent is optimal; below the root any failed
			// relaxation (cut-induced infeasibility or a numerically
			// stalled pivot) prunes the node
			if len(cur.cuts) == 0 && incumbent == nil {
				if errors.Is(err, lp.ErrInfeasible) {
					return Solution{}, ErrInfeasible
				}
				return Solution{}, fmt.Errorf("milp: relaxation solve: %w", err)
			}
			continue
		}

		if incumbent != nil && z >= incumbent.Objective-1e-9 {
			continue
		}

		frac := firstFractional(x, p.Integer)
		if frac < 0 {
			rounded := roundIntegral(x, p.Integer)
			sol := Solution{X: rounded, Objective: dot(p.C, rounded), Nodes: nodes}
			incumbent = &sol
			continue
		}

		// branch on the fractional variable: x <= floor and x >= ceil
		v := x[frac]
		down := node{cuts: appendCut(cur.cuts, branchRow{Var: frac, Coeff: 1, RHS: math.Floor(v)})}
		up := node{cuts: appendCut(cur.cuts, branchRow{Var: frac, Coeff: -1, RHS: -math.Ceil(v)})}
		stack = append(stack, up, down)
	}

	if incumbent == nil {
		return Solution{}, ErrNoIntegerSolution
	}
	incumbent.Nodes = nodes
	return *incumbent, nil
}

func appendCut(cuts []branchRow, extra branchRow) []branchRow {
	out := make([]branchRow, len(cuts), len(cuts)+1)
	copy(out, cuts)
	return append(out, extra)
}

// objectiveStep is the margin by which a new incumbent must improve.
// When every variable is integral and every cost is integer-valued the
// objective only takes integer values, so the cutoff can step a full
// unit; otherwise it backs off by the integrality tolerance only.
func (p *Problem) objectiveStep() float64 {
	for i, ci := range p.C {
		if !p.Integer[i] || ci != math.Trunc(ci) {
			return intTol
		}
	}
	return 1
}

// solveRelaxation solves the LP relaxation of the problem plus the given
// branch cuts and objective cutoff, returning the solution restricted to
// the original variables.
func (p *Problem) solveRelaxation(cuts []branchRow, cutoff *float64) ([]float64, float64, error) {
	nVar := len(p.C)

	g, h := p.stackedInequalities(cuts, cutoff)
	c, a, b := toEqualityForm(p.C, p.A, p.B, g, h)

	z, x, err := lp.Simplex(c, a, b, simplexTol, nil)
	if err != nil {
		return nil, 0, err
	}
	return x[:nVar], z, nil
}

// stackedInequalities combines the problem's G/H with the branch cuts and
// the optional incumbent cutoff row C x <= *cutoff into a single
// inequality system.
func (p *Problem) stackedInequalities(cuts []branchRow, cutoff *float64) (*mat.Dense, []float64) {
	nVar := len(p.C)
	extra := len(cuts)
	if cutoff != nil {
		extra++
	}
	if extra == 0 {
		return p.G, p.H
	}

	rows := make([]float64, 0, extra*nVar)
	h := append([]float64(nil), p.H...)
	for _, cut := range cuts {
		row := make([]float64, nVar)
		row[cut.Var] = cut.Coeff
		rows = append(rows, row...)
		h = append(h, cut.RHS)
	}
	if cutoff != nil {
		rows = append(rows, p.C...)
		h = append(h, *cutoff)
	}
	extraG := mat.NewDense(extra, nVar, rows)

	if p.G == nil {
		return extraG, h
	}
	origRows, _ := p.G.Dims()
	stacked := mat.NewDense(origRows+extra, nVar, nil)
	stacked.Stack(p.G, extraG)
	return stacked, h
}

// toEqualityForm rewrites the inequality system G x <= h into equalities by
// appending one nonnegative slack variable per row, producing the pure
// equality form gonum's simplex expects. A may be nil (no equalities).
func toEqualityForm(c []float64, A *mat.Dense, b []float64, G *mat.Dense, h []float64) ([]float64, *mat.Dense, []float64) {
	if G == nil {
		return c, A, b
	}

	nVar := len(c)
	nCons := len(b)
	nIneq := len(h)

	cNew := make([]float64, nVar+nIneq)
	copy(cNew, c)

	bNew := make([]float64, nCons+nIneq)
	copy(bNew, b)
	copy(bNew[nCons:], h)

	aNew := mat.NewDense(nCons+nIneq, nVar+nIneq, nil)
	if A != nil {
		aNew.Slice(0, nCons, 0, nVar).(*mat.Dense).Copy(A)
	}
	aNew.Slice(nCons, nCons+nIneq, 0, nVar).(*mat.Dense).Copy(G)
	slack := aNew.Slice(nCons, nCons+nIneq, nVar, nVar+nIneq).(*mat.Dense)
	for i := 0; i < nIneq; i++ {
		slack.Set(i, i, 1)
	}

	return cNew, aNew, bNew
}

// firstFractional returns the index of the first integrality-constrained
// variable whose relaxation value is fractional, or -1 if none.
func firstFractional(x []float64, integer []bool) int {
	for i, v := range x {
		if !integer[i] {
			continue
		}
		if math.Abs(v-math.Round(v)) > intTol {
			return i
		}
	}
	return -1
}

func dot(c, x []float64) float64 {
	var sum float64
	for i := range c {
		sum += c[i] * x[i]
	}
	return sum
}

// roundIntegral snaps integrality-constrained entries onto the integers
// they already sit within tolerance of.
func roundIntegral(x []float64, integer []bool) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if integer[i] {
			out[i] = math.Round(v)
		} else {
			out[i] = v
		}
	}
	return out
}
