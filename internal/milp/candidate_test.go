package milp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"milpgcd/internal/gcd"
	"milpgcd/internal/solver"
	"milpgcd/internal/verify"
)

func TestCandidate_ConcreteCases(t *testing.T) {
	cand := Candidate{NodeBudget: 2000}
	for _, c := range []struct{ a, b, d int64 }{
		{13, 19, 1},
		{3, 5, 1},
		{9, 27, 9},
		{2, 2, 2},
		{48, 18, 6},
		{97, 89, 1},
	} {
		res, err := cand.Solve(context.Background(), c.a, c.b, verify.Config{})
		require.NoError(t, err, "Solve(%d, %d)", c.a, c.b)
		assert.Equal(t, c.d, res.GCD, "gcd(%d, %d)", c.a, c.b)
	}
}

func TestCandidate_StatusMetadata(t *testing.T) {
	res, err := Candidate{NodeBudget: 2000}.Solve(context.Background(), 48, 18, verify.Config{})
	require.NoError(t, err)

	assert.Equal(t, "bnb", res.Field("solver"))
	assert.Equal(t, "INTEGER OPTIMAL", res.Field("status"))
	assert.Equal(t, "6", res.Field("objective"))
	assert.NotEqual(t, verify.NotAvailable, res.Field("nodes"))
}

// The generative differential property: the MILP route must agree with the
// Euclidean oracle everywhere in the bounded domain. rapid shrinks any
// counterexample to a minimal failing pair.
func TestCandidate_MatchesOracle(t *testing.T) {
	cand := Candidate{NodeBudget: 10000}
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int64Range(1, 50).Draw(t, "a")
		b := rapid.Int64Range(1, 50).Draw(t, "b")

		want, err := gcd.GCD(a, b)
		if err != nil {
			t.Fatalf("oracle: %v", err)
		}
		res, err := cand.Solve(context.Background(), a, b, verify.Config{})
		if err != nil {
			t.Fatalf("candidate failed on (%d, %d): %v (status %s)",
				a, b, err, res.Field("status"))
		}
		if res.GCD != want {
			t.Fatalf("gcd(%d, %d): oracle %d, bnb %d (status %s)",
				a, b, want, res.GCD, res.Field("status"))
		}
	})
}

func TestCandidate_CheckIntegration(t *testing.T) {
	cand := Candidate{NodeBudget: 2000}
	out, err := verify.Check(context.Background(), cand, 48, 18, verify.Config{TimeLimit: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, int64(6), out.Oracle)
	assert.Equal(t, int64(6), out.Result.GCD)
}

func TestCandidate_ExportsModel(t *testing.T) {
	export := filepath.Join(t.TempDir(), "model.lp")
	_, err := Candidate{NodeBudget: 2000}.Solve(context.Background(), 9, 27, verify.Config{OutputPath: export})
	require.NoError(t, err)

	got, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.Equal(t, string(solver.FormatLP(9, 27)), string(got))
}

func TestCandidate_RejectsNonPositiveInputs(t *testing.T) {
	_, err := Candidate{}.Solve(context.Background(), 0, 7, verify.Config{})
	assert.Error(t, err)
}

func TestCandidate_NodeBudgetSurfacesAsFailure(t *testing.T) {
	// gcd(6, 10) = 2, so the root relaxation optimum of 1 is unattainable
	// by integer points and one node can never close the search
	cand := Candidate{NodeBudget: 1}
	res, err := cand.Solve(context.Background(), 6, 10, verify.Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNodeBudget))
	assert.Equal(t, "NODE BUDGET EXHAUSTED", res.Field("status"))
}
