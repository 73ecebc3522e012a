package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// bruteForce enumerates every integer assignment. Only usable for tiny
// instances; it is the ground truth the real solver is checked against.
func bruteForce(p Problem) Solution {
	best := Solution{Feasible: true, Quantities: make([]int, len(p.Profits))}
	q := make([]int, len(p.Profits))

	var walk func(i int, cost, profit float64)
	walk = func(i int, cost, profit float64) {
		if cost > p.Budget {
			return
		}
		if i == len(p.Profits) {
			if profit > best.Profit {
				best = Solution{
					Feasible:   true,
					Quantities: append([]int(nil), q...),
					Profit:     profit,
					Cost:       cost,
				}
			}
			return
		}
		for n := 0; n <= p.Upper[i]; n++ {
			q[i] = n
			walk(i+1, cost+float64(n)*p.Costs[i], profit+float64(n)*p.Profits[i])
		}
		q[i] = 0
	}
	walk(0, 0, 0)
	return best
}

func assertValid(t *testing.T, p Problem, s Solution) {
	t.Helper()
	assert.True(t, s.Feasible)
	assert.Len(t, s.Quantities, len(p.Profits))
	cost := 0.0
	for i, q := range s.Quantities {
		assert.GreaterOrEqual(t, q, 0)
		assert.LessOrEqual(t, q, p.Upper[i])
		cost += float64(q) * p.Costs[i]
	}
	assert.LessOrEqual(t, cost, p.Budget+1e-6)
}

func TestSolveTwoProductAllocation(t *testing.T) {
	// Budget comfortably covers both items at their bounds.
	p := Problem{
		Profits: []float64{200, 3000},
		Costs:   []float64{800, 5000},
		Upper:   []int{10, 3},
		Budget:  50000,
	}

	sol, err := BranchAndBound{}.Solve(context.Background(), p)
	assert.NoError(t, err)
	assertValid(t, p, sol)

	want := bruteForce(p)
	assert.InDelta(t, want.Profit, sol.Profit, 1e-6)
	assert.Equal(t, []int{10, 3}, sol.Quantities)
}

func TestSolveBeatsGreedyDensityFill(t *testing.T) {
	// Density order picks item A (10/6 > 8/5), wasting budget: A alone
	// earns 10 while two of B earn 16. Exact search must find 16.
	p := Problem{
		Profits: []float64{10, 8},
		Costs:   []float64{6, 5},
		Upper:   []int{1, 2},
		Budget:  10,
	}

	sol, err := BranchAndBound{}.Solve(context.Background(), p)
	assert.NoError(t, err)
	assertValid(t, p, sol)
	assert.InDelta(t, 16, sol.Profit, 1e-6)
	assert.Equal(t, []int{0, 2}, sol.Quantities)
}

func TestSolveMatchesBruteForce(t *testing.T) {
	cases := []Problem{
		{Profits: []float64{5, 3.5, 2}, Costs: []float64{4, 3, 1}, Upper: []int{2, 3, 5}, Budget: 9},
		{Profits: []float64{7, 7, 7}, Costs: []float64{3, 5, 9}, Upper: []int{1, 1, 1}, Budget: 11},
		{Profits: []float64{120, 95, 60, 40}, Costs: []float64{50, 40, 25, 15}, Upper: []int{3, 4, 6, 8}, Budget: 200},
		{Profits: []float64{1}, Costs: []float64{1000}, Upper: []int{5}, Budget: 999},
	}

	for _, p := range cases {
		sol, err := BranchAndBound{}.Solve(context.Background(), p)
		assert.NoError(t, err)
		assertValid(t, p, sol)

		want := bruteForce(p)
		assert.InDelta(t, want.Profit, sol.Profit, 1e-6, "problem %+v", p)
	}
}

func TestSolveProfitMonotonicInBudget(t *testing.T) {
	base := Problem{
		Profits: []float64{12, 30, 7},
		Costs:   []float64{10, 45, 4},
		Upper:   []int{4, 2, 10},
	}

	prev := -1.0
	for _, budget := range []float64{0, 10, 25, 50, 80, 120, 200} {
		p := base
		p.Budget = budget
		sol, err := BranchAndBound{}.Solve(context.Background(), p)
		assert.NoError(t, err)
		assertValid(t, p, sol)
		assert.GreaterOrEqual(t, sol.Profit, prev, "profit dropped when budget rose to %.0f", budget)
		prev = sol.Profit
	}
}

func TestSolveEmptyProblem(t *testing.T) {
	sol, err := BranchAndBound{}.Solve(context.Background(), Problem{Budget: 100})
	assert.NoError(t, err)
	assert.True(t, sol.Feasible)
	assert.Empty(t, sol.Quantities)
	assert.Zero(t, sol.Profit)
}

func TestSolveBudgetBelowEveryCost(t *testing.T) {
	p := Problem{
		Profits: []float64{50, 80},
		Costs:   []float64{100, 200},
		Upper:   []int{5, 5},
		Budget:  99,
	}

	sol, err := BranchAndBound{}.Solve(context.Background(), p)
	assert.NoError(t, err)
	assertValid(t, p, sol)
	assert.Zero(t, sol.Profit)
	assert.Equal(t, []int{0, 0}, sol.Quantities)
}

func TestSolveNegativeBudgetInfeasible(t *testing.T) {
	sol, err := BranchAndBound{}.Solve(context.Background(), Problem{
		Profits: []float64{1}, Costs: []float64{1}, Upper: []int{1}, Budget: -5,
	})
	assert.NoError(t, err)
	assert.False(t, sol.Feasible)
}

func TestSolveMismatchedSizes(t *testing.T) {
	_, err := BranchAndBound{}.Solve(context.Background(), Problem{
		Profits: []float64{1, 2}, Costs: []float64{1}, Upper: []int{1, 1}, Budget: 10,
	})
	assert.Error(t, err)
}

func TestSolveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BranchAndBound{}.Solve(ctx, Problem{
		Profits: []float64{1, 2}, Costs: []float64{1, 2}, Upper: []int{3, 3}, Budget: 5,
	})
	assert.ErrorIs(t, err, context.Canceled)
}
