// Package solver provides exact integer solutions to the budget
// allocation problem: a bounded knapsack with one linear budget
// constraint. The concrete implementation is swappable behind the Solver
// interface.
package solver

import "context"

// Problem is a bounded knapsack instance. All three slices are parallel
// and must have the same length. Profits are expected to be positive;
// zero-profit items are legal but never improve the objective.
type Problem struct {
	Profits []float64
	Costs   []float64
	Upper   []int
	Budget  float64
}

// Solution is an integer assignment. Quantities is parallel to the
// problem's slices; Profit and Cost are the exact objective and spend.
type Solution struct {
	Feasible   bool
	Quantities []int
	Profit     float64
	Cost       float64
}

// Solver finds a profit-maximizing integer assignment for a Problem.
type Solver interface {
	Solve(ctx context.Context, p Problem) (Solution, error)
}
