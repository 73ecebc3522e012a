package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	// intTol decides when a relaxation value counts as integral.
	intTol = 1e-5
	// maxNodes caps the search; small-retail instances stay far below it.
	maxNodes = 200000
)

// BranchAndBound is an exact solver: depth-first branch and bound, with
// each node's LP relaxation solved by gonum's simplex method. A greedy
// density fill seeds the incumbent so obviously good plans prune early,
// but the search never stops at the greedy answer.
type BranchAndBound struct{}

type bbNode struct {
	lo []int
	hi []int
}

func (BranchAndBound) Solve(ctx context.Context, p Problem) (Solution, error) {
	n := len(p.Profits)
	if len(p.Costs) != n || len(p.Upper) != n {
		return Solution{}, fmt.Errorf("solver: mismatched problem sizes (%d profits, %d costs, %d bounds)", n, len(p.Costs), len(p.Upper))
	}
	if p.Budget < 0 {
		return Solution{Feasible: false}, nil
	}
	if n == 0 {
		return Solution{Feasible: true, Quantities: []int{}}, nil
	}

	eps := 1e-7 * (1 + math.Abs(p.Budget))

	best := greedyIncumbent(p)

	root := bbNode{lo: make([]int, n), hi: append([]int(nil), p.Upper...)}
	stack := []bbNode{root}
	nodes := 0

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return Solution{}, err
		}
		nodes++
		if nodes > maxNodes {
			break
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fixedCost, fixedProfit := 0.0, 0.0
		for i := 0; i < n; i++ {
			fixedCost += float64(node.lo[i]) * p.Costs[i]
			fixedProfit += float64(node.lo[i]) * p.Profits[i]
		}
		if fixedCost > p.Budget+eps {
			continue
		}

		free := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if node.hi[i] > node.lo[i] {
				free = append(free, i)
			}
		}
		if len(free) == 0 {
			best = better(best, evaluate(p, node.lo))
			continue
		}

		relaxed, bound, err := relax(p, node, free, p.Budget-fixedCost)
		if err != nil {
			if errors.Is(err, lp.ErrInfeasible) {
				continue
			}
			return Solution{}, fmt.Errorf("solver: LP relaxation failed: %w", err)
		}
		if fixedProfit+bound <= best.Profit+eps {
			continue
		}

		branchVar, frac := -1, 0.0
		for k := range free {
			f := math.Abs(relaxed[k] - math.Round(relaxed[k]))
			if f > intTol && f > frac {
				branchVar, frac = k, f
			}
		}

		if branchVar == -1 {
			// Integral relaxation: this node is solved.
			q := append([]int(nil), node.lo...)
			for k, i := range free {
				q[i] += int(math.Round(relaxed[k]))
			}
			best = better(best, evaluate(p, q))
			continue
		}

		i := free[branchVar]
		v := relaxed[branchVar]

		down := bbNode{lo: append([]int(nil), node.lo...), hi: append([]int(nil), node.hi...)}
		down.hi[i] = node.lo[i] + int(math.Floor(v))

		up := bbNode{lo: append([]int(nil), node.lo...), hi: append([]int(nil), node.hi...)}
		up.lo[i] = node.lo[i] + int(math.Ceil(v))

		// Explore the rounded-up side first: profitable items tend to
		// saturate, so this finds strong incumbents sooner.
		stack = append(stack, down, up)
	}

	return best, nil
}

// relax solves the node's LP relaxation over the free variables only,
// after shifting out lower bounds. The problem is converted to standard
// equality form: one budget row with a slack variable, one upper-bound
// row per free variable.
func relax(p Problem, node bbNode, free []int, budgetLeft float64) (values []float64, bound float64, err error) {
	if budgetLeft < 0 {
		return nil, 0, lp.ErrInfeasible
	}

	n := len(free)
	cols := 2*n + 1 // free vars, budget slack, bound slacks
	rows := n + 1

	c := make([]float64, cols)
	b := make([]float64, rows)
	a := mat.NewDense(rows, cols, nil)

	b[0] = budgetLeft
	a.Set(0, n, 1) // budget slack
	for k, i := range free {
		c[k] = -p.Profits[i]
		a.Set(0, k, p.Costs[i])
		a.Set(k+1, k, 1)
		a.Set(k+1, n+1+k, 1)
		b[k+1] = float64(node.hi[i] - node.lo[i])
	}

	_, x, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		return nil, 0, err
	}

	values = make([]float64, n)
	for k, i := range free {
		v := x[k]
		if v < 0 {
			v = 0
		}
		if max := float64(node.hi[i] - node.lo[i]); v > max {
			v = max
		}
		values[k] = v
		bound += v * p.Profits[i]
	}
	return values, bound, nil
}

// greedyIncumbent fills by profit density to seed the bound. Not exact on
// its own; branch and bound refines it.
func greedyIncumbent(p Problem) Solution {
	order := make([]int, len(p.Profits))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		da := density(p.Profits[order[a]], p.Costs[order[a]])
		db := density(p.Profits[order[b]], p.Costs[order[b]])
		return da > db
	})

	q := make([]int, len(p.Profits))
	left := p.Budget
	for _, i := range order {
		if p.Costs[i] <= 0 {
			q[i] = p.Upper[i]
			continue
		}
		take := int(math.Floor(left / p.Costs[i]))
		if take > p.Upper[i] {
			take = p.Upper[i]
		}
		if take > 0 {
			q[i] = take
			left -= float64(take) * p.Costs[i]
		}
	}
	return evaluate(p, q)
}

func density(profit, cost float64) float64 {
	if cost <= 0 {
		return math.Inf(1)
	}
	return profit / cost
}

func evaluate(p Problem, q []int) Solution {
	s := Solution{Feasible: true, Quantities: q}
	for i, qty := range q {
		s.Profit += float64(qty) * p.Profits[i]
		s.Cost += float64(qty) * p.Costs[i]
	}
	return s
}

func better(a, b Solution) Solution {
	if b.Profit > a.Profit {
		return b
	}
	return a
}
