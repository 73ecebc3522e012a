// Package advisor turns sales history into a budget-constrained,
// profit-maximizing restock plan.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"app/forecast"
	"app/models"
	"app/solver"
)

// DefaultPeriodDays is the forecast horizon when the request leaves it out.
const DefaultPeriodDays = 30

// ErrInvalidBudget is returned before any computation when the requested
// budget is missing or non-positive.
var ErrInvalidBudget = errors.New("budget must be a positive number")

// DataSource is what the planner needs from storage, scoped per account.
type DataSource interface {
	ListProducts(ctx context.Context, userID string) ([]models.Product, error)
	ListSaleItemsSince(ctx context.Context, userID string, since time.Time) ([]models.SaleItem, error)
}

// Request is the optimizer entry point contract.
type Request struct {
	Budget     float64 `json:"budget"`
	PeriodDays int     `json:"periodDays"`
}

// Planner builds restock plans. It is stateless between calls; every plan
// is a pure function of the data the source returns.
type Planner struct {
	source DataSource
	solver solver.Solver
	shelf  forecast.ShelfLevelPolicy
	now    func() time.Time
}

func NewPlanner(source DataSource, s solver.Solver, shelf forecast.ShelfLevelPolicy) *Planner {
	return &Planner{source: source, solver: s, shelf: shelf, now: time.Now}
}

// candidate is a product enriched with its demand profile and margin.
type candidate struct {
	product       models.Product
	profile       forecast.DemandProfile
	profitPerUnit float64
}

// BuildPlan forecasts demand over the requested period and allocates the
// budget across products needing restock, maximizing expected profit.
// "Nothing to recommend" outcomes are successful plans with a summary
// message, never errors.
func (pl *Planner) BuildPlan(ctx context.Context, userID string, req Request) (Plan, error) {
	if req.Budget <= 0 {
		return Plan{}, ErrInvalidBudget
	}
	periodDays := req.PeriodDays
	if periodDays <= 0 {
		periodDays = DefaultPeriodDays
	}
	now := pl.now()

	products, err := pl.source.ListProducts(ctx, userID)
	if err != nil {
		return Plan{}, fmt.Errorf("listing products: %w", err)
	}
	if len(products) == 0 {
		return emptyPlan(len(products), "No products found for this account"), nil
	}

	since := now.AddDate(0, 0, -forecast.PlanningWindowDays)
	items, err := pl.source.ListSaleItemsSince(ctx, userID, since)
	if err != nil {
		return Plan{}, fmt.Errorf("listing sale items: %w", err)
	}
	history := forecast.Aggregate(items)

	viable := make([]candidate, 0, len(products))
	for _, p := range products {
		c := pl.enrich(p, history[p.ID], periodDays, now)
		// Loss makers are never recommended, no matter how much budget
		// is left over.
		if p.CostPrice <= req.Budget && c.profile.RestockNeeded > 0 && c.profitPerUnit > 0 {
			viable = append(viable, c)
		}
	}

	log.Printf("[ADVISOR] %d/%d products viable for optimization", len(viable), len(products))

	if len(viable) == 0 {
		return emptyPlan(len(products), "No products need restocking or all exceed budget"), nil
	}

	problem := solver.Problem{
		Profits: make([]float64, len(viable)),
		Costs:   make([]float64, len(viable)),
		Upper:   make([]int, len(viable)),
		Budget:  req.Budget,
	}
	for i, c := range viable {
		problem.Profits[i] = c.profitPerUnit
		problem.Costs[i] = c.product.CostPrice
		problem.Upper[i] = c.profile.RestockNeeded
	}

	sol, err := pl.solver.Solve(ctx, problem)
	if err != nil {
		return Plan{}, fmt.Errorf("solving allocation: %w", err)
	}
	if !sol.Feasible {
		return emptyPlan(len(products), "No feasible restock plan within the current budget"), nil
	}

	return formatPlan(viable, sol, req.Budget, len(products)), nil
}

// enrich computes the demand profile for one product over the planning
// window. Products with zero window sales get the fallback velocity so
// new items still receive a purchasable forecast.
func (pl *Planner) enrich(p models.Product, h forecast.History, periodDays int, now time.Time) candidate {
	activeDays := forecast.ActiveDays(p.CreatedAt, now, forecast.PlanningWindowDays)
	prof := forecast.Estimate(h, activeDays)

	velocity := prof.BaseVelocity
	if h.TotalSold == 0 {
		velocity = forecast.FallbackDailyVelocity
	}

	forecasted, restock := forecast.Demand(p, velocity, periodDays, pl.shelf)
	return candidate{
		product: p,
		profile: forecast.DemandProfile{
			DailyVelocity:    velocity,
			Seasonal:         prof.Seasonal,
			ForecastedDemand: forecasted,
			RestockNeeded:    restock,
		},
		profitPerUnit: p.ProfitPerUnit(),
	}
}
