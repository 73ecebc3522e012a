package advisor

import (
	"sort"

	"github.com/shopspring/decimal"

	"app/solver"
)

// Recommendation is one line of the restock plan.
type Recommendation struct {
	ProductID        string  `json:"productId"`
	Name             string  `json:"name"`
	Quantity         int     `json:"quantity"`
	Cost             float64 `json:"cost"`
	Profit           float64 `json:"profit"`
	CurrentStock     int     `json:"currentStock"`
	ForecastedDemand int     `json:"forecastedDemand"`
}

// Summary aggregates the plan.
type Summary struct {
	TotalCost           float64 `json:"totalCost"`
	TotalExpectedProfit float64 `json:"totalExpectedProfit"`
	BudgetUtilization   float64 `json:"budgetUtilization"`
	ProductsAnalyzed    int     `json:"productsAnalyzed"`
	ProductsRecommended int     `json:"productsRecommended"`
	Message             string  `json:"message,omitempty"`
}

// Plan is the full optimizer response.
type Plan struct {
	Recommendations []Recommendation `json:"recommendations"`
	Summary         Summary          `json:"summary"`
}

func emptyPlan(analyzed int, message string) Plan {
	return Plan{
		Recommendations: []Recommendation{},
		Summary:         Summary{ProductsAnalyzed: analyzed, Message: message},
	}
}

// formatPlan converts a solver assignment into a ranked plan. Money totals
// accumulate as decimals so per-line rounding noise never reaches the
// summary.
func formatPlan(viable []candidate, sol solver.Solution, budget float64, analyzed int) Plan {
	recs := make([]Recommendation, 0, len(viable))
	totalCost := decimal.Zero
	totalProfit := decimal.Zero

	for i, c := range viable {
		qty := sol.Quantities[i]
		if qty <= 0 {
			continue
		}
		cost := decimal.NewFromFloat(c.product.CostPrice).Mul(decimal.NewFromInt(int64(qty)))
		profit := decimal.NewFromFloat(c.profitPerUnit).Mul(decimal.NewFromInt(int64(qty)))
		totalCost = totalCost.Add(cost)
		totalProfit = totalProfit.Add(profit)

		recs = append(recs, Recommendation{
			ProductID:        c.product.ID,
			Name:             c.product.Name,
			Quantity:         qty,
			Cost:             cost.InexactFloat64(),
			Profit:           profit.InexactFloat64(),
			CurrentStock:     c.product.Stock,
			ForecastedDemand: c.profile.ForecastedDemand,
		})
	}

	sort.Slice(recs, func(a, b int) bool {
		if recs[a].Profit != recs[b].Profit {
			return recs[a].Profit > recs[b].Profit
		}
		return recs[a].ProductID < recs[b].ProductID
	})

	utilization := decimal.Zero
	if budget > 0 {
		utilization = totalCost.Div(decimal.NewFromFloat(budget)).Mul(decimal.NewFromInt(100))
	}

	return Plan{
		Recommendations: recs,
		Summary: Summary{
			TotalCost:           totalCost.InexactFloat64(),
			TotalExpectedProfit: totalProfit.InexactFloat64(),
			BudgetUtilization:   utilization.InexactFloat64(),
			ProductsAnalyzed:    analyzed,
			ProductsRecommended: len(recs),
		},
	}
}
