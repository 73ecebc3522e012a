package forecast

import (
	"math"

	"app/models"
)

// DemandProfile is the derived, per-product output of the planning
// pipeline. It is never persisted.
type DemandProfile struct {
	DailyVelocity    float64    `json:"daily_velocity"`
	Seasonal         [7]float64 `json:"seasonal_factors"`
	ForecastedDemand int        `json:"forecasted_demand"`
	RestockNeeded    int        `json:"restock_needed"`
}

// Demand projects total units needed over periodDays and the restock gap
// against current stock. The shelf policy provides a floor so even
// near-zero-velocity products keep a presentable stock level.
func Demand(p models.Product, dailyVelocity float64, periodDays int, shelf ShelfLevelPolicy) (forecasted, restockNeeded int) {
	forecasted = int(math.Ceil(dailyVelocity * float64(periodDays)))
	if floor := shelf.MinimumShelfLevel(p); forecasted < floor {
		forecasted = floor
	}
	restockNeeded = forecasted - p.Stock
	if restockNeeded < 0 {
		restockNeeded = 0
	}
	return forecasted, restockNeeded
}
