package forecast

import (
	"math"
	"time"

	"app/models"
)

const (
	// DefaultWindowDays is the trailing sales window used by the alert
	// pipeline.
	DefaultWindowDays = 30
	// PlanningWindowDays is the wider window used by the budget planner.
	PlanningWindowDays = 90

	// Seasonal factors are clamped so one outlier day cannot destabilize
	// the forecast.
	SeasonalFactorMin = 0.2
	SeasonalFactorMax = 3.0

	// FallbackDailyVelocity is assumed by the planning pipeline for
	// products with no sales in the window: roughly one unit every three
	// days. The alert pipeline stays at zero instead, so brand-new items
	// do not trigger stockout noise.
	FallbackDailyVelocity = 0.3
)

// History holds a product's aggregated sales within a trailing window,
// bucketed by calendar weekday (Sunday = 0).
type History struct {
	TotalSold      int
	QtyByWeekday   [7]int
	SalesByWeekday [7]int
}

// Aggregate groups sale line items by product and weekday of sale.
// Line items missing from the map simply had no sales in the window.
func Aggregate(items []models.SaleItem) map[string]History {
	byProduct := make(map[string]History)
	for _, item := range items {
		h := byProduct[item.ProductID]
		wd := int(item.SaleDate.Weekday())
		h.TotalSold += item.Quantity
		h.QtyByWeekday[wd] += item.Quantity
		h.SalesByWeekday[wd]++
		byProduct[item.ProductID] = h
	}
	return byProduct
}

// ActiveDays is the number of days a product has been sellable within the
// window: capped at windowDays, floored at one.
func ActiveDays(createdAt, now time.Time, windowDays int) int {
	days := int(math.Ceil(now.Sub(createdAt).Hours() / 24))
	if days < 1 {
		days = 1
	}
	if days > windowDays {
		days = windowDays
	}
	return days
}

// Profile is the demand estimate for one product: a baseline daily
// sell-through rate plus one seasonal multiplier per weekday.
type Profile struct {
	BaseVelocity float64
	Seasonal     [7]float64
}

// Estimate converts aggregated history into a demand profile. Weekdays
// with no recorded sales default to a neutral 1.0 factor. Deterministic:
// the same history and activeDays always produce the same profile.
func Estimate(h History, activeDays int) Profile {
	p := Profile{BaseVelocity: float64(h.TotalSold) / float64(activeDays)}
	for d := 0; d < 7; d++ {
		if h.SalesByWeekday[d] == 0 || p.BaseVelocity == 0 {
			p.Seasonal[d] = 1.0
			continue
		}
		avg := float64(h.QtyByWeekday[d]) / float64(h.SalesByWeekday[d])
		p.Seasonal[d] = clamp(avg/p.BaseVelocity, SeasonalFactorMin, SeasonalFactorMax)
	}
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
