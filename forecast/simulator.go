package forecast

import (
	"math"
	"time"
)

// DefaultSimulationDays is how far ahead the stockout simulation looks.
const DefaultSimulationDays = 7

// Stockout walks forward day by day from start, draining stock at the
// seasonally adjusted rate, and returns the first day (1-based, relative
// to start) the product runs out. ok is false when stock survives the
// whole horizon.
//
// Predicted daily sales round up, never down: an early false positive is
// cheaper than a late stockout.
func Stockout(stock int, p Profile, start time.Time, horizonDays int) (day int, ok bool) {
	remaining := stock
	for d := 1; d <= horizonDays; d++ {
		wd := int(start.AddDate(0, 0, d).Weekday())
		predicted := int(math.Ceil(p.BaseVelocity * p.Seasonal[wd]))
		remaining -= predicted
		if remaining <= 0 {
			return d, true
		}
	}
	return 0, false
}
