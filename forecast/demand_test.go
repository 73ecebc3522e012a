package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func TestTieredShelfLevels(t *testing.T) {
	shelf := TieredShelf{}

	assert.Equal(t, 8, shelf.MinimumShelfLevel(models.Product{CostPrice: 500}))
	assert.Equal(t, 5, shelf.MinimumShelfLevel(models.Product{CostPrice: 8000}))
	assert.Equal(t, 2, shelf.MinimumShelfLevel(models.Product{CostPrice: 50000}))
}

func TestFlatShelfLevel(t *testing.T) {
	assert.Equal(t, 10, FlatShelf(10).MinimumShelfLevel(models.Product{CostPrice: 50000}))
}

func TestDemandUsesVelocity(t *testing.T) {
	p := models.Product{CostPrice: 500, Stock: 10}

	forecasted, restock := Demand(p, 1.5, 30, TieredShelf{})
	assert.Equal(t, 45, forecasted)
	assert.Equal(t, 35, restock)
}

func TestDemandAppliesShelfFloor(t *testing.T) {
	// Near-zero velocity over a short period would forecast 3 units; the
	// cheap-item floor lifts it to 8.
	p := models.Product{CostPrice: 100, Stock: 0}

	forecasted, restock := Demand(p, FallbackDailyVelocity, 7, TieredShelf{})
	assert.Equal(t, 8, forecasted)
	assert.Equal(t, 8, restock)
}

func TestDemandRestockNeverNegative(t *testing.T) {
	p := models.Product{CostPrice: 100, Stock: 500}

	forecasted, restock := Demand(p, 0.5, 30, TieredShelf{})
	assert.Equal(t, 15, forecasted)
	assert.Equal(t, 0, restock)
}
