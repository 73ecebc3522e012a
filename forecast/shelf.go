package forecast

import "app/models"

// ShelfLevelPolicy decides the minimum presentable stock level for a
// product. Exactly one policy is active per planner; they are not merged.
type ShelfLevelPolicy interface {
	MinimumShelfLevel(p models.Product) int
}

// TieredShelf floors stock by unit cost: cheap items get a deeper shelf,
// expensive ones a shallow one. This is the default policy.
type TieredShelf struct{}

func (TieredShelf) MinimumShelfLevel(p models.Product) int {
	switch {
	case p.CostPrice > 20000:
		return 2
	case p.CostPrice > 5000:
		return 5
	default:
		return 8
	}
}

// FlatShelf applies the same floor to every product regardless of cost.
type FlatShelf int

func (f FlatShelf) MinimumShelfLevel(models.Product) int {
	return int(f)
}
