// Package alerts classifies simulated stockout outcomes into prioritized
// notifications and keeps the persisted alert set consistent with the
// latest sales data.
package alerts

import (
	"context"
	"fmt"
	"time"

	"app/forecast"
	"app/models"
)

const (
	// AlertThresholdDays: only stockouts predicted within this many days
	// produce an alert.
	AlertThresholdDays = 3
	// LowStockUnits and LowStockVelocity gate the fallback low-stock rule.
	LowStockUnits    = 3
	LowStockVelocity = 0.5
)

// GeneratedTypes are the alert types this package owns. Reconciliation
// deletes and reinserts exactly these; user-created alerts are untouched.
var GeneratedTypes = []string{models.AlertTypeStockoutWarning, models.AlertTypeLowStock}

// DataSource supplies the account's products and trailing sales window.
type DataSource interface {
	ListProducts(ctx context.Context, userID string) ([]models.Product, error)
	ListSaleItemsSince(ctx context.Context, userID string, since time.Time) ([]models.SaleItem, error)
}

// Store persists alerts. ReplaceAlerts must delete every existing alert of
// the given types for the account and insert the new set atomically.
type Store interface {
	ReplaceAlerts(ctx context.Context, userID string, types []string, alerts []models.Alert) error
}

// Generator recomputes the machine-generated alert set for an account.
// Regeneration is idempotent: unchanged input data yields the same alerts.
type Generator struct {
	source DataSource
	store  Store
	now    func() time.Time
}

func NewGenerator(source DataSource, store Store) *Generator {
	return &Generator{source: source, store: store, now: time.Now}
}

// Regenerate rebuilds and persists all machine-generated alerts for the
// account, replacing whatever was there before. An alert a user has not
// resolved disappears once its condition no longer holds.
func (g *Generator) Regenerate(ctx context.Context, userID string) ([]models.Alert, error) {
	products, err := g.source.ListProducts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	now := g.now()
	since := now.AddDate(0, 0, -forecast.DefaultWindowDays)
	items, err := g.source.ListSaleItemsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("listing sale items: %w", err)
	}
	history := forecast.Aggregate(items)

	active := make([]models.Alert, 0)
	for _, p := range products {
		if a, ok := g.evaluate(p, history[p.ID], now); ok {
			active = append(active, a)
		}
	}

	if err := g.store.ReplaceAlerts(ctx, userID, GeneratedTypes, active); err != nil {
		return nil, fmt.Errorf("replacing alerts: %w", err)
	}
	return active, nil
}

// evaluate applies the alert rules to one product, most severe rule first.
// This only ever produces active alerts; resolution happens elsewhere.
func (g *Generator) evaluate(p models.Product, h forecast.History, now time.Time) (models.Alert, bool) {
	activeDays := forecast.ActiveDays(p.CreatedAt, now, forecast.DefaultWindowDays)
	prof := forecast.Estimate(h, activeDays)

	// Nothing selling and something on the shelf: safe, no alert.
	if prof.BaseVelocity == 0 && p.Stock > 0 {
		return models.Alert{}, false
	}

	day, out := forecast.Stockout(p.Stock, prof, now, forecast.DefaultSimulationDays)
	if out && day <= AlertThresholdDays {
		priority := models.PriorityMedium
		title := p.Name + " - Plan Restock"
		switch day {
		case 1:
			priority = models.PriorityUrgent
			title = p.Name + " - Critical"
		case 2:
			priority = models.PriorityHigh
		}
		plural := ""
		if day > 1 {
			plural = "s"
		}
		weekday := now.AddDate(0, 0, day).Weekday()
		return models.Alert{
			UserID:      p.UserID,
			Title:       title,
			Description: fmt.Sprintf("Predicted to run out by %s (%d day%s)", weekday, day, plural),
			Priority:    priority,
			Action:      "Restock",
			Type:        models.AlertTypeStockoutWarning,
			Status:      models.AlertStatusActive,
		}, true
	}

	if p.Stock <= LowStockUnits && prof.BaseVelocity > LowStockVelocity {
		return models.Alert{
			UserID:      p.UserID,
			Title:       p.Name + " - Low Stock",
			Description: fmt.Sprintf("Only %d units left.", p.Stock),
			Priority:    models.PriorityMedium,
			Action:      "Restock",
			Type:        models.AlertTypeLowStock,
			Status:      models.AlertStatusActive,
		}, true
	}

	return models.Alert{}, false
}
