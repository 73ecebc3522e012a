package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"app/models"
)

// Store is the PostgreSQL implementation of the data access the
// forecasting, alerting and planning engines depend on.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListProducts returns every product owned by the account.
func (s *Store) ListProducts(ctx context.Context, userID string) ([]models.Product, error) {
	query := `
		SELECT id, user_id, name, cost_price, selling_price, stock, reorder_point, created_at, updated_at
		FROM products
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.CostPrice, &p.SellingPrice, &p.Stock, &p.ReorderPoint, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListSaleItemsSince returns the account's sale line items joined to the
// parent sale date, restricted to sales on or after since.
func (s *Store) ListSaleItemsSince(ctx context.Context, userID string, since time.Time) ([]models.SaleItem, error) {
	query := `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price_at_sale, si.unit_cost_at_sale, si.subtotal, s.sale_date
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.id
		WHERE s.user_id = $1 AND s.sale_date >= $2
	`
	rows, err := s.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("querying sale items: %w", err)
	}
	defer rows.Close()

	items := make([]models.SaleItem, 0)
	for rows.Next() {
		var it models.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPriceAtSale, &it.UnitCostAtSale, &it.Subtotal, &it.SaleDate); err != nil {
			return nil, fmt.Errorf("scanning sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ReplaceAlerts atomically swaps the account's alerts of the given types
// for the new set. The transaction either fully commits or fully rolls
// back; a concurrent reader never sees a half-replaced state.
func (s *Store) ReplaceAlerts(ctx context.Context, userID string, types []string, alerts []models.Alert) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM alerts WHERE user_id = $1 AND type = ANY($2)`, userID, types); err != nil {
		return fmt.Errorf("deleting stale alerts: %w", err)
	}

	insert := `
		INSERT INTO alerts (user_id, title, description, priority, action, type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, a := range alerts {
		if _, err := tx.Exec(ctx, insert, a.UserID, a.Title, a.Description, a.Priority, a.Action, a.Type, a.Status); err != nil {
			return fmt.Errorf("inserting alert: %w", err)
		}
	}

	return tx.Commit(ctx)
}
