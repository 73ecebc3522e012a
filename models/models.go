package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Core Models ---

// User is an account owner. Every product, sale and alert belongs to
// exactly one user.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a single stocked item. Stock is decremented by sale
// transactions and incremented by restocks; it never goes negative.
type Product struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	CostPrice    float64   `json:"cost_price"`
	SellingPrice float64   `json:"selling_price"`
	Stock        int       `json:"stock"`
	ReorderPoint int       `json:"reorder_point"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfitPerUnit is the margin on one unit at current prices. May be zero
// or negative.
func (p Product) ProfitPerUnit() float64 {
	return p.SellingPrice - p.CostPrice
}

// Sale is a completed transaction.
type Sale struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	SaleDate    time.Time  `json:"sale_date"`
	TotalAmount float64    `json:"total_amount"`
	CreatedAt   time.Time  `json:"created_at"`
	Items       []SaleItem `json:"items,omitempty"`
}

// SaleItem is an individual line within a Sale. Unit price and cost are
// recorded at sale time and never recomputed from the current product.
type SaleItem struct {
	ID              string  `json:"id"`
	SaleID          string  `json:"sale_id"`
	ProductID       string  `json:"product_id"`
	Quantity        int     `json:"quantity"`
	UnitPriceAtSale float64 `json:"unit_price_at_sale"`
	UnitCostAtSale  float64 `json:"unit_cost_at_sale"`
	Subtotal        float64 `json:"subtotal"`
	// SaleDate is populated when line items are loaded joined to their
	// parent sale, which is how the forecasting window queries read them.
	SaleDate time.Time `json:"sale_date,omitempty"`
	ItemName *string   `json:"item_name,omitempty"`
}

// --- Alerts ---

// Machine-generated alert types. Alerts of these types are regenerated
// wholesale after every sale; user resolution is the only other mutation.
const (
	AlertTypeStockoutWarning = "stockout_warning"
	AlertTypeLowStock        = "low_stock"
)

// Alert priorities, most severe first.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

const (
	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)

// Alert is a prioritized notification about a product condition.
type Alert struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Action      string    `json:"action"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
