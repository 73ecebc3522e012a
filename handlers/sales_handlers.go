package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"app/database"
	"app/models"
	"app/utils"
)

// CreateSaleInput defines the expected input for creating a new sale.
type CreateSaleInput struct {
	Items []SaleItemInput `json:"items"`
}

// SaleItemInput is one requested line. Unit price and cost are captured
// from the product row inside the transaction, not trusted from the client.
type SaleItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// HandleCreateSale records a sale. Stock decrements and the sale insert
// happen in a single transaction; a line that would drive stock negative
// fails the whole sale with 409 instead. On commit, alert regeneration is
// queued in the background — its failures never surface here.
// POST /api/v1/sales
func HandleCreateSale(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	userID := userIDFromCtx(c)

	var input CreateSaleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if len(input.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "A sale needs at least one item"})
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Item quantities must be positive"})
		}
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	// Decrement stock first, guarded in SQL so concurrent sales of the
	// same product cannot oversell.
	type pricedItem struct {
		input    SaleItemInput
		price    float64
		cost     float64
		subtotal decimal.Decimal
	}
	priced := make([]pricedItem, 0, len(input.Items))
	total := decimal.Zero

	decrementQuery := `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND stock >= $1
		RETURNING selling_price, cost_price
	`
	for _, item := range input.Items {
		var price, cost float64
		if err := tx.QueryRow(ctx, decrementQuery, item.Quantity, item.ProductID, userID).Scan(&price, &cost); err != nil {
			if err == pgx.ErrNoRows {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Insufficient stock for product " + item.ProductID})
			}
			log.Printf("Error decrementing stock for product %s: %v", item.ProductID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update stock"})
		}

		subtotal := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)
		priced = append(priced, pricedItem{input: item, price: price, cost: cost, subtotal: subtotal})
	}

	var sale models.Sale
	sale.UserID = userID
	sale.TotalAmount = total.InexactFloat64()

	saleQuery := `
		INSERT INTO sales (user_id, total_amount)
		VALUES ($1, $2)
		RETURNING id, sale_date, created_at
	`
	if err := tx.QueryRow(ctx, saleQuery, userID, sale.TotalAmount).Scan(&sale.ID, &sale.SaleDate, &sale.CreatedAt); err != nil {
		log.Printf("Error creating sale: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create sale"})
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, product_id, quantity, unit_price_at_sale, unit_cost_at_sale, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for _, p := range priced {
		item := models.SaleItem{
			SaleID:          sale.ID,
			ProductID:       p.input.ProductID,
			Quantity:        p.input.Quantity,
			UnitPriceAtSale: p.price,
			UnitCostAtSale:  p.cost,
			Subtotal:        p.subtotal.InexactFloat64(),
		}
		if err := tx.QueryRow(ctx, itemQuery, sale.ID, item.ProductID, item.Quantity, item.UnitPriceAtSale, item.UnitCostAtSale, item.Subtotal).Scan(&item.ID); err != nil {
			log.Printf("Error creating sale item: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create sale item"})
		}
		sale.Items = append(sale.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	// Fire-and-forget: the sale succeeded regardless of what happens to
	// the alert refresh.
	regenerator.Enqueue(userID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": sale})
}

// HandleListSales lists the account's sales with their line items.
// GET /api/v1/sales
func HandleListSales(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	userID := userIDFromCtx(c)

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	query := `
		SELECT id, user_id, sale_date, total_amount, created_at
		FROM sales
		WHERE user_id = $1
		ORDER BY sale_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(ctx, query, userID, pageSize, offset)
	if err != nil {
		log.Printf("Error listing sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve sales"})
	}
	defer rows.Close()

	sales := make([]models.Sale, 0)
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(&sale.ID, &sale.UserID, &sale.SaleDate, &sale.TotalAmount, &sale.CreatedAt); err != nil {
			log.Printf("Error scanning sale: %v", err)
			continue
		}
		sales = append(sales, sale)
	}
	rows.Close()

	itemsQuery := `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price_at_sale, si.unit_cost_at_sale, si.subtotal, p.name
		FROM sale_items si
		JOIN products p ON si.product_id = p.id
		WHERE si.sale_id = $1
	`
	for i := range sales {
		itemRows, err := db.Query(ctx, itemsQuery, sales[i].ID)
		if err != nil {
			log.Printf("Error fetching sale items for sale %s: %v", sales[i].ID, err)
			sales[i].Items = []models.SaleItem{}
			continue
		}
		items := make([]models.SaleItem, 0)
		for itemRows.Next() {
			var item models.SaleItem
			if err := itemRows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPriceAtSale, &item.UnitCostAtSale, &item.Subtotal, &item.ItemName); err != nil {
				log.Printf("Error scanning sale item: %v", err)
				continue
			}
			items = append(items, item)
		}
		itemRows.Close()
		sales[i].Items = items
	}

	var totalItems int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM sales WHERE user_id = $1", userID).Scan(&totalItems); err != nil {
		log.Printf("Error counting sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count sales"})
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       sales,
		"pagination": utils.CreatePagination(totalItems, page, pageSize),
	})
}
