package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"app/database"
	"app/models"
	"app/utils"
)

// CreateProductInput defines the body for creating a product.
type CreateProductInput struct {
	Name         string  `json:"name"`
	CostPrice    float64 `json:"costPrice"`
	SellingPrice float64 `json:"sellingPrice"`
	Stock        int     `json:"stock"`
	ReorderPoint int     `json:"reorderPoint"`
}

// HandleListProducts lists the account's products.
// GET /api/v1/products
func HandleListProducts(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	userID := userIDFromCtx(c)

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `
		SELECT id, user_id, name, cost_price, selling_price, stock, reorder_point, created_at, updated_at
		FROM products
		WHERE user_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(ctx, query, userID, pageSize, offset)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve products"})
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.CostPrice, &p.SellingPrice, &p.Stock, &p.ReorderPoint, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Printf("Error scanning product: %v", err)
			continue
		}
		products = append(products, p)
	}

	var totalItems int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE user_id = $1", userID).Scan(&totalItems); err != nil {
		log.Printf("Error counting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count products"})
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       products,
		"pagination": utils.CreatePagination(totalItems, page, pageSize),
	})
}

// HandleCreateProduct creates a new product for the account.
// POST /api/v1/products
func HandleCreateProduct(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	userID := userIDFromCtx(c)

	var input CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Product name is required"})
	}
	if input.Stock < 0 || input.CostPrice < 0 || input.SellingPrice < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Stock and prices must not be negative"})
	}

	query := `
		INSERT INTO products (user_id, name, cost_price, selling_price, stock, reorder_point)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, cost_price, selling_price, stock, reorder_point, created_at, updated_at
	`
	var p models.Product
	err := db.QueryRow(ctx, query, userID, input.Name, input.CostPrice, input.SellingPrice, input.Stock, input.ReorderPoint).Scan(
		&p.ID, &p.UserID, &p.Name, &p.CostPrice, &p.SellingPrice, &p.Stock, &p.ReorderPoint, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": p})
}
