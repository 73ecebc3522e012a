package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"app/database"
	"app/models"
)

// HandleGetDashboardStats returns the account's headline figures:
// catalogue size, stock valued at cost, trailing 30-day revenue and
// profit, and the active alert count.
// GET /api/v1/dashboard/stats
func HandleGetDashboardStats(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	userID := userIDFromCtx(c)

	var productCount int
	var stockValue float64
	err := db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(stock * cost_price), 0) FROM products WHERE user_id = $1`,
		userID,
	).Scan(&productCount, &stockValue)
	if err != nil {
		log.Printf("Error loading product stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load stats"})
	}

	var revenue, profit float64
	err = db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(si.subtotal), 0),
			COALESCE(SUM((si.unit_price_at_sale - si.unit_cost_at_sale) * si.quantity), 0)
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.id
		WHERE s.user_id = $1 AND s.sale_date >= NOW() - INTERVAL '30 days'
	`, userID).Scan(&revenue, &profit)
	if err != nil {
		log.Printf("Error loading sales stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load stats"})
	}

	var activeAlerts int
	err = db.QueryRow(ctx,
		`SELECT COUNT(*) FROM alerts WHERE user_id = $1 AND status = $2`,
		userID, models.AlertStatusActive,
	).Scan(&activeAlerts)
	if err != nil {
		log.Printf("Error counting active alerts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load stats"})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"productCount": productCount,
			"stockValue":   stockValue,
			"revenue30d":   revenue,
			"profit30d":    profit,
			"activeAlerts": activeAlerts,
		},
	})
}
