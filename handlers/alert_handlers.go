package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"app/database"
	"app/models"
)

// HandleListAlerts lists the account's alerts, newest first.
// GET /api/v1/alerts
func HandleListAlerts(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	userID := userIDFromCtx(c)

	status := c.Query("status", models.AlertStatusActive)

	query := `
		SELECT id, user_id, title, description, priority, action, type, status, created_at
		FROM alerts
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC
	`
	rows, err := db.Query(ctx, query, userID, status)
	if err != nil {
		log.Printf("Error listing alerts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve alerts"})
	}
	defer rows.Close()

	alertList := make([]models.Alert, 0)
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Priority, &a.Action, &a.Type, &a.Status, &a.CreatedAt); err != nil {
			log.Printf("Error scanning alert: %v", err)
			continue
		}
		alertList = append(alertList, a)
	}

	return c.JSON(fiber.Map{"status": "success", "data": alertList})
}

// HandleResolveAlert marks one alert as resolved. Resolution is a user
// action; the engine itself only ever produces active alerts.
// PUT /api/v1/alerts/:alertId/resolve
func HandleResolveAlert(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	userID := userIDFromCtx(c)
	alertID := c.Params("alertId")

	query := `UPDATE alerts SET status = $1 WHERE id = $2 AND user_id = $3`
	res, err := db.Exec(ctx, query, models.AlertStatusResolved, alertID, userID)
	if err != nil {
		log.Printf("Error resolving alert %s: %v", alertID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to resolve alert"})
	}
	if res.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Alert not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Alert resolved"})
}
