package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"app/advisor"
)

// solveTimeout bounds the optimizer call; the solver itself has no
// cancellation semantics beyond the context.
const solveTimeout = 15 * time.Second

// HandleOptimizeBudget builds a budget-constrained restock plan.
// POST /api/v1/advisor/optimize
func HandleOptimizeBudget(c *fiber.Ctx) error {
	userID := userIDFromCtx(c)

	var req advisor.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	log.Printf("[ADVISOR] Budget: %.2f, Period: %d days", req.Budget, req.PeriodDays)

	ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
	defer cancel()

	plan, err := planner.BuildPlan(ctx, userID, req)
	if err != nil {
		if errors.Is(err, advisor.ErrInvalidBudget) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid budget provided"})
		}
		log.Printf("[ADVISOR] Plan build failed for account %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to build restock plan"})
	}

	log.Printf("[ADVISOR] %d recommendations, %.2f cost, %.2f profit",
		len(plan.Recommendations), plan.Summary.TotalCost, plan.Summary.TotalExpectedProfit)

	return c.JSON(fiber.Map{"status": "success", "data": plan})
}
