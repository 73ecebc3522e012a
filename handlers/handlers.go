package handlers

import (
	"github.com/gofiber/fiber/v2"

	"app/advisor"
	"app/alerts"
)

// Engine collaborators shared by the handlers, wired once at startup.
var (
	planner     *advisor.Planner
	regenerator *alerts.Regenerator
)

// Init wires the handlers to the planning and alerting engines.
func Init(p *advisor.Planner, r *alerts.Regenerator) {
	planner = p
	regenerator = r
}

// userIDFromCtx pulls the authenticated account id set by the JWT middleware.
func userIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}
