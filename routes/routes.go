package routes

import (
	"app/handlers"
	"app/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", handlers.HandleRegister)
	auth.Post("/login", handlers.HandleLogin)

	// --- Products ---
	products := api.Group("/products", middleware.JWTMiddleware)
	products.Get("/", handlers.HandleListProducts)
	products.Post("/", handlers.HandleCreateProduct)

	// --- Sales ---
	sales := api.Group("/sales", middleware.JWTMiddleware)
	sales.Get("/", handlers.HandleListSales)
	sales.Post("/", handlers.HandleCreateSale)

	// --- Alerts ---
	alerts := api.Group("/alerts", middleware.JWTMiddleware)
	alerts.Get("/", handlers.HandleListAlerts)
	alerts.Put("/:alertId/resolve", handlers.HandleResolveAlert)

	// --- Restock Advisor ---
	advisor := api.Group("/advisor", middleware.JWTMiddleware)
	advisor.Post("/optimize", handlers.HandleOptimizeBudget)

	// --- Dashboard ---
	api.Get("/dashboard/stats", middleware.JWTMiddleware, handlers.HandleGetDashboardStats)
}
