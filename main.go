package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"app/advisor"
	"app/alerts"
	"app/config"
	"app/database"
	"app/forecast"
	"app/handlers"
	"app/routes"
	"app/solver"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	config.AppConfig.JWTSecret = jwtSecret
	config.AppConfig.Port = envOr("PORT", "3000")
	config.AppConfig.AlertWorkers = envInt("ALERT_WORKERS", 2)
	config.AppConfig.AlertQueueSize = envInt("ALERT_QUEUE_SIZE", 64)

	// Initialize database
	database.InitDB(databaseURL)
	defer database.CloseDB()

	// Wire the planning and alerting engines to storage.
	store := database.NewStore(database.GetDB())
	planner := advisor.NewPlanner(store, solver.BranchAndBound{}, forecast.TieredShelf{})
	generator := alerts.NewGenerator(store, store)
	regenerator := alerts.NewRegenerator(generator, config.AppConfig.AlertWorkers, config.AppConfig.AlertQueueSize)
	handlers.Init(planner, regenerator)

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Shut down cleanly on SIGINT/SIGTERM so queued alert refreshes drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}

	regenerator.Close()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}
