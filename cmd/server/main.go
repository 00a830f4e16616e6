package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"astrafin-backoffice/internal/adapters/http/middleware"
	"astrafin-backoffice/internal/adapters/http/routes"
	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/config"
	"astrafin-backoffice/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed initial accounts on an empty users table
	if err := config.SeedUsers(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed users: %v", err)
	}
	if err := config.SeedDemoData(db, cfg); err != nil {
		log.Printf("⚠️ Warning: Failed to seed demo data: %v", err)
	}

	// Start reminder service for pending validation digests (08:30 daily)
	reminderService := services.NewReminderService(db, services.NewNotificationService())
	reminderService.Start()
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Astrafin Back-Office API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
