package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"project/backend/config"
	"project/backend/content"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/routes"
	"project/backend/store"
	"project/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.QuizAttempt{},
		&store.ProgressRecord{},
		&content.CourseRecord{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Progress store backend, wrapped so position ticks coalesce
	var progressStore store.ProgressStore
	switch cfg.StoreBackend {
	case "memory":
		progressStore = store.NewMemoryStore()
	default:
		progressStore = store.NewGormStore(db)
	}
	writer := store.NewDebouncedWriter(progressStore, cfg.SaveDebounce)

	source := content.NewGormSource(db)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, writer, source, logger)

	// Shut down on SIGINT/SIGTERM so pending debounced saves get flushed.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		if err := app.Shutdown(); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	// Start server
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Printf("server stopped: %v", err)
	}
	writer.Flush()
}
