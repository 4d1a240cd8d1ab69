package main

import (
	"bidmarket/config"
	"bidmarket/handlers"
	"bidmarket/middleware"
	"bidmarket/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		utils.Fatal("Failed to connect to database", map[string]any{"error": err.Error()})
	}

	if cfg.ResetDB {
		if err := config.ResetAndMigrate(db); err != nil {
			utils.Fatal("Failed to reset database", map[string]any{"error": err.Error()})
		}
	} else {
		if err := config.Migrate(db); err != nil {
			utils.Fatal("Failed to migrate database", map[string]any{"error": err.Error()})
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "Bidmarket",
		ServerHeader: "Bidmarket Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error": msg,
			})
		},
	})

	middleware.SetupMiddleware(app)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	SetupRoutes(app, db)

	middleware.SetupErrorHandler(app)

	utils.Info("Server starting", map[string]any{"host": cfg.HOST, "port": cfg.AppPort})

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		utils.Fatal("Failed to start server", map[string]any{"error": err.Error()})
	}
}

// SetupRoutes registers the REST endpoints the UI talks to. Ids travel in
// request bodies, not paths, so each resource hangs off a single route.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	bidHandler := handlers.NewBidHandler(db)
	collectionHandler := handlers.NewCollectionHandler(db)
	userHandler := handlers.NewUserHandler(db)

	app.Get("/bids", bidHandler.ListBids)
	app.Post("/bids", bidHandler.CreateBid)
	app.Put("/bids", bidHandler.UpdateBid)
	app.Delete("/bids", bidHandler.DeleteBid)
	app.Post("/bids/accept", bidHandler.AcceptBid)
	app.Post("/bids/reject", bidHandler.RejectBid)

	app.Get("/collections", collectionHandler.ListCollections)
	app.Post("/collections", collectionHandler.CreateCollection)
	app.Put("/collections", collectionHandler.UpdateCollection)
	app.Delete("/collections", collectionHandler.DeleteCollection)

	app.Get("/users", userHandler.ListUsers)
}
