package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"assetdesk_backend/internal/controller"
	"assetdesk_backend/internal/middleware"
	"assetdesk_backend/internal/model"
	"assetdesk_backend/pkg/config"
	"assetdesk_backend/pkg/cron"
	"assetdesk_backend/pkg/database"
	"assetdesk_backend/pkg/email"
	"assetdesk_backend/pkg/seed"
	"assetdesk_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Property Routes
	properties := protected.Group("/properties")
	properties.Get("/", controller.ListProperties)
	properties.Post("/", controller.CreateProperty)
	properties.Get("/:id", controller.GetProperty)
	properties.Put("/:id", controller.UpdateProperty)
	properties.Delete("/:id", middleware.RequireRole("admin"), controller.DeleteProperty)
	properties.Post("/:property_id/images", controller.UploadPropertyImage)
	properties.Post("/:property_id/geo-maps", controller.UploadGeoMap)
	properties.Delete("/images/:image_id", controller.DeletePropertyImage)

	// Proprietor Routes (counterparty registry)
	proprietors := protected.Group("/proprietors")
	proprietors.Get("/", controller.ListProprietors)
	proprietors.Post("/", controller.CreateProprietor)
	proprietors.Get("/:id", controller.GetProprietor)
	proprietors.Put("/:id", controller.UpdateProprietor)
	proprietors.Delete("/:id", controller.DeleteProprietor)

	// Rent Routes
	rents := protected.Group("/rents")
	rents.Get("/", controller.ListRents)
	rents.Post("/", controller.CreateRent)
	rents.Get("/:id", controller.GetRent)
	rents.Put("/:id", controller.UpdateRent)
	rents.Delete("/:id", controller.DeleteRent)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware())
	dashboard.Get("/stats", controller.GetDashboardStats)
	dashboard.Get("/integrity", controller.GetIntegrityReport)

	// Mirror-store export / import
	protected.Get("/export", controller.ExportPortfolio)
	protected.Post("/import", middleware.RequireRole("admin"), controller.ImportPortfolio)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	if key := cfg.Email.ResendAPIKey; key != "" {
		if err := email.InitEmailService(key); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY not set, email disabled")
	}

	if err := storage.InitStorage(); err != nil {
		log.Fatal("Could not initialize object storage:", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		db := cfg.Database
		dbURL = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
			db.Host, db.Port, db.User, db.Password, db.DBName)
	}

	database.InitDB(dbURL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Property{},
		&model.PropertyImage{},
		&model.Proprietor{},
		&model.Rent{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedAdminUser(database.GetDB())

	cron.InitLeaseExpiryCron()
	cron.InitPortfolioDigestCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
