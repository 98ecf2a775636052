package main

import (
	"log"
	"os"

	"maktab/app/config"
	"maktab/app/database"
	"maktab/app/routes/auth"
	"maktab/app/routes/dashboard"
	"maktab/app/routes/payments"
	"maktab/app/routes/promotions"
	"maktab/app/routes/settings"
	"maktab/app/routes/students"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// errorHandler maps handler errors to JSON responses
func errorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	config.LoadEnv()

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Routes
	auth.SetupAuthRoutes(app)
	students.SetupStudentsRoutes(app)
	payments.SetupPaymentsRoutes(app)
	promotions.SetupPromotionsRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	settings.SetupSettingsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}
