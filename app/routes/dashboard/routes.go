package dashboard

import (
	"maktab/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes sets up the dashboard routes
func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/overview")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetOverviewAPI)
}
