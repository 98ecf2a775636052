package promotions

import (
	"maktab/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupPromotionsRoutes sets up the promotions routes
func SetupPromotionsRoutes(app *fiber.App) {
	api := app.Group("/api/promotions")
	api.Use(auth.AuthMiddleware)

	api.Post("/", PromoteStudentsAPI)
}
