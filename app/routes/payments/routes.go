package payments

import (
	"maktab/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentsRoutes sets up the payments routes
func SetupPaymentsRoutes(app *fiber.App) {
	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetStudentPaymentsAPI)
	api.Post("/", RecordPaymentAPI)
	api.Post("/other", RecordOtherPaymentAPI)
}
