package students

import (
	"maktab/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentsRoutes sets up the students routes
func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetStudentsAPI)
	api.Post("/", CreateStudentAPI)
	api.Get("/:id", GetStudentAPI)
	api.Get("/:id/arrears", GetStudentArrearsAPI)
	api.Get("/:id/enrollments", GetStudentEnrollmentsAPI)
	api.Put("/:id/admission-status", UpdateAdmissionStatusAPI)
}
