package settings

import (
	"maktab/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupSettingsRoutes sets up the settings routes
func SetupSettingsRoutes(app *fiber.App) {
	classLevels := app.Group("/api/class-levels")
	classLevels.Use(auth.AuthMiddleware)
	classLevels.Get("/", GetClassLevelsAPI)
	classLevels.Post("/", CreateClassLevelAPI)

	timeSlots := app.Group("/api/time-slots")
	timeSlots.Use(auth.AuthMiddleware)
	timeSlots.Get("/", GetTimeSlotsAPI)
	timeSlots.Post("/", CreateTimeSlotAPI)

	classSessions := app.Group("/api/class-sessions")
	classSessions.Use(auth.AuthMiddleware)
	classSessions.Get("/", GetClassSessionsAPI)
	classSessions.Post("/", CreateClassSessionAPI)
}
