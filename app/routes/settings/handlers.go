package settings

import (
	"errors"

	"maktab/app/config"
	"maktab/app/database"
	"maktab/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetClassLevelsAPI(c *fiber.Ctx) error {
	levels, err := getClassLevels(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class levels")
	}
	return c.JSON(fiber.Map{"success": true, "data": levels})
}

func CreateClassLevelAPI(c *fiber.Ctx) error {
	type request struct {
		Name string `json:"name" validate:"required"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	level := &models.ClassLevel{Name: req.Name}
	if err := createClassLevel(config.GetDB(), level); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class level")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": level})
}

func GetTimeSlotsAPI(c *fiber.Ctx) error {
	slots, err := getTimeSlots(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch time slots")
	}
	return c.JSON(fiber.Map{"success": true, "data": slots})
}

func CreateTimeSlotAPI(c *fiber.Ctx) error {
	type request struct {
		Label     string `json:"label" validate:"required"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	slot := &models.TimeSlot{Label: req.Label, StartTime: req.StartTime, EndTime: req.EndTime}
	if err := createTimeSlot(config.GetDB(), slot); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create time slot")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": slot})
}

func GetClassSessionsAPI(c *fiber.Ctx) error {
	sessions, err := getClassSessions(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class sessions")
	}
	return c.JSON(fiber.Map{"success": true, "data": sessions})
}

func CreateClassSessionAPI(c *fiber.Ctx) error {
	type request struct {
		ClassLevelID string  `json:"class_level_id" validate:"required,uuid"`
		TimeSlotID   string  `json:"time_slot_id" validate:"required,uuid"`
		TeacherID    *string `json:"teacher_id" validate:"omitempty,uuid"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	session := &models.ClassSession{
		ClassLevelID: req.ClassLevelID,
		TimeSlotID:   req.TimeSlotID,
		TeacherID:    req.TeacherID,
	}
	if err := createClassSession(config.GetDB(), session); err != nil {
		if errors.Is(err, database.ErrDuplicateTeacher) {
			return fiber.NewError(fiber.StatusConflict, "Class level is already taught by a different teacher")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class session")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": session})
}
