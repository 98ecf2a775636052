package promotions

import (
	"errors"
	"log"

	"maktab/app/config"
	"maktab/app/database"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// PromoteRequest names the students to promote and where they go. The
// target session is addressed by (class level, time slot), never by raw
// session id.
type PromoteRequest struct {
	StudentIDs   []string `json:"student_ids" validate:"required,min=1,dive,uuid"`
	ClassLevelID string   `json:"class_level_id" validate:"required,uuid"`
	TimeSlotID   string   `json:"time_slot_id" validate:"required,uuid"`
	AcademicYear string   `json:"academic_year" validate:"required"`
}

// PromoteStudentsAPI promotes a batch of students into the target class
// session under a new academic year. The batch is atomic: an
// unresolvable target session, or any database failure, aborts the
// whole batch. Students already enrolled in the target year are
// reported under skipped, so a timed-out promotion can simply be
// retried in full.
func PromoteStudentsAPI(c *fiber.Ctx) error {
	var req PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	session, err := database.ResolveClassSession(config.GetDB(), req.ClassLevelID, req.TimeSlotID)
	if err != nil {
		if errors.Is(err, database.ErrTargetSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "No class session for the given class and time slot")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve class session")
	}

	promoted, skipped, err := database.PromoteStudents(config.GetDB(), req.StudentIDs, session.ID, req.AcademicYear)
	if err != nil {
		log.Printf("Promotion batch failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Promotion failed, no students were promoted")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"promoted": promoted,
		"count":    len(promoted),
		"skipped":  skipped,
	})
}
