package students

import (
	"errors"
	"time"

	"maktab/app/config"
	"maktab/app/database"
	"maktab/app/models"
	"maktab/app/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// CreateStudentRequest is the payload for registering a new student.
// Class placement fields are optional; when all three are present an
// initial enrollment is created alongside the student.
type CreateStudentRequest struct {
	FirstName       string            `json:"first_name" validate:"required"`
	LastName        string            `json:"last_name" validate:"required"`
	Gender          string            `json:"gender" validate:"omitempty,oneof=male female other"`
	GuardianName    string            `json:"guardian_name"`
	Phone           string            `json:"phone"`
	Address         string            `json:"address"`
	JoinedAt        models.CustomDate `json:"joined_at"`
	MonthlyFees     decimal.Decimal   `json:"monthly_fees"`
	AdmissionStatus string            `json:"admission_status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	ClassLevelID    string            `json:"class_level_id" validate:"omitempty,uuid"`
	TimeSlotID      string            `json:"time_slot_id" validate:"omitempty,uuid"`
	AcademicYear    string            `json:"academic_year"`
}

// CreateStudentAPI registers a student, generating their roll, form and
// GR numbers.
func CreateStudentAPI(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.JoinedAt.IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "joined_at is required")
	}
	if req.MonthlyFees.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "monthly_fees cannot be negative")
	}

	status := models.AdmissionStatus(req.AdmissionStatus)
	if status == "" {
		status = models.AdmissionPending
	}

	student := &models.Student{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Gender:          models.Gender(req.Gender),
		GuardianName:    req.GuardianName,
		Phone:           req.Phone,
		Address:         req.Address,
		JoinedAt:        req.JoinedAt,
		MonthlyFees:     req.MonthlyFees,
		AdmissionStatus: status,
		IsActive:        true,
	}

	var enroll *database.InitialEnrollment
	if req.ClassLevelID != "" || req.TimeSlotID != "" || req.AcademicYear != "" {
		if req.ClassLevelID == "" || req.TimeSlotID == "" || req.AcademicYear == "" {
			return fiber.NewError(fiber.StatusBadRequest,
				"class_level_id, time_slot_id and academic_year must be supplied together")
		}
		enroll = &database.InitialEnrollment{
			ClassLevelID: req.ClassLevelID,
			TimeSlotID:   req.TimeSlotID,
			AcademicYear: req.AcademicYear,
		}
	}

	if err := database.CreateStudent(config.GetDB(), student, enroll); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicateIdentifier):
			return fiber.NewError(fiber.StatusConflict, "Identifier collision, please retry")
		case errors.Is(err, database.ErrTargetSessionNotFound):
			return fiber.NewError(fiber.StatusNotFound, "No class session for the given class and time slot")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    student,
	})
}

// GetStudentsAPI returns students with optional filtering
func GetStudentsAPI(c *fiber.Ctx) error {
	filters := database.StudentFilters{
		Search:          c.Query("search"),
		AdmissionStatus: c.Query("admission_status"),
		ClassSessionID:  c.Query("class_session_id"),
		Limit:           c.QueryInt("limit", 0),
		Offset:          c.QueryInt("offset", 0),
	}

	students, err := database.GetStudents(config.GetDB(), filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    students,
		"count":   len(students),
	})
}

// GetStudentAPI returns a single student together with their current
// arrears.
func GetStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrStudentNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	arrears, err := services.ArrearsFor(config.GetDB(), student, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute arrears")
	}

	enrollment, err := database.GetActiveEnrollment(config.GetDB(), student.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"student":           student,
			"arrears":           arrears,
			"active_enrollment": enrollment,
		},
	})
}

// GetStudentArrearsAPI returns only the arrears figure for a student.
func GetStudentArrearsAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrStudentNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	arrears, err := services.ArrearsFor(config.GetDB(), student, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute arrears")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    arrears,
	})
}

// GetStudentEnrollmentsAPI returns a student's full enrollment history,
// newest first.
func GetStudentEnrollmentsAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")
	if _, err := database.GetStudentByID(config.GetDB(), studentID); err != nil {
		if errors.Is(err, database.ErrStudentNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	enrollments, err := database.GetEnrollmentHistory(config.GetDB(), studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    enrollments,
	})
}

// UpdateAdmissionStatusAPI moves a student through the admission
// pipeline. Arrears only start accruing at COMPLETED.
func UpdateAdmissionStatusAPI(c *fiber.Ctx) error {
	type request struct {
		AdmissionStatus string `json:"admission_status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	err := database.UpdateAdmissionStatus(config.GetDB(), c.Params("id"), models.AdmissionStatus(req.AdmissionStatus))
	if err != nil {
		if errors.Is(err, database.ErrStudentNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return c.JSON(fiber.Map{"success": true})
}
