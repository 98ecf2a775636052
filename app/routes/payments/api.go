package payments

import (
	"errors"

	"maktab/app/config"
	"maktab/app/database"
	"maktab/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// RecordPaymentRequest is the payload for a monthly tuition payment.
type RecordPaymentRequest struct {
	StudentID string          `json:"student_id" validate:"required,uuid"`
	Amount    decimal.Decimal `json:"amount"`
	Months    []string        `json:"months" validate:"required,min=1"`
	Remarks   string          `json:"remarks"`
}

// RecordPaymentAPI records a monthly fee payment covering one or more
// "YYYY-MM" months.
func RecordPaymentAPI(c *fiber.Ctx) error {
	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	months, err := models.ParseMonths(req.Months)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	payment, err := database.RecordMonthlyPayment(config.GetDB(), req.StudentID, req.Amount, months, req.Remarks)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrStudentNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		case errors.Is(err, database.ErrInvalidAmount):
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than zero")
		case errors.Is(err, database.ErrNoMonths):
			return fiber.NewError(fiber.StatusBadRequest, "At least one month is required")
		case errors.Is(err, database.ErrDuplicateIdentifier):
			return fiber.NewError(fiber.StatusConflict, "Receipt number collision, please retry")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    payment,
	})
}

// RecordOtherPaymentRequest is the payload for admission fees and
// donations, which carry no month coverage.
type RecordOtherPaymentRequest struct {
	StudentID   string          `json:"student_id" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type" validate:"required,oneof=ADMISSION DONATION"`
	Remarks     string          `json:"remarks"`
}

// RecordOtherPaymentAPI records an admission or donation entry.
func RecordOtherPaymentAPI(c *fiber.Ctx) error {
	var req RecordOtherPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	payment, err := database.RecordOtherPayment(config.GetDB(), req.StudentID, req.Amount,
		models.PaymentType(req.PaymentType), req.Remarks)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrStudentNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		case errors.Is(err, database.ErrInvalidAmount):
			return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than zero")
		case errors.Is(err, database.ErrDuplicateIdentifier):
			return fiber.NewError(fiber.StatusConflict, "Receipt number collision, please retry")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    payment,
	})
}

// GetStudentPaymentsAPI returns a student's payment history, newest first.
func GetStudentPaymentsAPI(c *fiber.Ctx) error {
	studentID := c.Query("student_id")
	if studentID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "student_id is required")
	}

	if _, err := database.GetStudentByID(config.GetDB(), studentID); err != nil {
		if errors.Is(err, database.ErrStudentNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	payments, err := database.GetPaymentsByStudent(config.GetDB(), studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payments,
		"count":   len(payments),
	})
}
