package dashboard

import (
	"time"

	"maktab/app/config"
	"maktab/app/database"
	"maktab/app/models"
	"maktab/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// OverviewResponse is the monthly collection summary for the dashboard.
type OverviewResponse struct {
	Month                string          `json:"month"`
	CollectedFee         decimal.Decimal `json:"collected_fee"`
	TotalStudents        int             `json:"total_students"`
	UnpaidCount          int             `json:"unpaid_count"`
	CollectionPercentage float64         `json:"collection_percentage"`
}

// GetOverviewAPI returns the collection overview for a month, defaulting
// to the current one. The month is addressed either as ?month=YYYY-MM or
// as numeric ?year=&month= pieces.
func GetOverviewAPI(c *fiber.Ctx) error {
	month := models.MonthOf(time.Now())
	if c.Query("year") != "" {
		year := c.QueryInt("year")
		mon := c.QueryInt("month", int(month.Mon))
		if year < 1 || mon < 1 || mon > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid year/month")
		}
		month = models.Month{Year: year, Mon: time.Month(mon)}
	} else if tok := c.Query("month"); tok != "" {
		var err error
		if month, err = models.ParseMonth(tok); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	db := config.GetDB()

	collected, err := services.CollectedRevenue(db, month)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute collected revenue")
	}

	total, err := database.CountActiveStudents(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count students")
	}

	unpaid, err := database.CountUnpaidStudents(db, month)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count unpaid students")
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(total-unpaid) / float64(total) * 100
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": OverviewResponse{
			Month:                month.String(),
			CollectedFee:         collected,
			TotalStudents:        total,
			UnpaidCount:          unpaid,
			CollectionPercentage: percentage,
		},
	})
}
