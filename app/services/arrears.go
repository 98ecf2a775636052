package services

import (
	"database/sql"
	"time"

	"maktab/app/config"
	"maktab/app/database"
	"maktab/app/models"

	"github.com/shopspring/decimal"
)

func billingFloor() time.Time {
	return config.GetBillingStart()
}

// Arrears is the number of elapsed unpaid months and what they cost at
// the student's monthly rate.
type Arrears struct {
	Months int             `json:"months"`
	Amount decimal.Decimal `json:"amount"`
}

// UnpaidMonths walks month by month from the obligation start up to,
// but excluding, the month containing reference, and returns every
// month not covered by the paid set. The current month is never an
// arrear: a student is only behind once a month has fully elapsed
// unpaid. The floor caps how far back the walk starts, so fees are
// never owed for months before billing began.
func UnpaidMonths(joined, floor, reference time.Time, paid map[string]bool) []models.Month {
	start := joined
	if floor.After(start) {
		start = floor
	}

	var unpaid []models.Month
	end := models.MonthOf(reference)
	for m := models.MonthOf(start); m.Before(end); m = m.Next() {
		if !paid[m.String()] {
			unpaid = append(unpaid, m)
		}
	}
	return unpaid
}

// ArrearsFor computes a student's outstanding months and amount as of
// the reference date. Students whose admission is not completed owe
// nothing yet. The paid set is recomputed from payment history; the
// cached last-paid-month marker on the student is never consulted.
func ArrearsFor(db *sql.DB, student *models.Student, reference time.Time) (Arrears, error) {
	zero := Arrears{Amount: decimal.Zero}
	if !student.AccruesArrears() {
		return zero, nil
	}

	tokens, err := database.GetPaidMonthTokens(db, student.ID)
	if err != nil {
		return zero, err
	}
	paid := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		paid[tok] = true
	}

	unpaid := UnpaidMonths(student.JoinedAt.Time, billingFloor(), reference, paid)
	return Arrears{
		Months: len(unpaid),
		Amount: student.MonthlyFees.Mul(decimal.NewFromInt(int64(len(unpaid)))),
	}, nil
}
