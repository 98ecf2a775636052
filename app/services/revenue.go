package services

import (
	"database/sql"

	"maktab/app/database"
	"maktab/app/models"

	"github.com/shopspring/decimal"
)

// MonthContribution returns what a single payment contributes to the
// given month's collected revenue. A monthly payment declaring several
// months is spread evenly across them, so only the target month's slice
// is counted; a payment covering 3 months must not inflate any one
// month's figure by its full sum. Non-monthly and legacy entries (no
// declared months) contribute their full amount to the month they were
// dated in.
func MonthContribution(p *models.FeePayment, m models.Month) decimal.Decimal {
	if p.PaymentType == models.PaymentMonthly && len(p.PaidMonths) > 0 {
		if !p.CoversMonth(m) {
			return decimal.Zero
		}
		return p.Amount.Div(decimal.NewFromInt(int64(len(p.PaidMonths))))
	}
	return p.Amount
}

// CollectedRevenue sums every payment's contribution to the given
// month, rounded to 2 decimal places at the end.
func CollectedRevenue(db *sql.DB, m models.Month) (decimal.Decimal, error) {
	payments, err := database.GetPaymentsTouchingMonth(db, m)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(MonthContribution(p, m))
	}
	return total.Round(2), nil
}
