package services

import (
	"testing"
	"time"

	"maktab/app/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func monthly(amount int64, tokens ...string) *models.FeePayment {
	return &models.FeePayment{
		Amount:      decimal.NewFromInt(amount),
		PaymentType: models.PaymentMonthly,
		PaidMonths:  pq.StringArray(tokens),
	}
}

func TestMonthContribution(t *testing.T) {
	july := models.Month{Year: 2025, Mon: time.July}

	tests := []struct {
		name    string
		payment *models.FeePayment
		want    string
	}{
		{
			// 6000 over 3 months credits 2000 to each
			name:    "multi-month payment split evenly",
			payment: monthly(6000, "2025-06", "2025-07", "2025-08"),
			want:    "2000",
		},
		{
			name:    "single-month payment counts in full",
			payment: monthly(2500, "2025-07"),
			want:    "2500",
		},
		{
			name:    "payment not covering the month contributes nothing",
			payment: monthly(2000, "2025-05"),
			want:    "0",
		},
		{
			name: "admission fee counts in full",
			payment: &models.FeePayment{
				Amount:      decimal.NewFromInt(5000),
				PaymentType: models.PaymentAdmission,
			},
			want: "5000",
		},
		{
			name: "donation counts in full",
			payment: &models.FeePayment{
				Amount:      decimal.NewFromInt(1500),
				PaymentType: models.PaymentDonation,
			},
			want: "1500",
		},
		{
			// legacy monthly rows with no declared months fall back to
			// full-amount attribution by payment date
			name: "legacy monthly row counts in full",
			payment: &models.FeePayment{
				Amount:      decimal.NewFromInt(1800),
				PaymentType: models.PaymentMonthly,
				PaidMonths:  pq.StringArray{},
			},
			want: "1800",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthContribution(tt.payment, july)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"contribution = %s, want %s", got, tt.want)
		})
	}
}

func TestMonthContributionSumsToAmount(t *testing.T) {
	// the slices of a multi-month payment across all its months add
	// back up to the full amount (modulo terminal rounding)
	p := monthly(5000, "2025-06", "2025-07", "2025-08")

	total := decimal.Zero
	for _, tok := range p.PaidMonths {
		m, err := models.ParseMonth(tok)
		assert.NoError(t, err)
		total = total.Add(MonthContribution(p, m))
	}
	assert.True(t, total.Round(2).Equal(decimal.NewFromInt(5000)), "got %s", total)
}
