package services

import (
	"testing"
	"time"

	"maktab/app/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func paidSet(tokens ...string) map[string]bool {
	paid := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		paid[tok] = true
	}
	return paid
}

func TestUnpaidMonths(t *testing.T) {
	tests := []struct {
		name      string
		joined    time.Time
		floor     time.Time
		reference time.Time
		paid      map[string]bool
		want      []string
	}{
		{
			// the current month is never an arrear
			name:      "joined this month owes nothing",
			joined:    date(2025, time.July, 15),
			reference: date(2025, time.July, 20),
			paid:      paidSet(),
			want:      nil,
		},
		{
			name:      "every elapsed month paid",
			joined:    date(2025, time.March, 1),
			reference: date(2025, time.July, 10),
			paid:      paidSet("2025-03", "2025-04", "2025-05", "2025-06"),
			want:      nil,
		},
		{
			name:      "three unpaid months",
			joined:    date(2025, time.April, 1),
			reference: date(2025, time.July, 5),
			paid:      paidSet(),
			want:      []string{"2025-04", "2025-05", "2025-06"},
		},
		{
			name:      "gap in the middle",
			joined:    date(2025, time.March, 1),
			reference: date(2025, time.July, 1),
			paid:      paidSet("2025-03", "2025-05"),
			want:      []string{"2025-04", "2025-06"},
		},
		{
			name:      "billing floor caps the walk",
			joined:    date(2024, time.January, 1),
			floor:     date(2025, time.April, 1),
			reference: date(2025, time.July, 1),
			paid:      paidSet(),
			want:      []string{"2025-04", "2025-05", "2025-06"},
		},
		{
			name:      "floor before joining has no effect",
			joined:    date(2025, time.May, 1),
			floor:     date(2024, time.January, 1),
			reference: date(2025, time.July, 1),
			paid:      paidSet(),
			want:      []string{"2025-05", "2025-06"},
		},
		{
			name:      "mid-month join normalizes to first of month",
			joined:    date(2025, time.May, 28),
			reference: date(2025, time.July, 2),
			paid:      paidSet(),
			want:      []string{"2025-05", "2025-06"},
		},
		{
			name:      "year boundary walk",
			joined:    date(2025, time.November, 1),
			reference: date(2026, time.February, 15),
			paid:      paidSet("2025-12"),
			want:      []string{"2025-11", "2026-01"},
		},
		{
			name:      "reference before joining",
			joined:    date(2025, time.September, 1),
			reference: date(2025, time.July, 1),
			paid:      paidSet(),
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnpaidMonths(tt.joined, tt.floor, tt.reference, tt.paid)
			var tokens []string
			for _, m := range got {
				tokens = append(tokens, m.String())
			}
			assert.Equal(t, tt.want, tokens)
		})
	}
}

func TestArrearsAmount(t *testing.T) {
	// a student owing exactly 3 months at 2000/month owes 6000
	unpaid := UnpaidMonths(date(2025, time.April, 1), time.Time{}, date(2025, time.July, 1), paidSet())
	assert.Len(t, unpaid, 3)

	fees := decimal.NewFromInt(2000)
	amount := fees.Mul(decimal.NewFromInt(int64(len(unpaid))))
	assert.True(t, amount.Equal(decimal.NewFromInt(6000)), "got %s", amount)
}

func TestUnpaidMonthsIgnoresUnrelatedTokens(t *testing.T) {
	// paid months outside the walk window change nothing
	unpaid := UnpaidMonths(date(2025, time.May, 1), time.Time{}, date(2025, time.July, 1),
		paidSet("2024-01", "2030-12"))
	var tokens []string
	for _, m := range unpaid {
		tokens = append(tokens, m.String())
	}
	assert.Equal(t, []string{"2025-05", "2025-06"}, tokens)
}

func TestPaymentThenArrearsRoundTrip(t *testing.T) {
	// covering the owed months clears them
	joined := date(2025, time.April, 1)
	ref := date(2025, time.July, 1)

	owed := UnpaidMonths(joined, time.Time{}, ref, paidSet())
	assert.Len(t, owed, 3)

	paid := make(map[string]bool)
	for _, m := range owed {
		paid[m.String()] = true
	}
	assert.Empty(t, UnpaidMonths(joined, time.Time{}, ref, paid))
}

func TestArrearsSkippedBeforeAdmissionCompleted(t *testing.T) {
	student := &models.Student{AdmissionStatus: models.AdmissionPending}
	assert.False(t, student.AccruesArrears())
	student.AdmissionStatus = models.AdmissionInProgress
	assert.False(t, student.AccruesArrears())
	student.AdmissionStatus = models.AdmissionCompleted
	assert.True(t, student.AccruesArrears())
}
