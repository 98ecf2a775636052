package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    Month
		wantErr bool
	}{
		{name: "valid", token: "2025-07", want: Month{Year: 2025, Mon: time.July}},
		{name: "valid december", token: "2024-12", want: Month{Year: 2024, Mon: time.December}},
		{name: "missing zero padding", token: "2025-7", wantErr: true},
		{name: "month out of range", token: "2025-13", wantErr: true},
		{name: "full date", token: "2025-07-01", wantErr: true},
		{name: "garbage", token: "july 2025", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMonth(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthRoundTrip(t *testing.T) {
	m := Month{Year: 2025, Mon: time.March}
	parsed, err := ParseMonth(m.String())
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
	assert.Equal(t, "2025-03", m.String())
}

func TestMonthNext(t *testing.T) {
	assert.Equal(t, Month{Year: 2025, Mon: time.August}, Month{Year: 2025, Mon: time.July}.Next())
	// year rollover
	assert.Equal(t, Month{Year: 2026, Mon: time.January}, Month{Year: 2025, Mon: time.December}.Next())
}

func TestMonthBefore(t *testing.T) {
	jul := Month{Year: 2025, Mon: time.July}
	aug := Month{Year: 2025, Mon: time.August}
	janNext := Month{Year: 2026, Mon: time.January}

	assert.True(t, jul.Before(aug))
	assert.True(t, aug.Before(janNext))
	assert.False(t, aug.Before(jul))
	assert.False(t, jul.Before(jul))
}

func TestMonthTime(t *testing.T) {
	got := Month{Year: 2025, Mon: time.July}.Time()
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestMaxMonth(t *testing.T) {
	months := []Month{
		{Year: 2025, Mon: time.September},
		{Year: 2026, Mon: time.January},
		{Year: 2025, Mon: time.December},
	}
	assert.Equal(t, Month{Year: 2026, Mon: time.January}, MaxMonth(months))
}

func TestParseMonths(t *testing.T) {
	got, err := ParseMonths([]string{"2025-06", "2025-07"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = ParseMonths([]string{"2025-06", "2025-06"})
	assert.Error(t, err, "duplicate tokens must be rejected")

	_, err = ParseMonths([]string{"2025-06", "bad"})
	assert.Error(t, err)

	got, err = ParseMonths(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, Month{Year: 2025, Mon: time.July},
		MonthOf(time.Date(2025, time.July, 31, 23, 59, 0, 0, time.UTC)))
}
