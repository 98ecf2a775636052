package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePromotionGuard backs promotionSkipReason with in-memory state so
// the skip decisions can be exercised without a database.
type fakePromotionGuard struct {
	students    map[string]bool
	enrollments map[string]map[string]bool // studentID -> academicYear
}

func newFakePromotionGuard(studentIDs ...string) *fakePromotionGuard {
	g := &fakePromotionGuard{
		students:    map[string]bool{},
		enrollments: map[string]map[string]bool{},
	}
	for _, id := range studentIDs {
		g.students[id] = true
	}
	return g
}

func (g *fakePromotionGuard) enroll(studentID, academicYear string) {
	if g.enrollments[studentID] == nil {
		g.enrollments[studentID] = map[string]bool{}
	}
	g.enrollments[studentID][academicYear] = true
}

func (g *fakePromotionGuard) StudentExists(studentID string) (bool, error) {
	return g.students[studentID], nil
}

func (g *fakePromotionGuard) HasEnrollmentForYear(studentID, academicYear string) (bool, error) {
	return g.enrollments[studentID][academicYear], nil
}

func TestPromotionSkipReason(t *testing.T) {
	guard := newFakePromotionGuard("s1", "s2")
	guard.enroll("s2", "2026-2027")

	tests := []struct {
		name         string
		studentID    string
		academicYear string
		want         string
	}{
		{name: "fresh promotion", studentID: "s1", academicYear: "2026-2027", want: ""},
		{name: "already enrolled in target year", studentID: "s2", academicYear: "2026-2027", want: "already enrolled in target year"},
		{name: "same student, different year", studentID: "s2", academicYear: "2027-2028", want: ""},
		{name: "unknown student", studentID: "ghost", academicYear: "2026-2027", want: "student not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, err := promotionSkipReason(guard, tt.studentID, tt.academicYear)
			require.NoError(t, err)
			assert.Equal(t, tt.want, reason)
		})
	}
}

// Re-running a promotion must land every already-promoted student in the
// skip list instead of creating a second enrollment for the target year.
func TestPromotionRepeatIsIdempotent(t *testing.T) {
	guard := newFakePromotionGuard("s1", "s2")
	year := "2026-2027"

	promote := func() (promoted []string, skipped []PromotionSkip) {
		for _, id := range []string{"s1", "s2", "ghost"} {
			reason, err := promotionSkipReason(guard, id, year)
			require.NoError(t, err)
			if reason != "" {
				skipped = append(skipped, PromotionSkip{StudentID: id, Reason: reason})
				continue
			}
			guard.enroll(id, year)
			promoted = append(promoted, id)
		}
		return promoted, skipped
	}

	promoted, skipped := promote()
	assert.Equal(t, []string{"s1", "s2"}, promoted)
	require.Len(t, skipped, 1)
	assert.Equal(t, PromotionSkip{StudentID: "ghost", Reason: "student not found"}, skipped[0])

	promoted, skipped = promote()
	assert.Empty(t, promoted)
	require.Len(t, skipped, 3)
	assert.Equal(t, "already enrolled in target year", skipped[0].Reason)
	assert.Equal(t, "already enrolled in target year", skipped[1].Reason)
	assert.Equal(t, "student not found", skipped[2].Reason)

	// Exactly one enrollment per (student, year) after both runs.
	assert.Len(t, guard.enrollments["s1"], 1)
	assert.Len(t, guard.enrollments["s2"], 1)
}
