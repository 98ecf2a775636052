package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSerial(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		want    int
		ok      bool
	}{
		{name: "zero padded", segment: "001", want: 1, ok: true},
		{name: "plain", segment: "42", want: 42, ok: true},
		{name: "four digits", segment: "0123", want: 123, ok: true},
		{name: "empty", segment: "", ok: false},
		{name: "letters", segment: "abc", ok: false},
		{name: "mixed", segment: "12a", ok: false},
		{name: "negative", segment: "-3", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseSerial(tt.segment)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRollNumberFrom(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		suffix   string
		want     string
	}{
		{name: "first of month", existing: nil, suffix: "072025", want: "001-072025"},
		{name: "increments max", existing: []string{"001-072025", "003-072025", "002-072025"}, suffix: "072025", want: "004-072025"},
		{name: "skips malformed", existing: []string{"001-072025", "A17-072025"}, suffix: "072025", want: "002-072025"},
		{name: "grows past three digits", existing: []string{"999-072025"}, suffix: "072025", want: "1000-072025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rollNumberFrom(tt.existing, tt.suffix))
		})
	}
}

func TestFormNoFrom(t *testing.T) {
	assert.Equal(t, "F-2025-001", formNoFrom(nil, 2025))
	assert.Equal(t, "F-2025-013", formNoFrom([]string{"F-2025-012", "F-2025-005"}, 2025))
}

func TestGRNumberFrom(t *testing.T) {
	assert.Equal(t, "GR-0001", grNumberFrom(nil))
	assert.Equal(t, "GR-0418", grNumberFrom([]string{"GR-0417", "GR-0099"}))
}

// Each generated identifier, fed back into the issued set, yields a
// strictly higher serial, so sequential creations never collide.
func TestIdentifiersStayUniqueAcrossSequentialIssues(t *testing.T) {
	var rolls, forms, grs []string
	for i := 0; i < 5; i++ {
		roll := rollNumberFrom(rolls, "012026")
		form := formNoFrom(forms, 2026)
		gr := grNumberFrom(grs)

		assert.NotContains(t, rolls, roll)
		assert.NotContains(t, forms, form)
		assert.NotContains(t, grs, gr)

		rolls = append(rolls, roll)
		forms = append(forms, form)
		grs = append(grs, gr)
	}
	assert.Equal(t, "005-012026", rolls[4])
	assert.Equal(t, "F-2026-005", forms[4])
	assert.Equal(t, "GR-0005", grs[4])
}
