package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsEmpty(c.input), "IsEmpty(%q)", c.input)
	}
}

func TestIsValidDate(t *testing.T) {
	got, ok := IsValidDate("2024-02-29")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), got)

	for _, s := range []string{"2025-02-29", "2025-13-01", "2025-6-1", "01/06/2025", ""} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, "IsValidDate(%q)", s)
	}
}

func TestIsValidYearMonth(t *testing.T) {
	year, month, ok := IsValidYearMonth("2025-06")
	assert.True(t, ok)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.June, month)

	for _, s := range []string{"2025-13", "2025-00", "2025-6", "202506", "2025-06-01"} {
		_, _, ok := IsValidYearMonth(s)
		assert.False(t, ok, "IsValidYearMonth(%q)", s)
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{
		"2024-01-15T10:30:00Z",
		"2024-01-15T10:30:00+07:00",
		"2024-01-15T10:30:00.123456Z",
	}
	for _, s := range valid {
		_, ok := IsValidDateTime(s)
		assert.True(t, ok, "IsValidDateTime(%q)", s)
	}

	invalid := []string{"2024-01-15", "2024-01-15 10:30:00", "2024-01-15T10:30:00", "not-a-time"}
	for _, s := range invalid {
		_, ok := IsValidDateTime(s)
		assert.False(t, ok, "IsValidDateTime(%q)", s)
	}

	got, _ := IsValidDateTime("2024-01-15T10:30:00+07:00")
	assert.Equal(t, time.Date(2024, 1, 15, 3, 30, 0, 0, time.UTC), got.UTC())
}

func TestIsValidTimezone(t *testing.T) {
	assert.True(t, IsValidTimezone("UTC"))
	assert.True(t, IsValidTimezone("Asia/Jakarta"))
	assert.False(t, IsValidTimezone(""))
	assert.False(t, IsValidTimezone("Mars/Olympus"))
}

func TestIsClockHour(t *testing.T) {
	assert.True(t, IsClockHour(0))
	assert.True(t, IsClockHour(23))
	assert.False(t, IsClockHour(-1))
	assert.False(t, IsClockHour(24))
}

func TestIsInSlice(t *testing.T) {
	patterns := []string{"yearly", "monthly", "weekly"}
	assert.True(t, IsInSlice("weekly", patterns))
	assert.False(t, IsInSlice("daily", patterns))
	assert.False(t, IsInSlice("weekly", nil))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "name", Message: "name is required"},
	}
	assert.Equal(t, "date: date is required; name: name is required", errs.Error())
	assert.Equal(t, map[string]string{
		"date": "date is required",
		"name": "name is required",
	}, errs.ToMap())
}
