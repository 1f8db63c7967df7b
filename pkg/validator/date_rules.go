package validator

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate builds a date from separate year, month and day inputs.
// ok is false when any part is not an integer or the combination does not
// exist on the calendar (e.g. February 30th, or February 29th outside leap years).
func ParseDate(year, month, day string, loc *time.Location) (t time.Time, ok bool) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil || d < 1 || d > 31 {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	// time.Date normalizes overflow, so a changed component means the date does not exist.
	t = time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// YearBetween validates that an integer year input is within [min, max].
// Non-integer input passes; CalendarDate reports it as malformed.
func YearBetween(field, year string, min, max int) Rule {
	return Rule{
		Check: func() bool {
			y, err := strconv.Atoi(strings.TrimSpace(year))
			if err != nil {
				return true
			}
			return y >= min && y <= max
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindOutOfRange,
			Message:        fmt.Sprintf("year must be between %d and %d", min, max),
			TranslationKey: "validation.year_between",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
				"max":   max,
			},
		},
	}
}

// CalendarDate validates that year, month and day form an existing date.
func CalendarDate(field, year, month, day string) Rule {
	return Rule{
		Check: func() bool {
			_, ok := ParseDate(year, month, day, time.UTC)
			return ok
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindMalformed,
			Message:        "must be a valid date",
			TranslationKey: "validation.date",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// NotAfterDay validates that the date is not later than the calendar day of now.
// The comparison happens in now's location, so "today" passes and "tomorrow" fails.
func NotAfterDay(field, year, month, day string, now time.Time) Rule {
	return Rule{
		Check: func() bool {
			t, ok := ParseDate(year, month, day, now.Location())
			if !ok {
				return false
			}
			return !t.After(startOfDay(now))
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindOutOfRange,
			Message:        "date must not be in the future",
			TranslationKey: "validation.date_not_future",
			TranslationValues: map[string]any{
				"field": field,
				"today": now.Format(time.DateOnly),
			},
		},
	}
}
