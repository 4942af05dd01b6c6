package services

import (
	"errors"
	"math"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// DaySpan counts the calendar days between a and b inclusively.
func DaySpan(a, b time.Time) int {
	return DayDelta(a, b) + 1
}

// DayDelta counts the days from a to b, rounding partial days up.
func DayDelta(a, b time.Time) int {
	return int(math.Ceil(b.Sub(a).Hours() / 24))
}

func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

// UTCDate maps a timestamp onto UTC midnight of its UTC calendar date.
func UTCDate(value time.Time) time.Time {
	return DateOnly(value.UTC())
}

// ParseDay accepts a plain date or an RFC 3339 timestamp and returns UTC midnight.
func ParseDay(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if parsed, err := time.Parse(dayLayout, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return UTCDate(parsed), nil
}

func FormatDay(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(dayLayout)
}

func betweenInclusive(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}
