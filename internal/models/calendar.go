package models

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidClock = errors.New("invalid time of day")
)

var clockLayouts = []string{"15:04:05", "15:04", "15:04:05.999999999", "3:04 PM", "3:04PM"}

// ParseDate accepts "2006-01-02" and timestamp-shaped values such as
// "2024-01-01 00:00:00" or RFC 3339, keeping only the calendar day.
// An empty value yields (nil, nil).
func ParseDate(raw string) (*civil.Date, error) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, "nat") || strings.EqualFold(value, "nan") {
		return nil, nil
	}
	if len(value) > len(DateLayout) {
		separator := value[len(DateLayout)]
		if separator == ' ' || separator == 'T' {
			value = value[:len(DateLayout)]
		}
	}

	parsed, err := civil.ParseDate(value)
	if err != nil || !parsed.IsValid() {
		return nil, ErrInvalidDate
	}
	return &parsed, nil
}

func FormatDate(value *civil.Date) string {
	if value == nil {
		return ""
	}
	return value.String()
}

// ParseClock parses a time of day. An empty value yields (nil, nil).
func ParseClock(raw string) (*civil.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		clock := civil.TimeOf(parsed)
		return &clock, nil
	}
	return nil, ErrInvalidClock
}

func FormatClock(value *civil.Time) string {
	if value == nil {
		return ""
	}
	return time.Date(2000, 1, 1, value.Hour, value.Minute, value.Second, 0, time.UTC).Format(ClockLayout)
}

func DateOnOrBefore(left civil.Date, right civil.Date) bool {
	return !left.After(right)
}
