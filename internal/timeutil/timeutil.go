package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	DayLayout  = "2006-01-02"
	TimeLayout = "15:04"
)

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseDayTime combines the stored date and time columns into a local time.Time.
func ParseDayTime(day, clock string) (time.Time, error) {
	combined := strings.TrimSpace(day) + " " + strings.TrimSpace(clock)
	parsed, err := time.ParseInLocation(DayLayout+" "+TimeLayout, combined, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse entry timestamp %q: %w", combined, err)
	}
	return parsed, nil
}

// FormatDayTime splits a timestamp back into the stored date and time columns.
func FormatDayTime(value time.Time) (day, clock string) {
	return value.Format(DayLayout), value.Format(TimeLayout)
}

// MinutesToHHMM renders a duration in minutes as "01h30" for listings.
func MinutesToHHMM(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02dh%02d", minutes/60, minutes%60)
}
