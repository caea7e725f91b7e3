// Package matchtime holds the pure time policy for daily recurring matches:
// when the registration window for a time-of-day is open, and when a match
// occurrence counts as completed. All functions are total; malformed time
// strings fail closed instead of returning errors.
package matchtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window bounds relative to a match occurrence.
const (
	// RegistrationCloseBefore is how long before the occurrence registration closes.
	RegistrationCloseBefore = 20 * time.Minute
	// CompletionAfter is how long after the occurrence the match counts as completed.
	CompletionAfter = 60 * time.Minute
)

// ParseTimeOfDay parses a "HH:MM" 24-hour time string.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	return hour, minute, nil
}

// NextOccurrence returns the next occurrence of the time-of-day at or after
// now, in now's location: today's occurrence if it has not passed yet,
// otherwise tomorrow's.
func NextOccurrence(timeOfDay string, now time.Time) (time.Time, error) {
	hour, minute, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	occ := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if occ.Before(now) {
		occ = occ.AddDate(0, 0, 1)
	}
	return occ, nil
}

// IsRegistrationOpen reports whether registrations for the match's next
// occurrence are still accepted. The window closes RegistrationCloseBefore
// ahead of the occurrence. Malformed input reads as closed.
func IsRegistrationOpen(timeOfDay string, now time.Time) bool {
	occ, err := NextOccurrence(timeOfDay, now)
	if err != nil {
		return false
	}
	return now.Before(occ.Add(-RegistrationCloseBefore))
}

// IsCompleted reports whether today's nominal occurrence of the match is over.
// Unlike IsRegistrationOpen it never rolls to tomorrow: a match whose time-of-
// day has not yet come today is simply not completed, and once the occurrence
// has passed it completes CompletionAfter later. Malformed input reads as not
// completed.
func IsCompleted(timeOfDay string, now time.Time) bool {
	hour, minute, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return false
	}
	occ := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if occ.After(now) {
		return false
	}
	return !now.Before(occ.Add(CompletionAfter))
}

// TargetMillis returns the next occurrence as Unix epoch milliseconds, the
// countdown target consumed by the frontend. Zero on malformed input.
func TargetMillis(timeOfDay string, now time.Time) int64 {
	occ, err := NextOccurrence(timeOfDay, now)
	if err != nil {
		return 0
	}
	return occ.UnixMilli()
}

// Format12Hour converts "HH:MM" to "hh:mm AM/PM" for display. Malformed input
// is returned unchanged.
func Format12Hour(timeOfDay string) string {
	hour, minute, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return timeOfDay
	}
	t := time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC)
	return t.Format("03:04 PM")
}
