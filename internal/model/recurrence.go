package model

import (
	"fmt"
	"strings"
	"time"
)

type Recurrence string

const (
	RecurrenceNone     Recurrence = "none"
	RecurrenceDaily    Recurrence = "daily"
	RecurrenceWeekdays Recurrence = "weekdays"
	RecurrenceWeekly   Recurrence = "weekly"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekdays, RecurrenceWeekly:
		return true
	default:
		return false
	}
}

// IsRecurring is false for both the empty value and "none".
func (r Recurrence) IsRecurring() bool {
	return r != "" && r != RecurrenceNone
}

func ParseRecurrence(raw string) (Recurrence, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return RecurrenceNone, nil
	}
	r := Recurrence(value)
	if !r.IsValid() {
		return RecurrenceNone, fmt.Errorf("%w: %q", ErrInvalidRecurrence, raw)
	}
	return r, nil
}

// Matches reports whether the pattern materializes on the given weekday.
// Weekly patterns fire on Mondays.
func (r Recurrence) Matches(day time.Weekday) bool {
	switch r {
	case RecurrenceDaily:
		return true
	case RecurrenceWeekdays:
		return day >= time.Monday && day <= time.Friday
	case RecurrenceWeekly:
		return day == time.Monday
	default:
		return false
	}
}

// NextOccurrence returns the first calendar day strictly after from on which
// the pattern fires, at local midnight. ok is false for non-recurring values.
func (r Recurrence) NextOccurrence(from time.Time) (time.Time, bool) {
	if !r.IsRecurring() {
		return time.Time{}, false
	}
	probe := StartOfDay(from).AddDate(0, 0, 1)
	for i := 0; i < 7; i++ {
		if r.Matches(probe.Weekday()) {
			return probe, true
		}
		probe = probe.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay compares calendar dates in the location of ref.
func SameDay(t, ref time.Time) bool {
	ty, tm, td := t.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ty == ry && tm == rm && td == rd
}
