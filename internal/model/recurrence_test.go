package model

import (
	"errors"
	"testing"
	"time"
)

func TestRecurrenceMatches(t *testing.T) {
	cases := []struct {
		pattern Recurrence
		day     time.Weekday
		want    bool
	}{
		{RecurrenceDaily, time.Sunday, true},
		{RecurrenceDaily, time.Wednesday, true},
		{RecurrenceWeekdays, time.Monday, true},
		{RecurrenceWeekdays, time.Friday, true},
		{RecurrenceWeekdays, time.Saturday, false},
		{RecurrenceWeekdays, time.Sunday, false},
		{RecurrenceWeekly, time.Monday, true},
		{RecurrenceWeekly, time.Tuesday, false},
		{RecurrenceNone, time.Monday, false},
		{Recurrence(""), time.Monday, false},
	}
	for _, tc := range cases {
		if got := tc.pattern.Matches(tc.day); got != tc.want {
			t.Fatalf("%q on %s = %v, want %v", tc.pattern, tc.day, got, tc.want)
		}
	}
}

func TestRecurrenceNextOccurrence(t *testing.T) {
	friday := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)

	next, ok := RecurrenceWeekdays.NextOccurrence(friday)
	if !ok {
		t.Fatal("expected next weekday occurrence")
	}
	if next.Weekday() != time.Monday || next.Format("2006-01-02 15:04") != "2026-02-16 00:00" {
		t.Fatalf("unexpected next weekday: %s", next.Format(time.RFC3339))
	}

	next, ok = RecurrenceDaily.NextOccurrence(friday)
	if !ok || next.Format("2006-01-02") != "2026-02-14" {
		t.Fatalf("unexpected next daily: %s", next.Format(time.RFC3339))
	}

	monday := time.Date(2026, 2, 16, 8, 0, 0, 0, time.UTC)
	next, ok = RecurrenceWeekly.NextOccurrence(monday)
	if !ok || next.Format("2006-01-02") != "2026-02-23" {
		t.Fatalf("unexpected next weekly: %s", next.Format(time.RFC3339))
	}

	if _, ok := RecurrenceNone.NextOccurrence(friday); ok {
		t.Fatal("expected no occurrence for none")
	}
}

func TestParseRecurrence(t *testing.T) {
	got, err := ParseRecurrence("")
	if err != nil || got != RecurrenceNone {
		t.Fatalf("empty should parse as none, got %q %v", got, err)
	}
	got, err = ParseRecurrence("Weekdays")
	if err != nil || got != RecurrenceWeekdays {
		t.Fatalf("unexpected parse: %q %v", got, err)
	}
	if _, err := ParseRecurrence("fortnightly"); !errors.Is(err, ErrInvalidRecurrence) {
		t.Fatalf("expected ErrInvalidRecurrence, got %v", err)
	}
}

func TestSameDayUsesReferenceLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	ref := time.Date(2026, 2, 9, 22, 0, 0, 0, loc)
	// 01:30 UTC on the 10th is still the 9th at UTC-3.
	if !SameDay(time.Date(2026, 2, 10, 1, 30, 0, 0, time.UTC), ref) {
		t.Fatal("expected same local day")
	}
	if SameDay(time.Date(2026, 2, 10, 4, 0, 0, 0, time.UTC), ref) {
		t.Fatal("expected different local day")
	}
}
