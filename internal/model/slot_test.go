package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseSlot(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"00:00", "00:00"},
		{"09:15", "09:15"},
		{"9:30", "09:30"},
		{"23:45", "23:45"},
	}
	for _, tc := range cases {
		got, err := ParseSlot(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("parse %q = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseSlotInvalidFormat(t *testing.T) {
	for _, in := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:5", "-1:00", "123:00", "09:07", "23:59", "10:50"} {
		if _, err := ParseSlot(in); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("parse %q: expected ErrInvalidFormat, got %v", in, err)
		}
	}
}

func TestMinutesToSlotClamps(t *testing.T) {
	if got := MinutesToSlot(-30); got != 0 {
		t.Fatalf("negative minutes = %s, want 00:00", got)
	}
	if got := MinutesToSlot(24 * 60); got.String() != "23:45" {
		t.Fatalf("past end of day = %s, want 23:45", got)
	}
	if got := MinutesToSlot(9*60 + 44); got.String() != "09:30" {
		t.Fatalf("unaligned = %s, want 09:30", got)
	}
	if SlotToMinutes(MustParseSlot("01:15")) != 75 {
		t.Fatal("unexpected minutes for 01:15")
	}
}

func TestSlotGridHelpers(t *testing.T) {
	s := MustParseSlot("02:30")
	if s.Index() != 10 {
		t.Fatalf("index = %d, want 10", s.Index())
	}
	if s.Offset(2) != 20 {
		t.Fatalf("offset = %d, want 20", s.Offset(2))
	}
	if SlotsSpanned(30) != 2 || SlotsSpanned(31) != 3 || SlotsSpanned(0) != 1 {
		t.Fatal("unexpected slots spanned")
	}
	if CeilToSlot(570) != 570 || CeilToSlot(571) != 585 {
		t.Fatal("unexpected ceil to slot")
	}
	all := AllSlots()
	if len(all) != SlotsPerDay || all[len(all)-1].String() != "23:45" {
		t.Fatalf("unexpected grid: %d slots, last %s", len(all), all[len(all)-1])
	}
	now := time.Date(2026, 2, 9, 14, 52, 0, 0, time.UTC)
	if CurrentSlot(now).String() != "14:45" {
		t.Fatalf("unexpected current slot: %s", CurrentSlot(now))
	}
}
