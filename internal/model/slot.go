package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidFormat = errors.New("model: invalid slot format")

const (
	SlotMinutes = 15
	SlotsPerDay = 24 * 60 / SlotMinutes
	// MaxSlotMinutes is the start of the last slot of the day (23:45).
	MaxSlotMinutes = 24*60 - SlotMinutes
)

// Slot is a 15-minute aligned start time on the daily grid, stored as minutes
// since midnight.
type Slot int

func MinutesToSlot(minutes int) Slot {
	if minutes < 0 {
		return 0
	}
	if minutes > MaxSlotMinutes {
		return MaxSlotMinutes
	}
	return Slot(minutes - minutes%SlotMinutes)
}

func SlotToMinutes(s Slot) int {
	return int(s)
}

// ParseSlot reads an "HH:MM" identifier. The minutes must sit on a slot
// boundary; use MinutesToSlot to floor arbitrary clock times.
func ParseSlot(raw string) (Slot, error) {
	value := strings.TrimSpace(raw)
	hh, mm, ok := strings.Cut(value, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}
	if m%SlotMinutes != 0 {
		return 0, fmt.Errorf("%w: %q is not on a %d-minute boundary", ErrInvalidFormat, raw, SlotMinutes)
	}
	return Slot(h*60 + m), nil
}

func MustParseSlot(raw string) Slot {
	s, err := ParseSlot(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", int(s)/60, int(s)%60)
}

// Index is the zero-based position of the slot on the grid.
func (s Slot) Index() int {
	return int(s) / SlotMinutes
}

// Offset returns the vertical offset of the slot when each slot is rendered
// unitsPerSlot rows (or pixels) tall.
func (s Slot) Offset(unitsPerSlot int) int {
	return s.Index() * unitsPerSlot
}

func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Slot) UnmarshalText(text []byte) error {
	parsed, err := ParseSlot(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SlotsSpanned is the number of grid rows a task of the given duration covers.
func SlotsSpanned(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 1
	}
	return (durationMinutes + SlotMinutes - 1) / SlotMinutes
}

// CeilToSlot rounds minutes up to the next slot boundary without clamping.
func CeilToSlot(minutes int) int {
	return (minutes + SlotMinutes - 1) / SlotMinutes * SlotMinutes
}

func AllSlots() []Slot {
	out := make([]Slot, 0, SlotsPerDay)
	for m := 0; m <= MaxSlotMinutes; m += SlotMinutes {
		out = append(out, Slot(m))
	}
	return out
}

func CurrentSlot(now time.Time) Slot {
	return MinutesToSlot(now.Hour()*60 + now.Minute())
}

func SlotPtr(s Slot) *Slot {
	return &s
}
