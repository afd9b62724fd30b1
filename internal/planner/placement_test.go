package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

func scheduled(id, at string, duration int, status model.Status) model.Task {
	return model.Task{
		ID:            id,
		Title:         id,
		Duration:      duration,
		Status:        status,
		CreatedAt:     time.Date(2026, 2, 11, 8, 0, 0, 0, time.UTC),
		ScheduledTime: model.SlotPtr(model.MustParseSlot(at)),
	}
}

func TestPlace(t *testing.T) {
	tasks := []model.Task{
		scheduled("late", "11:00", 30, model.StatusIdle),
		scheduled("early", "09:00", 50, model.StatusIdle),
		scheduled("done", "10:00", 60, model.StatusCompleted),
		scheduled("self", "09:00", 30, model.StatusActive),
	}

	cases := []struct {
		name      string
		requested string
		duration  int
		want      string
	}{
		{"free slot", "07:00", 30, "07:00"},
		{"ends exactly at blocker", "08:30", 30, "08:30"},
		{"pushed to next boundary", "09:15", 30, "10:00"},
		{"completed tasks do not block", "10:15", 30, "10:15"},
		{"chain of pushes", "10:30", 45, "11:30"},
		{"late evening clamps", "23:30", 60, "23:30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Place(tasks, "self", model.MustParseSlot(tc.requested), tc.duration)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestPlaceClampsAtEndOfDay(t *testing.T) {
	tasks := []model.Task{scheduled("night", "23:00", 120, model.StatusIdle)}
	got := Place(tasks, "new", model.MustParseSlot("23:15"), 30)
	assert.Equal(t, model.Slot(model.MaxSlotMinutes), got)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 45, ParseDuration(" 45 "))
	assert.Equal(t, model.DefaultDuration, ParseDuration("abc"))
	assert.Equal(t, model.DefaultDuration, ParseDuration("0"))
	assert.Equal(t, model.DefaultDuration, ParseDuration("-10"))
}
