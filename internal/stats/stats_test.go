package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

var today = time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)

func completed(id string, minutes int, at time.Time) model.Task {
	done := at
	return model.Task{
		ID:            id,
		Title:         id,
		Duration:      minutes,
		Status:        model.StatusCompleted,
		CreatedAt:     at.Add(-time.Hour),
		CompletedAt:   &done,
		ScheduledTime: model.SlotPtr(model.MustParseSlot("09:00")),
	}
}

func TestComputeFocusTimeAndRate(t *testing.T) {
	tasks := []model.Task{
		completed("a", 25, today.Add(-2*time.Hour)),
		completed("b", 40, today.Add(-time.Hour)),
		{ID: "c", Title: "c", Duration: 30, Status: model.StatusIdle, CreatedAt: today, ScheduledTime: model.SlotPtr(model.MustParseSlot("13:00"))},
		{ID: "d", Title: "d", Duration: 30, Status: model.StatusIdle, CreatedAt: today.AddDate(0, 0, -3)},
		{ID: "tpl", Title: "tpl", Duration: 15, Status: model.StatusIdle, CreatedAt: today, Recurrence: model.RecurrenceDaily, IsRecurringTemplate: true},
	}

	got := Compute(tasks, today)
	assert.Equal(t, 2, got.CompletedToday)
	assert.Equal(t, 65, got.TotalFocusTimeToday)
	assert.Equal(t, 67, got.CompletionRate)
	assert.Equal(t, 3, got.TotalTasksToday)
	assert.Equal(t, 1, got.ScheduledOpen)
	assert.Equal(t, 1, got.Streak)
}

func TestComputeEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, Compute(nil, today))
}

func TestStreakStopsAtGap(t *testing.T) {
	tasks := []model.Task{
		completed("t0", 30, today.Add(-time.Hour)),
		completed("t1", 30, today.AddDate(0, 0, -1)),
		completed("t2", 30, today.AddDate(0, 0, -2)),
		completed("t4", 30, today.AddDate(0, 0, -4)),
	}
	assert.Equal(t, 3, Streak(tasks, today))
}

func TestStreakToleratesEmptyToday(t *testing.T) {
	tasks := []model.Task{
		completed("t1", 30, today.AddDate(0, 0, -1)),
		completed("t2", 30, today.AddDate(0, 0, -2)),
	}
	assert.Equal(t, 2, Streak(tasks, today))
	assert.Equal(t, 0, Streak(tasks, today.AddDate(0, 0, 2)))
}

func TestCompletedYesterdayDoesNotCountToday(t *testing.T) {
	tasks := []model.Task{completed("y", 50, today.AddDate(0, 0, -1))}
	got := Compute(tasks, today)
	assert.Zero(t, got.CompletedToday)
	assert.Zero(t, got.TotalFocusTimeToday)
	assert.Zero(t, got.CompletionRate)
	assert.Equal(t, 1, got.TotalTasksToday)
}
