package recurrence

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("inst-%d", n)
	}
}

func template(id string, pattern model.Recurrence, at string) model.Task {
	tpl := model.Task{
		ID:                  id,
		Title:               "Standup " + id,
		Duration:            15,
		Status:              model.StatusIdle,
		Recurrence:          pattern,
		IsRecurringTemplate: true,
		CreatedAt:           time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
	if at != "" {
		tpl.RecurrenceTime = model.SlotPtr(model.MustParseSlot(at))
	}
	return tpl
}

func TestMaterializeWeekdaysOnWednesday(t *testing.T) {
	wednesday := time.Date(2026, 2, 11, 7, 0, 0, 0, time.UTC)
	tasks := []model.Task{template("tpl", model.RecurrenceWeekdays, "09:00")}

	out := Materialize(tasks, wednesday, sequentialIDs())
	require.Len(t, out, 1)
	inst := out[0]
	assert.Equal(t, "inst-1", inst.ID)
	assert.Equal(t, "tpl", inst.ParentRecurringID)
	assert.Equal(t, model.StatusIdle, inst.Status)
	assert.Equal(t, 15, inst.Duration)
	assert.False(t, inst.IsRecurringTemplate)
	require.NotNil(t, inst.ScheduledTime)
	assert.Equal(t, "09:00", inst.ScheduledTime.String())
	assert.True(t, inst.CreatedAt.Equal(wednesday))
}

func TestMaterializeIsIdempotentWithinADay(t *testing.T) {
	monday := time.Date(2026, 2, 9, 7, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		template("daily", model.RecurrenceDaily, ""),
		template("weekly", model.RecurrenceWeekly, "10:00"),
	}
	ids := sequentialIDs()

	first := Materialize(tasks, monday, ids)
	require.Len(t, first, 2)
	tasks = append(tasks, first...)

	second := Materialize(tasks, monday.Add(6*time.Hour), ids)
	assert.Empty(t, second)
}

func TestMaterializeNextDayCreatesNewInstance(t *testing.T) {
	monday := time.Date(2026, 2, 9, 7, 0, 0, 0, time.UTC)
	tasks := []model.Task{template("daily", model.RecurrenceDaily, "")}
	ids := sequentialIDs()

	tasks = append(tasks, Materialize(tasks, monday, ids)...)
	tuesday := monday.AddDate(0, 0, 1)
	next := Materialize(tasks, tuesday, ids)
	require.Len(t, next, 1)
	assert.Nil(t, next[0].ScheduledTime)
	tasks = append(tasks, next...)

	assert.Len(t, Instances(tasks, "daily"), 2)
}

func TestMaterializeSkipsNonMatchingDays(t *testing.T) {
	saturday := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		template("wd", model.RecurrenceWeekdays, "09:00"),
		template("wk", model.RecurrenceWeekly, "09:00"),
		{ID: "plain", Title: "plain", Duration: 30, Status: model.StatusIdle, CreatedAt: saturday},
	}
	assert.Empty(t, Materialize(tasks, saturday, sequentialIDs()))
}

func TestDueIgnoresInstancesFromEarlierDays(t *testing.T) {
	monday := time.Date(2026, 2, 9, 7, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		template("daily", model.RecurrenceDaily, ""),
		{
			ID:                "old",
			Title:             "Standup daily",
			Duration:          15,
			Status:            model.StatusCompleted,
			CreatedAt:         monday.AddDate(0, 0, -1),
			ParentRecurringID: "daily",
		},
	}
	due := Due(tasks, monday)
	require.Len(t, due, 1)
	assert.Equal(t, "daily", due[0].ID)
}
