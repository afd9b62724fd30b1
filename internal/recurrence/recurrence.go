// Package recurrence expands recurring templates into concrete daily tasks.
package recurrence

import (
	"time"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

// Due lists the templates whose pattern fires on now's local weekday and that
// have no instance created on that date yet.
func Due(tasks []model.Task, now time.Time) []model.Task {
	materialized := make(map[string]bool)
	for _, t := range tasks {
		if t.ParentRecurringID == "" || t.IsRecurringTemplate {
			continue
		}
		if model.SameDay(t.CreatedAt, now) {
			materialized[t.ParentRecurringID] = true
		}
	}

	out := make([]model.Task, 0)
	for _, t := range tasks {
		if !t.IsRecurringTemplate || !t.Recurrence.Matches(now.Weekday()) {
			continue
		}
		if materialized[t.ID] {
			continue
		}
		out = append(out, t)
		// Guards against the same template id appearing twice in tasks.
		materialized[t.ID] = true
	}
	return out
}

// Instance builds today's idle task for a template.
func Instance(tpl model.Task, id string, now time.Time) model.Task {
	out := model.Task{
		ID:                id,
		Title:             tpl.Title,
		Duration:          tpl.Duration,
		Status:            model.StatusIdle,
		CreatedAt:         now,
		ParentRecurringID: tpl.ID,
	}
	if tpl.RecurrenceTime != nil {
		slot := *tpl.RecurrenceTime
		out.ScheduledTime = &slot
	}
	return out
}

// Materialize returns the instances the evaluation pass has to add. Running it
// again on a collection that already contains its output yields nothing.
func Materialize(tasks []model.Task, now time.Time, newID func() string) []model.Task {
	due := Due(tasks, now)
	out := make([]model.Task, 0, len(due))
	for _, tpl := range due {
		out = append(out, Instance(tpl, newID(), now))
	}
	return out
}

// Instances lists every task materialized from the template, across all days.
func Instances(tasks []model.Task, templateID string) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.ParentRecurringID == templateID && !t.IsRecurringTemplate {
			out = append(out, t)
		}
	}
	return out
}
