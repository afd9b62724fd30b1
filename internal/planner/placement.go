package planner

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

// Place resolves the start slot for task id when dropped on requested. Other
// scheduled tasks that are neither completed nor templates block their
// [start, start+duration) interval. Blockers are visited once in start order;
// each overlap pushes the candidate to the slot boundary at or after the
// blocker's end. The result is capped at 23:45 and may still overlap there.
func Place(tasks []model.Task, id string, requested model.Slot, duration int) model.Slot {
	if duration <= 0 {
		duration = model.DefaultDuration
	}
	blockers := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == id || t.IsRecurringTemplate || t.IsCompleted() || !t.IsScheduled() {
			continue
		}
		blockers = append(blockers, t)
	}
	sort.SliceStable(blockers, func(i, j int) bool {
		return *blockers[i].ScheduledTime < *blockers[j].ScheduledTime
	})

	start := model.SlotToMinutes(requested)
	for _, b := range blockers {
		bStart, bEnd, _ := b.Interval()
		if start < bEnd && start+duration > bStart {
			start = model.CeilToSlot(bEnd)
		}
	}
	return model.MinutesToSlot(start)
}

// ParseDuration reads a minutes value typed by the user. Anything that is not
// a positive integer falls back to the default duration.
func ParseDuration(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return model.DefaultDuration
	}
	return n
}
