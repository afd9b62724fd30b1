// Package stats derives the daily productivity record from the task log.
package stats

import (
	"math"
	"time"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

// StreakWindow bounds how many days back the streak walk looks.
const StreakWindow = 365

type Stats struct {
	CompletedToday      int `json:"completedToday"`
	TotalTasksToday     int `json:"totalTasksToday"`
	ScheduledOpen       int `json:"scheduledOpen"`
	Streak              int `json:"streak"`
	TotalFocusTimeToday int `json:"totalFocusTimeToday"`
	CompletionRate      int `json:"completionRate"`
}

// Compute is pure: the same tasks and now always give the same record.
// Templates are ignored throughout.
func Compute(tasks []model.Task, now time.Time) Stats {
	var out Stats
	scheduled := 0
	for _, t := range tasks {
		if t.IsRecurringTemplate {
			continue
		}
		completedToday := completedOn(t, now)
		if completedToday {
			out.CompletedToday++
			out.TotalFocusTimeToday += t.Duration
		}
		if model.SameDay(t.CreatedAt, now) || t.IsScheduled() || completedToday {
			out.TotalTasksToday++
		}
		if t.IsScheduled() {
			scheduled++
			if !t.IsCompleted() {
				out.ScheduledOpen++
			}
		}
	}
	if scheduled > 0 {
		out.CompletionRate = int(math.Round(100 * float64(out.CompletedToday) / float64(scheduled)))
	}
	out.Streak = Streak(tasks, now)
	return out
}

// Streak counts consecutive days, walking back from today, that have at least
// one completion. An empty today does not break the streak; any earlier empty
// day ends it.
func Streak(tasks []model.Task, now time.Time) int {
	days := make(map[string]bool)
	for _, t := range tasks {
		if t.IsRecurringTemplate || !t.IsCompleted() || t.CompletedAt == nil {
			continue
		}
		days[dayKey(t.CompletedAt.In(now.Location()))] = true
	}

	streak := 0
	day := model.StartOfDay(now)
	for offset := 0; offset < StreakWindow; offset++ {
		if days[dayKey(day)] {
			streak++
		} else if offset > 0 {
			break
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func completedOn(t model.Task, day time.Time) bool {
	return t.IsCompleted() && t.CompletedAt != nil && model.SameDay(*t.CompletedAt, day)
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
