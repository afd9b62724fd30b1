package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus     = errors.New("model: invalid task status")
	ErrInvalidRecurrence = errors.New("model: invalid recurrence pattern")
	ErrInvalidDuration   = errors.New("model: invalid task duration")
	ErrInvalidTheme      = errors.New("model: invalid theme")
)

const DefaultDuration = 30

type Status string

const (
	StatusIdle      Status = "idle"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

type Task struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Duration            int        `json:"duration"`
	Status              Status     `json:"status"`
	ScheduledTime       *Slot      `json:"scheduledTime,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
	Recurrence          Recurrence `json:"recurrence,omitempty"`
	RecurrenceTime      *Slot      `json:"recurrenceTime,omitempty"`
	IsRecurringTemplate bool       `json:"isRecurringTemplate,omitempty"`
	ParentRecurringID   string     `json:"parentRecurringId,omitempty"`
}

func (t Task) IsScheduled() bool {
	return t.ScheduledTime != nil
}

func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// InBacklog reports whether the task belongs in the unscheduled list.
func (t Task) InBacklog() bool {
	return !t.IsRecurringTemplate && !t.IsScheduled() && !t.IsCompleted()
}

// Interval returns the occupied [start, end) minutes of a scheduled task.
func (t Task) Interval() (start, end int, ok bool) {
	if t.ScheduledTime == nil {
		return 0, 0, false
	}
	start = SlotToMinutes(*t.ScheduledTime)
	return start, start + t.Duration, true
}

// Clone returns a deep copy so callers cannot alias the store's pointers.
func (t Task) Clone() Task {
	out := t
	if t.ScheduledTime != nil {
		v := *t.ScheduledTime
		out.ScheduledTime = &v
	}
	if t.RecurrenceTime != nil {
		v := *t.RecurrenceTime
		out.RecurrenceTime = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		out.CompletedAt = &v
	}
	return out
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.Duration <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, t.Duration)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.Recurrence != "" && !t.Recurrence.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, t.Recurrence)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Status == StatusCompleted && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task status is completed")
	}
	if t.Status != StatusCompleted && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task status is not completed")
	}
	if t.IsRecurringTemplate {
		if t.ScheduledTime != nil {
			return errors.New("model: recurring template cannot be scheduled")
		}
		if t.Status != StatusIdle {
			return errors.New("model: recurring template must stay idle")
		}
	}
	return nil
}

// Theme is the display preference persisted next to, but independent of, the
// task snapshot.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

func ParseTheme(raw string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return ThemeSystem, fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
	}
	return t, nil
}
