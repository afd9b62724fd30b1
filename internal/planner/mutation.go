package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

var ErrIllegalTransition = errors.New("planner: illegal transition")

// Mutation is one typed edit applied by UpdateTask. The set is closed: only
// the constructors in this file produce values.
type Mutation interface {
	apply(t *model.Task, now time.Time) error
	name() string
}

type rename struct{ title string }

type retime struct{ minutes int }

type reschedule struct{ slot *model.Slot }

type restatus struct{ status model.Status }

func Rename(title string) Mutation { return rename{title: title} }

// Retime changes the duration in minutes. Values below one are rejected.
func Retime(minutes int) Mutation { return retime{minutes: minutes} }

// Reschedule sets the start slot verbatim, without conflict resolution. A
// nil slot moves the task to the backlog.
func Reschedule(slot *model.Slot) Mutation {
	if slot != nil {
		v := *slot
		slot = &v
	}
	return reschedule{slot: slot}
}

func Restatus(status model.Status) Mutation { return restatus{status: status} }

func (m rename) name() string     { return "rename" }
func (m retime) name() string     { return "retime" }
func (m reschedule) name() string { return "reschedule" }
func (m restatus) name() string   { return "restatus" }

func (m rename) apply(t *model.Task, _ time.Time) error {
	title := strings.TrimSpace(m.title)
	if title == "" {
		return fmt.Errorf("%w: empty title", ErrIllegalTransition)
	}
	t.Title = title
	return nil
}

func (m retime) apply(t *model.Task, _ time.Time) error {
	if m.minutes <= 0 {
		return fmt.Errorf("%w: duration %d", ErrIllegalTransition, m.minutes)
	}
	t.Duration = m.minutes
	return nil
}

func (m reschedule) apply(t *model.Task, _ time.Time) error {
	if t.IsRecurringTemplate && m.slot != nil {
		return fmt.Errorf("%w: templates cannot be scheduled", ErrIllegalTransition)
	}
	t.ScheduledTime = m.slot
	return nil
}

func (m restatus) apply(t *model.Task, now time.Time) error {
	if !m.status.IsValid() {
		return fmt.Errorf("%w: %w", ErrIllegalTransition, model.ErrInvalidStatus)
	}
	if m.status == t.Status {
		return nil
	}
	if t.IsRecurringTemplate {
		return fmt.Errorf("%w: templates keep idle status", ErrIllegalTransition)
	}
	if t.Status == model.StatusCompleted {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, t.Status, m.status)
	}
	t.Status = m.status
	if m.status == model.StatusCompleted {
		done := now
		t.CompletedAt = &done
	}
	return nil
}
