// Package focus implements the countdown shown while working on a task.
package focus

import (
	"context"
	"fmt"
	"sync"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/scheduler"
)

// DefaultWarningSeconds is how long before the end the warning fires.
const DefaultWarningSeconds = 60

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
	StateAborted   State = "aborted"
)

type Event string

const (
	EventWarning Event = "warning"
	EventTimeUp  Event = "time_up"
)

// Status is a copy of the timer state for rendering.
type Status struct {
	TaskID    string
	State     State
	Remaining int
	Total     int
}

func (s Status) Paused() bool { return s.State == StatePaused }

// Live reports whether the countdown still belongs to a task.
func (s Status) Live() bool { return s.State == StateRunning || s.State == StatePaused }

// Progress is the elapsed fraction in [0, 1].
func (s Status) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Total-s.Remaining) / float64(s.Total)
}

// Clock renders the remaining time as MM:SS.
func (s Status) Clock() string {
	return FormatSeconds(s.Remaining)
}

func FormatSeconds(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

type Timer struct {
	mu        sync.Mutex
	warnAt    int
	taskID    string
	state     State
	remaining int
	total     int
	warned    bool
	timeUp    bool
}

func NewTimer(warningSeconds int) *Timer {
	if warningSeconds <= 0 {
		warningSeconds = DefaultWarningSeconds
	}
	return &Timer{warnAt: warningSeconds, state: StateIdle}
}

// Arm starts a fresh countdown of minutes for taskID and resets the one-shot
// notifications. A countdown that starts inside the warning window returns
// EventWarning right away.
func (t *Timer) Arm(taskID string, minutes int) []Event {
	if minutes <= 0 {
		minutes = model.DefaultDuration
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.taskID = taskID
	t.total = minutes * 60
	t.remaining = t.total
	t.state = StateRunning
	t.warned = false
	t.timeUp = false
	return t.crossed()
}

// Tick advances a running countdown by one second and returns the
// notifications crossed by this tick. Remaining never goes below zero and
// reaching zero does not end the run.
func (t *Timer) Tick() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRunning || t.remaining == 0 {
		return nil
	}
	t.remaining--
	return t.crossed()
}

// crossed reports the notifications due at the current remaining time that
// have not fired since the last Arm.
func (t *Timer) crossed() []Event {
	var events []Event
	if !t.warned && t.remaining <= t.warnAt {
		t.warned = true
		events = append(events, EventWarning)
	}
	if !t.timeUp && t.remaining == 0 {
		t.timeUp = true
		events = append(events, EventTimeUp)
	}
	return events
}

func (t *Timer) Pause() bool {
	return t.transition(StateRunning, StatePaused)
}

func (t *Timer) Resume() bool {
	return t.transition(StatePaused, StateRunning)
}

// Toggle flips between running and paused.
func (t *Timer) Toggle() bool {
	return t.Pause() || t.Resume()
}

func (t *Timer) Complete() bool {
	return t.finish(StateCompleted)
}

func (t *Timer) Abort() bool {
	return t.finish(StateAborted)
}

func (t *Timer) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{TaskID: t.taskID, State: t.state, Remaining: t.remaining, Total: t.total}
}

func (t *Timer) transition(from, to State) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != from {
		return false
	}
	t.state = to
	return true
}

func (t *Timer) finish(to State) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRunning && t.state != StatePaused {
		return false
	}
	t.state = to
	return true
}

// Run feeds ticks from source into timer until the run ends or ctx is done,
// calling fn after every tick. The source is stopped on return.
func Run(ctx context.Context, source scheduler.Source, timer *Timer, fn func(Status, []Event)) error {
	defer source.Stop()
	for {
		if !timer.Status().Live() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-source.C():
			if !ok {
				return nil
			}
			events := timer.Tick()
			if fn != nil {
				fn(timer.Status(), events)
			}
		}
	}
}
