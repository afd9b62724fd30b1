package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrEngineStopped      = errors.New("scheduler: engine stopped")
)

type Kind string

const (
	// KindDayRollover fires at local midnight so recurring templates can
	// materialize the new day's instances.
	KindDayRollover Kind = "day_rollover"
	// KindSlotStart fires when a scheduled task's slot begins.
	KindSlotStart Kind = "slot_start"
)

// RolloverID is the id of the single pending day rollover.
const RolloverID = "day-rollover"

type Event struct {
	ID        string
	Kind      Kind
	TaskID    string
	TriggerAt time.Time
}

// RolloverEvent fires at the first midnight after now.
func RolloverEvent(now time.Time) Event {
	return Event{ID: RolloverID, Kind: KindDayRollover, TriggerAt: NextMidnight(now)}
}

// SlotEvent fires when taskID's slot begins at at.
func SlotEvent(taskID string, at time.Time) Event {
	return Event{ID: SlotEventID(taskID), Kind: KindSlotStart, TaskID: taskID, TriggerAt: at}
}

func SlotEventID(taskID string) string {
	return "slot:" + taskID
}

// NextMidnight returns the start of the calendar day after now, in now's
// location.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

// timeline is a min-heap on TriggerAt that tracks each entry's position so
// entries can be moved or removed by id.
type timeline struct {
	entries []*entry
	byID    map[string]*entry
}

type entry struct {
	event Event
	index int
}

func (tl *timeline) Len() int { return len(tl.entries) }

func (tl *timeline) Less(i, j int) bool {
	return tl.entries[i].event.TriggerAt.Before(tl.entries[j].event.TriggerAt)
}

func (tl *timeline) Swap(i, j int) {
	tl.entries[i], tl.entries[j] = tl.entries[j], tl.entries[i]
	tl.entries[i].index = i
	tl.entries[j].index = j
}

func (tl *timeline) Push(x any) {
	e := x.(*entry)
	e.index = len(tl.entries)
	tl.entries = append(tl.entries, e)
	tl.byID[e.event.ID] = e
}

func (tl *timeline) Pop() any {
	n := len(tl.entries)
	e := tl.entries[n-1]
	tl.entries[n-1] = nil
	tl.entries = tl.entries[:n-1]
	delete(tl.byID, e.event.ID)
	return e
}

func (tl *timeline) upsert(ev Event) {
	if e, ok := tl.byID[ev.ID]; ok {
		e.event = ev
		heap.Fix(tl, e.index)
		return
	}
	heap.Push(tl, &entry{event: ev})
}

func (tl *timeline) remove(id string) bool {
	e, ok := tl.byID[id]
	if !ok {
		return false
	}
	heap.Remove(tl, e.index)
	return true
}

// Engine delivers one-shot events on C when their trigger time passes. Events
// are keyed by ID: scheduling an id that is already pending moves it.
// Delivery never blocks; an event that finds C full is counted as dropped.
type Engine struct {
	mu      sync.Mutex
	pending timeline
	out     chan Event
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		pending: timeline{byID: make(map[string]*entry)},
		out:     make(chan Event, bufferSize),
		wakeup:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Event {
	return e.out
}

// Start launches the delivery loop. Events scheduled before Start are kept.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	go e.run()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev Event) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}
	e.pending.upsert(ev)
	e.poke()
	return nil
}

// Cancel removes the pending event with the given id and reports whether one
// was pending.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.pending.remove(id) {
		return false
	}
	e.poke()
	return true
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending.Len()
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.doneCh)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		wait, ok := e.untilNext()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}
		rearm(timer, wait)

		select {
		case <-timer.C:
			for _, ev := range e.takeDue(time.Now()) {
				select {
				case e.out <- ev:
				default:
					e.dropped.Add(1)
				}
			}
		case <-e.wakeup:
		case <-e.stopCh:
			return
		}
	}
}

func (e *Engine) poke() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) untilNext() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending.Len() == 0 {
		return 0, false
	}
	return max(time.Until(e.pending.entries[0].event.TriggerAt), 0), true
}

func (e *Engine) takeDue(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var due []Event
	for e.pending.Len() > 0 && !e.pending.entries[0].event.TriggerAt.After(now) {
		due = append(due, heap.Pop(&e.pending).(*entry).event)
	}
	return due
}

func rearm(timer *time.Timer, d time.Duration) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
}
