package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/scheduler"
)

func waitForSchedulerCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}

func (m Model) onSchedulerEvent(msg SchedulerEventMsg) (Model, tea.Cmd) {
	ev := msg.Event
	switch ev.Kind {
	case scheduler.KindDayRollover:
		before := len(m.store.Tasks())
		if err := m.store.RunRecurrence(m.ctx); err != nil {
			m.logger.Warn("recurrence pass failed", zap.Error(err))
		}
		added := len(m.store.Tasks()) - before
		m.logger.Info("day rollover", zap.Int("instances", added))
		m.scheduleRollover()
		m.syncReminders()
		if added > 0 {
			m.Status = StatusBar{Text: fmt.Sprintf("new day: %d recurring task(s) added", added)}
		}
	case scheduler.KindSlotStart:
		delete(m.reminders, ev.TaskID)
		t, ok := m.store.Task(ev.TaskID)
		if ok && !t.IsCompleted() && t.Status != model.StatusActive {
			m.Status = StatusBar{Text: fmt.Sprintf("time for %s (%dm)", t.Title, t.Duration)}
			m.notify("Timebox starting", t.Title, "info")
		}
	}
	if m.engine == nil {
		return m, nil
	}
	return m, waitForSchedulerCmd(m.engine.C())
}

func (m *Model) scheduleRollover() {
	if m.engine == nil {
		return
	}
	if err := m.engine.Schedule(scheduler.RolloverEvent(m.now())); err != nil {
		m.logger.Warn("schedule day rollover", zap.Error(err))
	}
}

// syncReminders keeps one slot-start event per open task scheduled later
// today and cancels the ones whose task moved, finished or disappeared.
func (m *Model) syncReminders() {
	if m.engine == nil {
		return
	}
	now := m.now()
	day := model.StartOfDay(now)
	wanted := make(map[string]time.Time)
	for _, t := range m.store.Timeline() {
		if t.IsCompleted() || t.Status == model.StatusActive {
			continue
		}
		at := day.Add(time.Duration(model.SlotToMinutes(*t.ScheduledTime)) * time.Minute)
		if at.After(now) {
			wanted[t.ID] = at
		}
	}
	for id, at := range m.reminders {
		if next, ok := wanted[id]; ok && next.Equal(at) {
			continue
		}
		m.engine.Cancel(scheduler.SlotEventID(id))
		delete(m.reminders, id)
	}
	for id, at := range wanted {
		if _, ok := m.reminders[id]; ok {
			continue
		}
		if err := m.engine.Schedule(scheduler.SlotEvent(id, at)); err != nil {
			m.logger.Warn("schedule slot reminder", zap.String("task_id", id), zap.Error(err))
			continue
		}
		m.reminders[id] = at
	}
}
