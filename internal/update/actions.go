package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

// afterMutation realigns the focus session and slot reminders with the store.
func (m *Model) afterMutation() tea.Cmd {
	m.syncReminders()
	return m.reconcileFocus()
}

func (m Model) fail(err error) (Model, tea.Cmd) {
	m.LastError = err
	m.logger.Warn("task operation failed", zap.Error(err))
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	return m, nil
}

func (m Model) startTask(id string) (Model, tea.Cmd) {
	t, ok := m.store.Task(id)
	if !ok || t.IsRecurringTemplate || t.IsCompleted() {
		m.Status = StatusBar{Text: "task cannot be started", IsError: true}
		return m, nil
	}
	if err := m.store.StartTask(m.ctx, id); err != nil {
		return m.fail(err)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("started %s", t.Title)}
	return m, m.afterMutation()
}

func (m Model) completeTask(id string) (Model, tea.Cmd) {
	t, ok := m.store.Task(id)
	if !ok {
		return m, nil
	}
	if err := m.store.CompleteTask(m.ctx, id); err != nil {
		return m.fail(err)
	}
	if st := m.timer.Status(); st.Live() && st.TaskID == id {
		m.timer.Complete()
	}
	m.Status = StatusBar{Text: fmt.Sprintf("completed %s", t.Title)}
	m.notify("Task complete", t.Title, "info")
	if m.CurrentView == ViewFocus {
		m.CurrentView = ViewTimeline
	}
	return m, m.afterMutation()
}

func (m Model) deleteTask(id string) (Model, tea.Cmd) {
	t, ok := m.store.Task(id)
	if !ok {
		return m, nil
	}
	var err error
	if t.IsRecurringTemplate {
		err = m.store.DeleteRecurringTemplate(m.ctx, id)
	} else {
		err = m.store.DeleteTask(m.ctx, id)
	}
	if err != nil {
		return m.fail(err)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleted %s", t.Title)}
	return m, m.afterMutation()
}

func (m Model) scheduleTask(id string, slot model.Slot) (Model, tea.Cmd) {
	placed, ok, err := m.store.ScheduleTask(m.ctx, id, slot)
	if err != nil {
		return m.fail(err)
	}
	if !ok {
		m.Status = StatusBar{Text: "task cannot be scheduled", IsError: true}
		return m, nil
	}
	text := fmt.Sprintf("scheduled at %s", placed)
	if placed != slot {
		text = fmt.Sprintf("%s was taken, scheduled at %s", slot, placed)
	}
	m.Status = StatusBar{Text: text}
	m.SlotCursor = placed
	return m, m.afterMutation()
}

func (m Model) unscheduleTask(id string) (Model, tea.Cmd) {
	if err := m.store.UnscheduleTask(m.ctx, id); err != nil {
		return m.fail(err)
	}
	m.Status = StatusBar{Text: "moved to backlog"}
	return m, m.afterMutation()
}
