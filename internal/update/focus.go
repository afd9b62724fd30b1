package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/timeboxd/internal/focus"
	"github.com/sandeepkv93/timeboxd/internal/views"
)

// focusRunner owns the goroutine feeding the current focus session. It is
// shared by every copy of the model.
type focusRunner struct {
	session int
	cancel  context.CancelFunc
	updates chan FocusTickMsg
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.timer.Pause() {
			m.Status = StatusBar{Text: "focus paused"}
		} else if m.timer.Resume() {
			m.Status = StatusBar{Text: "focus running"}
		}
		return m, nil
	case "c":
		if t, ok := m.store.Active(); ok {
			return m.completeTask(t.ID)
		}
		return m, nil
	case "esc":
		if _, ok := m.store.Active(); !ok {
			return m, nil
		}
		if err := m.store.StopTask(m.ctx); err != nil {
			return m.fail(err)
		}
		m.Status = StatusBar{Text: "focus stopped"}
		return m, m.afterMutation()
	}
	return m, nil
}

func (m Model) onFocusTick(msg FocusTickMsg) (Model, tea.Cmd) {
	if msg.Session != m.runner.session || m.runner.cancel == nil {
		return m, nil
	}
	m.focusSpinner, _ = m.focusSpinner.Update(m.focusSpinner.Tick())
	m.announceFocus(msg.Status, msg.Events)
	return m, m.waitForFocus()
}

// reconcileFocus keeps the countdown attached to the active task: a new
// active task arms the timer, and losing the active task ends the session.
func (m *Model) reconcileFocus() tea.Cmd {
	active, ok := m.store.Active()
	st := m.timer.Status()
	switch {
	case !ok:
		if st.Live() {
			m.timer.Abort()
		}
		m.endSession()
		return nil
	case st.Live() && st.TaskID == active.ID && m.runner.cancel != nil:
		return nil
	}

	m.endSession()
	if events := m.timer.Arm(active.ID, active.Duration); len(events) > 0 {
		m.announceFocus(m.timer.Status(), events)
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.runner.session++
	m.runner.cancel = cancel
	session := m.runner.session
	updates := make(chan FocusTickMsg, 1)
	m.runner.updates = updates
	source := m.newTickSource()
	timer := m.timer
	logger := m.logger
	go func() {
		defer close(updates)
		err := focus.Run(ctx, source, timer, func(st focus.Status, events []focus.Event) {
			select {
			case updates <- FocusTickMsg{Session: session, Status: st, Events: events}:
			case <-ctx.Done():
			}
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("focus session ended", zap.Error(err))
		}
	}()
	m.CurrentView = ViewFocus
	m.logger.Debug("focus session started", zap.String("task_id", active.ID), zap.Int("minutes", active.Duration))
	return m.waitForFocus()
}

// announceFocus surfaces countdown notifications in the status bar and on the
// desktop.
func (m *Model) announceFocus(st focus.Status, events []focus.Event) {
	title := st.TaskID
	if t, ok := m.store.Task(st.TaskID); ok {
		title = t.Title
	}
	for _, ev := range events {
		switch ev {
		case focus.EventWarning:
			m.Status = StatusBar{Text: fmt.Sprintf("%s left for %s", focus.FormatSeconds(st.Remaining), title)}
			m.notify("Timebox ending soon", m.Status.Text, "warning")
		case focus.EventTimeUp:
			m.Status = StatusBar{Text: fmt.Sprintf("time is up for %s", title)}
			m.notify("Timebox finished", m.Status.Text, "info")
		}
	}
}

func (m *Model) endSession() {
	if m.runner.cancel != nil {
		m.runner.cancel()
		m.runner.cancel = nil
		m.runner.updates = nil
	}
}

func (m Model) waitForFocus() tea.Cmd {
	updates := m.runner.updates
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return nil
		}
		return msg
	}
}

func (m Model) renderFocusView() string {
	st := m.timer.Status()
	title := ""
	if st.Live() {
		if t, ok := m.store.Task(st.TaskID); ok {
			title = t.Title
		}
	}
	spinner := ""
	if st.State == focus.StateRunning {
		spinner = m.focusSpinner.View()
	}
	return views.RenderFocusPanel(views.FocusPanelData{
		TaskTitle:    title,
		State:        string(st.State),
		Spinner:      spinner,
		Timer:        st.Clock(),
		ProgressView: m.focusProgress.ViewAs(st.Progress()),
		ProgressPct:  int(st.Progress() * 100),
		TimeUp:       st.Live() && st.Remaining == 0,
	})
}

func (m Model) renderFocusSummary() string {
	st := m.timer.Status()
	if !st.Live() {
		return ""
	}
	paused := ""
	if st.Paused() {
		paused = " (paused)"
	}
	return fmt.Sprintf("focus: %s%s", st.Clock(), paused)
}
