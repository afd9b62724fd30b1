package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/timeboxd/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.reconcileFocus()}
	if m.engine != nil {
		m.scheduleRollover()
		m.syncReminders()
		cmds = append(cmds, waitForSchedulerCmd(m.engine.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		if m.Capturing {
			return m.handleCaptureKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Timeline:
			m.CurrentView = ViewTimeline
			return m, nil
		case m.Keys.Backlog:
			m.CurrentView = ViewBacklog
			return m, nil
		case m.Keys.Templates:
			m.CurrentView = ViewTemplates
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			return m, nil
		case m.Keys.Stats:
			m.CurrentView = ViewStats
			return m, nil
		case m.Keys.Theme:
			m.setTheme(nextTheme(m.Theme))
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "pgup", "pgdown":
			if m.HelpVisible {
				m.helpViewport, _ = m.helpViewport.Update(typed)
				return m, nil
			}
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			m.endSession()
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTimeline:
			return m.handleTimelineKey(typed)
		case ViewBacklog:
			return m.handleBacklogKey(typed)
		case ViewTemplates:
			return m.handleTemplatesKey(typed)
		case ViewFocus:
			return m.handleFocusKey(typed)
		case ViewStats:
			return m.handleStatsKey(typed)
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.logger.Warn("tui error", zap.Error(typed.Err))
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick(typed)
	case SchedulerEventMsg:
		return m.onSchedulerEvent(typed)
	}

	return m, nil
}

func (m Model) View() string {
	m.syncBubbleData()
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	switch m.CurrentView {
	case ViewTimeline:
		leftPane = m.renderTimelineView()
	case ViewBacklog:
		leftPane = m.renderBacklogView()
	case ViewTemplates:
		leftPane = m.renderTemplatesView()
	case ViewFocus:
		leftPane = m.renderFocusView()
	case ViewStats:
		leftPane = m.renderStatsView()
	}
	rightPane := joinSections(
		m.renderFocusSummary(),
		m.renderStatsView(),
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	)

	active := "-"
	if t, ok := m.store.Active(); ok {
		active = t.Title
	}
	return views.RenderApp(views.AppData{
		Theme:        m.Theme,
		Header:       fmt.Sprintf("timeboxd | view: %s | active: %s | %s", m.CurrentView, active, m.now().Format("Mon 15:04")),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s timeline | %s backlog | %s templates | %s focus | %s stats | / cmd | %s theme | %s help | %s quit",
			m.Keys.Timeline, m.Keys.Backlog, m.Keys.Templates, m.Keys.Focus, m.Keys.Stats, m.Keys.Theme, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewTimeline, ViewBacklog, ViewTemplates, ViewFocus, ViewStats:
		return true
	default:
		return false
	}
}
