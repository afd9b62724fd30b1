package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/timeboxd/internal/commands"
	"github.com/sandeepkv93/timeboxd/internal/views"
)

func (m Model) handleBacklogKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	backlog := m.store.Backlog()
	switch msg.String() {
	case "a":
		m.Capturing = true
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
		return m, nil
	case "j", "down":
		m.BacklogCursor = clampCursor(m.BacklogCursor+1, len(backlog))
		return m, nil
	case "k", "up":
		m.BacklogCursor = clampCursor(m.BacklogCursor-1, len(backlog))
		return m, nil
	}
	if len(backlog) == 0 {
		return m, nil
	}
	selected := backlog[clampCursor(m.BacklogCursor, len(backlog))]
	switch msg.String() {
	case "enter":
		return m.scheduleTask(selected.ID, m.SlotCursor)
	case "s":
		return m.startTask(selected.ID)
	case "c":
		return m.completeTask(selected.ID)
	case "x":
		return m.deleteTask(selected.ID)
	}
	return m, nil
}

// handleCaptureKey feeds the quick-add input. Its text uses the same syntax
// as the add command.
func (m Model) handleCaptureKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Capturing = false
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		return m, nil
	case "enter":
		raw := strings.TrimSpace(m.quickAddInput.Value())
		m.quickAddInput.SetValue("")
		if raw == "" {
			return m, nil
		}
		cmd, err := commands.Parse("add " + raw)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		return m.execute(cmd)
	}
	if msg.Type == tea.KeyRunes {
		m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
		return m, nil
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	return m, cmd
}

func (m Model) renderBacklogView() string {
	backlog := m.store.Backlog()
	cursor := clampCursor(m.BacklogCursor, len(backlog))
	items := make([]views.TaskRowData, 0, len(backlog))
	for i, t := range backlog {
		items = append(items, views.TaskRowData{
			ID:       t.ID,
			Title:    t.Title,
			Duration: t.Duration,
			Status:   t.Status,
			Selected: i == cursor,
		})
	}
	input := m.quickAddInput.View()
	if !m.Capturing {
		input = fmt.Sprintf("schedule target: %s", m.SlotCursor)
	}
	return views.RenderBacklogPanel(views.BacklogPanelData{
		Theme:     m.Theme,
		InputView: input,
		Capturing: m.Capturing,
		Items:     items,
		ListView:  m.backlogList.View(),
	})
}
