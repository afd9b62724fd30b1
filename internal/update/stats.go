package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/timeboxd/internal/views"
)

func (m Model) handleStatsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() != "C" {
		return m, nil
	}
	if err := m.store.ClearCompleted(m.ctx); err != nil {
		return m.fail(err)
	}
	m.Status = StatusBar{Text: "cleared completed tasks"}
	return m, m.afterMutation()
}

func (m Model) renderStatsView() string {
	s := m.store.Stats()
	return views.RenderStatsPanel(views.StatsPanelData{
		CompletedToday:      s.CompletedToday,
		TotalTasksToday:     s.TotalTasksToday,
		ScheduledOpen:       s.ScheduledOpen,
		Streak:              s.Streak,
		TotalFocusTimeToday: s.TotalFocusTimeToday,
		CompletionRate:      s.CompletionRate,
		Degraded:            m.store.Degraded(),
	})
}
