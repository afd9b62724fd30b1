package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/recurrence"
	"github.com/sandeepkv93/timeboxd/internal/views"
)

func (m Model) handleTemplatesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	templates := m.store.Templates()
	switch msg.String() {
	case "j", "down":
		m.TemplateCursor = clampCursor(m.TemplateCursor+1, len(templates))
		return m, nil
	case "k", "up":
		m.TemplateCursor = clampCursor(m.TemplateCursor-1, len(templates))
		return m, nil
	case "x":
		if len(templates) == 0 {
			return m, nil
		}
		return m.deleteTask(templates[clampCursor(m.TemplateCursor, len(templates))].ID)
	}
	return m, nil
}

func (m Model) renderTemplatesView() string {
	tasks := m.store.Tasks()
	templates := m.store.Templates()
	cursor := clampCursor(m.TemplateCursor, len(templates))
	items := make([]views.TemplateRowData, 0, len(templates))
	for i, tpl := range templates {
		items = append(items, views.TemplateRowData{
			ID:        tpl.ID,
			Title:     tpl.Title,
			Pattern:   string(tpl.Recurrence),
			At:        slotLabel(tpl.RecurrenceTime),
			Next:      nextOccurrenceLabel(tpl, m.now()),
			Instances: len(recurrence.Instances(tasks, tpl.ID)),
			Selected:  i == cursor,
		})
	}
	return m.templateTable.View() + "\n\n" + views.RenderTemplatesPanel(views.TemplatesPanelData{Items: items})
}

func slotLabel(s *model.Slot) string {
	if s == nil {
		return ""
	}
	return s.String()
}

func nextOccurrenceLabel(tpl model.Task, now time.Time) string {
	next, ok := tpl.Recurrence.NextOccurrence(now)
	if !ok {
		return "-"
	}
	return next.Format("Mon 01-02")
}
