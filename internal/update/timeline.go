package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/views"
)

// timelineWindow is how many slot rows are rendered around the cursor.
const timelineWindow = 16

func (m Model) handleTimelineKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.SlotCursor = model.MinutesToSlot(model.SlotToMinutes(m.SlotCursor) + model.SlotMinutes)
		return m, nil
	case "k", "up":
		m.SlotCursor = model.MinutesToSlot(model.SlotToMinutes(m.SlotCursor) - model.SlotMinutes)
		return m, nil
	case "g":
		m.SlotCursor = model.CurrentSlot(m.now())
		return m, nil
	case "enter":
		backlog := m.store.Backlog()
		if len(backlog) == 0 {
			m.Status = StatusBar{Text: "backlog is empty"}
			return m, nil
		}
		return m.scheduleTask(backlog[clampCursor(m.BacklogCursor, len(backlog))].ID, m.SlotCursor)
	}

	t, ok := m.taskAtCursor()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "s":
		return m.startTask(t.ID)
	case "c":
		return m.completeTask(t.ID)
	case "b":
		return m.unscheduleTask(t.ID)
	case "x":
		return m.deleteTask(t.ID)
	}
	return m, nil
}

// taskAtCursor returns the task occupying the cursor slot, preferring open
// tasks over completed ones.
func (m Model) taskAtCursor() (model.Task, bool) {
	occupant, ok := occupants(m.store.Timeline())[m.SlotCursor]
	return occupant, ok
}

// occupants maps each slot to the task covering it.
func occupants(timeline []model.Task) map[model.Slot]model.Task {
	out := make(map[model.Slot]model.Task)
	for _, pass := range []bool{false, true} {
		for _, t := range timeline {
			if t.IsCompleted() != pass {
				continue
			}
			start, end, _ := t.Interval()
			for at := start; at < end && at <= model.MaxSlotMinutes; at += model.SlotMinutes {
				slot := model.Slot(at)
				if _, taken := out[slot]; !taken {
					out[slot] = t
				}
			}
		}
	}
	return out
}

func (m Model) renderTimelineView() string {
	cover := occupants(m.store.Timeline())
	now := model.CurrentSlot(m.now())

	first := model.SlotToMinutes(m.SlotCursor) - (timelineWindow/2)*model.SlotMinutes
	if first < 0 {
		first = 0
	}
	if last := first + (timelineWindow-1)*model.SlotMinutes; last > model.MaxSlotMinutes {
		first = model.MaxSlotMinutes - (timelineWindow-1)*model.SlotMinutes
	}

	rows := make([]views.TimelineRowData, 0, timelineWindow)
	for i := 0; i < timelineWindow; i++ {
		slot := model.Slot(first + i*model.SlotMinutes)
		row := views.TimelineRowData{
			Slot:   slot.String(),
			Cursor: slot == m.SlotCursor,
			Now:    slot == now,
		}
		if t, ok := cover[slot]; ok {
			row.TaskID = t.ID
			row.Title = t.Title
			row.Status = t.Status
			row.Head = *t.ScheduledTime == slot || i == 0
		}
		rows = append(rows, row)
	}
	return views.RenderTimelinePanel(views.TimelinePanelData{Theme: m.Theme, Rows: rows})
}
