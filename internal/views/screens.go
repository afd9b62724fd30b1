package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

type TimelineRowData struct {
	Slot   string
	TaskID string
	Title  string
	Status model.Status

	// Head marks the first row a task occupies; later rows render as a bar.
	Head   bool
	Cursor bool
	Now    bool
}

type TimelinePanelData struct {
	Theme model.Theme
	Rows  []TimelineRowData
}

type TaskRowData struct {
	ID       string
	Title    string
	Duration int
	Status   model.Status
	Selected bool
}

type BacklogPanelData struct {
	Theme     model.Theme
	InputView string
	Capturing bool
	Items     []TaskRowData

	// ListView replaces the plain rows when set.
	ListView string
}

type TemplateRowData struct {
	ID        string
	Title     string
	Pattern   string
	At        string
	Next      string
	Instances int
	Selected  bool
}

type TemplatesPanelData struct {
	Items []TemplateRowData
}

type FocusPanelData struct {
	TaskTitle    string
	State        string
	Spinner      string
	Timer        string
	ProgressView string
	ProgressPct  int
	TimeUp       bool
}

type StatsPanelData struct {
	CompletedToday      int
	TotalTasksToday     int
	ScheduledOpen       int
	Streak              int
	TotalFocusTimeToday int
	CompletionRate      int
	Degraded            bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
	Markdown    string
}

func RenderTimelinePanel(data TimelinePanelData) string {
	st := StylesFor(data.Theme)
	var b strings.Builder
	b.WriteString("timeline:\n")
	b.WriteString("actions: [j/k]slot [enter]place [s]start [c]complete [b]backlog [x]delete\n")
	for _, row := range data.Rows {
		cursor := " "
		if row.Cursor {
			cursor = ">"
		}
		marker := " "
		if row.Now {
			marker = "*"
		}
		line := fmt.Sprintf("%s%s %s ", cursor, marker, row.Slot)
		switch {
		case row.TaskID == "":
			line += st.Muted.Render("·")
		case row.Head:
			line += taskLabel(st, row.Title, row.Status)
		default:
			line += st.Muted.Render("│")
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderBacklogPanel(data BacklogPanelData) string {
	st := StylesFor(data.Theme)
	var b strings.Builder
	b.WriteString("backlog:\n")
	b.WriteString(data.InputView + "\n")
	if data.Capturing {
		b.WriteString("actions: [enter]add [esc]done\n")
	} else {
		b.WriteString("actions: [a]add [j/k]move [enter]schedule at cursor [s]start [x]delete\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(backlog empty)")
		return b.String()
	}
	if data.ListView != "" {
		b.WriteString(data.ListView)
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, taskLabel(st, item.Title, item.Status), st.Muted.Render(fmt.Sprintf("%dm", item.Duration))))
	}
	return strings.TrimSpace(b.String())
}

func RenderTemplatesPanel(data TemplatesPanelData) string {
	var b strings.Builder
	b.WriteString("templates:\n")
	b.WriteString("actions: [j/k]move [x]delete with instances\n")
	if len(data.Items) == 0 {
		b.WriteString("(no recurring templates)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		at := item.At
		if at == "" {
			at = "backlog"
		}
		b.WriteString(fmt.Sprintf("%s %s [%s @ %s] next: %s, instances: %d\n", cursor, item.Title, item.Pattern, at, item.Next, item.Instances))
	}
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none active)\n")
	}
	state := strings.ToUpper(data.State)
	if data.Spinner != "" {
		state += " " + data.Spinner
	}
	b.WriteString(fmt.Sprintf("state: %s\n", state))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString("actions: [space]pause/resume [c]complete [esc]stop\n")
	if data.TimeUp {
		b.WriteString("prompt: time is up, press [c] to complete")
	}
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("completed today: %d of %d\n", data.CompletedToday, data.TotalTasksToday))
	b.WriteString(fmt.Sprintf("scheduled open: %d\n", data.ScheduledOpen))
	b.WriteString(fmt.Sprintf("focus time: %s\n", FormatMinutes(data.TotalFocusTimeToday)))
	b.WriteString(fmt.Sprintf("completion rate: %d%%\n", data.CompletionRate))
	b.WriteString(fmt.Sprintf("streak: %d day(s)\n", data.Streak))
	if data.Degraded {
		b.WriteString("storage: unavailable, changes kept in memory only")
	}
	return strings.TrimSpace(b.String())
}

// FormatMinutes renders 65 as "1h 5m" and 40 as "40m".
func FormatMinutes(total int) string {
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	if total%60 == 0 {
		return fmt.Sprintf("%dh", total/60)
	}
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	out := fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
	if data.Markdown != "" {
		out += "\n" + data.Markdown
	}
	return out
}

func taskLabel(st Styles, title string, status model.Status) string {
	switch status {
	case model.StatusCompleted:
		return st.Done.Render("✓ " + title)
	case model.StatusActive:
		return st.Accent.Render("▶ " + title)
	default:
		return title
	}
}
