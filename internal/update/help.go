package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpMarkdown = `## Commands

| Command | Effect |
|---|---|
| ` + "`add <title> [for <min>] [daily\\|weekdays\\|weekly] [at HH:MM]`" + ` | new task or recurring template |
| ` + "`move <id> <HH:MM>`" + ` | place on the timeline, pushed past conflicts |
| ` + "`backlog <id>`" + ` | return to the backlog |
| ` + "`start <id>` / `stop`" + ` | begin or end a focus session |
| ` + "`complete <id>`" + ` | mark done |
| ` + "`rename <id> <title>` / `retime <id> <min>`" + ` | edit |
| ` + "`delete <id>` / `untemplate <id>`" + ` | remove a task or a template with its instances |
| ` + "`clear`" + ` | drop completed tasks |
| ` + "`theme light\\|dark\\|system`" + ` | switch colours |
`

func renderHelpMarkdown(theme model.Theme) string {
	return views.RenderMarkdown(helpMarkdown, theme)
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		Markdown: m.helpViewport.View(),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Timeline, Action: "switch to Timeline"},
		{Key: m.Keys.Backlog, Action: "switch to Backlog"},
		{Key: m.Keys.Templates, Action: "switch to Templates"},
		{Key: m.Keys.Focus, Action: "switch to Focus"},
		{Key: m.Keys.Stats, Action: "switch to Stats"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Theme, Action: "cycle theme"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: "pgup/pgdown", Action: "scroll help"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTimeline:
		return []KeyBinding{
			{Key: "j/k", Action: "move slot cursor"},
			{Key: "g", Action: "jump to now"},
			{Key: "enter", Action: "place selected backlog task"},
			{Key: "s/c", Action: "start / complete task at cursor"},
			{Key: "b/x", Action: "back to backlog / delete"},
		}
	case ViewBacklog:
		return []KeyBinding{
			{Key: "a", Action: "quick add"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter", Action: "schedule at timeline cursor"},
			{Key: "s/c/x", Action: "start / complete / delete"},
		}
	case ViewTemplates:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "x", Action: "delete template and instances"},
		}
	case ViewFocus:
		return []KeyBinding{
			{Key: "space", Action: "pause/resume timer"},
			{Key: "c", Action: "complete task"},
			{Key: "esc", Action: "stop task"},
		}
	case ViewStats:
		return []KeyBinding{
			{Key: "C", Action: "clear completed tasks"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
