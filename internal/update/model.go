package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/sandeepkv93/timeboxd/internal/focus"
	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/planner"
	"github.com/sandeepkv93/timeboxd/internal/prefs"
	"github.com/sandeepkv93/timeboxd/internal/scheduler"
	"github.com/sandeepkv93/timeboxd/internal/views"
)

type View string

const (
	ViewTimeline  View = "Timeline"
	ViewBacklog   View = "Backlog"
	ViewTemplates View = "Templates"
	ViewFocus     View = "Focus"
	ViewStats     View = "Stats"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Timeline  string
	Backlog   string
	Templates string
	Focus     string
	Stats     string
	Theme     string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Deps wires the model to the planner core. Store is required; everything
// else has a usable default.
type Deps struct {
	Ctx      context.Context
	Store    *planner.Store
	Prefs    *prefs.Store
	Engine   *scheduler.Engine
	Timer    *focus.Timer
	Notifier DesktopNotifier
	Logger   *zap.Logger
	Now      func() time.Time

	// NewTickSource returns the one-second source driving a focus session.
	NewTickSource  func() scheduler.Source
	DesktopEnabled bool
}

type Model struct {
	CurrentView    View
	Theme          model.Theme
	SlotCursor     model.Slot
	BacklogCursor  int
	TemplateCursor int
	Capturing      bool
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx           context.Context
	store         *planner.Store
	prefs         *prefs.Store
	engine        *scheduler.Engine
	timer         *focus.Timer
	notifier      DesktopNotifier
	logger        *zap.Logger
	now           func() time.Time
	newTickSource func() scheduler.Source
	runner        *focusRunner

	// reminders tracks the slot-start trigger scheduled per task id.
	reminders map[string]time.Time

	quickAddInput textinput.Model
	commandInput  textinput.Model
	focusProgress progress.Model
	focusSpinner  spinner.Model
	helpModel     help.Model
	helpViewport  viewport.Model
	templateTable table.Model
	backlogList   list.Model
	helpMarkdown  string
}

// backlogItem adapts a task to the bubbles list.
type backlogItem struct {
	task model.Task
}

func (i backlogItem) Title() string       { return i.task.Title }
func (i backlogItem) Description() string { return fmt.Sprintf("%s · %s", views.FormatMinutes(i.task.Duration), i.task.ID) }
func (i backlogItem) FilterValue() string { return i.task.Title }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// FocusTickMsg carries the timer state after one tick of a focus session.
type FocusTickMsg struct {
	Session int
	Status  focus.Status
	Events  []focus.Event
}

type SchedulerEventMsg struct {
	Event scheduler.Event
}

func NewModel(deps Deps) Model {
	m := Model{
		CurrentView:    ViewTimeline,
		Theme:          model.ThemeSystem,
		DesktopEnabled: deps.DesktopEnabled,
		Keys: GlobalKeyMap{
			Timeline:  "1",
			Backlog:   "2",
			Templates: "3",
			Focus:     "4",
			Stats:     "5",
			Theme:     "T",
			Help:      "?",
			Quit:      "q",
		},
		ctx:           deps.Ctx,
		store:         deps.Store,
		prefs:         deps.Prefs,
		engine:        deps.Engine,
		timer:         deps.Timer,
		notifier:      deps.Notifier,
		logger:        deps.Logger,
		now:           deps.Now,
		newTickSource: deps.NewTickSource,
		runner:        &focusRunner{},
		reminders:     make(map[string]time.Time),
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.timer == nil {
		m.timer = focus.NewTimer(focus.DefaultWarningSeconds)
	}
	if m.notifier == nil {
		m.notifier = NoopDesktopNotifier{}
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newTickSource == nil {
		m.newTickSource = func() scheduler.Source { return scheduler.NewTicker(time.Second) }
	}
	if m.prefs != nil {
		m.Theme = m.prefs.Theme(m.ctx)
	}
	m.SlotCursor = model.CurrentSlot(m.now())
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.Placeholder = "title [for 45] [daily|weekdays|weekly] [at 09:00]"
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.focusProgress.Width = 30
	m.focusSpinner = spinner.New(spinner.WithSpinner(spinner.MiniDot))

	m.backlogList = list.New([]list.Item{}, list.NewDefaultDelegate(), 54, 14)
	m.backlogList.Title = "Backlog"
	m.backlogList.SetShowHelp(false)
	m.backlogList.SetShowStatusBar(false)
	m.backlogList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Title", Width: 20},
		{Title: "Repeat", Width: 9},
		{Title: "At", Width: 6},
		{Title: "Next", Width: 10},
	}
	m.templateTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(8))

	m.helpModel = help.New()
	m.helpViewport = viewport.New(54, 12)
	m.helpMarkdown = renderHelpMarkdown(m.Theme)
	m.helpViewport.SetContent(m.helpMarkdown)
}

// syncBubbleData copies store state into the bubble components before
// rendering.
func (m *Model) syncBubbleData() {
	templates := m.store.Templates()
	rows := make([]table.Row, 0, len(templates))
	for _, tpl := range templates {
		rows = append(rows, table.Row{tpl.Title, string(tpl.Recurrence), slotLabel(tpl.RecurrenceTime), nextOccurrenceLabel(tpl, m.now())})
	}
	m.templateTable.SetRows(rows)
	m.TemplateCursor = clampCursor(m.TemplateCursor, len(rows))
	if len(rows) > 0 {
		m.templateTable.SetCursor(m.TemplateCursor)
	}
	backlog := m.store.Backlog()
	items := make([]list.Item, 0, len(backlog))
	for _, t := range backlog {
		items = append(items, backlogItem{task: t})
	}
	m.backlogList.SetItems(items)
	m.BacklogCursor = clampCursor(m.BacklogCursor, len(backlog))
	if len(items) > 0 {
		m.backlogList.Select(m.BacklogCursor)
	}
}
