package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

type AppData struct {
	Theme        model.Theme
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

// Styles is the resolved lipgloss style set for one theme.
type Styles struct {
	Header lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Panel  lipgloss.Style
	Footer lipgloss.Style
	Accent lipgloss.Style
	Muted  lipgloss.Style
	Done   lipgloss.Style
}

var (
	darkStyles = Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Done:   lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8")),
	}
	lightStyles = Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("7")).Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Accent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Done:   lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("245")),
	}
)

// IsDark resolves the system theme against the terminal background.
func IsDark(theme model.Theme) bool {
	switch theme {
	case model.ThemeLight:
		return false
	case model.ThemeDark:
		return true
	default:
		return lipgloss.HasDarkBackground()
	}
}

func StylesFor(theme model.Theme) Styles {
	if IsDark(theme) {
		return darkStyles
	}
	return lightStyles
}

func RenderApp(data AppData) string {
	st := StylesFor(data.Theme)
	left := st.Panel.Width(58).Render(data.LeftPane)
	right := st.Panel.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := st.Status.Render(data.StatusLine)
	if data.StatusError {
		status = st.Error.Render(data.StatusLine)
	}

	lines := []string{
		st.Header.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, st.Panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, st.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, theme model.Theme) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if IsDark(theme) {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
