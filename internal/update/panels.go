package update

import (
	"strings"

	"github.com/sandeepkv93/timeboxd/internal/model"
	"github.com/sandeepkv93/timeboxd/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) setTheme(theme model.Theme) {
	m.Theme = theme
	m.helpMarkdown = renderHelpMarkdown(theme)
	m.helpViewport.SetContent(m.helpMarkdown)
	if m.prefs == nil {
		return
	}
	if err := m.prefs.SetTheme(m.ctx, theme); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: "theme: " + string(theme)}
}

func nextTheme(t model.Theme) model.Theme {
	switch t {
	case model.ThemeLight:
		return model.ThemeDark
	case model.ThemeDark:
		return model.ThemeSystem
	default:
		return model.ThemeLight
	}
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
