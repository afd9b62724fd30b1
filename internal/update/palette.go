package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/timeboxd/internal/commands"
	"github.com/sandeepkv93/timeboxd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	return m.execute(cmd)
}

// execute runs a parsed command against the store and reports the outcome on
// the status bar.
func (m Model) execute(cmd commands.Command) (Model, tea.Cmd) {
	res, err := commands.Execute(cmd, commands.Bind(m.ctx, m.store, func(theme model.Theme) error {
		m.setTheme(theme)
		return nil
	}))
	if err != nil {
		m.logger.Debug("command failed", zap.String("command", string(cmd.Type)), zap.Error(err))
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.logger.Debug("command executed", zap.String("command", string(cmd.Type)))
	m.Status = StatusBar{Text: res.Message}
	return m, m.afterMutation()
}
