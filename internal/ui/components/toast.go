package components

import (
	"github.com/charmbracelet/lipgloss"

	"inkwell/internal/platform/notify"
	"inkwell/internal/ui/theme"
)

var toastStyles = map[notify.Level]lipgloss.Style{
	notify.LevelInfo:    lipgloss.NewStyle().Foreground(theme.Sapphire),
	notify.LevelSuccess: lipgloss.NewStyle().Foreground(theme.Green),
	notify.LevelWarn:    lipgloss.NewStyle().Foreground(theme.Yellow),
	notify.LevelError:   lipgloss.NewStyle().Foreground(theme.Red).Bold(true),
}

// Toast holds the most recent notification for the status bar. A new
// notification simply replaces the previous one; history stays in the
// notify.Store.
type Toast struct {
	current notify.Notification
	set     bool
}

func (t *Toast) Show(n notify.Notification) {
	t.current = n
	t.set = true
}

func (t *Toast) Clear() { t.set = false }

func (t Toast) View() string {
	if !t.set {
		return ""
	}
	style, ok := toastStyles[t.current.Level]
	if !ok {
		style = toastStyles[notify.LevelInfo]
	}
	return style.Render(t.current.Message)
}
