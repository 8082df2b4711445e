package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "inkwell/internal/modules/auth/dto"
	"inkwell/internal/ui/theme"
)

// Port is the slice of the auth use-case this view needs.
type Port interface {
	Login(ctx context.Context, input authdto.LoginInput) (authdto.LoginOutput, error)
}

// DoneMsg bubbles up to the root model once a login attempt resolves.
type DoneMsg struct {
	Out authdto.LoginOutput
	Err error
}

type Model struct {
	port    Port
	input   textinput.Model
	spinner spinner.Model
	busy    bool
	errText string
	width   int
	height  int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "credential key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 128
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, input: ti, spinner: sp}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case DoneMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			m.input.SetValue("")
			return m, textinput.Blink
		}
		m.errText = ""

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if msg.String() == "enter" {
			key := strings.TrimSpace(m.input.Value())
			if key == "" {
				m.errText = "enter a credential key"
				return m, nil
			}
			m.busy = true
			m.errText = ""
			return m, tea.Batch(m.loginCmd(key), m.spinner.Tick)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Sign in to Inkwell") + "\n\n")
	sb.WriteString(theme.Muted.Render("Paste the credential key from your account page.") + "\n\n")
	sb.WriteString(m.input.View() + "\n")
	if m.busy {
		sb.WriteString("\n" + m.spinner.View() + " verifying…")
	}
	if m.errText != "" {
		sb.WriteString("\n" + theme.Bad.Render(m.errText))
	}
	box := theme.Pane.Width(min(m.width-8, 60)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) loginCmd(key string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Login(context.Background(), authdto.LoginInput{Key: key})
		return DoneMsg{Out: out, Err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
