package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	billingdto "inkwell/internal/modules/billing/dto"
	bookdto "inkwell/internal/modules/books/dto"
	realtimedto "inkwell/internal/modules/realtime/dto"
	"inkwell/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type BillingPort interface {
	Balance(ctx context.Context) (billingdto.BalanceOutput, error)
}

type BooksPort interface {
	List(ctx context.Context) (bookdto.ListOutput, error)
}

// ChannelPort reads the push channel status; the call never blocks.
type ChannelPort interface {
	Status() realtimedto.StatusOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type BalanceLoadedMsg struct {
	Out billingdto.BalanceOutput
	Err error
}

type RecentLoadedMsg struct {
	Out bookdto.ListOutput
	Err error
}

type tickMsg time.Time

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	billing BillingPort
	books   BooksPort
	channel ChannelPort

	balance    billingdto.BalanceOutput
	balanceErr string
	recent     []bookdto.BookOutput
	fromCache  bool
	spinner    spinner.Model
	loading    bool
	width      int
	height     int
}

func New(billing BillingPort, books BooksPort, channel ChannelPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{billing: billing, books: books, channel: channel, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBalanceCmd(), m.loadRecentCmd(), m.spinner.Tick, tickCmd())
}

// Reload re-fetches balance and recent books.
func (m *Model) Reload() tea.Cmd {
	return tea.Batch(m.loadBalanceCmd(), m.loadRecentCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case BalanceLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.balanceErr = msg.Err.Error()
		} else {
			m.balanceErr = ""
			m.balance = msg.Out
		}

	case RecentLoadedMsg:
		if msg.Err == nil {
			m.recent = msg.Out.Books
			m.fromCache = msg.Out.FromCache
			if len(m.recent) > 5 {
				m.recent = m.recent[:5]
			}
		}

	case tickMsg:
		// Channel counters change without any message reaching this view.
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading dashboard…")
	}

	colW := m.width/2 - 2
	left := theme.Pane.Width(colW).Render(m.renderBalance())
	right := theme.Pane.Width(colW).Render(m.renderChannel())
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	booksPane := theme.Pane.Width(m.width - 2).Render(m.renderRecent())
	return lipgloss.JoinVertical(lipgloss.Left, top, booksPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderBalance() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Credits") + "\n\n")
	if m.balanceErr != "" {
		sb.WriteString(theme.Bad.Render(m.balanceErr))
		return sb.String()
	}
	sb.WriteString(theme.Hot.Render(fmt.Sprintf("%d", m.balance.Credits)))
	sb.WriteString(theme.Muted.Render("  on plan ") + m.balance.Plan + "\n")
	if len(m.balance.Grants) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("recent top-ups:") + "\n")
		for i, g := range m.balance.Grants {
			if i == 3 {
				break
			}
			sb.WriteString(fmt.Sprintf("  +%d  %s\n", g.Amount, g.At.Local().Format("Jan 2 15:04")))
		}
	}
	return sb.String()
}

func (m Model) renderChannel() string {
	st := m.channel.Status()
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Push Channel") + "\n\n")
	switch st.State {
	case "open":
		sb.WriteString(theme.Good.Render("● connected"))
	case "retry_wait", "connecting":
		sb.WriteString(theme.Hot.Render("◌ " + st.State))
	default:
		sb.WriteString(theme.Muted.Render("○ " + st.State))
	}
	sb.WriteString("\n\n")
	sb.WriteString(theme.Muted.Render("frames:     ") + fmt.Sprintf("%d", st.Frames) + "\n")
	sb.WriteString(theme.Muted.Render("drops:      ") + fmt.Sprintf("%d", st.Drops) + "\n")
	sb.WriteString(theme.Muted.Render("reconnects: ") + fmt.Sprintf("%d", st.Reconnects) + "\n")
	return sb.String()
}

func (m Model) renderRecent() string {
	var sb strings.Builder
	title := "Recent Books"
	if m.fromCache {
		title += " (offline copy)"
	}
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	if len(m.recent) == 0 {
		sb.WriteString(theme.Muted.Render("No books yet. Use book:create from the palette."))
		return sb.String()
	}
	for _, b := range m.recent {
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n",
			b.Title,
			theme.Muted.Render(b.Status),
			theme.Muted.Render(b.UpdatedAt.Local().Format("Jan 2 15:04"))))
	}
	return sb.String()
}

func (m Model) loadBalanceCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.billing.Balance(context.Background())
		return BalanceLoadedMsg{Out: out, Err: err}
	}
}

func (m Model) loadRecentCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.books.List(context.Background())
		return RecentLoadedMsg{Out: out, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}
