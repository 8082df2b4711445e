package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	billingdto "inkwell/internal/modules/billing/dto"
	"inkwell/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Balance(ctx context.Context) (billingdto.BalanceOutput, error)
	Affiliate(ctx context.Context) (billingdto.AffiliateOutput, error)
	RequestPayout(ctx context.Context) error
	RateLimit() billingdto.RateLimitOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type BalanceLoadedMsg struct {
	Out billingdto.BalanceOutput
	Err error
}

type AffiliateLoadedMsg struct {
	Out billingdto.AffiliateOutput
	Err error
}

type PayoutDoneMsg struct{ Err error }

type tickMsg time.Time

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port Port

	balance      billingdto.BalanceOutput
	balanceErr   string
	affiliate    billingdto.AffiliateOutput
	affiliateErr string
	status       string
	spinner      spinner.Model
	loading      bool
	width        int
	height       int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBalanceCmd(), m.loadAffiliateCmd(), m.spinner.Tick, tickCmd())
}

// Reload re-fetches balance and affiliate stats.
func (m *Model) Reload() tea.Cmd {
	return tea.Batch(m.loadBalanceCmd(), m.loadAffiliateCmd())
}

// RequestPayout triggers an affiliate payout request, used by the palette too.
func (m *Model) RequestPayout() tea.Cmd {
	m.status = "requesting payout…"
	return m.payoutCmd()
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

	case AffiliateLoadedMsg:
		if msg.Err != nil {
			m.affiliateErr = msg.Err.Error()
		} else {
			m.affiliateErr = ""
			m.affiliate = msg.Out
		}

	case PayoutDoneMsg:
		if msg.Err != nil {
			m.status = "payout failed: " + msg.Err.Error()
		} else {
			m.status = "payout requested"
		}
		return m, m.loadAffiliateCmd()

	case tickMsg:
		// The rate-limit countdown changes once a second without messages.
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "p" {
			return m, m.RequestPayout()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading billing…")
	}

	colW := m.width/2 - 2
	left := theme.Pane.Width(colW).Render(m.renderCredits())
	right := theme.Pane.Width(colW).Render(m.renderAffiliate())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	footer := theme.Muted.Render("p: request payout")
	if m.status != "" {
		footer += "   " + m.status
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderCredits() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Credits") + "\n\n")
	if m.balanceErr != "" {
		sb.WriteString(theme.Bad.Render(m.balanceErr) + "\n")
	} else {
		sb.WriteString(theme.Hot.Render(fmt.Sprintf("%d", m.balance.Credits)))
		sb.WriteString(theme.Muted.Render("  on plan ") + m.balance.Plan + "\n")
		if len(m.balance.Grants) > 0 {
			sb.WriteString("\n" + theme.Muted.Render("recent top-ups:") + "\n")
			for _, g := range m.balance.Grants {
				sb.WriteString(fmt.Sprintf("  +%d  %s\n", g.Amount, g.At.Local().Format("Jan 2 15:04")))
			}
		}
	}

	limit := m.port.RateLimit()
	sb.WriteString("\n" + theme.Muted.Render("rate limit: "))
	if limit.Limited {
		remaining := time.Until(limit.ResetAt).Round(time.Second)
		if remaining < 0 {
			remaining = 0
		}
		sb.WriteString(theme.Bad.Render(fmt.Sprintf("limited, resets in %s", remaining)))
	} else {
		sb.WriteString(theme.Good.Render("ok"))
	}
	return sb.String()
}

func (m Model) renderAffiliate() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Affiliate") + "\n\n")
	if m.affiliateErr != "" {
		sb.WriteString(theme.Bad.Render(m.affiliateErr))
		return sb.String()
	}
	a := m.affiliate
	sb.WriteString(theme.Muted.Render("code:     ") + a.ReferralCode + "\n")
	sb.WriteString(theme.Muted.Render("url:      ") + a.ReferralURL + "\n")
	sb.WriteString(theme.Muted.Render("clicks:   ") + fmt.Sprintf("%d", a.Clicks) + "\n")
	sb.WriteString(theme.Muted.Render("signups:  ") + fmt.Sprintf("%d", a.Signups) + "\n")
	sb.WriteString(theme.Muted.Render("earned:   ") + formatCents(a.EarningsCents) + "\n")
	sb.WriteString(theme.Muted.Render("paid out: ") + formatCents(a.PaidOutCents) + "\n")
	return sb.String()
}

func formatCents(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func (m Model) loadBalanceCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Balance(context.Background())
		return BalanceLoadedMsg{Out: out, Err: err}
	}
}

func (m Model) loadAffiliateCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Affiliate(context.Background())
		return AffiliateLoadedMsg{Out: out, Err: err}
	}
}

func (m Model) payoutCmd() tea.Cmd {
	return func() tea.Msg {
		return PayoutDoneMsg{Err: m.port.RequestPayout(context.Background())}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}
