package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bookdto "inkwell/internal/modules/books/dto"
	"inkwell/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type LibraryPort interface {
	List(ctx context.Context) (bookdto.ListOutput, error)
	Get(ctx context.Context, bookID string) (bookdto.BookDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type BooksLoadedMsg struct {
	Out bookdto.ListOutput
	Err error
}

type DetailLoadedMsg struct {
	Detail bookdto.BookDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type bookItem struct {
	book bookdto.BookOutput
}

func (i bookItem) Title() string { return i.book.Title }
func (i bookItem) Description() string {
	return fmt.Sprintf("%s  %d pages  %s", i.book.Status, i.book.PageCount, i.book.Language)
}
func (i bookItem) FilterValue() string { return i.book.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      LibraryPort
	list      list.Model
	detail    bookdto.BookDetailOutput
	preview   viewport.Model
	spinner   spinner.Model
	loading   bool
	fromCache bool
	width     int
	height    int
}

func New(port LibraryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Library"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBooksCmd(), m.spinner.Tick)
}

// Reload re-fetches the book list, for example after a generation job
// completes or a palette command mutates a book.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadBooksCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case BooksLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Library: " + msg.Err.Error()
			return m, nil
		}
		m.fromCache = msg.Out.FromCache
		if m.fromCache {
			m.list.Title = "Library (offline copy)"
		} else {
			m.list.Title = "Library"
		}
		items := make([]list.Item, len(msg.Out.Books))
		for i, b := range msg.Out.Books {
			items[i] = bookItem{book: b}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Out.Books) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Out.Books[0].ID))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(bookItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.book.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading library…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedBookID returns the current selection's book ID, if any.
func (m Model) SelectedBookID() (string, bool) {
	if item, ok := m.list.SelectedItem().(bookItem); ok {
		return item.book.ID, true
	}
	return "", false
}

// SelectedBookTitle returns the current selection's title.
func (m Model) SelectedBookTitle() string {
	if item, ok := m.list.SelectedItem().(bookItem); ok {
		return item.book.Title
	}
	return ""
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.Book.ID == "" {
		return theme.Muted.Render("Select a book to see details")
	}
	b := d.Book
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(b.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:       ") + b.ID + "\n")
	sb.WriteString(theme.Muted.Render("status:   ") + b.Status + "\n")
	sb.WriteString(theme.Muted.Render("genre:    ") + b.Genre + "\n")
	sb.WriteString(theme.Muted.Render("language: ") + b.Language + "\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("pages:    "), b.PageCount))
	if b.Description != "" {
		sb.WriteString("\n" + b.Description + "\n")
	}
	if len(d.Pages) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("contents:") + "\n")
		for _, p := range d.Pages {
			title := p.Title
			if title == "" {
				title = "(untitled)"
			}
			sb.WriteString(fmt.Sprintf("  %2d. %s\n", p.Index+1, title))
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: edit pages  g: generate  x: export"))
	return sb.String()
}

func (m Model) loadBooksCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.List(context.Background())
		return BooksLoadedMsg{Out: out, Err: err}
	}
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Get(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
