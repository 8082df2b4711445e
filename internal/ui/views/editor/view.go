package editor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bookdto "inkwell/internal/modules/books/dto"
	editordto "inkwell/internal/modules/editor/dto"
	realtimedto "inkwell/internal/modules/realtime/dto"
	"inkwell/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type BooksPort interface {
	Get(ctx context.Context, bookID string) (bookdto.BookDetailOutput, error)
}

// EditorPort is the page editing session: buffered input, undo/redo, and the
// debounced autosave behind it.
type EditorPort interface {
	Open(input editordto.OpenInput)
	Input(text string)
	Undo() (string, bool)
	Redo() (string, bool)
	State() editordto.StateOutput
}

// ProgressPort reads the live generation overlay state; never blocks.
type ProgressPort interface {
	Progress() realtimedto.ProgressOutput
	WatchBook(bookID string)
}

// ─── messages ────────────────────────────────────────────────────────────────

type BookOpenedMsg struct {
	Detail bookdto.BookDetailOutput
	Err    error
}

type tickMsg time.Time

// ─── list item ───────────────────────────────────────────────────────────────

type pageItem struct{ page bookdto.PageOutput }

func (i pageItem) Title() string {
	if i.page.Title == "" {
		return fmt.Sprintf("Page %d", i.page.Index+1)
	}
	return i.page.Title
}
func (i pageItem) Description() string { return firstLine(i.page.Content) }
func (i pageItem) FilterValue() string { return i.page.Title }

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > 60 {
		s = s[:60] + "…"
	}
	return s
}

// ─── model ───────────────────────────────────────────────────────────────────

type pane int

const (
	panePages pane = iota
	paneText
)

type Model struct {
	books    BooksPort
	editor   EditorPort
	progress ProgressPort

	pane     pane
	detail   bookdto.BookDetailOutput
	pageList list.Model
	text     textarea.Model
	errText  string
	width    int
	height   int
}

func New(books BooksPort, editor EditorPort, progress ProgressPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Pages"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ta := textarea.New()
	ta.Placeholder = "page content"
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	return Model{books: books, editor: editor, progress: progress, pageList: l, text: ta}
}

func (m Model) Init() tea.Cmd { return tickCmd() }

// OpenBook loads a book's pages into the editor and subscribes the progress
// overlay to that book.
func (m *Model) OpenBook(bookID string) tea.Cmd {
	m.progress.WatchBook(bookID)
	return func() tea.Msg {
		detail, err := m.books.Get(context.Background(), bookID)
		return BookOpenedMsg{Detail: detail, Err: err}
	}
}

// Filtering reports whether the page list's filter is active.
func (m Model) Filtering() bool {
	return m.pane == panePages && m.pageList.FilterState() == list.Filtering
}

// Editing reports whether the textarea has focus; global single-letter keys
// must not fire while the user is typing prose.
func (m Model) Editing() bool { return m.pane == paneText }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case BookOpenedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.detail = msg.Detail
		items := make([]list.Item, len(msg.Detail.Pages))
		for i, p := range msg.Detail.Pages {
			items[i] = pageItem{page: p}
		}
		m.pane = panePages
		m.text.Blur()
		return m, m.pageList.SetItems(items)

	case tickMsg:
		// Re-render so the save indicator and progress overlay track state
		// that changes on timers, not messages.
		return m, tickCmd()

	case tea.KeyMsg:
		switch m.pane {
		case panePages:
			if msg.String() == "enter" && m.pageList.FilterState() != list.Filtering {
				if item, ok := m.pageList.SelectedItem().(pageItem); ok {
					p := item.page
					m.editor.Open(editordto.OpenInput{
						BookID:  p.BookID,
						PageID:  p.ID,
						Title:   p.Title,
						Content: p.Content,
					})
					m.text.SetValue(p.Content)
					m.text.CursorEnd()
					m.pane = paneText
					return m, m.text.Focus()
				}
			}
			var lCmd tea.Cmd
			m.pageList, lCmd = m.pageList.Update(msg)
			return m, lCmd

		case paneText:
			switch msg.String() {
			case "esc":
				m.pane = panePages
				m.text.Blur()
				return m, nil
			case "ctrl+z":
				if content, ok := m.editor.Undo(); ok {
					m.text.SetValue(content)
					m.text.CursorEnd()
				}
				return m, nil
			case "ctrl+y":
				if content, ok := m.editor.Redo(); ok {
					m.text.SetValue(content)
					m.text.CursorEnd()
				}
				return m, nil
			}
			var tCmd tea.Cmd
			m.text, tCmd = m.text.Update(msg)
			m.editor.Input(m.text.Value())
			return m, tCmd
		}
	}

	if m.pane == panePages {
		var lCmd tea.Cmd
		m.pageList, lCmd = m.pageList.Update(msg)
		cmds = append(cmds, lCmd)
	} else {
		var tCmd tea.Cmd
		m.text, tCmd = m.text.Update(msg)
		cmds = append(cmds, tCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.detail.Book.ID == "" {
		hint := theme.Muted.Render("Open a book from the Library tab (enter) to edit its pages.")
		if m.errText != "" {
			hint = theme.Bad.Render(m.errText)
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, hint)
	}

	overlay := m.renderProgress()
	overlayH := 0
	if overlay != "" {
		overlayH = lipgloss.Height(overlay)
	}
	bodyH := m.height - overlayH
	if bodyH < 3 {
		bodyH = 3
	}

	listW := m.width * 3 / 10
	textW := m.width - listW

	listStyle := lipgloss.NewStyle().Width(listW).Height(bodyH)
	listPane := listStyle.Render(m.pageList.View())

	m.text.SetWidth(textW - 4)
	m.text.SetHeight(bodyH - 4)
	textStyle := theme.Pane
	if m.pane == paneText {
		textStyle = theme.PaneActive
	}
	textPane := textStyle.Width(textW - 2).Render(m.renderStatusLine() + "\n" + m.text.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, textPane)
	if overlay == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, overlay, body)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.pageList.SetSize(m.width*3/10, m.height-2)
}

func (m Model) renderStatusLine() string {
	st := m.editor.State()
	var parts []string
	if st.CanUndo {
		parts = append(parts, "undo:ctrl+z")
	}
	if st.CanRedo {
		parts = append(parts, "redo:ctrl+y")
	}
	switch {
	case st.SavePending:
		parts = append(parts, theme.Hot.Render("saving…"))
	case st.Dirty:
		parts = append(parts, theme.Hot.Render("unsaved"))
	case st.PageID != "":
		parts = append(parts, theme.Good.Render("saved"))
	}
	title := m.detail.Book.Title
	return theme.Title.Render(title) + "  " + theme.Muted.Render(strings.Join(parts, "  "))
}

func (m Model) renderProgress() string {
	p := m.progress.Progress()
	if !p.Visible {
		return ""
	}
	var sb strings.Builder
	if p.Error != "" {
		sb.WriteString(theme.Bad.Render("generation failed: " + p.Error))
	} else {
		label := p.Message
		if label == "" {
			label = p.Phase
		}
		sb.WriteString(theme.Hot.Render(fmt.Sprintf("⟳ %s", label)))
		if p.TotalSteps > 0 {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("  step %d/%d", p.CurrentStep, p.TotalSteps)))
		}
		sb.WriteString("  " + renderBar(p.Percent, 30))
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Peach).
		Background(theme.Mantle).
		Width(m.width-2).
		Padding(0, 1).
		Render(sb.String())
}

func renderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3.0f%%", bar, percent)
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}
