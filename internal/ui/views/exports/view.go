package exports

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	exportdto "inkwell/internal/modules/exports/dto"
	"inkwell/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context) ([]exportdto.ExportOutput, error)
	Download(ctx context.Context, exportID string) (exportdto.DownloadOutput, error)
	OpenLocal(ctx context.Context, path string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type ListLoadedMsg struct {
	Exports []exportdto.ExportOutput
	Err     error
}

type DownloadDoneMsg struct {
	ExportID string
	Out      exportdto.DownloadOutput
	Err      error
}

type OpenDoneMsg struct{ Err error }

// ─── list item ───────────────────────────────────────────────────────────────

type exportItem struct{ export exportdto.ExportOutput }

func (i exportItem) Title() string {
	title := i.export.BookTitle
	if title == "" {
		title = i.export.BookID
	}
	if title == "" {
		title = "whole library"
	}
	return title + "." + i.export.Format
}

func (i exportItem) Description() string {
	desc := i.export.Status + "  " + i.export.CreatedAt.Local().Format("Jan 2 15:04")
	if i.export.LocalPath != "" {
		desc += "  ↓ downloaded"
	}
	return desc
}

func (i exportItem) FilterValue() string { return i.export.BookTitle + " " + i.export.Format }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	spinner spinner.Model
	loading bool
	status  string
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Exports"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Reload re-fetches the export history.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// SelectedExport returns the highlighted export, if any.
func (m Model) SelectedExport() (exportdto.ExportOutput, bool) {
	if item, ok := m.list.SelectedItem().(exportItem); ok {
		return item.export, true
	}
	return exportdto.ExportOutput{}, false
}

// Filtering reports whether the list filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-2)

	case ListLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Exports))
		for i, e := range msg.Exports {
			items[i] = exportItem{export: e}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case DownloadDoneMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = "download failed: " + msg.Err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("saved %s (%d bytes)", msg.Out.Path, msg.Out.Bytes)
		if msg.Out.Pages > 0 {
			m.status += fmt.Sprintf(", %d pages", msg.Out.Pages)
		}
		cmds = append(cmds, m.loadCmd())

	case OpenDoneMsg:
		if msg.Err != nil {
			m.status = "open failed: " + msg.Err.Error()
		} else {
			m.status = "opened in system viewer"
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "d":
				if export, ok := m.SelectedExport(); ok {
					m.loading = true
					m.status = "downloading " + export.ID
					return m, tea.Batch(m.downloadCmd(export.ID), m.spinner.Tick)
				}
			case "o":
				if export, ok := m.SelectedExport(); ok && export.LocalPath != "" {
					return m, m.openCmd(export.LocalPath)
				}
				m.status = "download the export first (d)"
				return m, nil
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Working…")
	}
	hint := theme.Muted.Render("d: download  o: open  (request new exports from the palette)")
	status := ""
	if m.status != "" {
		status = "\n" + theme.Muted.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), hint+status)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		exports, err := m.port.List(context.Background())
		return ListLoadedMsg{Exports: exports, Err: err}
	}
}

func (m Model) downloadCmd(exportID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Download(context.Background(), exportID)
		return DownloadDoneMsg{ExportID: exportID, Out: out, Err: err}
	}
}

func (m Model) openCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return OpenDoneMsg{Err: m.port.OpenLocal(context.Background(), path)}
	}
}
