package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "inkwell/internal/modules/auth/dto"
	billingdto "inkwell/internal/modules/billing/dto"
	bookdto "inkwell/internal/modules/books/dto"
	exportdto "inkwell/internal/modules/exports/dto"
	realtimedto "inkwell/internal/modules/realtime/dto"
	tooldto "inkwell/internal/modules/tools/dto"
	"inkwell/internal/platform/notify"
	"inkwell/internal/ui/components"
	"inkwell/internal/ui/theme"
	billingview "inkwell/internal/ui/views/billing"
	dashboardview "inkwell/internal/ui/views/dashboard"
	editorview "inkwell/internal/ui/views/editor"
	exportsview "inkwell/internal/ui/views/exports"
	libraryview "inkwell/internal/ui/views/library"
	loginview "inkwell/internal/ui/views/login"
	toolsview "inkwell/internal/ui/views/tools"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type authPort interface {
	Login(ctx context.Context, input authdto.LoginInput) (authdto.LoginOutput, error)
	Logout(ctx context.Context) error
}

type booksPort interface {
	List(ctx context.Context) (bookdto.ListOutput, error)
	Get(ctx context.Context, bookID string) (bookdto.BookDetailOutput, error)
	Create(ctx context.Context, input bookdto.CreateInput) (bookdto.BookOutput, error)
	Delete(ctx context.Context, bookID string) error
	Translate(ctx context.Context, input bookdto.TranslateInput) error
	Restyle(ctx context.Context, input bookdto.RestyleInput) error
	StartGeneration(ctx context.Context, input bookdto.StartGenerationInput) error
}

type billingPort interface {
	Balance(ctx context.Context) (billingdto.BalanceOutput, error)
	Affiliate(ctx context.Context) (billingdto.AffiliateOutput, error)
	RequestPayout(ctx context.Context) error
	RateLimit() billingdto.RateLimitOutput
}

type exportsPort interface {
	Request(ctx context.Context, input exportdto.RequestInput) (exportdto.ExportOutput, error)
	RequestBulk(ctx context.Context) (exportdto.ExportOutput, error)
	List(ctx context.Context) ([]exportdto.ExportOutput, error)
	Download(ctx context.Context, exportID string) (exportdto.DownloadOutput, error)
	OpenLocal(ctx context.Context, path string) error
}

type realtimePort interface {
	WatchBook(bookID string)
	Unwatch()
	Progress() realtimedto.ProgressOutput
	Status() realtimedto.StatusOutput
}

type toolsPort interface {
	ListCommands(ctx context.Context, toolName string) ([]tooldto.CommandInfo, error)
	Execute(ctx context.Context, input tooldto.ExecuteInput) (tooldto.ExecuteOutput, error)
	PostExport(ctx context.Context, input tooldto.ExecuteInput) (tooldto.ExecuteOutput, error)
}

type editorPort = editorview.EditorPort

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabLibrary
	tabEditor
	tabExports
	tabBilling
	tabTools
	tabCount
)

var tabLabels = [tabCount]string{
	"Dashboard", "Library", "Editor", "Exports", "Billing", "Tools",
}

// ─── async messages ───────────────────────────────────────────────────────────

// AuthExpiredMsg is sent from outside the program when the backend rejects
// the stored credential; the shell drops back to the login view.
type AuthExpiredMsg struct{}

// CelebrateMsg is sent from outside the program when a generation job for
// the watched book completes.
type CelebrateMsg struct{ BookID string }

type notificationMsg notify.Notification

type bookMutatedMsg struct {
	action string
	err    error
}

type generationStartedMsg struct {
	bookID string
	err    error
}

type exportRequestedMsg struct {
	out exportdto.ExportOutput
	err error
}

type loggedOutMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Enter    key.Binding
	Generate key.Binding
	Export   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open in editor")),
		Generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate book")),
		Export:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export (pdf)")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter},
		{k.Generate, k.Export},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the auth guard, tab routing,
// the global help overlay, the command palette, and the toast line. All
// business logic is delegated to port interfaces; all rendering is delegated
// to sub-views.
type Model struct {
	stateDir string

	// ports used at this orchestration level only
	auth     authPort
	books    booksPort
	exports  exportsPort
	realtime realtimePort

	notifications *notify.Store

	// sub-views (login gate + one per tab)
	loginView   loginview.Model
	dashView    dashboardview.Model
	libView     libraryview.Model
	editView    editorview.Model
	exportsView exportsview.Model
	billingView billingview.Model
	toolsView   toolsview.Model

	// global UI state
	authed         bool
	activeTab      tabID
	keys           keyMap
	help           help.Model
	showHelp       bool
	palette        components.Palette
	toast          components.Toast
	status         string
	openBookID     string
	lastExportPath string
	width          int
	height         int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	stateDir string,
	authed bool,
	auth authPort,
	books booksPort,
	editor editorPort,
	billing billingPort,
	exports exportsPort,
	realtime realtimePort,
	tools toolsPort,
	notifications *notify.Store,
) Model {
	return Model{
		stateDir:      stateDir,
		auth:          auth,
		books:         books,
		exports:       exports,
		realtime:      realtime,
		notifications: notifications,
		loginView:     loginview.New(auth),
		dashView:      dashboardview.New(billing, books, realtime),
		libView:       libraryview.New(books),
		editView:      editorview.New(books, editor, realtime),
		exportsView:   exportsview.New(exports),
		billingView:   billingview.New(billing),
		toolsView:     toolsview.New(tools, stateDir),
		authed:        authed,
		activeTab:     tabDashboard,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitNotificationCmd()}
	if m.authed {
		cmds = append(cmds, m.initViewsCmd())
	} else {
		cmds = append(cmds, m.loginView.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) initViewsCmd() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.libView.Init(),
		m.editView.Init(),
		m.exportsView.Init(),
		m.billingView.Init(),
		m.toolsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Messages that apply regardless of the auth gate.
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case notificationMsg:
		m.toast.Show(notify.Notification(msg))
		return m, m.waitNotificationCmd()

	case AuthExpiredMsg:
		m.authed = false
		m.realtime.Unwatch()
		m.loginView = loginview.New(m.auth)
		m.propagateSize()
		return m, m.loginView.Init()

	case CelebrateMsg:
		// The finished book may have new pages and a new status.
		cmds = append(cmds, m.libView.Reload(), m.dashView.Reload())
		if m.openBookID == msg.BookID {
			cmds = append(cmds, m.editView.OpenBook(msg.BookID))
		}
		return m, tea.Batch(cmds...)
	}

	if !m.authed {
		switch msg := msg.(type) {
		case loginview.DoneMsg:
			var cmd tea.Cmd
			m.loginView, cmd = m.loginView.Update(msg)
			if msg.Err == nil {
				m.authed = true
				m.status = "signed in as " + msg.Out.Email
				m.activeTab = tabDashboard
				m.propagateSize()
				return m, m.initViewsCmd()
			}
			return m, cmd
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		return m, cmd
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case bookMutatedMsg:
		if msg.err != nil {
			m.status = msg.action + " failed: " + msg.err.Error()
		} else {
			m.status = msg.action + " done"
			cmds = append(cmds, m.libView.Reload(), m.dashView.Reload())
		}

	case generationStartedMsg:
		if msg.err != nil {
			m.status = "generation start failed: " + msg.err.Error()
		} else {
			m.status = "generation started"
			m.realtime.WatchBook(msg.bookID)
		}

	case exportRequestedMsg:
		if msg.err != nil {
			m.status = "export request failed: " + msg.err.Error()
		} else {
			m.status = "export requested: " + msg.out.ID
			m.activeTab = tabExports
			cmds = append(cmds, m.exportsView.Reload())
		}

	case loggedOutMsg:
		if msg.err != nil {
			m.status = "logout failed: " + msg.err.Error()
		} else {
			m.authed = false
			m.realtime.Unwatch()
			m.loginView = loginview.New(m.auth)
			m.propagateSize()
			return m, m.loginView.Init()
		}

	case exportsview.DownloadDoneMsg:
		// Track the artifact so tools can post-process it.
		if msg.Err == nil {
			m.lastExportPath = msg.Out.Path
			m.toolsView.SetContext(m.openBookID, m.lastExportPath)
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-views when a filter or the prose editor is active.
		if m.subViewCapturing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "enter":
			if m.activeTab == tabLibrary {
				if id, ok := m.libView.SelectedBookID(); ok {
					m.openBookID = id
					m.toolsView.SetContext(id, m.lastExportPath)
					m.activeTab = tabEditor
					cmds = append(cmds, m.editView.OpenBook(id))
				}
				return m, tea.Batch(cmds...)
			}
		case "g":
			if m.activeTab == tabLibrary {
				if id, ok := m.libView.SelectedBookID(); ok {
					return m, m.startGenerationCmd(id, false, "")
				}
			}
		case "x":
			if m.activeTab == tabLibrary {
				if id, ok := m.libView.SelectedBookID(); ok {
					return m, m.requestExportCmd(id, "pdf")
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, tabCmd = m.dashView.Update(msg)
	case tabLibrary:
		m.libView, tabCmd = m.libView.Update(msg)
	case tabEditor:
		m.editView, tabCmd = m.editView.Update(msg)
	case tabExports:
		m.exportsView, tabCmd = m.exportsView.Update(msg)
	case tabBilling:
		m.billingView, tabCmd = m.billingView.Update(msg)
	case tabTools:
		m.toolsView, tabCmd = m.toolsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.authed {
		return m.loginView.View()
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabLibrary:
		return m.libView.View()
	case tabEditor:
		return m.editView.View()
	case tabExports:
		return m.exportsView.View()
	case tabBilling:
		return m.billingView.View()
	case tabTools:
		return m.toolsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "inkwell  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if toast := m.toast.View(); toast != "" {
		left = toast
	}
	if p := m.realtime.Progress(); p.Visible && p.Error == "" {
		left = theme.Hot.Render("⟳ generating") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	selected, _ := m.libView.SelectedBookID()

	switch parts[0] {
	case "book:create":
		title := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if title == "" {
			m.status = "usage: book:create <title>"
			return m, nil
		}
		return m, m.createBookCmd(title)

	case "book:delete":
		if selected == "" {
			m.status = "no book selected"
			return m, nil
		}
		return m, m.deleteBookCmd(selected)

	case "book:translate":
		if selected == "" {
			m.status = "no book selected"
			return m, nil
		}
		if len(parts) < 2 {
			m.status = "usage: book:translate <language>"
			return m, nil
		}
		return m, m.translateBookCmd(selected, parts[1])

	case "book:restyle":
		if selected == "" {
			m.status = "no book selected"
			return m, nil
		}
		if len(parts) < 2 {
			m.status = "usage: book:restyle <style>"
			return m, nil
		}
		return m, m.restyleBookCmd(selected, strings.Join(parts[1:], " "))

	case "generate:start":
		if selected == "" {
			m.status = "no book selected"
			return m, nil
		}
		illustrations := false
		style := ""
		for _, arg := range parts[1:] {
			if arg == "--illustrations" {
				illustrations = true
			} else {
				style = arg
			}
		}
		return m, m.startGenerationCmd(selected, illustrations, style)

	case "export:request":
		if selected == "" {
			m.status = "no book selected"
			return m, nil
		}
		format := "pdf"
		if len(parts) >= 2 {
			format = parts[1]
		}
		return m, m.requestExportCmd(selected, format)

	case "export:bulk":
		return m, m.requestBulkExportCmd()

	case "export:download":
		m.activeTab = tabExports
		if export, ok := m.exportsView.SelectedExport(); ok {
			return m, func() tea.Msg {
				out, err := m.exports.Download(context.Background(), export.ID)
				return exportsview.DownloadDoneMsg{ExportID: export.ID, Out: out, Err: err}
			}
		}
		m.status = "no export selected"
		return m, nil

	case "export:open":
		if m.lastExportPath == "" {
			m.status = "no downloaded export yet"
			return m, nil
		}
		path := m.lastExportPath
		return m, func() tea.Msg {
			return exportsview.OpenDoneMsg{Err: m.exports.OpenLocal(context.Background(), path)}
		}

	case "tool:exec":
		if len(parts) < 3 {
			m.status = "usage: tool:exec <tool> <command> [json]"
			return m, nil
		}
		prefix := parts[0] + " " + parts[1] + " " + parts[2]
		inputJSON := strings.TrimSpace(strings.TrimPrefix(input, prefix))
		m.activeTab = tabTools
		return m, m.toolsView.ExecCommand(parts[1], parts[2], inputJSON, false)

	case "tool:post-export":
		if len(parts) < 3 {
			m.status = "usage: tool:post-export <tool> <command>"
			return m, nil
		}
		m.activeTab = tabTools
		return m, m.toolsView.ExecCommand(parts[1], parts[2], "", true)

	case "billing:payout":
		m.activeTab = tabBilling
		return m, m.billingView.RequestPayout()

	case "account:logout":
		return m, m.logoutCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCapturing reports whether the active tab needs raw keystrokes: an
// open list filter, the prose editor, or the tool name input.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabLibrary:
		return m.libView.Filtering()
	case tabEditor:
		return m.editView.Filtering() || m.editView.Editing()
	case tabExports:
		return m.exportsView.Filtering()
	case tabTools:
		return m.toolsView.Capturing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.loginView, _ = m.loginView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.dashView, _ = m.dashView.Update(sz)
	m.libView, _ = m.libView.Update(sz)
	m.editView, _ = m.editView.Update(sz)
	m.exportsView, _ = m.exportsView.Update(sz)
	m.billingView, _ = m.billingView.Update(sz)
	m.toolsView, _ = m.toolsView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) waitNotificationCmd() tea.Cmd {
	updates := m.notifications.Updates()
	return func() tea.Msg {
		return notificationMsg(<-updates)
	}
}

func (m Model) createBookCmd(title string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.books.Create(context.Background(), bookdto.CreateInput{Title: title})
		return bookMutatedMsg{action: "create", err: err}
	}
}

func (m Model) deleteBookCmd(bookID string) tea.Cmd {
	return func() tea.Msg {
		return bookMutatedMsg{action: "delete", err: m.books.Delete(context.Background(), bookID)}
	}
}

func (m Model) translateBookCmd(bookID, language string) tea.Cmd {
	return func() tea.Msg {
		err := m.books.Translate(context.Background(), bookdto.TranslateInput{BookID: bookID, Language: language})
		return bookMutatedMsg{action: "translate", err: err}
	}
}

func (m Model) restyleBookCmd(bookID, style string) tea.Cmd {
	return func() tea.Msg {
		err := m.books.Restyle(context.Background(), bookdto.RestyleInput{BookID: bookID, Style: style})
		return bookMutatedMsg{action: "restyle", err: err}
	}
}

func (m Model) startGenerationCmd(bookID string, illustrations bool, style string) tea.Cmd {
	return func() tea.Msg {
		err := m.books.StartGeneration(context.Background(), bookdto.StartGenerationInput{
			BookID:        bookID,
			Illustrations: illustrations,
			Style:         style,
		})
		return generationStartedMsg{bookID: bookID, err: err}
	}
}

func (m Model) requestExportCmd(bookID, format string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.exports.Request(context.Background(), exportdto.RequestInput{BookID: bookID, Format: format})
		return exportRequestedMsg{out: out, err: err}
	}
}

func (m Model) requestBulkExportCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.exports.RequestBulk(context.Background())
		return exportRequestedMsg{out: out, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.auth.Logout(context.Background())}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
