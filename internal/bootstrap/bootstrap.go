package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	authinadapter "inkwell/internal/modules/auth/adapter/in"
	authoutadapter "inkwell/internal/modules/auth/adapter/out"
	authservice "inkwell/internal/modules/auth/service"
	authusecase "inkwell/internal/modules/auth/usecase"
	billinginadapter "inkwell/internal/modules/billing/adapter/in"
	billingoutadapter "inkwell/internal/modules/billing/adapter/out"
	billingin "inkwell/internal/modules/billing/port/in"
	billingservice "inkwell/internal/modules/billing/service"
	billingusecase "inkwell/internal/modules/billing/usecase"
	booksinadapter "inkwell/internal/modules/books/adapter/in"
	booksoutadapter "inkwell/internal/modules/books/adapter/out"
	booksin "inkwell/internal/modules/books/port/in"
	booksservice "inkwell/internal/modules/books/service"
	booksusecase "inkwell/internal/modules/books/usecase"
	editorin "inkwell/internal/modules/editor/port/in"
	editorservice "inkwell/internal/modules/editor/service"
	editorusecase "inkwell/internal/modules/editor/usecase"
	exportsinadapter "inkwell/internal/modules/exports/adapter/in"
	exportsoutadapter "inkwell/internal/modules/exports/adapter/out"
	exportsin "inkwell/internal/modules/exports/port/in"
	exportsservice "inkwell/internal/modules/exports/service"
	exportsusecase "inkwell/internal/modules/exports/usecase"
	realtimeoutadapter "inkwell/internal/modules/realtime/adapter/out"
	realtimein "inkwell/internal/modules/realtime/port/in"
	realtimeservice "inkwell/internal/modules/realtime/service"
	realtimeusecase "inkwell/internal/modules/realtime/usecase"
	settingsinadapter "inkwell/internal/modules/settings/adapter/in"
	settingsoutadapter "inkwell/internal/modules/settings/adapter/out"
	settingsusecase "inkwell/internal/modules/settings/usecase"
	toolsinadapter "inkwell/internal/modules/tools/adapter/in"
	toolsoutadapter "inkwell/internal/modules/tools/adapter/out"
	toolsin "inkwell/internal/modules/tools/port/in"
	toolsservice "inkwell/internal/modules/tools/service"
	toolsusecase "inkwell/internal/modules/tools/usecase"
	"inkwell/internal/platform/api"
	"inkwell/internal/platform/clock"
	"inkwell/internal/platform/config"
	"inkwell/internal/platform/notify"
	uiapp "inkwell/internal/ui/app"
)

// App wires every module once and hands out the entry points the CLI and the
// TUI need. Close must run before exit so pending autosaves flush and the
// push channel tears down.
type App struct {
	AuthCLI     authinadapter.CLIHandler
	BooksCLI    booksinadapter.CLIHandler
	BillingCLI  billinginadapter.CLIHandler
	ExportsCLI  exportsinadapter.CLIHandler
	ToolsCLI    toolsinadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler

	Notifications *notify.Store

	cfg       config.Config
	client    *api.Client
	authUC    *authusecase.Interactor
	credStore *authoutadapter.FileCredentialStore
	booksUC   booksin.Usecase
	editorUC  editorin.Usecase
	billingUC billingin.Usecase
	exportsUC exportsin.Usecase
	toolsUC   toolsin.Usecase
	realtime  *realtimeservice.RealtimeService
	realtimeU realtimein.Usecase
	logClose  func() error
}

// New builds the full dependency graph. logger receives diagnostics only;
// user-facing messages go through the notification store.
func New(cfg config.Config, logger *slog.Logger, logClose func() error) (*App, error) {
	clk := clock.SystemClock{}
	notifications := notify.NewStore()
	limits := api.NewRateLimitStore()

	credStore := authoutadapter.NewFileCredentialStore(cfg.CredentialPath())
	client := api.NewClient(cfg.BaseURL, credStore, notifications, limits, logger)

	authUC := authusecase.NewInteractor(
		authservice.NewAuthService(clk, authoutadapter.NewHTTPAccountGateway(cfg.BaseURL)),
		credStore,
	)

	bookCache, err := booksoutadapter.NewSQLiteBookCache(cfg.CacheDBPath())
	if err != nil {
		return nil, fmt.Errorf("new book cache: %w", err)
	}
	booksUC := booksusecase.NewInteractor(booksservice.NewBookService(
		booksoutadapter.NewHTTPBookGateway(client),
		bookCache,
		logger,
	))

	editorUC := editorusecase.NewInteractor(
		editorservice.NewPageEditor(booksUC, editorservice.SaveDelay, logger),
	)

	billingUC := billingusecase.NewInteractor(billingservice.NewBillingService(
		billingoutadapter.NewHTTPBillingGateway(client),
		limits,
	))

	exportsUC := exportsusecase.NewInteractor(exportsservice.NewExportService(
		exportsoutadapter.NewHTTPExportGateway(client),
		exportsoutadapter.NewLocalPDFInspector(),
		exportsoutadapter.NewOSExternalLauncher(),
		cfg.ExportsDir(),
		logger,
	))

	realtimeSvc := realtimeservice.NewRealtimeService(
		realtimeoutadapter.WSChannelFactory{BaseURL: cfg.BaseURL, Logger: logger},
		booksUC,
		notifications,
		logger,
	)
	realtimeSvc.SetHooks(realtimeservice.Hooks{OnCreditsAdded: billingUC.ApplyGrant})
	authUC.SetCredentialChangedHook(realtimeSvc.SetCredential)

	toolsUC := toolsusecase.NewInteractor(toolsservice.NewToolService(
		toolsoutadapter.NewYAMLManifestStore(cfg.ToolsDir()),
		toolsoutadapter.NewGRPCHost(),
	))

	prefStore, err := settingsoutadapter.NewSQLitePreferenceStore(cfg.CacheDBPath())
	if err != nil {
		return nil, fmt.Errorf("new preference store: %w", err)
	}
	settingsUC := settingsusecase.NewInteractor(prefStore)

	return &App{
		AuthCLI:       authinadapter.NewCLIHandler(authUC),
		BooksCLI:      booksinadapter.NewCLIHandler(booksUC),
		BillingCLI:    billinginadapter.NewCLIHandler(billingUC),
		ExportsCLI:    exportsinadapter.NewCLIHandler(exportsUC),
		ToolsCLI:      toolsinadapter.NewCLIHandler(toolsUC),
		SettingsCLI:   settingsinadapter.NewCLIHandler(settingsUC),
		Notifications: notifications,
		cfg:           cfg,
		client:        client,
		authUC:        authUC,
		credStore:     credStore,
		booksUC:       booksUC,
		editorUC:      editorUC,
		billingUC:     billingUC,
		exportsUC:     exportsUC,
		toolsUC:       toolsUC,
		realtime:      realtimeSvc,
		realtimeU:     realtimeusecase.NewInteractor(realtimeSvc),
		logClose:      logClose,
	}, nil
}

// Realtime exposes the push subscription, for the generate watch command.
func (a *App) Realtime() realtimein.Usecase { return a.realtimeU }

// CredentialKey returns the stored credential, or "" when logged out.
func (a *App) CredentialKey() string { return a.credStore.Current() }

// StateDir returns the resolved local state directory.
func (a *App) StateDir() string { return a.cfg.StateDir }

// MirrorNotifications tees user-facing notifications onto an extra sink.
// CLI commands mirror onto stderr; the TUI reads the store directly.
func (a *App) MirrorNotifications(extra notify.Notifier) {
	a.client.SetNotifier(notify.Multi{a.Notifications, extra})
}

// Close flushes the editor, tears down the push channel, and closes the log.
func (a *App) Close(ctx context.Context) {
	a.editorUC.Close(ctx)
	a.realtimeU.Shutdown()
	if a.logClose != nil {
		_ = a.logClose()
	}
}

// RunTUI starts the Bubble Tea shell. The push channel opens only when a
// stored credential exists; a later login opens it through the auth hook.
func RunTUI(app *App) error {
	key := app.credStore.Current()
	authed := key != ""
	if authed {
		app.realtime.SetCredential(key)
	}

	model := uiapp.NewModel(
		app.cfg.StateDir,
		authed,
		app.authUC,
		app.booksUC,
		app.editorUC,
		app.billingUC,
		app.exportsUC,
		app.realtimeU,
		app.toolsUC,
		app.Notifications,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())

	app.client.SetAuthExpiredHook(func() {
		program.Send(uiapp.AuthExpiredMsg{})
	})
	app.realtime.SetHooks(realtimeservice.Hooks{
		OnCreditsAdded: app.billingUC.ApplyGrant,
		OnCelebrate: func(bookID string) {
			program.Send(uiapp.CelebrateMsg{BookID: bookID})
		},
	})

	_, err := program.Run()
	return err
}
