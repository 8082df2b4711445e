package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inkwell/internal/bootstrap"
	tooldto "inkwell/internal/modules/tools/dto"
	"inkwell/internal/platform/config"
	"inkwell/internal/platform/logging"
	"inkwell/internal/platform/notify"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var apiURL, stateDir string

	root := &cobra.Command{
		Use:           "inkwell",
		Short:         "Inkwell book studio client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (default from INKWELL_API_URL or config.yaml)")
	root.PersistentFlags().StringVar(&stateDir, "state-dir", "", "local state directory (default ~/.inkwell)")

	root.AddCommand(newTUICmd(&apiURL, &stateDir))
	root.AddCommand(newLoginCmd(&apiURL, &stateDir))
	root.AddCommand(newLogoutCmd(&apiURL, &stateDir))
	root.AddCommand(newWhoamiCmd(&apiURL, &stateDir))
	root.AddCommand(newBookCmd(&apiURL, &stateDir))
	root.AddCommand(newPageCmd(&apiURL, &stateDir))
	root.AddCommand(newGenerateCmd(&apiURL, &stateDir))
	root.AddCommand(newExportCmd(&apiURL, &stateDir))
	root.AddCommand(newCreditsCmd(&apiURL, &stateDir))
	root.AddCommand(newAffiliateCmd(&apiURL, &stateDir))
	root.AddCommand(newSettingsCmd(&apiURL, &stateDir))
	root.AddCommand(newToolCmd(&apiURL, &stateDir))
	return root
}

func loadApp(apiURL, stateDir string) (*bootstrap.App, error) {
	cfg, err := config.New(stateDir, apiURL)
	if err != nil {
		return nil, err
	}
	logger, closeFn, err := logging.Open(cfg.LogPath())
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logger, closeFn)
}

// loadCLIApp loads the app for one-shot commands, mirroring notifications
// onto stderr since there is no status bar to show them.
func loadCLIApp(apiURL, stateDir string) (*bootstrap.App, error) {
	app, err := loadApp(apiURL, stateDir)
	if err != nil {
		return nil, err
	}
	app.MirrorNotifications(notify.Writer{W: os.Stderr})
	return app, nil
}

func newTUICmd(apiURL, stateDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the Inkwell terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			defer app.Close(context.Background())
			return bootstrap.RunTUI(app)
		},
	}
}

func newLoginCmd(apiURL, stateDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login <credential-key>",
		Short: "Verify and store a credential key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.AuthCLI.Login(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s plan=%s credits=%d\n", out.Email, out.Plan, out.Credits)
			return nil
		},
	}
}

func newLogoutCmd(apiURL, stateDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			if err := app.AuthCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(apiURL, stateDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.AuthCLI.Session(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "key saved %s\n", out.SavedAt.Format(time.RFC3339))
			if out.Email != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "account %s plan=%s credits=%d\n", out.Email, out.Plan, out.Credits)
			}
			return nil
		},
	}
}

func newBookCmd(apiURL, stateDir *string) *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Manage books"}

	book.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.BooksCLI.List(context.Background())
			if err != nil {
				return err
			}
			if out.FromCache {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(backend unreachable, showing local copy)")
			}
			for _, b := range out.Books {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d pages\n", b.ID, b.Title, b.Status, b.PageCount)
			}
			return nil
		},
	})

	book.AddCommand(&cobra.Command{
		Use:   "show <book-id>",
		Short: "Show a book and its pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.BooksCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			b := out.Book
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\nstatus=%s genre=%s language=%s pages=%d\n", b.Title, b.ID, b.Status, b.Genre, b.Language, b.PageCount)
			for _, p := range out.Pages {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d\t%s\t%s\n", p.Index+1, p.ID, p.Title)
			}
			return nil
		},
	})

	var description, genre, language string
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a book",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.BooksCLI.Create(context.Background(), strings.Join(args, " "), description, genre, language)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", out.Title, out.ID)
			return nil
		},
	}
	create.Flags().StringVar(&description, "description", "", "book description")
	create.Flags().StringVar(&genre, "genre", "", "book genre")
	create.Flags().StringVar(&language, "language", "", "book language")
	book.AddCommand(create)

	var upTitle, upDescription, upGenre, upLanguage string
	update := &cobra.Command{
		Use:   "update <book-id>",
		Short: "Update book metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.BooksCLI.Update(context.Background(), args[0], upTitle, upDescription, upGenre, upLanguage)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%s)\n", out.Title, out.ID)
			return nil
		},
	}
	update.Flags().StringVar(&upTitle, "title", "", "book title")
	update.Flags().StringVar(&upDescription, "description", "", "book description")
	update.Flags().StringVar(&upGenre, "genre", "", "book genre")
	update.Flags().StringVar(&upLanguage, "language", "", "book language")
	book.AddCommand(update)

	book.AddCommand(&cobra.Command{
		Use:   "delete <book-id>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			if err := app.BooksCLI.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})

	book.AddCommand(&cobra.Command{
		Use:   "translate <book-id> <language>",
		Short: "Translate a book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			if err := app.BooksCLI.Translate(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "translation queued for %s\n", args[0])
			return nil
		},
	})

	book.AddCommand(&cobra.Command{
		Use:   "restyle <book-id> <style>",
		Short: "Restyle a book's illustrations",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			if err := app.BooksCLI.Restyle(context.Background(), args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "restyle queued for %s\n", args[0])
			return nil
		},
	})

	return book
}

func newPageCmd(apiURL, stateDir *string) *cobra.Command {
	page := &cobra.Command{Use: "page", Short: "Manage book pages"}

	var title, content string
	update := &cobra.Command{
		Use:   "update <book-id> <page-id>",
		Short: "Update a page's title or content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.BooksCLI.UpdatePage(context.Background(), args[0], args[1], title, content)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated page %s (index %d)\n", out.ID, out.Index+1)
			return nil
		},
	}
	update.Flags().StringVar(&title, "title", "", "page title")
	update.Flags().StringVar(&content, "content", "", "page content")
	page.AddCommand(update)

	page.AddCommand(&cobra.Command{
		Use:   "reorder <book-id> <page-id>...",
		Short: "Reorder pages to the given sequence",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			if err := app.BooksCLI.ReorderPages(context.Background(), args[0], args[1:]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "pages reordered")
			return nil
		},
	})

	return page
}

func newGenerateCmd(apiURL, stateDir *string) *cobra.Command {
	generate := &cobra.Command{Use: "generate", Short: "Drive book auto-generation"}

	var illustrations bool
	var style string
	start := &cobra.Command{
		Use:   "start <book-id>",
		Short: "Start an auto-generation job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			if err := app.BooksCLI.StartGeneration(context.Background(), args[0], illustrations, style); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "generation started for %s\n", args[0])
			return nil
		},
	}
	start.Flags().BoolVar(&illustrations, "illustrations", false, "generate illustrations too")
	start.Flags().StringVar(&style, "style", "", "illustration style")
	generate.AddCommand(start)

	var watchTimeout time.Duration
	watch := &cobra.Command{
		Use:   "watch <book-id>",
		Short: "Follow generation progress over the push channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			defer app.Close(context.Background())

			key := app.CredentialKey()
			if key == "" {
				return fmt.Errorf("not logged in")
			}
			rt := app.Realtime()
			rt.SetCredential(key)
			rt.WatchBook(args[0])

			deadline := time.Now().Add(watchTimeout)
			lastLine := ""
			for time.Now().Before(deadline) {
				p := rt.Progress()
				if p.Visible {
					line := fmt.Sprintf("%s %3.0f%% step %d/%d %s", p.Phase, p.Percent, p.CurrentStep, p.TotalSteps, p.Message)
					if p.Error != "" {
						line = "error: " + p.Error
					}
					if line != lastLine {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
						lastLine = line
					}
					if p.Phase == "completed" {
						return nil
					}
					if p.Error != "" {
						return fmt.Errorf("generation failed: %s", p.Error)
					}
				}
				time.Sleep(500 * time.Millisecond)
			}
			return fmt.Errorf("timed out after %s", watchTimeout)
		},
	}
	watch.Flags().DurationVar(&watchTimeout, "timeout", 15*time.Minute, "give up after this long")
	generate.AddCommand(watch)

	return generate
}

func newExportCmd(apiURL, stateDir *string) *cobra.Command {
	export := &cobra.Command{Use: "export", Short: "Manage exports"}

	export.AddCommand(&cobra.Command{
		Use:   "request <book-id> <epub|pdf|docx>",
		Short: "Request a single-book export",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.ExportsCLI.Request(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "export %s requested (%s)\n", out.ID, out.Status)
			return nil
		},
	})

	export.AddCommand(&cobra.Command{
		Use:   "bulk",
		Short: "Request a whole-library zip export",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.ExportsCLI.RequestBulk(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bulk export %s requested (%s)\n", out.ID, out.Status)
			return nil
		},
	})

	export.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List export history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.ExportsCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, e := range out {
				local := ""
				if e.LocalPath != "" {
					local = "\t" + e.LocalPath
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s%s\n", e.ID, e.Format, e.Status, e.CreatedAt.Format(time.RFC3339), local)
			}
			return nil
		},
	})

	export.AddCommand(&cobra.Command{
		Use:   "download <export-id>",
		Short: "Download an export artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.ExportsCLI.Download(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes)\n", out.Path, out.Bytes)
			if out.Pages > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pdf verified: %d pages\n", out.Pages)
			}
			return nil
		},
	})

	export.AddCommand(&cobra.Command{
		Use:   "open <path>",
		Short: "Open a downloaded artifact in the system viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			return app.ExportsCLI.Open(context.Background(), args[0])
		},
	})

	return export
}

func newCreditsCmd(apiURL, stateDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "credits",
		Short: "Show credit balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.BillingCLI.Balance(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "credits=%d plan=%s\n", out.Credits, out.Plan)
			for _, g := range out.Grants {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  +%d at %s\n", g.Amount, g.At.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newAffiliateCmd(apiURL, stateDir *string) *cobra.Command {
	affiliate := &cobra.Command{
		Use:   "affiliate",
		Short: "Show affiliate stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.BillingCLI.Affiliate(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "code=%s url=%s\nclicks=%d signups=%d earned_cents=%d paid_out_cents=%d\n",
				out.ReferralCode, out.ReferralURL, out.Clicks, out.Signups, out.EarningsCents, out.PaidOutCents)
			return nil
		},
	}

	affiliate.AddCommand(&cobra.Command{
		Use:   "payout",
		Short: "Request an affiliate payout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			if err := app.BillingCLI.RequestPayout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "payout requested")
			return nil
		},
	})

	return affiliate
}

func newSettingsCmd(apiURL, stateDir *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Manage local preferences"}

	settings.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Read a preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			value, ok, err := app.SettingsCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(unset)")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			if err := app.SettingsCLI.Set(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", args[0], args[1])
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			all, err := app.SettingsCLI.All(context.Background())
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, all[k])
			}
			return nil
		},
	})

	return settings
}

func newToolCmd(apiURL, stateDir *string) *cobra.Command {
	tool := &cobra.Command{Use: "tool", Short: "Manage external tools"}

	tool.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.ToolsCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, t := range out {
				state := "disabled"
				if t.Enabled {
					state = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", t.Name, t.Version, state, strings.Join(t.Capabilities, ","))
			}
			return nil
		},
	})

	tool.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Run tool health checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.ToolsCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			exitErr := false
			for _, result := range out {
				marker := "OK"
				if result.Error != "" || !result.ChecksumValid || !result.BinaryReachable {
					marker = "FAIL"
					exitErr = true
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s binary=%t checksum=%t lifecycle=%t %s\n",
					marker, result.Name, result.BinaryReachable, result.ChecksumValid, result.LifecycleOK, result.Error)
			}
			if exitErr {
				return fmt.Errorf("tool doctor found failing checks")
			}
			return nil
		},
	})

	tool.AddCommand(&cobra.Command{
		Use:   "commands <tool>",
		Short: "List a tool's commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			out, err := app.ToolsCLI.ListCommands(context.Background(), args[0])
			if err != nil {
				return err
			}
			for _, c := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t[%s]\t%s\n", c.ID, c.Kind, c.Description)
			}
			return nil
		},
	})

	var bookID, exportPath string
	exec := &cobra.Command{
		Use:   "exec <tool> <command> [input-json]",
		Short: "Execute a tool command",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadCLIApp(*apiURL, *stateDir)
			if err != nil {
				return err
			}
			inputJSON := ""
			if len(args) == 3 {
				inputJSON = args[2]
			}
			cwd, _ := os.Getwd()
			input := tooldto.ExecuteInput{
				ToolName:   args[0],
				CommandID:  args[1],
				InputJSON:  inputJSON,
				BookID:     bookID,
				ExportPath: exportPath,
				StateDir:   app.StateDir(),
				Cwd:        cwd,
			}
			var out tooldto.ExecuteOutput
			if exportPath != "" {
				out, err = app.ToolsCLI.PostExport(context.Background(), input)
			} else {
				out, err = app.ToolsCLI.Execute(context.Background(), input)
			}
			if err != nil {
				return err
			}
			if out.Stdout != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Stdout)
			}
			if out.Stderr != "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), out.Stderr)
			}
			if out.OutputJSON != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
			}
			if out.ExitCode != 0 {
				return fmt.Errorf("tool exited with code %d", out.ExitCode)
			}
			return nil
		},
	}
	exec.Flags().StringVar(&bookID, "book", "", "book id passed in the tool context")
	exec.Flags().StringVar(&exportPath, "export-path", "", "downloaded artifact path (runs the command as post_export)")
	tool.AddCommand(exec)

	return tool
}
