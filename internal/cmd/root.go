// Package cmd wires the console's commands: the interactive shell and a
// few scriptable helpers around it.
package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/squarelake/paydesk/internal/config"
	"github.com/squarelake/paydesk/internal/session"
	"github.com/squarelake/paydesk/internal/tui"
	"github.com/squarelake/paydesk/pkg/api"
	"github.com/squarelake/paydesk/pkg/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paydesk",
		Short: "Back-office console for the paydesk payroll platform",
		Long: `paydesk is the terminal console for payroll back-office work:
customer-service tickets, client companies and accounts, payroll rate
configuration, invoice batches, and tax-bureau synchronization.

Run it bare to open the interactive shell. Configuration comes from
PAYDESK_API_URL, PAYDESK_TIMEOUT, PAYDESK_LOG_LEVEL, and PAYDESK_TOKEN.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell("/")
		},
	}

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newOpenCmd(),
		newCheckCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

// deps is the wired-up object graph for one shell run or one helper
// command.
type deps struct {
	cfg      config.Config
	tokens   *session.FileTokens
	client   *api.Client
	store    *session.Store
	closeLog func() error
}

func buildDeps(reload func()) *deps {
	cfg := config.Load()
	log, closeLog := logger.Open(cfg.LogPath(), logger.ParseLevel(cfg.LogLevel))
	tokens := session.NewFileTokens(cfg.TokenPath())
	client := api.New(cfg.APIURL, tokens,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(log),
	)
	store := session.New(client, tokens, log, reload)
	return &deps{
		cfg:      cfg,
		tokens:   tokens,
		client:   client,
		store:    store,
		closeLog: closeLog,
	}
}

// runShell runs the interactive console starting at location. Logout asks
// for a reload; the loop then rebuilds everything from scratch so no state
// from the previous sign-in survives.
func runShell(location string) error {
	for {
		restart := false
		d := buildDeps(func() { restart = true })

		app := tui.NewApp(d.client, d.store, d.cfg, version, location)
		_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
		d.closeLog() //nolint:errcheck // log file close on shutdown

		if err != nil {
			return fmt.Errorf("shell: %w", err)
		}
		if !restart {
			return nil
		}
		location = "/"
	}
}
