package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/squarelake/paydesk/internal/nav"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Open the shell at a specific view",
		Long: `Opens the interactive shell directly at a view path, e.g.

  paydesk open /customer-service
  paydesk open /companies

Unknown paths fall back to the dashboard.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			if tab := nav.ActiveTab(path); nav.PathFor(tab) != path {
				fmt.Fprintf(cmd.ErrOrStderr(), "unknown view %q, opening dashboard\n", path)
				path = nav.PathFor(nav.DefaultTab)
			}
			return runShell(path)
		},
	}
}
