package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove the stored token",
		Long: `Invalidates the server-side session when reachable and removes the
stored token either way. Safe to run when already signed out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := buildDeps(func() {})
			defer d.closeLog() //nolint:errcheck

			if !d.store.HasToken() {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			d.store.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}
