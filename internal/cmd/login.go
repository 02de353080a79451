package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the bearer token",
		Long: `Signs in against the configured backend and stores the bearer token
under ~/.paydesk/token. Later runs of the shell pick it up without
prompting. The password is read from the terminal, or from stdin when
not attached to one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := buildDeps(func() {})
			defer d.closeLog() //nolint:errcheck

			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "username: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}

			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			token, err := d.client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := d.tokens.Set(token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	return cmd
}

func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.OutOrStdout(), "password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
