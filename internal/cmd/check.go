package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/squarelake/paydesk/internal/xlsx"
)

func newCheckCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "check <workbook.xlsx>",
		Short: "Validate an upload workbook without uploading it",
		Long: `Opens a workbook the way the upload flows do and lists its sheets.
With --sheet it applies the same rule the uploads apply: a single-sheet
workbook always passes, a multi-sheet workbook must contain the named
sheet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			sheets, err := xlsx.Sheets(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d sheet(s)\n", path, len(sheets))
			for _, s := range sheets {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", s)
			}
			if sheet != "" {
				if err := xlsx.RequireSheet(path, sheet); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: usable as a %q upload\n", sheet)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name the upload endpoint expects")
	return cmd
}
