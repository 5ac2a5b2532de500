package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/hspace/internal/engine/scan"
)

func newRangeCmd(_ *cli) *cobra.Command {
	var column int

	cmd := &cobra.Command{
		Use:   "range --column N TEXT",
		Short: "Print the whitespace run around a column",
		Long: `range prints the half-open character range "first last" that
delete-horizontal-space would remove from TEXT with the cursor at column N,
or "no-op" when there is nothing to delete. Columns count user-perceived
characters, not bytes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, ok := scan.DeleteRange(scan.NewLine(args[0]), column)
			if !ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no-op")
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", b.First, b.Last)
			return err
		},
	}

	cmd.Flags().IntVar(&column, "column", 0, "cursor column in characters")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}
