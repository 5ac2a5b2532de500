package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/hspace/internal/app"
	"github.com/dshills/hspace/internal/engine/buffer"
)

func newApplyCmd(c *cli) *cobra.Command {
	var line, column int

	cmd := &cobra.Command{
		Use:   "apply --line L --column C",
		Short: "Delete horizontal space in text read from stdin",
		Long: `apply reads a document from stdin, places the cursor at L:C (both
0-based, columns in characters), runs delete-horizontal-space once and
writes the document to stdout. The final cursor is written to stderr as
"cursor L:C". Configured Lua scripts run before the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			logOut, closeLog, err := c.logOutput(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			a, err := app.New(app.Options{
				Config:    c.cfg,
				Text:      string(data),
				Name:      "<stdin>",
				Cursor:    buffer.Point{Line: line, Column: column},
				LogOutput: logOut,
			})
			if err != nil {
				return err
			}
			defer func() { _ = a.Shutdown() }()

			res := a.DeleteHorizontalSpace(cmd.Context())
			if res.IsError() {
				return res.Error
			}

			if _, err := io.WriteString(cmd.OutOrStdout(), a.Document().Text()); err != nil {
				return err
			}
			p := a.Document().Selection().Active()
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "cursor %d:%d\n", p.Line, p.Column)
			return err
		},
	}

	cmd.Flags().IntVar(&line, "line", 0, "cursor line (0-based)")
	cmd.Flags().IntVar(&column, "column", 0, "cursor column in characters (0-based)")
	return cmd
}
