package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/hspace/internal/app"
	"github.com/dshills/hspace/internal/config"
	"github.com/dshills/hspace/internal/tui"
)

func newEditCmd(c *cli) *cobra.Command {
	var printText bool

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit text in a minimal terminal editor",
		Long: `edit opens file (or an empty buffer) in a terminal editor with
delete-horizontal-space bound to the configured key (default alt+\).
The file is never written back; use --print to get the final text on
stdout. When --config is given, key binding and log level changes in
that file apply without a restart. Quit with ctrl+q or Esc.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, name, err := readDocument(args)
			if err != nil {
				return err
			}

			binding, err := tui.ParseKeyBinding(c.cfg.Keys.DeleteHorizontalSpace)
			if err != nil {
				return err
			}

			logOut, closeLog, err := c.logOutput(io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			a, err := app.New(app.Options{
				Config:    c.cfg,
				Text:      text,
				Name:      name,
				LogOutput: logOut,
				Resolve:   c.resolve,
			})
			if err != nil {
				return err
			}
			defer func() { _ = a.Shutdown() }()

			screen, err := c.openScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			var finiOnce sync.Once
			fini := func() { finiOnce.Do(screen.Fini) }
			defer fini()

			session, err := tui.NewSession(screen, a.Dispatcher(),
				tui.WithBinding(binding),
				tui.WithName(name),
				tui.WithLogger(a.Logger()),
			)
			if err != nil {
				return err
			}

			if c.cfgFile != "" {
				err := a.WatchConfig(c.cfgFile, func(cfg config.Config) {
					b, err := tui.ParseKeyBinding(cfg.Keys.DeleteHorizontalSpace)
					if err != nil {
						a.Logger().Warn("ignoring key binding: %v", err)
						return
					}
					session.Rebind(b)
				})
				if err != nil {
					a.Logger().Warn("config watch disabled: %v", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			fini()

			if printText {
				_, err := io.WriteString(cmd.OutOrStdout(), a.Document().Text())
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&printText, "print", false, "write the final text to stdout on exit")
	return cmd
}

// readDocument returns the initial text and display name. A missing file
// starts an empty buffer with that name.
func readDocument(args []string) (text, name string, err error) {
	if len(args) == 0 {
		return "", "[scratch]", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), filepath.Base(args[0]), nil
}
