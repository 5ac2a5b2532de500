package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/hspace/internal/config"
)

// cli holds state shared by every subcommand.
type cli struct {
	mu      sync.Mutex
	v       *viper.Viper
	cfgFile string
	cfg     config.Config

	// openScreen creates and initializes the terminal for edit.
	openScreen func() (tcell.Screen, error)
}

func newCLI() *cli {
	return &cli{
		v:          viper.New(),
		openScreen: openTerminal,
	}
}

func openTerminal() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "hspace",
		Short: "Delete horizontal whitespace around the cursor",
		Long: `hspace finds the run of spaces and tabs around a cursor position,
deletes it and leaves the cursor where the run started.

It can scan a single line, filter stdin, or run a small terminal editor
with the command bound to a key.`,
		Version:           versionString(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return c.initConfig() },
	}

	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "",
		"config file (.toml, .yaml or .yml)")
	root.PersistentFlags().String("log-level", "",
		"log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-file", "",
		"append logs to this file instead of stderr")

	_ = c.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = c.v.BindPFlag("log.file", root.PersistentFlags().Lookup("log-file"))

	root.AddCommand(
		newRangeCmd(c),
		newApplyCmd(c),
		newEditCmd(c),
		newVersionCmd(),
	)
	return root
}

// initConfig loads the config file, then layers HSPACE_* environment
// variables and flags over it.
func (c *cli) initConfig() error {
	fileCfg, err := config.Load(c.cfgFile)
	if err != nil {
		return err
	}
	cfg, err := c.resolve(fileCfg)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// resolve layers flags and HSPACE_* environment variables over fileCfg.
// The config watcher calls it for every reload.
func (c *cli) resolve(fileCfg config.Config) (config.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.v.SetEnvPrefix("HSPACE")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	c.v.SetDefault("log.level", fileCfg.Log.Level)
	c.v.SetDefault("log.file", fileCfg.Log.File)
	c.v.SetDefault("keys.delete_horizontal_space", fileCfg.Keys.DeleteHorizontalSpace)
	c.v.SetDefault("plugins.scripts", fileCfg.Plugins.Scripts)

	var cfg config.Config
	if err := c.v.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// logOutput returns the configured log file, or fallback.
func (c *cli) logOutput(fallback io.Writer) (io.Writer, func(), error) {
	if c.cfg.Log.File == "" {
		return fallback, func() {}, nil
	}
	f, err := os.OpenFile(c.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
