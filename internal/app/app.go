// Package app wires the hspace components together for one editing
// session: logger, dispatcher, in-memory document, window and the
// extension that contributes the delete-horizontal-space command.
package app

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dshills/hspace/internal/config"
	"github.com/dshills/hspace/internal/dispatcher"
	"github.com/dshills/hspace/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/hspace/internal/dispatcher/handlers/cursor"
	"github.com/dshills/hspace/internal/dispatcher/handlers/editor"
	"github.com/dshills/hspace/internal/engine/buffer"
	"github.com/dshills/hspace/internal/extension"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
	"github.com/dshills/hspace/internal/logging"
	"github.com/dshills/hspace/internal/plugin"
)

// Application owns every component of a session.
type Application struct {
	mu sync.Mutex

	logger     *logging.Logger
	config     config.Config
	dispatcher *dispatcher.Dispatcher
	window     *host.Workbench
	document   *host.Document
	extension  *extension.Extension
	watcher    *config.Watcher
	resolve    func(config.Config) (config.Config, error)

	closed bool
}

// Options configures the application.
type Options struct {
	// Config holds the resolved startup settings.
	Config config.Config

	// Text is the initial document content.
	Text string

	// Name is the document name shown in logs and the status line.
	Name string

	// Cursor is the initial cursor position.
	Cursor buffer.Point

	// ReadOnly makes the document reject edits.
	ReadOnly bool

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Resolve layers overrides such as flags and environment variables
	// onto a reloaded config file. Nil applies the file as loaded.
	Resolve func(config.Config) (config.Config, error)
}

// New creates and starts an application.
func New(opts Options) (*Application, error) {
	app := &Application{config: opts.Config, resolve: opts.Resolve}
	if err := app.bootstrap(opts); err != nil {
		_ = app.teardown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap(opts Options) error {
	// 1. Logger
	logCfg := logging.DefaultConfig()
	logCfg.Level = opts.Config.LogLevel()
	logCfg.Output = opts.LogOutput
	app.logger = logging.New(logCfg)

	// 2. Document and window
	docOpts := []host.DocumentOption{
		host.WithCursor(opts.Cursor),
		host.WithReadOnly(opts.ReadOnly),
		host.WithLogger(app.logger),
	}
	if opts.Name != "" {
		docOpts = append(docOpts, host.WithName(opts.Name))
	}
	app.document = host.NewDocument(opts.Text, docOpts...)
	app.window = host.NewWorkbench(app.logger)
	app.window.SetActive(app.document)

	// 3. Dispatcher with the basic editing and motion handlers
	app.dispatcher = dispatcher.New(dispatcher.DefaultConfig())
	app.dispatcher.SetLogger(app.logger)
	app.dispatcher.SetWindow(app.window)
	app.dispatcher.RegisterNamespace(editor.NewInsertHandler())
	app.dispatcher.RegisterNamespace(editor.NewDeleteHandler())
	app.dispatcher.RegisterNamespace(cursorhandler.NewHandler())
	app.dispatcher.RegisterNamespace(cursorhandler.NewMotionHandler())

	// 4. Extension
	app.extension = extension.New()
	ctx := extension.NewContext(app.dispatcher, app.logger).WithScripts(opts.Config.Plugins.Scripts)
	if err := app.extension.Activate(ctx); err != nil {
		return &InitError{Component: "extension", Err: err}
	}

	return nil
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Config returns the current configuration.
func (app *Application) Config() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.config
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Window returns the window.
func (app *Application) Window() *host.Workbench {
	return app.window
}

// Document returns the edited document.
func (app *Application) Document() *host.Document {
	return app.document
}

// Extension returns the extension.
func (app *Application) Extension() *extension.Extension {
	return app.extension
}

// DeleteHorizontalSpace runs the command once at the current cursor.
func (app *Application) DeleteHorizontalSpace(ctx context.Context) handler.Result {
	return app.dispatcher.Dispatch(ctx, input.NewAction(editor.ActionDeleteHorizontalSpace, input.SourceCLI))
}

// WatchConfig reloads path on change, layers it through Options.Resolve,
// applies the new log level and passes the configuration to onChange.
// Invalid files keep the current settings.
func (app *Application) WatchConfig(path string, onChange func(config.Config)) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.closed {
		return ErrShutdown
	}
	if app.watcher != nil {
		return ErrWatching
	}

	w, err := config.Watch(path, func(cfg config.Config, err error) {
		if err != nil {
			return
		}
		if app.resolve != nil {
			if cfg, err = app.resolve(cfg); err != nil {
				app.logger.Warn("config reload rejected: %v", err)
				return
			}
		}
		app.mu.Lock()
		app.config = cfg
		app.mu.Unlock()
		app.logger.SetLevel(cfg.LogLevel())
		if onChange != nil {
			onChange(cfg)
		}
	}, config.WithWatchLogger(app.logger))
	if err != nil {
		return err
	}
	app.watcher = w
	return nil
}

// Shutdown deactivates the extension and releases every component.
func (app *Application) Shutdown() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return ErrShutdown
	}
	app.closed = true
	app.mu.Unlock()

	return app.teardown()
}

func (app *Application) teardown() error {
	var errs []error
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
	}
	if app.extension != nil && app.extension.State() == plugin.StateActive {
		errs = append(errs, app.extension.Deactivate())
	}
	if app.document != nil {
		errs = append(errs, app.document.Close())
	}
	return errors.Join(errs...)
}
