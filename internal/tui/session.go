package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hspace/internal/config"
	"github.com/dshills/hspace/internal/dispatcher"
	"github.com/dshills/hspace/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/hspace/internal/dispatcher/handlers/cursor"
	"github.com/dshills/hspace/internal/dispatcher/handlers/editor"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
	"github.com/dshills/hspace/internal/logging"
)

// rebound is posted to the event loop when the binding changes.
type rebound struct {
	binding KeyBinding
}

// Session runs the terminal event loop for the active editor.
type Session struct {
	screen     tcell.Screen
	view       *View
	dispatcher *dispatcher.Dispatcher
	name       string
	logger     *logging.Logger

	mu      sync.Mutex
	binding KeyBinding
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithBinding sets the delete-horizontal-space binding.
func WithBinding(b KeyBinding) SessionOption {
	return func(s *Session) {
		s.binding = b
	}
}

// WithName sets the name shown in the status line.
func WithName(name string) SessionOption {
	return func(s *Session) {
		s.name = name
	}
}

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession creates a session editing the dispatcher window's active editor.
// The caller owns the screen and must Init and Fini it.
func NewSession(screen tcell.Screen, d *dispatcher.Dispatcher, opts ...SessionOption) (*Session, error) {
	if d.Window() == nil || d.Window().ActiveEditor() == nil {
		return nil, ErrNoDocument
	}
	s := &Session{
		screen:     screen,
		view:       NewView(screen),
		dispatcher: d,
		name:       "[scratch]",
		binding:    MustParseKeyBinding(config.DefaultDeleteHorizontalSpaceKey),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNull(s.logger).WithComponent("tui")
	return s, nil
}

// View returns the session view.
func (s *Session) View() *View {
	return s.view
}

// Binding returns the current delete-horizontal-space binding.
func (s *Session) Binding() KeyBinding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binding
}

// Rebind changes the delete-horizontal-space binding. It is safe to call
// from any goroutine; the status line reports the change on the next redraw.
func (s *Session) Rebind(b KeyBinding) {
	s.mu.Lock()
	s.binding = b
	s.mu.Unlock()
	s.logger.Info("delete-horizontal-space bound to %s", b)
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(rebound{binding: b}))
}

// Run draws the editor and processes events until the user quits or ctx
// ends.
func (s *Session) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	s.draw()
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.HandleEvent(ctx, ev) {
			return nil
		}
		s.draw()
	}
}

func (s *Session) draw() {
	if ed := s.editor(); ed != nil {
		s.view.Draw(ed, s.name)
	}
}

func (s *Session) editor() host.Editor {
	if w := s.dispatcher.Window(); w != nil {
		return w.ActiveEditor()
	}
	return nil
}

// HandleEvent applies one event and reports whether the session should end.
func (s *Session) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ctx, e)
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventInterrupt:
		if r, ok := e.Data().(rebound); ok {
			s.view.SetMessage("key binding: "+r.binding.String(), MessageInfo)
		}
	}
	return false
}

func (s *Session) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if s.Binding().Matches(ev) {
		s.run(ctx, input.NewAction(editor.ActionDeleteHorizontalSpace, input.SourceKeyboard))
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		return true
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown, tcell.KeyHome, tcell.KeyEnd:
		s.run(ctx, input.NewAction(motionFor(ev), input.SourceKeyboard))
	case tcell.KeyEnter:
		s.run(ctx, input.NewAction(editor.ActionInsertNewline, input.SourceKeyboard))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.run(ctx, input.NewAction(editor.ActionDeleteCharBack, input.SourceKeyboard))
	case tcell.KeyDelete:
		s.run(ctx, input.NewAction(editor.ActionDeleteChar, input.SourceKeyboard))
	case tcell.KeyTab:
		s.insert(ctx, "\t")
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl|tcell.ModMeta) == 0 {
			s.insert(ctx, string(ev.Rune()))
		}
	}
	return false
}

func (s *Session) insert(ctx context.Context, text string) {
	action := input.NewAction(editor.ActionInsertText, input.SourceKeyboard)
	action.Args.Text = text
	s.run(ctx, action)
}

func (s *Session) run(ctx context.Context, action input.Action) {
	res := s.dispatcher.Dispatch(ctx, action)
	switch res.Status {
	case handler.StatusError:
		s.view.SetMessage(fmt.Sprintf("%s: %v", action.Name, res.Error), MessageError)
	default:
		if res.Message != "" {
			s.view.SetMessage(res.Message, MessageInfo)
		} else {
			s.view.SetMessage("", MessageNone)
		}
	}
}

// motions maps navigation keys to cursor actions. Ctrl+Left and
// Ctrl+Right move by word.
var motions = map[tcell.Key]string{
	tcell.KeyLeft:  cursorhandler.ActionMoveLeft,
	tcell.KeyRight: cursorhandler.ActionMoveRight,
	tcell.KeyUp:    cursorhandler.ActionMoveUp,
	tcell.KeyDown:  cursorhandler.ActionMoveDown,
	tcell.KeyHome:  cursorhandler.ActionMoveLineStart,
	tcell.KeyEnd:   cursorhandler.ActionMoveLineEnd,
}

func motionFor(ev *tcell.EventKey) string {
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		switch ev.Key() {
		case tcell.KeyLeft:
			return cursorhandler.ActionWordBackward
		case tcell.KeyRight:
			return cursorhandler.ActionWordForward
		}
	}
	return motions[ev.Key()]
}
