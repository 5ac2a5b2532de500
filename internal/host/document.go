package host

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/hspace/internal/engine/buffer"
	"github.com/dshills/hspace/internal/engine/cursor"
	"github.com/dshills/hspace/internal/logging"
)

// editRequest is one transaction waiting on the edit loop.
type editRequest struct {
	id    string
	edits []buffer.Edit
	reply chan editReply
}

type editReply struct {
	result EditResult
	err    error
}

// Document is an in-memory Editor.
type Document struct {
	name     string
	buf      *buffer.Buffer
	readOnly bool
	logger   *logging.Logger

	mu  sync.Mutex
	sel cursor.Selection

	requests  chan editRequest
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithName sets the document name.
func WithName(name string) DocumentOption {
	return func(d *Document) {
		d.name = name
	}
}

// WithReadOnly makes the document reject edits.
func WithReadOnly(readOnly bool) DocumentOption {
	return func(d *Document) {
		d.readOnly = readOnly
	}
}

// WithLogger sets the document logger.
func WithLogger(l *logging.Logger) DocumentOption {
	return func(d *Document) {
		d.logger = l
	}
}

// WithCursor places the cursor at p.
func WithCursor(p buffer.Point) DocumentOption {
	return func(d *Document) {
		d.sel = cursor.NewCursorSelection(p)
	}
}

// NewDocument creates a document holding text and starts its edit loop.
// Call Close to stop the loop.
func NewDocument(text string, opts ...DocumentOption) *Document {
	d := &Document{
		name:     "[scratch]",
		buf:      buffer.NewBufferFromString(text),
		requests: make(chan editRequest),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.OrNull(d.logger).WithField("document", d.name)
	d.sel = cursor.NewSelection(d.buf.ClampPoint(d.sel.Anchor), d.buf.ClampPoint(d.sel.Head))

	d.wg.Add(1)
	go d.loop()
	return d
}

// Name implements Editor.
func (d *Document) Name() string {
	return d.name
}

// Text implements Editor.
func (d *Document) Text() string {
	return d.buf.Text()
}

// LineText implements Editor.
func (d *Document) LineText(line int) (string, error) {
	text, err := d.buf.LineText(line)
	if err != nil {
		return "", NewOperationError("lineText", d.name, err)
	}
	return text, nil
}

// LineCount implements Editor.
func (d *Document) LineCount() int {
	return d.buf.LineCount()
}

// LineLen returns the number of characters in a line.
func (d *Document) LineLen(line int) int {
	return d.buf.LineLen(line)
}

// IsReadOnly returns true if the document rejects edits.
func (d *Document) IsReadOnly() bool {
	return d.readOnly
}

// Selection implements Editor.
func (d *Document) Selection() cursor.Selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sel
}

// SetSelection implements Editor.
func (d *Document) SetSelection(sel cursor.Selection) error {
	select {
	case <-d.done:
		return NewOperationError("setSelection", d.name, ErrClosed)
	default:
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.sel = cursor.NewSelection(d.buf.ClampPoint(sel.Anchor), d.buf.ClampPoint(sel.Head))
	return nil
}

// Edit implements Editor. ctx only bounds the wait for the edit loop to
// accept the transaction; an accepted transaction runs to completion and
// its outcome is returned even if ctx ends meanwhile.
func (d *Document) Edit(ctx context.Context, build func(*EditBuilder)) (EditResult, error) {
	var b EditBuilder
	build(&b)

	req := editRequest{
		id:    uuid.NewString(),
		edits: b.Edits(),
		reply: make(chan editReply, 1),
	}

	select {
	case d.requests <- req:
	case <-d.done:
		return EditResult{ID: req.id}, NewOperationError("edit", d.name, ErrClosed)
	case <-ctx.Done():
		return EditResult{ID: req.id}, ctx.Err()
	}

	// Once accepted, the transaction runs to completion and always replies.
	rep := <-req.reply
	return rep.result, rep.err
}

// Close stops the edit loop. Pending and later edits fail with ErrClosed.
func (d *Document) Close() error {
	d.closeOnce.Do(func() {
		close(d.done)
	})
	d.wg.Wait()
	return nil
}

// loop applies edit transactions one at a time.
func (d *Document) loop() {
	defer d.wg.Done()
	for {
		select {
		case req := <-d.requests:
			result, err := d.apply(req)
			req.reply <- editReply{result: result, err: err}
		case <-d.done:
			return
		}
	}
}

// apply executes one transaction. Edits are validated first and applied
// from the end of the document backwards so earlier ranges stay valid.
func (d *Document) apply(req editRequest) (EditResult, error) {
	result := EditResult{ID: req.id}
	log := d.logger.WithField("tx", req.id)

	if d.readOnly {
		log.Debug("edit rejected: read-only")
		return result, NewOperationError("edit", d.name, ErrReadOnly)
	}

	edits := make([]buffer.Edit, 0, len(req.edits))
	for _, e := range req.edits {
		if !e.IsNoOp() {
			edits = append(edits, e)
		}
	}
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Range.Start.After(edits[j].Range.Start)
	})

	for i, e := range edits {
		if _, err := d.buf.TextRange(e.Range); err != nil {
			return result, NewOperationError("edit", d.name, err)
		}
		if i > 0 && edits[i-1].Range.Start.Before(e.Range.End) {
			return result, NewOperationError("edit", d.name,
				fmt.Errorf("%w: %s and %s", ErrEditsOverlap, e.Range, edits[i-1].Range))
		}
	}

	d.mu.Lock()
	sel := d.sel
	d.mu.Unlock()

	changes := make([]buffer.EditResult, 0, len(edits))
	for _, e := range edits {
		res, err := d.buf.ApplyEdit(e)
		if err != nil {
			// Validated above; a failure here means the buffer changed underneath us.
			return result, NewOperationError("edit", d.name, err)
		}
		sel = sel.Transform(res)
		changes = append(changes, res)
	}

	d.mu.Lock()
	d.sel = sel
	d.mu.Unlock()

	for i, j := 0, len(changes)-1; i < j; i, j = i+1, j-1 {
		changes[i], changes[j] = changes[j], changes[i]
	}
	result.Applied = true
	result.Changes = changes
	log.Debug("applied %d edit(s)", len(changes))
	return result, nil
}
