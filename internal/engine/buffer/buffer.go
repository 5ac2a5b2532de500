package buffer

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rivo/uniseg"
)

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange  = errors.New("line out of range")
	ErrPointOutOfRange = errors.New("point out of range")
	ErrRangeInvalid    = errors.New("invalid range")
)

// RevisionID identifies a buffer state. It increases with every edit.
type RevisionID uint64

var revisionCounter atomic.Uint64

func nextRevision() RevisionID {
	return RevisionID(revisionCounter.Add(1))
}

// LineEnding is the line terminator used when the text is joined.
type LineEnding string

// Supported line endings.
const (
	LineEndingLF   LineEnding = "\n"
	LineEndingCRLF LineEnding = "\r\n"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// DetectLineEnding returns LineEndingCRLF if text uses CRLF line endings,
// LineEndingLF otherwise.
func DetectLineEnding(text string) LineEnding {
	lf := strings.Count(text, "\n")
	if lf > 0 && strings.Count(text, "\r\n") == lf {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// Buffer is a thread-safe line store.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	lineEnding LineEnding
	revision   RevisionID
}

// NewBuffer creates an empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	return NewBufferFromString("", opts...)
}

// NewBufferFromString creates a buffer holding text. Line endings are
// detected unless an option overrides them.
func NewBufferFromString(text string, opts ...Option) *Buffer {
	b := &Buffer{
		lineEnding: DetectLineEnding(text),
		revision:   nextRevision(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lines = splitLines(text)
	return b
}

// splitLines splits text on LF, dropping the CR of CRLF pairs.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Text returns the full buffer contents.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, string(b.lineEnding))
}

// LineText returns the text of a line without its terminator.
func (b *Buffer) LineText(line int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return "", fmt.Errorf("%w: %d", ErrLineOutOfRange, line)
	}
	return b.lines[line], nil
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineLen returns the number of characters in a line, or 0 if the line
// does not exist.
func (b *Buffer) LineLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return 0
	}
	return uniseg.GraphemeClusterCount(b.lines[line])
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// RevisionID returns the current revision.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// ClampPoint returns the nearest valid point to p.
func (b *Buffer) ClampPoint(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clampPoint(p)
}

func (b *Buffer) clampPoint(p Point) Point {
	if p.Line < 0 {
		return Point{}
	}
	if p.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return Point{Line: last, Column: uniseg.GraphemeClusterCount(b.lines[last])}
	}
	p.Column = max(p.Column, 0)
	p.Column = min(p.Column, uniseg.GraphemeClusterCount(b.lines[p.Line]))
	return p
}

// TextRange returns the text covered by r.
func (b *Buffer) TextRange(r Range) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end, err := b.resolve(r)
	if err != nil {
		return "", err
	}
	return b.textBetween(r, start, end), nil
}

// Replace replaces the text in r with text and returns what changed.
func (b *Buffer) Replace(r Range, text string) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start, end, err := b.resolve(r)
	if err != nil {
		return EditResult{}, err
	}

	oldText := b.textBetween(r, start, end)
	prefix := b.lines[r.Start.Line][:start]
	suffix := b.lines[r.End.Line][end:]

	inserted := splitLines(text)
	last := len(inserted) - 1
	newEnd := Point{
		Line:   r.Start.Line + last,
		Column: uniseg.GraphemeClusterCount(inserted[last]),
	}
	if last == 0 {
		newEnd.Column += r.Start.Column
	}

	inserted[0] = prefix + inserted[0]
	inserted[last] += suffix

	lines := make([]string, 0, len(b.lines)-(r.End.Line-r.Start.Line)+last)
	lines = append(lines, b.lines[:r.Start.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[r.End.Line+1:]...)
	b.lines = lines
	b.revision = nextRevision()

	return EditResult{
		OldRange: r,
		NewRange: Range{Start: r.Start, End: newEnd},
		OldText:  oldText,
		Revision: b.revision,
	}, nil
}

// ApplyEdit applies a single Edit.
func (b *Buffer) ApplyEdit(e Edit) (EditResult, error) {
	return b.Replace(e.Range, e.NewText)
}

// resolve validates r and returns byte offsets of its endpoints within
// their lines.
func (b *Buffer) resolve(r Range) (start, end int, err error) {
	if !r.IsValid() {
		return 0, 0, fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	start, err = b.byteOffset(r.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err = b.byteOffset(r.End)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// byteOffset converts a point to a byte offset within its line.
func (b *Buffer) byteOffset(p Point) (int, error) {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return 0, fmt.Errorf("%w: %s", ErrPointOutOfRange, p)
	}
	if p.Column < 0 {
		return 0, fmt.Errorf("%w: %s", ErrPointOutOfRange, p)
	}

	line := b.lines[p.Line]
	offset, col := 0, 0
	state := -1
	rest := line
	for col < p.Column {
		if rest == "" {
			return 0, fmt.Errorf("%w: %s", ErrPointOutOfRange, p)
		}
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		offset += len(cluster)
		col++
	}
	return offset, nil
}

// textBetween returns the text between two resolved endpoints of r.
func (b *Buffer) textBetween(r Range, start, end int) string {
	if r.IsSingleLine() {
		return b.lines[r.Start.Line][start:end]
	}
	parts := make([]string, 0, r.End.Line-r.Start.Line+1)
	parts = append(parts, b.lines[r.Start.Line][start:])
	parts = append(parts, b.lines[r.Start.Line+1:r.End.Line]...)
	parts = append(parts, b.lines[r.End.Line][:end])
	return strings.Join(parts, string(b.lineEnding))
}
