package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/hspace/internal/engine/scan"
	"github.com/dshills/hspace/internal/host"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

var (
	textStyle   = tcell.StyleDefault
	statusStyle = tcell.StyleDefault.Reverse(true)
	errorStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
)

const tabWidth = 4

// View draws an editor and a one-line status bar onto a screen.
type View struct {
	screen tcell.Screen

	// First visible line.
	top int

	message     string
	messageType MessageType
}

// NewView creates a view on screen.
func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// SetMessage updates the status message.
func (v *View) SetMessage(msg string, typ MessageType) {
	v.message = msg
	v.messageType = typ
}

// Message returns the current status message.
func (v *View) Message() string {
	return v.message
}

// Top returns the first visible line.
func (v *View) Top() int {
	return v.top
}

// Draw renders ed and shows the result.
func (v *View) Draw(ed host.Editor, name string) {
	v.screen.Clear()
	width, height := v.screen.Size()
	textRows := height - 1
	if textRows < 1 || width < 1 {
		v.screen.Show()
		return
	}

	head := ed.Selection().Active()
	v.scrollTo(head.Line, textRows)

	for row := 0; row < textRows; row++ {
		line := v.top + row
		if line >= ed.LineCount() {
			break
		}
		text, err := ed.LineText(line)
		if err != nil {
			break
		}
		v.drawLine(row, width, scan.NewLine(text))
	}

	v.drawStatus(height-1, width, name, head.Line, head.Column)

	if text, err := ed.LineText(head.Line); err == nil {
		x := displayColumn(scan.NewLine(text), head.Column)
		if x >= width {
			x = width - 1
		}
		v.screen.ShowCursor(x, head.Line-v.top)
	}
	v.screen.Show()
}

func (v *View) scrollTo(line, rows int) {
	if line < v.top {
		v.top = line
	}
	if line >= v.top+rows {
		v.top = line - rows + 1
	}
}

func (v *View) drawLine(row, width int, line scan.Line) {
	x := 0
	for i := 0; i < line.Len() && x < width; i++ {
		cluster := line.At(i)
		if cluster == "\t" {
			w := cellWidth(cluster, x)
			for j := 0; j < w && x < width; j++ {
				v.screen.SetContent(x, row, ' ', nil, textStyle)
				x++
			}
			continue
		}
		runes := []rune(cluster)
		v.screen.SetContent(x, row, runes[0], runes[1:], textStyle)
		x += cellWidth(cluster, x)
	}
}

func (v *View) drawStatus(row, width int, name string, line, col int) {
	style := statusStyle
	if v.messageType == MessageError {
		style = errorStyle
	}
	for x := 0; x < width; x++ {
		v.screen.SetContent(x, row, ' ', nil, style)
	}

	text := fmt.Sprintf(" %s  %d:%d", name, line+1, col+1)
	if v.message != "" {
		text += "  " + v.message
	}
	x := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if x+w > width {
			break
		}
		v.screen.SetContent(x, row, r, nil, style)
		x += w
	}
}

// displayColumn returns the screen column of character column col.
func displayColumn(line scan.Line, col int) int {
	x := 0
	for i := 0; i < col && i < line.Len(); i++ {
		x += cellWidth(line.At(i), x)
	}
	return x
}

// cellWidth returns the cells a cluster occupies when drawn at column x.
func cellWidth(cluster string, x int) int {
	if cluster == "\t" {
		return tabWidth - x%tabWidth
	}
	w := runewidth.StringWidth(cluster)
	if w < 1 {
		return 1
	}
	return w
}
