package mode

import (
	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/input/key"
)

// InsertMode types characters into the buffer. When a line or word
// change is pending, its terminating key ends the change and returns
// to normal mode instead of inserting.
type InsertMode struct{}

// NewInsertMode creates the insert mode handler.
func NewInsertMode() *InsertMode { return &InsertMode{} }

// Name returns "insert".
func (m *InsertMode) Name() string { return editor.ModeInsert }

// DisplayName returns the status bar label.
func (m *InsertMode) DisplayName() string { return "INSERT" }

// Enter implements Mode.
func (m *InsertMode) Enter(ctx *editor.Context) {}

// Exit clears any pending compound change.
func (m *InsertMode) Exit(ctx *editor.Context) {
	ctx.PendingLineChange = false
	ctx.PendingWordChange = false
}

// HandleKey implements Mode.
func (m *InsertMode) HandleKey(ev key.Event, ctx *editor.Context) {
	buf := ctx.CurrentBuffer()

	// Terminators for compound changes started in normal mode.
	if ctx.PendingLineChange && ev.IsEnter() {
		ctx.PendingLineChange = false
		ctx.SetMode(editor.ModeNormal)
		return
	}
	if ctx.PendingWordChange && ev.IsRune() && ev.Rune == ' ' {
		ctx.PendingWordChange = false
		ctx.SetMode(editor.ModeNormal)
		return
	}

	switch {
	case ev.IsEnter():
		buf.SplitLine()
	case ev.IsBackspace():
		buf.DeleteCharBefore()
	case ev.Key == key.KeyDelete:
		buf.DeleteCharAfter()
	case ev.Key == key.KeyTab:
		buf.InsertRune('\t')
	case ev.IsChar():
		buf.InsertRune(ev.Rune)
	default:
		m.handleSpecial(ev, buf)
	}
}

func (m *InsertMode) handleSpecial(ev key.Event, buf *editor.Buffer) {
	line, col := buf.Cursor()
	switch ev.Key {
	case key.KeyUp:
		buf.SetCursor(line-1, col)
	case key.KeyDown:
		buf.SetCursor(line+1, col)
	case key.KeyLeft:
		buf.SetCursor(line, col-1)
	case key.KeyRight:
		if col < len(buf.CurrentLine()) {
			buf.SetCursor(line, col+1)
		}
	case key.KeyHome:
		buf.SetCursor(line, 0)
	case key.KeyEnd:
		buf.SetCursor(line, len(buf.CurrentLine()))
	}
}
