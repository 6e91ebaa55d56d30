package mode

import (
	"fmt"
	"strconv"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/input/key"
)

// NormalMode is the default mode: single-letter editing commands, a
// timed numeric prefix for counts and line jumps, and the two-key word
// commands armed by 'w'.
type NormalMode struct{}

// NewNormalMode creates the normal mode handler.
func NewNormalMode() *NormalMode { return &NormalMode{} }

// Name returns "normal".
func (m *NormalMode) Name() string { return editor.ModeNormal }

// DisplayName returns the status bar label.
func (m *NormalMode) DisplayName() string { return "NORMAL" }

// Enter implements Mode.
func (m *NormalMode) Enter(ctx *editor.Context) {}

// Exit drops any half-typed prefix or word arm.
func (m *NormalMode) Exit(ctx *editor.Context) {
	ctx.TakePrefix()
	ctx.WordArm = false
}

// HandleKey implements Mode.
func (m *NormalMode) HandleKey(ev key.Event, ctx *editor.Context) {
	buf := ctx.CurrentBuffer()

	// Prefix followed by Enter jumps to that line.
	if prefix := ctx.NumericPrefix(); prefix != "" && ev.IsEnter() {
		ctx.TakePrefix()
		jumpToLine(buf, prefix)
		return
	}

	// Armed word commands consume the next key.
	if ctx.WordArm {
		ctx.WordArm = false
		m.handleWordKey(ev, ctx)
		return
	}

	// Digits accumulate into the prefix.
	if ev.IsDigit() {
		ctx.PushDigit(ev.Rune)
		return
	}

	// A pending prefix turns d/y/D/x into count commands; any other
	// key jumps to the prefixed line and is then handled normally.
	if prefix := ctx.NumericPrefix(); prefix != "" {
		ctx.TakePrefix()
		if ev.IsRune() && m.handleCountKey(ev.Rune, prefix, ctx) {
			return
		}
		jumpToLine(buf, prefix)
	}

	if ev.IsRune() {
		m.handleRune(ev.Rune, ctx)
		return
	}
	m.handleSpecial(ev, ctx)
}

// handleCountKey runs a prefix count command. Returns false when the
// key is not a count command.
func (m *NormalMode) handleCountKey(r rune, prefix string, ctx *editor.Context) bool {
	count, err := strconv.Atoi(prefix)
	if err != nil || count < 1 {
		count = 1
	}
	buf := ctx.CurrentBuffer()
	switch r {
	case 'd':
		ctx.TakeSnapshot()
		buf.DeleteLines(count)
		ctx.LogActivity(fmt.Sprintf("%dd: delete %d lines", count, count))
	case 'y':
		ctx.SetClipboard(buf.CopyLines(count))
		ctx.LogActivity(fmt.Sprintf("%dy: copy %d lines", count, count))
	case 'D':
		ctx.TakeSnapshot()
		buf.DeleteParagraph()
		ctx.LogActivity("D: delete paragraph")
	case 'x':
		ctx.AdvanceBuffer(count)
		ctx.SetStatus(fmt.Sprintf("switched to buffer %d", ctx.CurrentIndex()+1))
	default:
		return false
	}
	return true
}

func (m *NormalMode) handleWordKey(ev key.Event, ctx *editor.Context) {
	buf := ctx.CurrentBuffer()
	switch {
	case ev.IsRune() && ev.Rune == 'j':
		buf.WordForward()
		ctx.LogActivity("wj: jump word")
	case ev.IsRune() && ev.Rune == 'h':
		buf.WordBackward()
		ctx.LogActivity("wh: jump back")
	case ev.IsRune() && ev.Rune == 'd':
		ctx.TakeSnapshot()
		buf.DeleteWord()
		ctx.LogActivity("wd: delete word")
	case ev.IsRune() && ev.Rune == 'y':
		ctx.SetWordClipboard(buf.CopyWord())
		ctx.LogActivity("wy: copy word")
	case ev.IsRune() && ev.Rune == 'p':
		ctx.TakeSnapshot()
		ctx.PendingWordChange = true
		buf.DeleteWord()
		ctx.SetMode(editor.ModeInsert)
		ctx.LogActivity("wp: word change")
	default:
		ctx.LogActivity("w" + ev.String() + ": unknown")
	}
}

func (m *NormalMode) handleRune(r rune, ctx *editor.Context) {
	buf := ctx.CurrentBuffer()
	switch r {
	case 'm':
		if _, ok := buf.Mark(); !ok {
			buf.SetMark()
			line, _ := buf.Cursor()
			ctx.SetStatus(fmt.Sprintf("mark set on line %d", line+1))
			ctx.LogActivity("m: mark set")
		} else if target, ok := buf.JumpMark(); ok {
			ctx.SetStatus(fmt.Sprintf("jumped to line %d", target+1))
			ctx.LogActivity("m: jump to mark")
		}
	case 'd':
		ctx.TakeSnapshot()
		buf.DeleteLine()
		ctx.LogActivity("d: delete line")
	case 'i':
		ctx.SetMode(editor.ModeInsert)
		ctx.LogActivity("i: insert")
	case 'o':
		ctx.CommandLine = ""
		ctx.SetMode(editor.ModeCommand)
		ctx.LogActivity("o: command")
	case 'D':
		ctx.TakeSnapshot()
		buf.DeleteParagraph()
		ctx.LogActivity("D: delete paragraph")
	case 'y':
		ctx.SetClipboard(buf.CopyLine())
		ctx.LogActivity("y: copy line")
	case 'Y':
		ctx.SetClipboard(buf.CopyParagraph())
		ctx.LogActivity("Y: copy paragraph")
	case 'u':
		m.paste(ctx)
	case 'x':
		ctx.AdvanceBuffer(1)
		if len(ctx.Buffers()) > 1 {
			ctx.SetStatus(fmt.Sprintf("switched to buffer %d", ctx.CurrentIndex()+1))
		}
	case ' ':
		line, col := buf.Cursor()
		if col < len(buf.CurrentLine()) {
			buf.SetCursor(line, col+1)
		}
	case 'h':
		line, _ := buf.Cursor()
		buf.SetCursor(line, 0)
		ctx.LogActivity("h: startline")
	case 'j':
		line, _ := buf.Cursor()
		buf.SetCursor(line, len(buf.CurrentLine()))
		ctx.LogActivity("j: endline")
	case 'w':
		ctx.WordArm = true
	case 'p':
		ctx.TakeSnapshot()
		ctx.PendingLineChange = true
		line, _ := buf.Cursor()
		buf.SetLine(line, "")
		buf.SetCursor(line, 0)
		ctx.SetMode(editor.ModeInsert)
		ctx.LogActivity("p: line change")
	}
}

// paste inserts the word clipboard inline when set (consuming it),
// otherwise pastes the line clipboard below the cursor.
func (m *NormalMode) paste(ctx *editor.Context) {
	buf := ctx.CurrentBuffer()
	if word := ctx.WordClipboard(); word != "" {
		ctx.TakeSnapshot()
		buf.InsertText(word)
		ctx.SetWordClipboard("")
		ctx.LogActivity("u: paste word")
		return
	}
	if clip := ctx.Clipboard(); clip != "" {
		ctx.TakeSnapshot()
		buf.PasteBelow(clip)
		ctx.LogActivity("u: paste line")
	}
}

func (m *NormalMode) handleSpecial(ev key.Event, ctx *editor.Context) {
	buf := ctx.CurrentBuffer()
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
	case key.KeyPageUp:
		height := pageHeight(ctx)
		buf.SetScroll(buf.Scroll() - height)
		buf.SetCursor(line-height, col)
	case key.KeyPageDown:
		height := pageHeight(ctx)
		buf.SetScroll(buf.Scroll() + height)
		buf.SetCursor(line+height, col)
	}
}

func pageHeight(ctx *editor.Context) int {
	if ctx.ViewHeight < 1 {
		return 1
	}
	return ctx.ViewHeight
}

// jumpToLine moves the cursor to the 1-based line named by prefix,
// ignoring out-of-range or malformed prefixes.
func jumpToLine(buf *editor.Buffer, prefix string) {
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return
	}
	target := n - 1
	if target < 0 || target >= buf.LineCount() {
		return
	}
	_, col := buf.Cursor()
	buf.SetCursor(target, col)
}
