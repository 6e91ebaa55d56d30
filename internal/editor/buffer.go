package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Errors returned by buffer operations.
var (
	ErrNoPath = errors.New("buffer has no backing path")
)

// Buffer represents one open document: its lines, cursor position,
// scroll offset, modification state and an optional mark line.
//
// Lines are stored without trailing newlines. The column may equal the
// line length, representing "after the last character".
type Buffer struct {
	id   uuid.UUID
	path string

	lines      []string
	cursorLine int
	cursorCol  int
	scroll     int

	dirty bool

	// mark is the single set/jump navigation line, or -1 when unset.
	mark int
}

// Option configures a new Buffer.
type Option func(*Buffer)

// WithPath sets the backing file path.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithLines sets the initial content. The slice is used directly.
func WithLines(lines []string) Option {
	return func(b *Buffer) {
		b.lines = lines
	}
}

// NewBuffer creates a buffer holding a single empty line.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		id:    uuid.New(),
		lines: []string{""},
		mark:  -1,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.ensureNotEmpty()
	b.ClampCursor()
	return b
}

// NewBufferFromString creates a buffer from newline-separated content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	opts = append([]Option{WithLines(strings.Split(s, "\n"))}, opts...)
	return NewBuffer(opts...)
}

// LoadBuffer reads the file at path into a new buffer.
// The buffer starts clean with its cursor at the origin.
func LoadBuffer(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	return NewBufferFromString(content, WithPath(path)), nil
}

// ID returns the buffer's stable identity.
func (b *Buffer) ID() uuid.UUID { return b.id }

// Path returns the backing file path, or "" for an unsaved buffer.
func (b *Buffer) Path() string { return b.path }

// SetPath changes the backing file path.
func (b *Buffer) SetPath(path string) { b.path = path }

// Lines returns the underlying line slice. Callers must not keep the
// slice across mutations.
func (b *Buffer) Lines() []string { return b.lines }

// LineCount returns the number of lines. Always at least 1.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of line i, or "" if i is out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// CurrentLine returns the text of the cursor line.
func (b *Buffer) CurrentLine() string { return b.lines[b.cursorLine] }

// SetLine replaces the text of line i and marks the buffer dirty.
// Out-of-range indices are ignored.
func (b *Buffer) SetLine(i int, text string) {
	if i < 0 || i >= len(b.lines) {
		return
	}
	b.lines[i] = text
	b.dirty = true
	b.ClampCursor()
}

// SetLines replaces the whole content with lines, restoring the
// never-empty invariant and clamping the cursor. The slice is used
// directly.
func (b *Buffer) SetLines(lines []string) {
	b.lines = lines
	b.dirty = true
	b.ensureNotEmpty()
	b.ClampCursor()
}

// Cursor returns the cursor position as (line, column), zero-based.
func (b *Buffer) Cursor() (line, col int) { return b.cursorLine, b.cursorCol }

// SetCursor moves the cursor, clamping into range.
func (b *Buffer) SetCursor(line, col int) {
	b.cursorLine = line
	b.cursorCol = col
	b.ClampCursor()
}

// Scroll returns the first visible line index.
func (b *Buffer) Scroll() int { return b.scroll }

// SetScroll sets the first visible line index. The value is clamped
// against the line count on the next ClampScroll call.
func (b *Buffer) SetScroll(offset int) {
	if offset < 0 {
		offset = 0
	}
	b.scroll = offset
}

// ClampScroll keeps the scroll offset within the window implied by
// visibleHeight and scrolls the cursor line into view.
func (b *Buffer) ClampScroll(visibleHeight int) {
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	if b.cursorLine < b.scroll {
		b.scroll = b.cursorLine
	}
	if b.cursorLine >= b.scroll+visibleHeight {
		b.scroll = b.cursorLine - visibleHeight + 1
	}
	max := len(b.lines) - visibleHeight
	if max < 0 {
		max = 0
	}
	if b.scroll > max {
		b.scroll = max
	}
	if b.scroll < 0 {
		b.scroll = 0
	}
}

// Dirty reports whether the buffer has unsaved changes.
func (b *Buffer) Dirty() bool { return b.dirty }

// SetDirty overrides the modification flag.
func (b *Buffer) SetDirty(dirty bool) { b.dirty = dirty }

// ensureNotEmpty restores the never-empty invariant.
func (b *Buffer) ensureNotEmpty() {
	if len(b.lines) == 0 {
		b.lines = []string{""}
		b.cursorLine = 0
		b.cursorCol = 0
	}
}

// ClampCursor forces the cursor back into range. Idempotent: applying
// it twice yields the same state as once.
func (b *Buffer) ClampCursor() {
	b.ensureNotEmpty()
	if b.cursorLine < 0 {
		b.cursorLine = 0
	}
	if b.cursorLine >= len(b.lines) {
		b.cursorLine = len(b.lines) - 1
	}
	if b.cursorCol < 0 {
		b.cursorCol = 0
	}
	if b.cursorCol > len(b.lines[b.cursorLine]) {
		b.cursorCol = len(b.lines[b.cursorLine])
	}
}

// Edit operations

// InsertRune inserts a character at the cursor and advances the column.
func (b *Buffer) InsertRune(r rune) {
	line := b.lines[b.cursorLine]
	b.lines[b.cursorLine] = line[:b.cursorCol] + string(r) + line[b.cursorCol:]
	b.cursorCol += len(string(r))
	b.dirty = true
}

// InsertText inserts a string at the cursor within the current line and
// moves the cursor past it. The text must not contain line breaks.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		return
	}
	line := b.lines[b.cursorLine]
	b.lines[b.cursorLine] = line[:b.cursorCol] + s + line[b.cursorCol:]
	b.cursorCol += len(s)
	b.dirty = true
}

// DeleteCharBefore removes the character before the cursor, joining
// with the previous line when the cursor is at column zero.
func (b *Buffer) DeleteCharBefore() {
	if b.cursorCol > 0 {
		line := b.lines[b.cursorLine]
		b.lines[b.cursorLine] = line[:b.cursorCol-1] + line[b.cursorCol:]
		b.cursorCol--
		b.dirty = true
		return
	}
	b.JoinWithPreviousLine()
}

// DeleteCharAfter removes the character under the cursor, if any.
func (b *Buffer) DeleteCharAfter() {
	line := b.lines[b.cursorLine]
	if b.cursorCol >= len(line) {
		return
	}
	b.lines[b.cursorLine] = line[:b.cursorCol] + line[b.cursorCol+1:]
	b.dirty = true
}

// SplitLine breaks the current line at the cursor, moving the remainder
// to a new line below and placing the cursor at its start.
func (b *Buffer) SplitLine() {
	line := b.lines[b.cursorLine]
	before, after := line[:b.cursorCol], line[b.cursorCol:]
	b.lines[b.cursorLine] = before
	b.lines = append(b.lines[:b.cursorLine+1], append([]string{after}, b.lines[b.cursorLine+1:]...)...)
	b.cursorLine++
	b.cursorCol = 0
	b.dirty = true
}

// InsertLineBelow inserts a blank line under the cursor line and moves
// the cursor onto it.
func (b *Buffer) InsertLineBelow() {
	b.lines = append(b.lines[:b.cursorLine+1], append([]string{""}, b.lines[b.cursorLine+1:]...)...)
	b.cursorLine++
	b.cursorCol = 0
	b.dirty = true
}

// InsertLineAt inserts text as a new line at index i, clamped to
// [0, LineCount]. The cursor does not move.
func (b *Buffer) InsertLineAt(i int, text string) {
	if i < 0 {
		i = 0
	}
	if i > len(b.lines) {
		i = len(b.lines)
	}
	b.lines = append(b.lines[:i], append([]string{text}, b.lines[i:]...)...)
	if b.cursorLine >= i {
		b.cursorLine++
	}
	b.dirty = true
	b.ClampCursor()
}

// RemoveLineAt removes line i. Out-of-range indices are ignored.
func (b *Buffer) RemoveLineAt(i int) {
	if i < 0 || i >= len(b.lines) {
		return
	}
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	b.dirty = true
	b.ClampCursor()
}

// JoinWithPreviousLine appends the cursor line to the one above it and
// places the cursor at the join point. No-op on the first line.
func (b *Buffer) JoinWithPreviousLine() {
	if b.cursorLine == 0 {
		return
	}
	prev := b.lines[b.cursorLine-1]
	cur := b.lines[b.cursorLine]
	b.lines = append(b.lines[:b.cursorLine], b.lines[b.cursorLine+1:]...)
	b.cursorLine--
	b.cursorCol = len(prev)
	b.lines[b.cursorLine] = prev + cur
	b.dirty = true
}

// DeleteLine removes the cursor line.
func (b *Buffer) DeleteLine() {
	b.DeleteLines(1)
}

// DeleteLines removes n lines starting at the cursor line. The count is
// clamped to the remaining line count.
func (b *Buffer) DeleteLines(n int) {
	if n < 1 {
		return
	}
	start := b.cursorLine
	end := start + n
	if end > len(b.lines) {
		end = len(b.lines)
	}
	b.lines = append(b.lines[:start], b.lines[end:]...)
	b.dirty = true
	b.ClampCursor()
}

// paragraphBounds returns the [start, end) line range of the maximal
// contiguous run of non-blank lines containing the cursor.
func (b *Buffer) paragraphBounds() (start, end int) {
	start = b.cursorLine
	for start > 0 && strings.TrimSpace(b.lines[start-1]) != "" {
		start--
	}
	end = b.cursorLine
	for end < len(b.lines) && strings.TrimSpace(b.lines[end]) != "" {
		end++
	}
	return start, end
}

// DeleteParagraph removes the contiguous non-blank run around the
// cursor and leaves the cursor at its former start, column zero.
func (b *Buffer) DeleteParagraph() {
	start, end := b.paragraphBounds()
	b.lines = append(b.lines[:start], b.lines[end:]...)
	b.dirty = true
	b.ensureNotEmpty()
	if start < len(b.lines) {
		b.cursorLine = start
	} else {
		b.cursorLine = len(b.lines) - 1
	}
	b.cursorCol = 0
	b.ClampCursor()
}

// CopyLine returns the cursor line's text without mutating the buffer.
func (b *Buffer) CopyLine() string {
	return b.lines[b.cursorLine]
}

// CopyLines returns n lines starting at the cursor joined by newlines.
// The count is clamped to the remaining line count.
func (b *Buffer) CopyLines(n int) string {
	if n < 1 {
		return ""
	}
	start := b.cursorLine
	end := start + n
	if end > len(b.lines) {
		end = len(b.lines)
	}
	return strings.Join(b.lines[start:end], "\n")
}

// CopyParagraph returns the non-blank run around the cursor.
func (b *Buffer) CopyParagraph() string {
	start, end := b.paragraphBounds()
	return strings.Join(b.lines[start:end], "\n")
}

// PasteBelow splits text on line breaks and inserts the resulting lines
// immediately after the cursor line, leaving the cursor on the last
// inserted line at column zero.
func (b *Buffer) PasteBelow(text string) {
	if text == "" {
		return
	}
	clip := strings.Split(text, "\n")
	at := b.cursorLine + 1
	b.lines = append(b.lines[:at], append(clip, b.lines[at:]...)...)
	b.cursorLine = at + len(clip) - 1
	b.cursorCol = 0
	b.dirty = true
}

// Mark returns the marked line and whether a mark is set.
func (b *Buffer) Mark() (int, bool) {
	if b.mark < 0 {
		return 0, false
	}
	return b.mark, true
}

// SetMark records the cursor line as the mark.
func (b *Buffer) SetMark() {
	b.mark = b.cursorLine
}

// JumpMark moves the cursor to the marked line (clamped if the buffer
// shrank) and clears the mark. Returns the target line and whether a
// jump happened.
func (b *Buffer) JumpMark() (int, bool) {
	if b.mark < 0 {
		return 0, false
	}
	target := b.mark
	b.mark = -1
	if target >= len(b.lines) {
		target = len(b.lines) - 1
	}
	b.cursorLine = target
	b.ClampCursor()
	return target, true
}

// ClearMark discards any set mark.
func (b *Buffer) ClearMark() { b.mark = -1 }

// Clear resets the buffer to a single empty line.
func (b *Buffer) Clear() {
	b.lines = []string{""}
	b.cursorLine = 0
	b.cursorCol = 0
	b.scroll = 0
	b.dirty = true
}

// Text returns the whole buffer joined by newlines, with no trailing
// newline added.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Save writes the buffer content to w. The dirty flag is untouched;
// only SaveToPath marks the buffer clean.
func (b *Buffer) Save(w io.Writer) error {
	if _, err := io.WriteString(w, b.Text()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// SaveToPath writes the buffer to its backing path and clears the dirty
// flag on success. Fails with ErrNoPath when no path is set; the dirty
// flag is untouched on any failure.
func (b *Buffer) SaveToPath() error {
	if b.path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(b.path, []byte(b.Text()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	b.dirty = false
	return nil
}
