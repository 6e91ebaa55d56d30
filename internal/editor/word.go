package editor

import (
	"unicode"
	"unicode/utf8"
)

// Word motions treat runs of alphanumeric characters as words and runs
// of everything else as separators. All positions are byte indices into
// the current line; multi-byte runes are decoded and stepped over as
// units, so a motion never lands inside a rune.

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// runeAt decodes the rune starting at byte i.
func runeAt(line string, i int) (size int, word bool) {
	r, size := utf8.DecodeRuneInString(line[i:])
	return size, isWordRune(r)
}

// runeBefore decodes the rune ending at byte i.
func runeBefore(line string, i int) (size int, word bool) {
	r, size := utf8.DecodeLastRuneInString(line[:i])
	return size, isWordRune(r)
}

// WordForward moves the cursor to the end of the current or next
// alphanumeric run. When only separators remain, the cursor lands at
// the end of the line.
func (b *Buffer) WordForward() {
	line := b.lines[b.cursorLine]
	if line == "" {
		return
	}
	pos := b.cursorCol
	for pos < len(line) {
		size, word := runeAt(line, pos)
		if word {
			break
		}
		pos += size
	}
	if pos >= len(line) {
		b.cursorCol = pos
		return
	}
	for pos < len(line) {
		size, word := runeAt(line, pos)
		if !word {
			break
		}
		pos += size
	}
	b.cursorCol = pos
}

// WordBackward moves the cursor to the beginning of the current or
// previous alphanumeric run.
func (b *Buffer) WordBackward() {
	line := b.lines[b.cursorLine]
	if line == "" {
		return
	}
	pos := b.cursorCol
	for pos > 0 {
		size, word := runeBefore(line, pos)
		if word {
			break
		}
		pos -= size
	}
	for pos > 0 {
		size, word := runeBefore(line, pos)
		if !word {
			break
		}
		pos -= size
	}
	b.cursorCol = pos
}

// wordAtCursor locates the alphanumeric run at or after the cursor,
// skipping leading separators. Returns [start, end) or ok=false when no
// run exists before the end of the line.
func (b *Buffer) wordAtCursor() (start, end int, ok bool) {
	line := b.lines[b.cursorLine]
	if line == "" {
		return 0, 0, false
	}
	pos := b.cursorCol
	for pos < len(line) {
		size, word := runeAt(line, pos)
		if word {
			break
		}
		pos += size
	}
	if pos >= len(line) {
		return 0, 0, false
	}
	start = pos
	for start > 0 {
		size, word := runeBefore(line, start)
		if !word {
			break
		}
		start -= size
	}
	end = pos
	for end < len(line) {
		size, word := runeAt(line, end)
		if !word {
			break
		}
		end += size
	}
	return start, end, true
}

// CopyWord returns the word at or after the cursor, or "" when the rest
// of the line holds no alphanumeric run.
func (b *Buffer) CopyWord() string {
	start, end, ok := b.wordAtCursor()
	if !ok {
		return ""
	}
	return b.lines[b.cursorLine][start:end]
}

// DeleteWord removes the word at or after the cursor and leaves the
// cursor at the deletion point. No-op when no word is found.
func (b *Buffer) DeleteWord() {
	start, end, ok := b.wordAtCursor()
	if !ok {
		return
	}
	line := b.lines[b.cursorLine]
	b.lines[b.cursorLine] = line[:start] + line[end:]
	b.cursorCol = start
	b.dirty = true
	b.ClampCursor()
}
