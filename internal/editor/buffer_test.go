package editor

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()
	if got := b.LineCount(); got != 1 {
		t.Fatalf("LineCount() = %d, want 1", got)
	}
	if line, col := b.Cursor(); line != 0 || col != 0 {
		t.Errorf("Cursor() = (%d, %d), want (0, 0)", line, col)
	}
	if b.Dirty() {
		t.Error("new buffer should be clean")
	}
	if _, ok := b.Mark(); ok {
		t.Error("new buffer should have no mark")
	}
}

func TestNewBufferFromString(t *testing.T) {
	b := NewBufferFromString("one\ntwo\nthree")
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", b.Lines(), want)
	}
}

func TestLoadBufferNormalizesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\r\nc"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := LoadBuffer(path)
	if err != nil {
		t.Fatalf("LoadBuffer() error = %v", err)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", b.Lines(), want)
	}
	if b.Dirty() {
		t.Error("loaded buffer should be clean")
	}
}

func TestLoadBufferMissingFile(t *testing.T) {
	if _, err := LoadBuffer(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestClampCursorIdempotent(t *testing.T) {
	b := NewBufferFromString("hello\nhi")
	b.SetCursor(99, 99)
	line1, col1 := b.Cursor()
	b.ClampCursor()
	line2, col2 := b.Cursor()
	if line1 != line2 || col1 != col2 {
		t.Errorf("second clamp moved cursor: (%d,%d) -> (%d,%d)", line1, col1, line2, col2)
	}
	if line1 != 1 || col1 != 2 {
		t.Errorf("Cursor() = (%d, %d), want (1, 2)", line1, col1)
	}
}

func TestCursorColumnMayEqualLineLength(t *testing.T) {
	b := NewBufferFromString("abc")
	b.SetCursor(0, 3)
	if _, col := b.Cursor(); col != 3 {
		t.Errorf("col = %d, want 3", col)
	}
	b.SetCursor(0, 4)
	if _, col := b.Cursor(); col != 3 {
		t.Errorf("col = %d, want clamp to 3", col)
	}
}

func TestInsertRune(t *testing.T) {
	b := NewBufferFromString("ac")
	b.SetCursor(0, 1)
	b.InsertRune('b')
	if got := b.CurrentLine(); got != "abc" {
		t.Errorf("CurrentLine() = %q, want %q", got, "abc")
	}
	if _, col := b.Cursor(); col != 2 {
		t.Errorf("col = %d, want 2", col)
	}
	if !b.Dirty() {
		t.Error("insert should mark buffer dirty")
	}
}

func TestInsertText(t *testing.T) {
	b := NewBufferFromString("ad")
	b.SetCursor(0, 1)
	b.InsertText("bc")
	if got := b.CurrentLine(); got != "abcd" {
		t.Errorf("CurrentLine() = %q, want %q", got, "abcd")
	}
	if _, col := b.Cursor(); col != 3 {
		t.Errorf("col = %d, want 3", col)
	}
}

func TestDeleteCharBefore(t *testing.T) {
	b := NewBufferFromString("abc")
	b.SetCursor(0, 2)
	b.DeleteCharBefore()
	if got := b.CurrentLine(); got != "ac" {
		t.Errorf("CurrentLine() = %q, want %q", got, "ac")
	}
	if _, col := b.Cursor(); col != 1 {
		t.Errorf("col = %d, want 1", col)
	}
}

func TestDeleteCharBeforeJoinsLines(t *testing.T) {
	b := NewBufferFromString("ab\ncd")
	b.SetCursor(1, 0)
	b.DeleteCharBefore()
	if got := b.Text(); got != "abcd" {
		t.Errorf("Text() = %q, want %q", got, "abcd")
	}
	if line, col := b.Cursor(); line != 0 || col != 2 {
		t.Errorf("Cursor() = (%d, %d), want (0, 2)", line, col)
	}
}

func TestDeleteCharBeforeAtOrigin(t *testing.T) {
	b := NewBufferFromString("ab")
	b.DeleteCharBefore()
	if got := b.Text(); got != "ab" {
		t.Errorf("Text() = %q, want unchanged", got)
	}
}

func TestDeleteCharAfter(t *testing.T) {
	b := NewBufferFromString("abc")
	b.SetCursor(0, 1)
	b.DeleteCharAfter()
	if got := b.CurrentLine(); got != "ac" {
		t.Errorf("CurrentLine() = %q, want %q", got, "ac")
	}
	b.SetCursor(0, 2)
	b.DeleteCharAfter()
	if got := b.CurrentLine(); got != "ac" {
		t.Errorf("delete at end of line should be a no-op, got %q", got)
	}
}

func TestSplitLine(t *testing.T) {
	b := NewBufferFromString("hello world")
	b.SetCursor(0, 5)
	b.SplitLine()
	want := []string{"hello", " world"}
	if !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", b.Lines(), want)
	}
	if line, col := b.Cursor(); line != 1 || col != 0 {
		t.Errorf("Cursor() = (%d, %d), want (1, 0)", line, col)
	}
}

func TestInsertLineBelow(t *testing.T) {
	b := NewBufferFromString("a\nb")
	b.InsertLineBelow()
	want := []string{"a", "", "b"}
	if !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", b.Lines(), want)
	}
	if line, _ := b.Cursor(); line != 1 {
		t.Errorf("cursor line = %d, want 1", line)
	}
}

func TestDeleteLinesClamped(t *testing.T) {
	b := NewBufferFromString("a\nbb\nccc")
	b.SetCursor(1, 0)
	b.DeleteLines(2)
	want := []string{"a"}
	if !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", b.Lines(), want)
	}
	if line, _ := b.Cursor(); line != 0 {
		t.Errorf("cursor line = %d, want 0", line)
	}
}

func TestDeleteLinesCountExceedsRemaining(t *testing.T) {
	b := NewBufferFromString("12")
	b.DeleteLines(5)
	if got := b.LineCount(); got != 1 {
		t.Fatalf("LineCount() = %d, want 1", got)
	}
	if got := b.CurrentLine(); got != "" {
		t.Errorf("CurrentLine() = %q, want empty", got)
	}
}

func TestDeleteLastLineLeavesEmptyBuffer(t *testing.T) {
	b := NewBufferFromString("only")
	b.DeleteLine()
	if got := b.LineCount(); got != 1 {
		t.Fatalf("LineCount() = %d, want 1", got)
	}
	if got := b.CurrentLine(); got != "" {
		t.Errorf("CurrentLine() = %q, want empty", got)
	}
	if line, col := b.Cursor(); line != 0 || col != 0 {
		t.Errorf("Cursor() = (%d, %d), want (0, 0)", line, col)
	}
}

func TestParagraphOperations(t *testing.T) {
	b := NewBufferFromString("one\ntwo\n\nthree\nfour\n\nfive")
	b.SetCursor(3, 0)

	if got, want := b.CopyParagraph(), "three\nfour"; got != want {
		t.Errorf("CopyParagraph() = %q, want %q", got, want)
	}

	b.DeleteParagraph()
	want := []string{"one", "two", "", "", "five"}
	if !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", b.Lines(), want)
	}
	if line, col := b.Cursor(); line != 3 || col != 0 {
		t.Errorf("Cursor() = (%d, %d), want (3, 0)", line, col)
	}
}

func TestCopyLines(t *testing.T) {
	b := NewBufferFromString("a\nb\nc")
	b.SetCursor(1, 0)
	if got, want := b.CopyLines(5), "b\nc"; got != want {
		t.Errorf("CopyLines(5) = %q, want %q", got, want)
	}
	if b.Dirty() {
		t.Error("copy must not mark buffer dirty")
	}
}

func TestCopyPasteRoundTrip(t *testing.T) {
	b := NewBufferFromString("a\nb\nc")
	b.SetCursor(0, 0)
	clip := b.CopyLines(2)
	b.PasteBelow(clip)
	want := []string{"a", "a", "b", "b", "c"}
	if !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", b.Lines(), want)
	}
	if line, col := b.Cursor(); line != 2 || col != 0 {
		t.Errorf("Cursor() = (%d, %d), want (2, 0)", line, col)
	}
}

func TestPasteBelowEmptyClipboard(t *testing.T) {
	b := NewBufferFromString("a")
	b.PasteBelow("")
	if got := b.LineCount(); got != 1 {
		t.Errorf("LineCount() = %d, want 1", got)
	}
	if b.Dirty() {
		t.Error("empty paste must not mark buffer dirty")
	}
}

func TestMarkSetJumpClear(t *testing.T) {
	b := NewBufferFromString("a\nb\nc\nd")
	b.SetCursor(2, 0)
	b.SetMark()
	b.SetCursor(0, 0)

	target, ok := b.JumpMark()
	if !ok || target != 2 {
		t.Fatalf("JumpMark() = (%d, %v), want (2, true)", target, ok)
	}
	if line, _ := b.Cursor(); line != 2 {
		t.Errorf("cursor line = %d, want 2", line)
	}
	if _, ok := b.JumpMark(); ok {
		t.Error("mark should be cleared after a jump")
	}
}

func TestJumpMarkClampsAfterShrink(t *testing.T) {
	b := NewBufferFromString("a\nb\nc\nd")
	b.SetCursor(3, 0)
	b.SetMark()
	b.SetCursor(0, 0)
	b.DeleteLines(3)

	target, ok := b.JumpMark()
	if !ok {
		t.Fatal("expected jump to succeed")
	}
	if target != b.LineCount()-1 {
		t.Errorf("target = %d, want last line %d", target, b.LineCount()-1)
	}
}

func TestClampScroll(t *testing.T) {
	b := NewBufferFromString("a\nb\nc\nd\ne\nf")
	b.SetCursor(5, 0)
	b.ClampScroll(3)
	if got := b.Scroll(); got != 3 {
		t.Errorf("Scroll() = %d, want 3", got)
	}
	b.SetCursor(0, 0)
	b.ClampScroll(3)
	if got := b.Scroll(); got != 0 {
		t.Errorf("Scroll() = %d, want 0", got)
	}
	b.SetScroll(99)
	b.ClampScroll(3)
	if got := b.Scroll(); got != 0 {
		t.Errorf("Scroll() = %d, want clamp to 0 with cursor at top", got)
	}
}

func TestSaveToPathNoPath(t *testing.T) {
	b := NewBufferFromString("x")
	b.SetDirty(true)
	if err := b.SaveToPath(); !errors.Is(err, ErrNoPath) {
		t.Fatalf("SaveToPath() error = %v, want ErrNoPath", err)
	}
	if !b.Dirty() {
		t.Error("failed save must leave the dirty flag set")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	b := NewBufferFromString("alpha\nbeta", WithPath(path))
	b.SetDirty(true)
	if err := b.SaveToPath(); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}
	if b.Dirty() {
		t.Error("successful save should clear the dirty flag")
	}

	got, err := LoadBuffer(path)
	if err != nil {
		t.Fatalf("LoadBuffer() error = %v", err)
	}
	if !reflect.DeepEqual(got.Lines(), b.Lines()) {
		t.Errorf("round trip lines = %v, want %v", got.Lines(), b.Lines())
	}
}

func TestSaveWriter(t *testing.T) {
	b := NewBufferFromString("a\nb")
	b.SetDirty(true)
	var sb strings.Builder
	if err := b.Save(&sb); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := sb.String(); got != "a\nb" {
		t.Errorf("Save() wrote %q, want %q", got, "a\nb")
	}
	if !b.Dirty() {
		t.Error("Save() to a writer must not clear the dirty flag")
	}
}

func TestClear(t *testing.T) {
	b := NewBufferFromString("a\nb")
	b.SetCursor(1, 1)
	b.Clear()
	if got := b.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
	if line, col := b.Cursor(); line != 0 || col != 0 {
		t.Errorf("Cursor() = (%d, %d), want (0, 0)", line, col)
	}
}
