package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/filetree"
	"github.com/shrub4thedub/shrimp/internal/plugin"
)

type fakeDispatcher struct {
	commands []string
	consume  bool
	toggled  []string
}

func (f *fakeDispatcher) DispatchCommand(word string, ctx *editor.Context) bool {
	f.commands = append(f.commands, word)
	return f.consume
}

func (f *fakeDispatcher) Plugins() []*plugin.Plugin { return nil }

func (f *fakeDispatcher) Toggle(name string) error {
	f.toggled = append(f.toggled, name)
	return nil
}

func (f *fakeDispatcher) ToggleBind(name, trigger string) error {
	f.toggled = append(f.toggled, name+"/"+trigger)
	return nil
}

func newTestContext(content string) *editor.Context {
	ctx := editor.NewContext()
	ctx.AddBuffer(editor.NewBufferFromString(content))
	return ctx
}

func TestExecuteEmptyLineIgnored(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("a")
	p.Execute(ctx, "   ")
	if ctx.Status() != "" {
		t.Errorf("Status() = %q, want none", ctx.Status())
	}
}

func TestPluginDispatchRunsFirst(t *testing.T) {
	disp := &fakeDispatcher{consume: true}
	p := NewProcessor(WithPlugins(disp))
	ctx := newTestContext("a")

	p.Execute(ctx, "Q")
	if len(disp.commands) != 1 || disp.commands[0] != "q" {
		t.Fatalf("dispatched = %v, want lowercased q", disp.commands)
	}
	if ctx.QuitRequested() {
		t.Error("consumed plugin command must not reach the built-in")
	}
}

func TestPluginDispatchFallsThrough(t *testing.T) {
	disp := &fakeDispatcher{consume: false}
	p := NewProcessor(WithPlugins(disp))
	ctx := newTestContext("a")

	p.Execute(ctx, "q")
	if !ctx.QuitRequested() {
		t.Error("unconsumed command should fall through to built-ins")
	}
}

func TestBareNumberJumpsToLine(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("a\nb\nc\nd")

	p.Execute(ctx, "3")
	if line, _ := ctx.CurrentBuffer().Cursor(); line != 2 {
		t.Errorf("line = %d, want 2", line)
	}

	p.Execute(ctx, "99")
	if line, _ := ctx.CurrentBuffer().Cursor(); line != 2 {
		t.Errorf("out of range jump moved cursor to %d", line)
	}
}

func TestCountCommands(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("a\nb\nc\nd")

	p.Execute(ctx, "2y")
	if got := ctx.Clipboard(); got != "a\nb" {
		t.Errorf("Clipboard() = %q, want %q", got, "a\nb")
	}

	p.Execute(ctx, "3d")
	if got := strings.Join(ctx.CurrentBuffer().Lines(), "\n"); got != "d" {
		t.Errorf("lines = %q, want %q", got, "d")
	}
}

func TestWriteWithoutFilename(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("a")
	p.Execute(ctx, "w")
	if !strings.Contains(ctx.Status(), "no filename") {
		t.Errorf("Status() = %q, want no-filename message", ctx.Status())
	}
}

func TestWriteWithFilename(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("hello")
	path := filepath.Join(t.TempDir(), "out.txt")

	p.Execute(ctx, "w "+path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("file = %q", data)
	}
	if ctx.CurrentBuffer().Dirty() {
		t.Error("buffer should be clean after write")
	}
}

func TestWriteQuit(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("x")
	ctx.CurrentBuffer().SetPath(filepath.Join(t.TempDir(), "f.txt"))

	p.Execute(ctx, "wq")
	if !ctx.QuitRequested() {
		t.Error("wq should request quit")
	}
	if _, err := os.Stat(ctx.CurrentBuffer().Path()); err != nil {
		t.Errorf("wq should have written the file: %v", err)
	}
}

func TestZenToggle(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("x")

	p.Execute(ctx, "zen")
	if !ctx.Zen || ctx.Status() != "zen mode on." {
		t.Errorf("Zen = %v, Status = %q", ctx.Zen, ctx.Status())
	}
	p.Execute(ctx, "zen")
	if ctx.Zen || ctx.Status() != "zen mode off." {
		t.Errorf("Zen = %v, Status = %q", ctx.Zen, ctx.Status())
	}
}

func TestThemeSelect(t *testing.T) {
	var saved string
	p := NewProcessor(WithThemes([]string{"boring", "shrimp"}, func(name string) error {
		saved = name
		return nil
	}))
	ctx := newTestContext("x")

	p.Execute(ctx, "th shrimp")
	if ctx.ThemeName != "shrimp" || saved != "shrimp" {
		t.Errorf("theme = %q, saved = %q", ctx.ThemeName, saved)
	}

	p.Execute(ctx, "th nope")
	if ctx.ThemeName != "shrimp" {
		t.Errorf("unknown theme changed selection to %q", ctx.ThemeName)
	}
	if !strings.Contains(ctx.Status(), "unknown theme") {
		t.Errorf("Status() = %q", ctx.Status())
	}

	// Bare th cycles.
	p.Execute(ctx, "th")
	if ctx.ThemeName != "boring" {
		t.Errorf("cycle = %q, want boring", ctx.ThemeName)
	}
}

func TestSearchCommand(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("alpha\nbeta\nalpha beta")

	p.Execute(ctx, "f beta")
	if ctx.Mode() != editor.ModeSearch {
		t.Fatalf("Mode() = %q, want search", ctx.Mode())
	}
	if got := len(ctx.Search.Results); got != 2 {
		t.Errorf("results = %d, want 2", got)
	}

	ctx.SetMode(editor.ModeNormal)
	p.Execute(ctx, "f")
	if ctx.Status() != "search string empty." {
		t.Errorf("Status() = %q", ctx.Status())
	}
}

func TestCreateFile(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("old")
	path := filepath.Join(t.TempDir(), "new.txt")

	p.Execute(ctx, "fn "+path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}
	buf := ctx.CurrentBuffer()
	if buf.Path() != path || buf.Dirty() {
		t.Errorf("buffer path = %q, dirty = %v", buf.Path(), buf.Dirty())
	}
}

func TestRenameFile(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.txt")
	if err := os.WriteFile(old, []byte("body\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProcessor()
	ctx := editor.NewContext()
	buf, err := editor.LoadBuffer(old)
	if err != nil {
		t.Fatal(err)
	}
	ctx.AddBuffer(buf)

	renamed := filepath.Join(dir, "renamed.txt")
	p.Execute(ctx, "fr "+renamed)
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old file should be gone")
	}
	if _, err := os.Stat(renamed); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if buf.Path() != renamed {
		t.Errorf("Path() = %q", buf.Path())
	}
}

func TestDeleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doomed.txt")
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProcessor()
	ctx := editor.NewContext()
	buf, err := editor.LoadBuffer(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx.AddBuffer(buf)

	p.Execute(ctx, "fd")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should be removed")
	}
	if buf.Path() != "" || buf.Text() != "" {
		t.Errorf("buffer after delete: path=%q text=%q", buf.Path(), buf.Text())
	}
}

func TestChangeDir(t *testing.T) {
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })

	p := NewProcessor()
	ctx := newTestContext("x")
	ctx.Tree = mustTree(t, t.TempDir())

	p.Execute(ctx, "dir "+dir)
	if ctx.Tree.Root() != dir {
		t.Errorf("tree root = %q, want %q", ctx.Tree.Root(), dir)
	}
	if got := ctx.CurrentBuffer().Path(); filepath.Base(got) != "untitled.txt" {
		t.Errorf("buffer path = %q", got)
	}
	if !ctx.SidebarVisible {
		t.Error("sidebar should be visible after dir change")
	}

	p.Execute(ctx, "dir "+filepath.Join(dir, "absent"))
	if ctx.Status() != "invalid directory." {
		t.Errorf("Status() = %q", ctx.Status())
	}
}

func mustTree(t *testing.T, dir string) *filetree.Tree {
	t.Helper()
	tree, err := filetree.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestQuickTokens(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("a\nb")

	p.Execute(ctx, "c s")
	if got := ctx.CurrentBuffer().Text(); got != "" {
		t.Errorf("Text() = %q after clear", got)
	}
	if ctx.SidebarVisible {
		t.Error("s should toggle the sidebar off")
	}

	p.Execute(ctx, "t")
	if ctx.Mode() != editor.ModeFileBrowse {
		t.Errorf("Mode() = %q, want filebrowse", ctx.Mode())
	}
	p.Execute(ctx, "t")
	if ctx.Mode() != editor.ModeNormal {
		t.Errorf("Mode() = %q, want normal", ctx.Mode())
	}

	p.Execute(ctx, "h")
	if !ctx.HelpVisible {
		t.Error("h should show help")
	}
}

func TestQuickTokensZenGuards(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("a")
	ctx.ToggleZen()

	p.Execute(ctx, "s")
	if ctx.Status() != "sidebar disabled in zen mode." {
		t.Errorf("Status() = %q", ctx.Status())
	}
	p.Execute(ctx, "t")
	if ctx.Mode() == editor.ModeFileBrowse {
		t.Error("file tree must stay off in zen mode")
	}
}

func TestQuickTokenBufferCycle(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("first")
	ctx.AddBuffer(editor.NewBufferFromString("second"))

	p.Execute(ctx, "z")
	if ctx.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", ctx.CurrentIndex())
	}
	if !strings.HasPrefix(ctx.Status(), "goto[") {
		t.Errorf("Status() = %q", ctx.Status())
	}

	p.Execute(ctx, "x")
	if ctx.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", ctx.CurrentIndex())
	}
}

func TestUnknownCommand(t *testing.T) {
	p := NewProcessor()
	ctx := newTestContext("a")
	p.Execute(ctx, "frobnicate")
	if !strings.Contains(ctx.Status(), "unknown command") {
		t.Errorf("Status() = %q", ctx.Status())
	}
}
