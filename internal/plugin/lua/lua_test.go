package lua

import (
	"strings"
	"testing"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/plugin/api"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	s, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func newTestContext(content string) *editor.Context {
	ctx := editor.NewContext()
	ctx.AddBuffer(editor.NewBufferFromString(content))
	return ctx
}

func compile(t *testing.T, s *State, body ...string) *Action {
	t.Helper()
	a, err := Compile(s, "test", body)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return a
}

func TestCompileKindDetection(t *testing.T) {
	s := newTestState(t)
	if a := compile(t, s, `log("hi")`); a.Kind() != KindLegacy {
		t.Errorf("Kind() = %v, want legacy", a.Kind())
	}
	if a := compile(t, s, `api:snapshot()`); a.Kind() != KindCapability {
		t.Errorf("Kind() = %v, want capability", a.Kind())
	}
	// "rapid" contains api but not as an identifier.
	if a := compile(t, s, `log("rapid")`); a.Kind() != KindLegacy {
		t.Errorf("Kind() = %v, want legacy for substring", a.Kind())
	}
}

func TestCompileEmptyBodyIsNoop(t *testing.T) {
	s := newTestState(t)
	a := compile(t, s)
	if err := a.Call(newTestContext("x"), &api.Capabilities{}); err != nil {
		t.Errorf("Call() error = %v", err)
	}
}

func TestCompileSyntaxError(t *testing.T) {
	s := newTestState(t)
	if _, err := Compile(s, "bad", []string{"this is not lua"}); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestActionMutatesBufferThroughBridge(t *testing.T) {
	s := newTestState(t)
	ctx := newTestContext("hello\nworld")
	a := compile(t, s,
		`context:set_line(1, string.upper(context:line(1)))`,
		`context:set_cursor(2, 1)`,
	)
	if err := a.Call(ctx, &api.Capabilities{}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := ctx.CurrentBuffer().Line(0); got != "HELLO" {
		t.Errorf("Line(0) = %q, want %q", got, "HELLO")
	}
	if line, col := ctx.CurrentBuffer().Cursor(); line != 1 || col != 0 {
		t.Errorf("Cursor() = (%d, %d), want (1, 0)", line, col)
	}
}

func TestActionInsertAndDeleteLines(t *testing.T) {
	s := newTestState(t)
	ctx := newTestContext("a\nb")
	a := compile(t, s,
		`context:insert_line(2, "mid")`,
		`context:delete_line(1)`,
	)
	if err := a.Call(ctx, &api.Capabilities{}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := ctx.CurrentBuffer().Text(); got != "mid\nb" {
		t.Errorf("Text() = %q, want %q", got, "mid\nb")
	}
}

func TestActionLogAndStatus(t *testing.T) {
	s := newTestState(t)
	var logged, status []string
	caps := &api.Capabilities{
		Log:    func(m string) { logged = append(logged, m) },
		Status: func(m string) { status = append(status, m) },
	}
	a := compile(t, s, `log("one")`, `status("two")`)
	if err := a.Call(newTestContext("x"), caps); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(logged) != 1 || logged[0] != "one" {
		t.Errorf("logged = %v", logged)
	}
	if len(status) != 1 || status[0] != "two" {
		t.Errorf("status = %v", status)
	}
}

func TestActionRuntimeErrorContained(t *testing.T) {
	s := newTestState(t)
	a := compile(t, s, `error("boom")`)
	err := a.Call(newTestContext("x"), &api.Capabilities{})
	if err == nil {
		t.Fatal("expected error from raising action")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want to contain boom", err)
	}
}

func TestActionDrawThroughCapabilities(t *testing.T) {
	s := newTestState(t)
	type drawCall struct {
		row, col int
		text     string
		style    api.Style
	}
	var calls []drawCall
	caps := &api.Capabilities{
		Draw: func(row, col int, text string, style api.Style) {
			calls = append(calls, drawCall{row, col, text, style})
		},
	}
	a := compile(t, s, `api:draw(2, 3, "hi", {fg = "red", bold = true})`)
	if err := a.Call(newTestContext("x"), caps); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(calls))
	}
	got := calls[0]
	if got.row != 2 || got.col != 3 || got.text != "hi" {
		t.Errorf("draw = %+v", got)
	}
	if got.style.FG != "red" || !got.style.Bold {
		t.Errorf("style = %+v", got.style)
	}
}

func TestActionSnapshotCapability(t *testing.T) {
	s := newTestState(t)
	taken := 0
	caps := &api.Capabilities{
		Snapshot: func() bool { taken++; return true },
	}
	a := compile(t, s, `api:snapshot()`)
	if err := a.Call(newTestContext("x"), caps); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if taken != 1 {
		t.Errorf("snapshot calls = %d, want 1", taken)
	}
}

func TestHookRegistrationAndCall(t *testing.T) {
	s := newTestState(t)
	var registered any
	caps := &api.Capabilities{
		AddDrawHook: func(fn any) { registered = fn },
	}
	a := compile(t, s, `api:add_draw_hook(function(context, api) api:draw(1, 1, context:current_line()) end)`)
	if err := a.Call(newTestContext("top line"), caps); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if registered == nil {
		t.Fatal("hook was not registered")
	}

	hook, ok := NewHook(s, registered)
	if !ok {
		t.Fatal("NewHook rejected registered function")
	}
	if !hook.Matches(registered) {
		t.Error("hook should match its own function")
	}

	var drawn string
	drawCaps := &api.Capabilities{
		Draw: func(_, _ int, text string, _ api.Style) { drawn = text },
	}
	if err := hook.Call(newTestContext("top line"), drawCaps); err != nil {
		t.Fatalf("hook Call() error = %v", err)
	}
	if drawn != "top line" {
		t.Errorf("drawn = %q, want %q", drawn, "top line")
	}
}

func TestRestrictedLibraries(t *testing.T) {
	s := newTestState(t)
	for _, expr := range []string{
		`if io ~= nil then error("io open") end`,
		`if os ~= nil then error("os open") end`,
		`if dofile ~= nil then error("dofile open") end`,
		`if loadfile ~= nil then error("loadfile open") end`,
	} {
		a := compile(t, s, expr)
		if err := a.Call(newTestContext("x"), &api.Capabilities{}); err != nil {
			t.Errorf("%s: %v", expr, err)
		}
	}
	// The allowed set stays available.
	a := compile(t, s, `if string.upper("a") ~= "A" or math.max(1, 2) ~= 2 then error("libs missing") end`)
	if err := a.Call(newTestContext("x"), &api.Capabilities{}); err != nil {
		t.Errorf("allowed libs: %v", err)
	}
}

func TestBridgeModeAndClipboard(t *testing.T) {
	s := newTestState(t)
	ctx := newTestContext("x")
	a := compile(t, s,
		`context:set_clipboard("clip")`,
		`context:set_mode("insert")`,
	)
	if err := a.Call(ctx, &api.Capabilities{}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if ctx.Clipboard() != "clip" {
		t.Errorf("Clipboard() = %q", ctx.Clipboard())
	}
	if ctx.Mode() != editor.ModeInsert {
		t.Errorf("Mode() = %q, want insert", ctx.Mode())
	}
}

func TestBridgeBufferSwitching(t *testing.T) {
	s := newTestState(t)
	ctx := newTestContext("one")
	ctx.AddBuffer(editor.NewBufferFromString("two"))
	a := compile(t, s, `context:switch_buffer(1)`)
	if err := a.Call(ctx, &api.Capabilities{}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if ctx.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", ctx.CurrentIndex())
	}
}
