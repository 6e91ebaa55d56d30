package lua

import (
	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/plugin/api"
	glua "github.com/yuin/gopher-lua"
)

// Bridge type names registered on the interpreter.
const (
	contextTypeName = "shrimp.context"
	apiTypeName     = "shrimp.api"
)

// Line and buffer indices on the Lua side are 1-based, columns
// likewise: column 1 is before the first character and column len+1
// is after the last.

func registerContextType(L *glua.LState) {
	mt := L.NewTypeMetatable(contextTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), contextMethods))
}

func registerAPIType(L *glua.LState) {
	mt := L.NewTypeMetatable(apiTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), apiMethods))
}

// newContextUserdata wraps the editor context for one invocation.
func newContextUserdata(L *glua.LState, ctx *editor.Context) *glua.LUserData {
	ud := L.NewUserData()
	ud.Value = ctx
	L.SetMetatable(ud, L.GetTypeMetatable(contextTypeName))
	return ud
}

// newAPIUserdata wraps the capability object for one invocation.
func newAPIUserdata(L *glua.LState, caps *api.Capabilities) *glua.LUserData {
	ud := L.NewUserData()
	ud.Value = caps
	L.SetMetatable(ud, L.GetTypeMetatable(apiTypeName))
	return ud
}

func checkContext(L *glua.LState) *editor.Context {
	ud := L.CheckUserData(1)
	if ctx, ok := ud.Value.(*editor.Context); ok {
		return ctx
	}
	L.ArgError(1, "editor context expected")
	return nil
}

func checkAPI(L *glua.LState) *api.Capabilities {
	ud := L.CheckUserData(1)
	if caps, ok := ud.Value.(*api.Capabilities); ok {
		return caps
	}
	L.ArgError(1, "capability object expected")
	return nil
}

var contextMethods = map[string]glua.LGFunction{
	"line":               ctxLine,
	"set_line":           ctxSetLine,
	"line_count":         ctxLineCount,
	"current_line":       ctxCurrentLine,
	"cursor":             ctxCursor,
	"set_cursor":         ctxSetCursor,
	"insert_line":        ctxInsertLine,
	"delete_line":        ctxDeleteLine,
	"insert_text":        ctxInsertText,
	"text":               ctxText,
	"mode":               ctxMode,
	"set_mode":           ctxSetMode,
	"filename":           ctxFilename,
	"clipboard":          ctxClipboard,
	"set_clipboard":      ctxSetClipboard,
	"word_clipboard":     ctxWordClipboard,
	"set_word_clipboard": ctxSetWordClipboard,
	"buffer_count":       ctxBufferCount,
	"current_buffer":     ctxCurrentBuffer,
	"switch_buffer":      ctxSwitchBuffer,
}

func ctxLine(L *glua.LState) int {
	ctx := checkContext(L)
	i := L.CheckInt(2)
	buf := ctx.CurrentBuffer()
	if i < 1 || i > buf.LineCount() {
		L.Push(glua.LNil)
		return 1
	}
	L.Push(glua.LString(buf.Line(i - 1)))
	return 1
}

func ctxSetLine(L *glua.LState) int {
	ctx := checkContext(L)
	i := L.CheckInt(2)
	text := L.CheckString(3)
	ctx.CurrentBuffer().SetLine(i-1, text)
	return 0
}

func ctxLineCount(L *glua.LState) int {
	ctx := checkContext(L)
	L.Push(glua.LNumber(ctx.CurrentBuffer().LineCount()))
	return 1
}

func ctxCurrentLine(L *glua.LState) int {
	ctx := checkContext(L)
	L.Push(glua.LString(ctx.CurrentBuffer().CurrentLine()))
	return 1
}

func ctxCursor(L *glua.LState) int {
	ctx := checkContext(L)
	line, col := ctx.CurrentBuffer().Cursor()
	L.Push(glua.LNumber(line + 1))
	L.Push(glua.LNumber(col + 1))
	return 2
}

func ctxSetCursor(L *glua.LState) int {
	ctx := checkContext(L)
	line := L.CheckInt(2)
	col := L.CheckInt(3)
	ctx.CurrentBuffer().SetCursor(line-1, col-1)
	return 0
}

func ctxInsertLine(L *glua.LState) int {
	ctx := checkContext(L)
	i := L.CheckInt(2)
	text := L.CheckString(3)
	ctx.CurrentBuffer().InsertLineAt(i-1, text)
	return 0
}

func ctxDeleteLine(L *glua.LState) int {
	ctx := checkContext(L)
	i := L.CheckInt(2)
	ctx.CurrentBuffer().RemoveLineAt(i - 1)
	return 0
}

func ctxInsertText(L *glua.LState) int {
	ctx := checkContext(L)
	ctx.CurrentBuffer().InsertText(L.CheckString(2))
	return 0
}

func ctxText(L *glua.LState) int {
	ctx := checkContext(L)
	L.Push(glua.LString(ctx.CurrentBuffer().Text()))
	return 1
}

func ctxMode(L *glua.LState) int {
	ctx := checkContext(L)
	L.Push(glua.LString(ctx.Mode()))
	return 1
}

func ctxSetMode(L *glua.LState) int {
	ctx := checkContext(L)
	ctx.SetMode(L.CheckString(2))
	return 0
}

func ctxFilename(L *glua.LState) int {
	ctx := checkContext(L)
	L.Push(glua.LString(ctx.CurrentBuffer().Path()))
	return 1
}

func ctxClipboard(L *glua.LState) int {
	ctx := checkContext(L)
	L.Push(glua.LString(ctx.Clipboard()))
	return 1
}

func ctxSetClipboard(L *glua.LState) int {
	ctx := checkContext(L)
	ctx.SetClipboard(L.CheckString(2))
	return 0
}

func ctxWordClipboard(L *glua.LState) int {
	ctx := checkContext(L)
	L.Push(glua.LString(ctx.WordClipboard()))
	return 1
}

func ctxSetWordClipboard(L *glua.LState) int {
	ctx := checkContext(L)
	ctx.SetWordClipboard(L.CheckString(2))
	return 0
}

func ctxBufferCount(L *glua.LState) int {
	ctx := checkContext(L)
	L.Push(glua.LNumber(len(ctx.Buffers())))
	return 1
}

func ctxCurrentBuffer(L *glua.LState) int {
	ctx := checkContext(L)
	L.Push(glua.LNumber(ctx.CurrentIndex() + 1))
	return 1
}

func ctxSwitchBuffer(L *glua.LState) int {
	ctx := checkContext(L)
	ctx.SwitchBuffer(L.CheckInt(2) - 1)
	return 0
}

var apiMethods = map[string]glua.LGFunction{
	"draw":             apiDraw,
	"snapshot":         apiSnapshot,
	"add_draw_hook":    apiAddDrawHook,
	"remove_draw_hook": apiRemoveDrawHook,
}

// apiDraw paints text at (row, col). An optional fourth argument is a
// style table with fg, bg, bold, reverse and underline keys.
func apiDraw(L *glua.LState) int {
	caps := checkAPI(L)
	row := L.CheckInt(2)
	col := L.CheckInt(3)
	text := L.CheckString(4)
	style := api.Style{}
	if L.GetTop() >= 5 {
		style = styleFromTable(L.CheckTable(5))
	}
	if caps.Draw != nil {
		caps.Draw(row, col, text, style)
	}
	return 0
}

func styleFromTable(t *glua.LTable) api.Style {
	var s api.Style
	if v, ok := t.RawGetString("fg").(glua.LString); ok {
		s.FG = string(v)
	}
	if v, ok := t.RawGetString("bg").(glua.LString); ok {
		s.BG = string(v)
	}
	s.Bold = glua.LVAsBool(t.RawGetString("bold"))
	s.Reverse = glua.LVAsBool(t.RawGetString("reverse"))
	s.Underline = glua.LVAsBool(t.RawGetString("underline"))
	return s
}

func apiSnapshot(L *glua.LState) int {
	caps := checkAPI(L)
	taken := false
	if caps.Snapshot != nil {
		taken = caps.Snapshot()
	}
	L.Push(glua.LBool(taken))
	return 1
}

func apiAddDrawHook(L *glua.LState) int {
	caps := checkAPI(L)
	fn := L.CheckFunction(2)
	if caps.AddDrawHook != nil {
		caps.AddDrawHook(fn)
	}
	return 0
}

func apiRemoveDrawHook(L *glua.LState) int {
	caps := checkAPI(L)
	fn := L.CheckFunction(2)
	if caps.RemoveDrawHook != nil {
		caps.RemoveDrawHook(fn)
	}
	return 0
}
