package renderer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/filetree"
)

const powerlineArrow = ''

// Renderer draws editor frames onto a tcell screen. It also
// implements the plugin drawing surface.
type Renderer struct {
	screen tcell.Screen
	theme  Theme
	clock  func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock overrides the clock used for the sidebar and status bar.
func WithClock(clock func() time.Time) Option {
	return func(r *Renderer) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// New creates a renderer for screen.
func New(screen tcell.Screen, opts ...Option) *Renderer {
	r := &Renderer{
		screen: screen,
		theme:  themeNamed("boring"),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render paints one frame. The screen is not shown; the caller runs
// plugin draw hooks against the surface first, then calls Show.
func (r *Renderer) Render(ctx *editor.Context) {
	r.theme = themeNamed(ctx.ThemeName)

	width, height := r.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	textHeight := height - 1
	ctx.ViewHeight = textHeight

	sidebarWidth := 0
	if ctx.SidebarVisible && !ctx.Zen {
		sidebarWidth = 20
		if width >= 80 {
			sidebarWidth = 30
		}
	}

	r.screen.Clear()
	if sidebarWidth > 0 {
		r.drawSidebar(ctx, sidebarWidth, height)
	}
	r.drawTextArea(ctx, sidebarWidth, width-sidebarWidth, textHeight)
	r.drawStatusBar(ctx, width, height-1)
	if ctx.Mode() == editor.ModeCommand {
		r.drawCommandBox(ctx, width, height)
	} else {
		r.placeCursor(ctx, sidebarWidth)
	}
}

// Show flushes the frame to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

// fill paints a run of spaces.
func (r *Renderer) fill(x, y, w int, style tcell.Style) {
	for i := 0; i < w; i++ {
		r.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// drawText writes text at (x, y) clipped to maxWidth screen cells.
// Returns the x position after the last cell written.
func (r *Renderer) drawText(x, y, maxWidth int, style tcell.Style, text string) int {
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if maxWidth >= 0 && w > maxWidth {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += w
		maxWidth -= w
	}
	return x
}

func (r *Renderer) drawTextArea(ctx *editor.Context, xOffset, areaWidth, visible int) {
	buf := ctx.CurrentBuffer()
	buf.ClampScroll(visible)

	lineStyle := r.theme.Text
	searchMode := ctx.Mode() == editor.ModeSearch

	for row := 0; row < visible; row++ {
		idx := buf.Scroll() + row
		r.fill(xOffset, row, areaWidth, lineStyle)
		if idx >= buf.LineCount() {
			continue
		}
		cursorLine, _ := buf.Cursor()
		isCurrent := idx == cursorLine
		if searchMode && len(ctx.Search.Results) > 0 {
			isCurrent = idx == ctx.Search.Results[ctx.Search.Selected]
		}

		style := lineStyle
		if isCurrent {
			style = r.theme.CurrentLine
		}
		indicator := "   "
		if isCurrent {
			indicator = "-> "
		}
		prefix := indicator
		if !ctx.Zen {
			prefix += fmt.Sprintf("%-3d", idx+1)
		}
		if isCurrent {
			r.fill(xOffset, row, areaWidth, style)
		}
		x := r.drawText(xOffset, row, areaWidth, style, prefix)
		r.drawText(x, row, areaWidth-len(prefix), style, buf.Line(idx))
	}
}

func (r *Renderer) placeCursor(ctx *editor.Context, xOffset int) {
	buf := ctx.CurrentBuffer()
	line, col := buf.Cursor()
	y := line - buf.Scroll()
	x := xOffset + col
	if !ctx.Zen {
		x += 6
	}
	r.screen.ShowCursor(x, y)
}

// Sidebar

var helpLines = []string{
	"",
	"help!",
	"",
	"i: insert",
	"o: cmd",
	"w: act on word",
	"d: delete",
	"y: copy",
	"u: paste",
	"h: line start",
	"j: line end",
	"p: line change",
	"wp: word change",
	"[num]: goto",
	"[num]y: copy",
	"[num]d: delete",
	">w: write",
	">c: clearfile",
	">wq: write+quit",
	">q: quit",
	">dir <path>: cd",
	">f: search",
	">th: theme",
	">x: next tab",
	">z: prev tab",
}

func (r *Renderer) drawSidebar(ctx *editor.Context, width, height int) {
	for y := 0; y < height; y++ {
		r.fill(0, y, width, r.theme.Sidebar)
	}

	switch ctx.Mode() {
	case editor.ModeSearch:
		r.drawSearchSidebar(ctx, width, height)
		return
	case editor.ModeFileBrowse:
		r.drawFileTree(ctx, width, height)
		return
	}

	y := 0
	r.drawText(1, y, width-2, r.theme.Sidebar, " "+r.clock().Format("15:04:05")+" ")
	y++
	r.drawText(1, y, width-2, r.theme.Sidebar, " shrimp ")
	y++

	messages := ctx.Activity()
	if ctx.HelpVisible {
		messages = helpLines
	}
	for _, msg := range messages {
		if y >= height {
			break
		}
		r.drawText(1, y, width-2, r.theme.Sidebar, msg)
		y++
	}

	if mark, ok := ctx.CurrentBuffer().Mark(); ok {
		r.fill(0, height-2, width, r.theme.Sidebar)
		text := fmt.Sprintf("mark on line %d", mark+1)
		r.drawText(1, height-2, width-2, r.theme.Sidebar.Bold(true), text)
	}
}

func (r *Renderer) drawFileTree(ctx *editor.Context, width, height int) {
	if ctx.Tree == nil {
		return
	}
	r.drawText(1, 0, width-2, r.theme.Sidebar, " file tree ")
	r.drawText(1, 1, width-2, r.theme.Sidebar, " root: "+ctx.Tree.Root()+" ")

	rows := ctx.Tree.Visible()
	selected := ctx.Tree.Selected()
	available := height - 2
	scroll := 0
	if selected >= available {
		scroll = selected - available + 1
	}

	y := 2
	for i := scroll; i < len(rows); i++ {
		if y >= height {
			break
		}
		node := rows[i]
		label := treeLabel(node)
		style := r.theme.Sidebar
		if i == selected {
			style = r.theme.Selected
		}
		r.drawText(1, y, width-2, style, label)
		y++
	}
}

func treeLabel(node *filetree.Node) string {
	indent := strings.Repeat("  ", node.Depth)
	if node.IsDir {
		marker := "+"
		if node.Expanded {
			marker = "-"
		}
		return indent + marker + " " + node.Name + "/"
	}
	return indent + "  " + node.Name
}

func (r *Renderer) drawSearchSidebar(ctx *editor.Context, width, height int) {
	header := fmt.Sprintf(" search: '%s' ", ctx.Search.Query)
	r.drawText(1, 0, width-2, r.theme.Accent, header)

	lines := ctx.CurrentBuffer().Lines()
	for i, lineNum := range ctx.Search.Results {
		y := i + 1
		if y >= height {
			break
		}
		snippet := ""
		if lineNum < len(lines) {
			snippet = strings.TrimSpace(lines[lineNum])
		}
		display := fmt.Sprintf("%d: %s", lineNum+1, snippet)
		style := r.theme.Sidebar
		if i == ctx.Search.Selected {
			style = r.theme.Selected
		}
		r.drawText(1, y, width-2, style, display)
	}
}

// Status bar

func (r *Renderer) drawStatusBar(ctx *editor.Context, width, y int) {
	buf := ctx.CurrentBuffer()

	modeText := " " + strings.ToUpper(ctx.Mode()) + " "
	if ctx.Zen {
		r.fill(0, y, width, r.theme.StatusFill)
		r.drawText(0, y, width, r.theme.StatusMode, modeText)
		timeText := " " + r.clock().Format("15:04:05") + " "
		r.drawText(width-len(timeText), y, len(timeText), r.theme.StatusFill, timeText)
		return
	}

	x := r.drawText(0, y, width, r.theme.StatusMode, modeText)
	r.screen.SetContent(x, y, powerlineArrow, nil, r.theme.ArrowModeFile)
	x++

	name := buf.Path()
	if name == "" {
		name = "new file"
	} else {
		name = filepath.Base(name)
	}
	dirty := ""
	if buf.Dirty() {
		dirty = "*"
	}
	bufInfo := ""
	if len(ctx.Buffers()) > 1 {
		bufInfo = fmt.Sprintf(" [%d/%d]", ctx.CurrentIndex()+1, len(ctx.Buffers()))
	}
	fileText := " " + name + dirty + bufInfo + " "
	x = r.drawText(x, y, width-x, r.theme.StatusFile, fileText)
	r.screen.SetContent(x, y, powerlineArrow, nil, r.theme.ArrowFileFill)
	x++

	r.fill(x, y, width-x, r.theme.StatusFill)
	if status := ctx.Status(); status != "" {
		r.drawText(x+1, y, width-x-1, r.theme.StatusFill, status)
	}

	timeText := " " + r.clock().Format("15:04:05") + " "
	r.drawText(width-len(timeText), y, len(timeText), r.theme.StatusFill, timeText)
}

// Command box

func (r *Renderer) drawCommandBox(ctx *editor.Context, width, height int) {
	boxWidth := 40
	if need := runewidth.StringWidth(ctx.CommandLine) + 10; need > boxWidth {
		boxWidth = need
	}
	if boxWidth > width {
		boxWidth = width
	}
	startY := (height - 5) / 2
	startX := (width - boxWidth) / 2
	style := r.theme.Accent

	title := " cmdline "
	inner := boxWidth - 2
	titleStart := (inner - len(title)) / 2
	top := "┌" + strings.Repeat(" ", titleStart) + title + strings.Repeat(" ", inner-titleStart-len(title)) + "┐"
	bottom := "└" + strings.Repeat("─", inner) + "┘"

	content := "> " + ctx.CommandLine
	content = runewidth.Truncate(content, boxWidth-4, "")
	content = runewidth.FillRight(content, boxWidth-4)

	r.drawText(startX, startY, boxWidth, style, top)
	r.drawText(startX, startY+1, boxWidth, style, "│ "+content+" │")
	r.drawText(startX, startY+2, boxWidth, style, bottom)
	r.screen.ShowCursor(startX+4+runewidth.StringWidth(ctx.CommandLine), startY+1)
}
