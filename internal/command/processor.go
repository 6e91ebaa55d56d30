package command

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/filetree"
	"github.com/shrub4thedub/shrimp/internal/plugin"
)

// PluginDispatcher is the slice of the plugin runtime the processor
// needs: command dispatch plus the toggle surface behind :plug.
type PluginDispatcher interface {
	DispatchCommand(word string, ctx *editor.Context) bool
	Plugins() []*plugin.Plugin
	Toggle(name string) error
	ToggleBind(name, trigger string) error
}

// Processor executes command lines against the editor context.
type Processor struct {
	plugins PluginDispatcher

	themes    []string
	saveTheme func(name string) error
}

// Option configures a Processor.
type Option func(*Processor)

// WithPlugins attaches the plugin runtime for plugin-first dispatch
// and the :plug command.
func WithPlugins(p PluginDispatcher) Option {
	return func(pr *Processor) {
		pr.plugins = p
	}
}

// WithThemes supplies the selectable theme names and a persistence
// callback invoked when :th changes the theme.
func WithThemes(names []string, save func(name string) error) Option {
	return func(pr *Processor) {
		pr.themes = names
		pr.saveTheme = save
	}
}

// NewProcessor creates a command processor.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// countCmd matches "<N>y" and "<N>d".
var countCmd = regexp.MustCompile(`^(\d+)([yd])$`)

// Execute runs one command line. Empty lines are ignored.
func (p *Processor) Execute(ctx *editor.Context, line string) {
	cmd := strings.TrimSpace(line)
	if cmd == "" {
		return
	}
	lower := strings.ToLower(cmd)

	if p.plugins != nil && p.plugins.DispatchCommand(lower, ctx) {
		return
	}

	fields := strings.Fields(cmd)
	head := strings.ToLower(fields[0])

	switch head {
	case "plug":
		p.plug(ctx, fields[1:])
		return
	case "w", "write":
		if len(fields) > 1 {
			ctx.CurrentBuffer().SetPath(fields[1])
		}
		p.save(ctx)
		return
	case "wq":
		p.save(ctx)
		ctx.LogActivity("wq: quit")
		ctx.RequestQuit()
		return
	case "q", "quit":
		ctx.LogActivity("q: quit")
		ctx.RequestQuit()
		return
	case "zen":
		ctx.ToggleZen()
		if ctx.Zen {
			ctx.LogActivity("zen: on")
			ctx.SetStatus("zen mode on.")
		} else {
			ctx.LogActivity("zen: off")
			ctx.SetStatus("zen mode off.")
		}
		return
	case "th":
		p.theme(ctx, fields[1:])
		return
	case "dir":
		if len(fields) < 2 {
			ctx.SetStatus("invalid directory.")
			return
		}
		p.changeDir(ctx, strings.TrimSpace(cmd[4:]))
		return
	case "f":
		query := strings.TrimSpace(cmd[1:])
		if query == "" {
			ctx.SetStatus("search string empty.")
			return
		}
		ctx.StartSearch(query)
		return
	case "fn":
		if len(fields) < 2 {
			ctx.SetStatus("no filename provided.")
			return
		}
		p.createFile(ctx, fields[1])
		return
	case "fr":
		if len(fields) < 2 {
			ctx.SetStatus("no new filename provided.")
			return
		}
		p.renameFile(ctx, fields[1])
		return
	case "fd":
		p.deleteFile(ctx)
		return
	}

	// Bare line number jumps; "<N>y"/"<N>d" are count commands.
	if len(fields) == 1 {
		if n, err := strconv.Atoi(head); err == nil {
			target := n - 1
			buf := ctx.CurrentBuffer()
			if target >= 0 && target < buf.LineCount() {
				_, col := buf.Cursor()
				buf.SetCursor(target, col)
			}
			return
		}
		if m := countCmd.FindStringSubmatch(head); m != nil {
			count, _ := strconv.Atoi(m[1])
			buf := ctx.CurrentBuffer()
			switch m[2] {
			case "y":
				ctx.SetClipboard(buf.CopyLines(count))
				ctx.LogActivity(fmt.Sprintf("%dy: copy %d lines", count, count))
			case "d":
				ctx.TakeSnapshot()
				buf.DeleteLines(count)
				ctx.LogActivity(fmt.Sprintf("%dd: delete %d lines", count, count))
			}
			return
		}
	}

	p.tokens(ctx, strings.Fields(lower))
}

// plug lists plugins with no arguments, toggles a plugin with one and
// toggles a single bind with two.
func (p *Processor) plug(ctx *editor.Context, args []string) {
	if p.plugins == nil {
		ctx.SetStatus("no plugins loaded.")
		return
	}
	switch len(args) {
	case 0:
		list := p.plugins.Plugins()
		for _, pl := range list {
			state := "off"
			if pl.Enabled() {
				state = "on"
			}
			ctx.LogActivity(fmt.Sprintf("plug %s [%s] %d binds", pl.Name, state, len(pl.Binds)))
		}
		ctx.SetStatus(fmt.Sprintf("%d plugins loaded.", len(list)))
	case 1:
		if err := p.plugins.Toggle(args[0]); err != nil {
			ctx.SetStatus(fmt.Sprintf("plug: %v", err))
			return
		}
		ctx.SetStatus(fmt.Sprintf("plug: toggled %s", args[0]))
	default:
		if err := p.plugins.ToggleBind(args[0], args[1]); err != nil {
			ctx.SetStatus(fmt.Sprintf("plug: %v", err))
			return
		}
		ctx.SetStatus(fmt.Sprintf("plug: toggled %s/%s", args[0], args[1]))
	}
}

// save writes the current buffer, reporting through the status bar.
func (p *Processor) save(ctx *editor.Context) {
	buf := ctx.CurrentBuffer()
	if buf.Path() == "" {
		ctx.SetStatus("no filename (use w <name>).")
		return
	}
	if err := buf.SaveToPath(); err != nil {
		ctx.SetStatus(fmt.Sprintf("error saving file: %v", err))
		return
	}
	ctx.LogActivity(fmt.Sprintf("w: write (%d bytes)", len(buf.Text())))
}

// theme selects a theme by name or cycles to the next one.
func (p *Processor) theme(ctx *editor.Context, args []string) {
	if len(p.themes) == 0 {
		ctx.SetStatus("no themes available.")
		return
	}
	name := ""
	if len(args) > 0 {
		name = strings.ToLower(args[0])
		found := false
		for _, t := range p.themes {
			if t == name {
				found = true
				break
			}
		}
		if !found {
			ctx.SetStatus(fmt.Sprintf("unknown theme: %s", name))
			return
		}
	} else {
		// Cycle past the current theme.
		next := 0
		for i, t := range p.themes {
			if t == ctx.ThemeName {
				next = (i + 1) % len(p.themes)
				break
			}
		}
		name = p.themes[next]
	}
	ctx.ThemeName = name
	if p.saveTheme != nil {
		if err := p.saveTheme(name); err != nil {
			ctx.SetStatus(fmt.Sprintf("theme %s (not saved: %v)", name, err))
			return
		}
	}
	ctx.SetStatus(fmt.Sprintf("theme: %s", name))
	ctx.LogActivity("th: theme " + name)
}

// changeDir reroots the file tree, changes the working directory and
// opens a fresh untitled buffer there.
func (p *Processor) changeDir(ctx *editor.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		ctx.SetStatus("invalid directory.")
		return
	}
	tree, err := filetree.New(path, filetree.WithHidden(ctx.ShowHidden))
	if err != nil {
		ctx.SetStatus(fmt.Sprintf("error changing directory: %v", err))
		return
	}
	if err := os.Chdir(path); err != nil {
		ctx.SetStatus(fmt.Sprintf("error changing directory: %v", err))
		return
	}
	ctx.Tree = tree
	buf := editor.NewBuffer(editor.WithPath(filepath.Join(tree.Root(), "untitled.txt")))
	buf.SetDirty(true)
	ctx.AddBuffer(buf)
	ctx.SetMode(editor.ModeNormal)
	ctx.SidebarVisible = !ctx.Zen
	ctx.SetStatus("dir: changed directory to " + path)
	ctx.LogActivity("dir: changed directory to " + path)
}

// createFile creates an empty file on disk and opens it clean.
func (p *Processor) createFile(ctx *editor.Context, name string) {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		ctx.SetStatus(fmt.Sprintf("error creating file: %v", err))
		return
	}
	f.Close()
	ctx.AddBuffer(editor.NewBuffer(editor.WithPath(name)))
	ctx.SetStatus("fn: created new file " + name)
	ctx.LogActivity("fn: file created: " + name)
}

// renameFile renames the current buffer's backing file and re-saves.
func (p *Processor) renameFile(ctx *editor.Context, name string) {
	buf := ctx.CurrentBuffer()
	if buf.Path() == "" {
		ctx.SetStatus("no file open to rename.")
		return
	}
	if err := os.Rename(buf.Path(), name); err != nil {
		ctx.SetStatus(fmt.Sprintf("error renaming file: %v", err))
		ctx.LogActivity(fmt.Sprintf("fr: error renaming file: %v", err))
		return
	}
	buf.SetPath(name)
	if err := buf.SaveToPath(); err != nil {
		ctx.SetStatus(fmt.Sprintf("error saving file: %v", err))
		return
	}
	ctx.SetStatus("fr: renamed file to " + name)
	ctx.LogActivity("fr: file renamed to " + name)
}

// deleteFile removes the current buffer's backing file and resets the
// buffer to an unnamed empty one.
func (p *Processor) deleteFile(ctx *editor.Context) {
	buf := ctx.CurrentBuffer()
	path := buf.Path()
	if path == "" {
		ctx.SetStatus("no file open to delete.")
		return
	}
	if err := os.Remove(path); err != nil {
		ctx.SetStatus(fmt.Sprintf("error deleting file: %v", err))
		ctx.LogActivity(fmt.Sprintf("fd: error deleting file: %v", err))
		return
	}
	buf.SetPath("")
	buf.Clear()
	buf.SetDirty(false)
	ctx.SetStatus("fd: deleted file " + path)
	ctx.LogActivity("fd: file deleted " + path)
}

// tokens runs the multi-token quick commands, one per token.
func (p *Processor) tokens(ctx *editor.Context, tokens []string) {
	for _, tok := range tokens {
		switch tok {
		case "c", "clear":
			ctx.TakeSnapshot()
			ctx.CurrentBuffer().Clear()
			ctx.LogActivity("c: clear")
			ctx.SetStatus("file cleared.")
		case "w":
			p.save(ctx)
		case "s":
			if ctx.Zen {
				ctx.SetStatus("sidebar disabled in zen mode.")
				continue
			}
			ctx.SidebarVisible = !ctx.SidebarVisible
			state := "off"
			if ctx.SidebarVisible {
				state = "on"
			}
			ctx.LogActivity("s: sidebar " + state)
			ctx.SetStatus("sidebar " + state + ".")
		case "h":
			if ctx.Zen {
				ctx.SetStatus("help disabled in zen mode.")
				continue
			}
			ctx.ShowHelp()
			ctx.LogActivity("h: help on")
			ctx.SetStatus("help on.")
		case "t":
			if ctx.Zen {
				ctx.SetStatus("file tree disabled in zen mode.")
				continue
			}
			if ctx.Mode() != editor.ModeFileBrowse {
				ctx.SetMode(editor.ModeFileBrowse)
				ctx.LogActivity("t: file tree")
				ctx.SetStatus("file tree activated.")
			} else {
				ctx.SetMode(editor.ModeNormal)
				ctx.LogActivity("t: normal")
				ctx.SetStatus("normal mode.")
			}
		case "q":
			ctx.LogActivity("q: quit")
			ctx.RequestQuit()
			return
		case "z":
			p.cycleBuffer(ctx, -1)
		case "x":
			p.cycleBuffer(ctx, 1)
		default:
			ctx.SetStatus("unknown command: " + tok)
		}
	}
}

func (p *Processor) cycleBuffer(ctx *editor.Context, delta int) {
	if len(ctx.Buffers()) < 2 {
		return
	}
	ctx.AdvanceBuffer(delta)
	line, _ := ctx.CurrentBuffer().Cursor()
	ctx.SetStatus(fmt.Sprintf("goto[%d]", line+1))
}
