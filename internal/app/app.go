package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/shrub4thedub/shrimp/internal/command"
	"github.com/shrub4thedub/shrimp/internal/config"
	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/filetree"
	"github.com/shrub4thedub/shrimp/internal/input/key"
	"github.com/shrub4thedub/shrimp/internal/input/mode"
	"github.com/shrub4thedub/shrimp/internal/plugin"
	"github.com/shrub4thedub/shrimp/internal/renderer"
)

// Options configures application startup.
type Options struct {
	// ConfigPath overrides the config file location.
	ConfigPath string

	// Files are opened as buffers in order; the last becomes current.
	Files []string

	// Dir is the file tree root. Defaults to the working directory.
	Dir string
}

// App owns the editor state and its subsystems.
type App struct {
	ctx     *editor.Context
	manager *mode.Manager
	runtime *plugin.Runtime
	render  *renderer.Renderer

	cfg       config.Config
	cfgPath   string
	pluginDir string
}

// New assembles an application from options and the user config.
func New(opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("working directory: %w", err)
		}
	}
	tree, err := filetree.New(dir, filetree.WithHidden(cfg.ShowHidden))
	if err != nil {
		return nil, err
	}

	ctx := editor.NewContext(
		editor.WithPrefixTimeout(cfg.PrefixTimeout()),
		editor.WithSystemClipboard(cfg.SystemClipboard),
		editor.WithTree(tree),
	)
	ctx.SidebarVisible = cfg.Sidebar
	ctx.ShowHidden = cfg.ShowHidden
	ctx.ThemeName = cfg.Theme

	for _, path := range opts.Files {
		buf, err := editor.LoadBuffer(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			buf = editor.NewBuffer(editor.WithPath(path))
		}
		ctx.AddBuffer(buf)
	}

	a := &App{ctx: ctx, cfg: cfg, cfgPath: cfgPath}

	if err := a.initPlugins(); err != nil {
		return nil, err
	}
	a.initModes()
	return a, nil
}

func (a *App) initPlugins() error {
	statePath, err := config.StatePath()
	if err != nil {
		return err
	}
	a.pluginDir, err = a.cfg.Plugins()
	if err != nil {
		return err
	}

	rt, err := plugin.NewRuntime(plugin.WithStore(plugin.NewStore(statePath)))
	if err != nil {
		return err
	}
	if err := rt.LoadDir(a.pluginDir); err != nil {
		rt.Close()
		return err
	}
	a.runtime = rt
	return nil
}

func (a *App) initModes() {
	exec := command.NewProcessor(
		command.WithPlugins(a.runtime),
		command.WithThemes(renderer.Themes(), a.saveTheme),
	)
	normal := mode.NewNormalMode()

	a.manager = mode.NewManager()
	a.manager.Register(normal)
	a.manager.Register(mode.NewInsertMode())
	a.manager.Register(mode.NewCommandMode(exec))
	a.manager.Register(mode.NewFileBrowseMode(a))
	a.manager.Register(mode.NewSearchMode(normal))
}

// saveTheme persists a theme change back to the config file.
func (a *App) saveTheme(name string) error {
	a.cfg.Theme = name
	return a.cfg.Save(a.cfgPath)
}

// Context exposes the editor state, mainly for tests.
func (a *App) Context() *editor.Context { return a.ctx }

// Runtime exposes the plugin runtime, mainly for tests.
func (a *App) Runtime() *plugin.Runtime { return a.runtime }

// OpenFile loads path into a new buffer and makes it current. Used by
// filebrowse mode when a file row is activated.
func (a *App) OpenFile(ctx *editor.Context, path string) error {
	buf, err := editor.LoadBuffer(path)
	if err != nil {
		return err
	}
	ctx.AddBuffer(buf)
	return nil
}

// Close releases the plugin runtime.
func (a *App) Close() {
	if a.runtime != nil {
		a.runtime.Close()
	}
}

// pluginsChanged is posted by the directory watcher so the reload runs
// on the event loop.
type pluginsChanged struct {
	tcell.EventTime
}

func newPluginsChanged() *pluginsChanged {
	ev := &pluginsChanged{}
	ev.SetEventNow()
	return ev
}

// Run drives the event loop until quit is requested. The screen must
// not be initialized; Run owns its lifecycle.
func (a *App) Run(screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	defer screen.Fini()

	a.render = renderer.New(screen)
	a.runtime.SetSurface(a.render)

	watcher, err := config.NewWatcher(a.pluginDir, func() {
		screen.PostEvent(newPluginsChanged())
	})
	if err != nil {
		slog.Warn("plugin watcher disabled", "error", err)
	} else {
		defer watcher.Close()
	}

	for !a.ctx.QuitRequested() {
		a.render.Render(a.ctx)
		a.runtime.RenderHooks(a.ctx)
		a.render.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *pluginsChanged:
			a.reloadPlugins()
		case *tcell.EventKey:
			a.handleKey(ev)
		case nil:
			return nil
		}
	}
	return nil
}

func (a *App) handleKey(ev *tcell.EventKey) {
	a.ctx.ExpireTransients(time.Now())

	kev := key.FromTcell(ev)
	if kev.Key == key.KeyNone {
		return
	}

	// Plugin key binds run ahead of mode handling in every mode. The
	// key map is scoped per mode, so an insert-mode bind shadows text
	// entry only for its own trigger.
	m := a.ctx.Mode()
	if kev.IsRune() {
		if a.runtime.DispatchKey(m, kev.Rune, a.ctx) {
			return
		}
	}

	if err := a.manager.HandleKey(kev, a.ctx); err != nil {
		slog.Error("key handling", "error", err, "mode", m)
	}
}

func (a *App) reloadPlugins() {
	if err := a.runtime.LoadDir(a.pluginDir); err != nil {
		a.ctx.SetStatus(fmt.Sprintf("plugin reload failed: %v", err))
		slog.Error("plugin reload", "error", err)
		return
	}
	a.ctx.SetStatus("plugins reloaded.")
	a.ctx.LogActivity("plugins reloaded")
	slog.Info("plugins reloaded", "dir", a.pluginDir)
}
