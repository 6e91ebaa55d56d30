package plugin

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/plugin/api"
	"github.com/shrub4thedub/shrimp/internal/plugin/lua"
)

// PlugExt is the definition-file extension.
const PlugExt = ".plug"

// Runtime owns the compiled plugins and their dispatch state. It is
// used only from the foreground event loop.
type Runtime struct {
	state   *lua.State
	plugins []*Plugin

	// Derived maps, rebuilt on every enable-state change.
	keyMap map[string]map[rune]*Bind
	cmdMap map[string]*Bind

	hooks   []*lua.Hook
	surface api.Surface

	store *Store
}

// RuntimeOption configures a new Runtime.
type RuntimeOption func(*Runtime)

// WithStore attaches the persistent enable-state store.
func WithStore(store *Store) RuntimeOption {
	return func(r *Runtime) {
		r.store = store
	}
}

// NewRuntime creates an empty runtime with a fresh interpreter.
func NewRuntime(opts ...RuntimeOption) (*Runtime, error) {
	state, err := lua.NewState()
	if err != nil {
		return nil, fmt.Errorf("plugin runtime: %w", err)
	}
	r := &Runtime{
		state:  state,
		keyMap: map[string]map[rune]*Bind{},
		cmdMap: map[string]*Bind{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close releases the interpreter.
func (r *Runtime) Close() {
	r.state.Close()
}

// Plugins returns the loaded plugins in load order.
func (r *Runtime) Plugins() []*Plugin { return r.plugins }

// Find returns the plugin with the given name, or nil.
func (r *Runtime) Find(name string) *Plugin {
	for _, p := range r.plugins {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// LoadDir drops all loaded plugins and loads every definition file in
// dir in name order, then applies persisted enable state. A missing
// directory loads nothing. Per-source parse failures are logged and
// skip only that source.
func (r *Runtime) LoadDir(dir string) error {
	r.plugins = nil
	r.hooks = nil

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.rebuild()
			return nil
		}
		return fmt.Errorf("plugin dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), PlugExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("plugin source unreadable", "source", name, "err", err)
			continue
		}
		if err := r.loadSource(name, string(data)); err != nil {
			slog.Warn("plugin source abandoned", "source", name, "err", err)
		}
	}

	r.applyPersisted()
	r.rebuild()
	return nil
}

// LoadSource compiles one in-memory definition source, applies
// persisted state and rebuilds the dispatch maps. Used by tests and
// by single-source reloads.
func (r *Runtime) LoadSource(sourceName, content string) error {
	if err := r.loadSource(sourceName, content); err != nil {
		return err
	}
	r.applyPersisted()
	r.rebuild()
	return nil
}

func (r *Runtime) loadSource(sourceName, content string) error {
	defs, err := ParseSource(sourceName, content)
	if err != nil {
		return err
	}
	for _, def := range defs {
		p := &Plugin{
			Name:        def.Name,
			Title:       def.Title,
			Description: def.Description,
		}
		for _, bd := range def.Binds {
			action, err := lua.Compile(r.state, def.Name+"/"+bd.Trigger, bd.Body)
			if err != nil {
				slog.Warn("plugin bind dropped",
					"plugin", def.Name, "trigger", bd.Trigger, "err", err)
				continue
			}
			p.Binds = append(p.Binds, &Bind{
				Trigger:     bd.Trigger,
				Mode:        bd.Mode,
				Title:       bd.Title,
				Description: bd.Description,
				Enabled:     true,
				Action:      action,
			})
		}
		r.plugins = append(r.plugins, p)
	}
	return nil
}

// applyPersisted overlays stored enable flags onto the loaded plugins.
// Entries for plugins or binds that no longer exist are ignored.
func (r *Runtime) applyPersisted() {
	if r.store == nil {
		return
	}
	states, err := r.store.Load()
	if err != nil {
		slog.Warn("plugin state unreadable", "err", err)
		return
	}
	for _, p := range r.plugins {
		st, ok := states[p.Name]
		if !ok {
			continue
		}
		for _, b := range p.Binds {
			b.Enabled = st.Enabled
			if v, ok := st.Binds[b.Trigger]; ok {
				b.Enabled = v
			}
		}
	}
}

// persist writes the current enable flags through the store.
func (r *Runtime) persist() {
	if r.store == nil {
		return
	}
	states := map[string]PluginState{}
	for _, p := range r.plugins {
		st := PluginState{Enabled: p.Enabled(), Binds: map[string]bool{}}
		for _, b := range p.Binds {
			st.Binds[b.Trigger] = b.Enabled
		}
		states[p.Name] = st
	}
	if err := r.store.Save(states); err != nil {
		slog.Warn("plugin state save failed", "err", err)
	}
}

// rebuild derives the dispatch maps from the enabled binds. On a
// (mode, key) or command collision the later registration wins and the
// shadowing is logged.
func (r *Runtime) rebuild() {
	r.keyMap = map[string]map[rune]*Bind{}
	r.cmdMap = map[string]*Bind{}
	owner := map[string]string{}

	for _, p := range r.plugins {
		for _, b := range p.Binds {
			if !b.Enabled {
				continue
			}
			if b.IsCommand() {
				word := strings.ToLower(b.Trigger)
				if prev, ok := owner["cmd:"+word]; ok {
					slog.Warn("plugin command shadowed",
						"command", word, "shadowed", prev, "winner", p.Name)
				}
				owner["cmd:"+word] = p.Name
				r.cmdMap[word] = b
				continue
			}
			key := b.Key()
			if key == 0 {
				continue
			}
			slot := b.Mode + ":" + string(key)
			if prev, ok := owner[slot]; ok {
				slog.Warn("plugin key shadowed",
					"mode", b.Mode, "key", string(key), "shadowed", prev, "winner", p.Name)
			}
			owner[slot] = p.Name
			if r.keyMap[b.Mode] == nil {
				r.keyMap[b.Mode] = map[rune]*Bind{}
			}
			r.keyMap[b.Mode][key] = b
		}
	}
}

// DispatchKey runs the bind for (mode, key) if one is enabled.
// Returns true when the key was consumed and built-in handling must be
// skipped.
func (r *Runtime) DispatchKey(mode string, key rune, ctx *editor.Context) bool {
	b, ok := r.keyMap[mode][key]
	if !ok {
		return false
	}
	r.Invoke(b, ctx)
	return true
}

// DispatchCommand runs the bind for a command word if one is enabled.
func (r *Runtime) DispatchCommand(word string, ctx *editor.Context) bool {
	b, ok := r.cmdMap[strings.ToLower(word)]
	if !ok {
		return false
	}
	r.Invoke(b, ctx)
	return true
}

// Invoke calls a bind's action with a fresh capability object. A
// failing action is contained: the pre-invocation mode, buffer
// selection, cursor and buffer content are restored and the failure
// is reported through the status bar and activity log.
func (r *Runtime) Invoke(b *Bind, ctx *editor.Context) {
	preMode := ctx.Mode()
	preIndex := ctx.CurrentIndex()
	buf := ctx.CurrentBuffer()
	preLine, preCol := buf.Cursor()
	preLines := make([]string, len(buf.Lines()))
	copy(preLines, buf.Lines())
	preDirty := buf.Dirty()

	err := b.Action.Call(ctx, r.capabilities(ctx))
	if err == nil {
		return
	}

	ctx.SetMode(preMode)
	ctx.SwitchBuffer(preIndex)
	buf.SetLines(preLines)
	buf.SetCursor(preLine, preCol)
	buf.SetDirty(preDirty)

	name := b.Trigger
	if owner := r.ownerOf(b); owner != "" {
		name = owner
	}
	msg := fmt.Sprintf("plugin '%s' error: %v", name, err)
	ctx.SetStatus(msg)
	ctx.LogActivity(msg)
	slog.Error("plugin action failed", "plugin", name, "trigger", b.Trigger, "err", err)
}

func (r *Runtime) ownerOf(b *Bind) string {
	for _, p := range r.plugins {
		for _, candidate := range p.Binds {
			if candidate == b {
				return p.Name
			}
		}
	}
	return ""
}

// capabilities builds the per-invocation capability object.
func (r *Runtime) capabilities(ctx *editor.Context) *api.Capabilities {
	return &api.Capabilities{
		Log:      ctx.LogActivity,
		Status:   ctx.SetStatus,
		Snapshot: ctx.TakeSnapshot,
		Draw: func(row, col int, text string, style api.Style) {
			if r.surface != nil {
				r.surface.Draw(row, col, text, style)
			}
		},
		AddDrawHook: func(fn any) {
			if hook, ok := lua.NewHook(r.state, fn); ok {
				r.hooks = append(r.hooks, hook)
			}
		},
		RemoveDrawHook: func(fn any) {
			for i, hook := range r.hooks {
				if hook.Matches(fn) {
					r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
					return
				}
			}
		},
	}
}

// SetSurface points plugin draw calls at the live screen. The renderer
// sets it for the duration of the draw pass.
func (r *Runtime) SetSurface(s api.Surface) {
	r.surface = s
}

// HookCount returns the number of registered draw hooks.
func (r *Runtime) HookCount() int { return len(r.hooks) }

// RenderHooks runs every registered draw hook in registration order.
// Individual hook failures are logged without skipping later hooks.
func (r *Runtime) RenderHooks(ctx *editor.Context) {
	if len(r.hooks) == 0 {
		return
	}
	caps := r.capabilities(ctx)
	for _, hook := range r.hooks {
		if err := hook.Call(ctx, caps); err != nil {
			ctx.LogActivity(fmt.Sprintf("draw hook error: %v", err))
			slog.Error("draw hook failed", "err", err)
		}
	}
}

// Toggle flips a whole plugin: every bind is set to the inverse of the
// plugin's derived enabled state. Maps are rebuilt and state persisted.
func (r *Runtime) Toggle(name string) error {
	p := r.Find(name)
	if p == nil {
		return fmt.Errorf("toggle %s: %w", name, ErrUnknownPlugin)
	}
	target := !p.Enabled()
	for _, b := range p.Binds {
		b.Enabled = target
	}
	r.rebuild()
	r.persist()
	return nil
}

// ToggleBind flips one bind of a plugin by trigger. Maps are rebuilt
// and state persisted.
func (r *Runtime) ToggleBind(name, trigger string) error {
	p := r.Find(name)
	if p == nil {
		return fmt.Errorf("toggle %s: %w", name, ErrUnknownPlugin)
	}
	b := p.FindBind(trigger)
	if b == nil {
		return fmt.Errorf("toggle %s/%s: %w", name, trigger, ErrUnknownBind)
	}
	b.Enabled = !b.Enabled
	r.rebuild()
	r.persist()
	return nil
}
