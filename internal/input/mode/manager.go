package mode

import (
	"fmt"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/input/key"
)

// Manager routes key events to the handler for the context's active
// mode and runs Exit/Enter hooks when a handler changes the mode.
type Manager struct {
	modes map[string]Mode
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{modes: make(map[string]Mode)}
}

// Register adds a mode, replacing any existing mode of the same name.
func (m *Manager) Register(mode Mode) {
	m.modes[mode.Name()] = mode
}

// Get returns a registered mode by name, or nil.
func (m *Manager) Get(name string) Mode {
	return m.modes[name]
}

// HandleKey dispatches one event to the active mode's handler.
//
// Escape is handled globally first: outside filebrowse mode it cancels
// partial input and returns to normal mode. Filebrowse keeps its own
// Escape handling so leaving the tree can report a status message.
func (m *Manager) HandleKey(ev key.Event, ctx *editor.Context) error {
	if ev.IsEscape() && ctx.Mode() != editor.ModeFileBrowse {
		m.transition(ctx, ctx.Mode(), editor.ModeNormal)
		ctx.SetMode(editor.ModeNormal)
		ctx.ClearTransientInput()
		ctx.PendingLineChange = false
		ctx.PendingWordChange = false
		ctx.ClearStatus()
		return nil
	}

	before := ctx.Mode()
	handler, ok := m.modes[before]
	if !ok {
		return fmt.Errorf("no handler for mode %q", before)
	}
	handler.HandleKey(ev, ctx)

	if after := ctx.Mode(); after != before {
		m.transition(ctx, before, after)
	}
	return nil
}

// transition runs the Exit hook of the old mode and the Enter hook of
// the new one. Missing handlers are skipped; a mode switch must not
// fail after the state change already happened.
func (m *Manager) transition(ctx *editor.Context, from, to string) {
	if from == to {
		return
	}
	if old, ok := m.modes[from]; ok {
		old.Exit(ctx)
	}
	if next, ok := m.modes[to]; ok {
		next.Enter(ctx)
	}
}
