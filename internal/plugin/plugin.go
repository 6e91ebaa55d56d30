package plugin

import (
	"github.com/shrub4thedub/shrimp/internal/plugin/lua"
)

// ModeCommand is the pseudo-mode binding a command word instead of a
// key.
const ModeCommand = "command"

// Bind maps one trigger to one compiled action within a plugin.
type Bind struct {
	// Trigger is a single key character for mode binds or a command
	// word for command binds.
	Trigger string

	// Mode is the editing mode the bind applies in, or ModeCommand.
	Mode string

	Title       string
	Description string

	// Enabled binds participate in the derived dispatch maps.
	Enabled bool

	// Action is the compiled body. Never nil on a loaded bind.
	Action *lua.Action
}

// IsCommand reports whether the bind triggers on a command word.
func (b *Bind) IsCommand() bool { return b.Mode == ModeCommand }

// Key returns the trigger's key character for mode binds. Triggers
// longer than one character bind on their first character.
func (b *Bind) Key() rune {
	for _, r := range b.Trigger {
		return r
	}
	return 0
}

// Plugin is one named definition: metadata plus its ordered binds.
type Plugin struct {
	Name        string
	Title       string
	Description string
	Binds       []*Bind
}

// Enabled reports whether any bind is enabled.
func (p *Plugin) Enabled() bool {
	for _, b := range p.Binds {
		if b.Enabled {
			return true
		}
	}
	return false
}

// FindBind returns the bind with the given trigger, or nil.
func (p *Plugin) FindBind(trigger string) *Bind {
	for _, b := range p.Binds {
		if b.Trigger == trigger {
			return b
		}
	}
	return nil
}
