package mode

import (
	"strings"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/input/key"
)

// CommandMode accumulates a command line and hands the finished line
// to the executor on Enter.
type CommandMode struct {
	exec Executor
}

// NewCommandMode creates the command mode handler.
func NewCommandMode(exec Executor) *CommandMode {
	return &CommandMode{exec: exec}
}

// Name returns "command".
func (m *CommandMode) Name() string { return editor.ModeCommand }

// DisplayName returns the status bar label.
func (m *CommandMode) DisplayName() string { return "COMMAND" }

// Enter starts with an empty command line.
func (m *CommandMode) Enter(ctx *editor.Context) {
	ctx.CommandLine = ""
}

// Exit implements Mode.
func (m *CommandMode) Exit(ctx *editor.Context) {}

// HandleKey implements Mode.
func (m *CommandMode) HandleKey(ev key.Event, ctx *editor.Context) {
	switch {
	case ev.IsEnter():
		line := strings.TrimSpace(ctx.CommandLine)
		ctx.CommandLine = ""
		ctx.SetMode(editor.ModeNormal)
		if m.exec != nil {
			m.exec.Execute(ctx, line)
		}
	case ev.IsBackspace():
		if r := []rune(ctx.CommandLine); len(r) > 0 {
			ctx.CommandLine = string(r[:len(r)-1])
		}
	case ev.IsChar():
		ctx.CommandLine += string(ev.Rune)
	}
}
