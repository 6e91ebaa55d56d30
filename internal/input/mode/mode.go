package mode

import (
	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/input/key"
)

// Mode is one editing mode's key handler.
type Mode interface {
	// Name returns the unique mode identifier (e.g. "normal").
	Name() string

	// DisplayName returns the name shown in the status bar.
	DisplayName() string

	// Enter is called when the editor switches into this mode.
	Enter(ctx *editor.Context)

	// Exit is called when the editor switches out of this mode.
	Exit(ctx *editor.Context)

	// HandleKey processes one key event against the shared context.
	HandleKey(ev key.Event, ctx *editor.Context)
}

// Executor runs a command-mode line. Implemented by the command
// processor; an interface here so modes stay independent of it.
type Executor interface {
	Execute(ctx *editor.Context, line string)
}

// Opener loads a file into a new buffer. Implemented by the app so
// filebrowse mode can open selections without owning buffer I/O.
type Opener interface {
	OpenFile(ctx *editor.Context, path string) error
}
