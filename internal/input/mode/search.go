package mode

import (
	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/input/key"
)

// SearchMode navigates the result list of the last search: Up/Down
// move the selection, Enter jumps to the chosen line. Any other key is
// delegated to normal mode.
type SearchMode struct {
	normal *NormalMode
}

// NewSearchMode creates the search mode handler.
func NewSearchMode(normal *NormalMode) *SearchMode {
	return &SearchMode{normal: normal}
}

// Name returns "search".
func (m *SearchMode) Name() string { return editor.ModeSearch }

// DisplayName returns the status bar label.
func (m *SearchMode) DisplayName() string { return "SEARCH" }

// Enter implements Mode.
func (m *SearchMode) Enter(ctx *editor.Context) {}

// Exit implements Mode.
func (m *SearchMode) Exit(ctx *editor.Context) {}

// HandleKey implements Mode.
func (m *SearchMode) HandleKey(ev key.Event, ctx *editor.Context) {
	switch {
	case ev.Key == key.KeyUp:
		if ctx.Search.Selected > 0 {
			ctx.Search.Selected--
		}
	case ev.Key == key.KeyDown:
		if ctx.Search.Selected < len(ctx.Search.Results)-1 {
			ctx.Search.Selected++
		}
	case ev.IsEnter():
		if len(ctx.Search.Results) > 0 {
			line := ctx.Search.Results[ctx.Search.Selected]
			ctx.CurrentBuffer().SetCursor(line, 0)
		}
		ctx.SetMode(editor.ModeNormal)
	default:
		if m.normal != nil {
			m.normal.HandleKey(ev, ctx)
		}
	}
}
