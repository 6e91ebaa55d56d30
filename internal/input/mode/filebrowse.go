package mode

import (
	"fmt"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/input/key"
)

// FileBrowseMode navigates the sidebar file tree: arrow keys move the
// selection, Enter/Right opens files or toggles directories, Left
// collapses or climbs to the parent, 'a' flips dotfile visibility.
//
// Escape is handled here rather than globally so exiting the tree can
// report a status message.
type FileBrowseMode struct {
	opener Opener
}

// NewFileBrowseMode creates the filebrowse mode handler.
func NewFileBrowseMode(opener Opener) *FileBrowseMode {
	return &FileBrowseMode{opener: opener}
}

// Name returns "filebrowse".
func (m *FileBrowseMode) Name() string { return editor.ModeFileBrowse }

// DisplayName returns the status bar label.
func (m *FileBrowseMode) DisplayName() string { return "FILES" }

// Enter implements Mode.
func (m *FileBrowseMode) Enter(ctx *editor.Context) {}

// Exit implements Mode.
func (m *FileBrowseMode) Exit(ctx *editor.Context) {}

// HandleKey implements Mode.
func (m *FileBrowseMode) HandleKey(ev key.Event, ctx *editor.Context) {
	tree := ctx.Tree
	if tree == nil {
		ctx.SetMode(editor.ModeNormal)
		return
	}

	switch {
	case ev.Key == key.KeyUp:
		tree.MoveSelection(-1)
	case ev.Key == key.KeyDown:
		tree.MoveSelection(1)
	case ev.IsEnter() || ev.Key == key.KeyRight:
		m.activate(ctx)
	case ev.Key == key.KeyLeft:
		m.collapseOrClimb(ctx)
	case ev.IsRune() && ev.Rune == 'a':
		show := !tree.ShowHidden()
		if err := tree.SetShowHidden(show); err != nil {
			ctx.SetStatus(fmt.Sprintf("error reloading tree: %v", err))
			return
		}
		ctx.ShowHidden = show
		if show {
			ctx.SetStatus("hidden shown.")
		} else {
			ctx.SetStatus("hidden hidden.")
		}
	case ev.IsEscape():
		ctx.SetMode(editor.ModeNormal)
		ctx.SetStatus("exited file tree mode.")
	}
}

// activate opens the selected file or toggles the selected directory.
func (m *FileBrowseMode) activate(ctx *editor.Context) {
	node := ctx.Tree.SelectedNode()
	if node == nil {
		return
	}
	if node.IsDir {
		if err := ctx.Tree.Toggle(); err != nil {
			ctx.SetStatus(fmt.Sprintf("error reading directory: %v", err))
		}
		return
	}
	if m.opener == nil {
		return
	}
	if err := m.opener.OpenFile(ctx, node.Path); err != nil {
		ctx.SetStatus(fmt.Sprintf("error opening file: %v", err))
		return
	}
	ctx.LogActivity("file opened: " + node.Path)
	ctx.SetMode(editor.ModeNormal)
}

// collapseOrClimb collapses an expanded directory, otherwise moves the
// selection to the nearest shallower row above it.
func (m *FileBrowseMode) collapseOrClimb(ctx *editor.Context) {
	tree := ctx.Tree
	node := tree.SelectedNode()
	if node == nil {
		return
	}
	if node.IsDir && node.Expanded {
		_ = tree.Toggle()
		return
	}
	rows := tree.Visible()
	for i := tree.Selected() - 1; i >= 0; i-- {
		if rows[i].Depth < node.Depth {
			tree.MoveSelection(i - tree.Selected())
			return
		}
	}
}
