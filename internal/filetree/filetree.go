package filetree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Errors returned by tree operations.
var (
	ErrNotDir = errors.New("path is not a directory")
)

// Node is one entry in the tree. Directory children are populated on
// first expansion.
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Expanded bool
	Depth    int
	Children []*Node

	loaded bool
}

// Tree holds the browsable view of a directory: the root node, the
// flattened visible rows and the selection cursor.
type Tree struct {
	root       *Node
	visible    []*Node
	selected   int
	showHidden bool
}

// TreeOption configures a new Tree.
type TreeOption func(*Tree)

// WithHidden includes dotfiles in directory listings.
func WithHidden(show bool) TreeOption {
	return func(t *Tree) {
		t.showHidden = show
	}
}

// New builds a tree rooted at dir with the root expanded.
func New(dir string, opts ...TreeOption) (*Tree, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("filetree: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("filetree %s: %w", dir, ErrNotDir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("filetree: %w", err)
	}
	t := &Tree{
		root: &Node{
			Name:  filepath.Base(abs),
			Path:  abs,
			IsDir: true,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.expand(t.root); err != nil {
		return nil, err
	}
	t.reflatten()
	return t, nil
}

// Root returns the tree's root directory path.
func (t *Tree) Root() string { return t.root.Path }

// ShowHidden reports whether dotfiles are listed.
func (t *Tree) ShowHidden() bool { return t.showHidden }

// SetShowHidden changes dotfile visibility and reloads the tree.
func (t *Tree) SetShowHidden(show bool) error {
	t.showHidden = show
	return t.Reload()
}

// Reload re-reads every expanded directory from disk, preserving the
// expansion set and clamping the selection.
func (t *Tree) Reload() error {
	expanded := map[string]bool{}
	collectExpanded(t.root, expanded)

	t.root.Children = nil
	t.root.loaded = false
	if err := t.expand(t.root); err != nil {
		return err
	}
	restoreExpanded(t.root, expanded, t)
	t.reflatten()
	return nil
}

func collectExpanded(n *Node, into map[string]bool) {
	if n.Expanded {
		into[n.Path] = true
	}
	for _, c := range n.Children {
		collectExpanded(c, into)
	}
}

func restoreExpanded(n *Node, expanded map[string]bool, t *Tree) {
	for _, c := range n.Children {
		if c.IsDir && expanded[c.Path] {
			if err := t.expand(c); err == nil {
				restoreExpanded(c, expanded, t)
			}
		}
	}
}

// expand loads and opens a directory node.
func (t *Tree) expand(n *Node) error {
	if !n.IsDir {
		return nil
	}
	if !n.loaded {
		entries, err := os.ReadDir(n.Path)
		if err != nil {
			return fmt.Errorf("filetree read %s: %w", n.Path, err)
		}
		n.Children = n.Children[:0]
		for _, e := range entries {
			if !t.showHidden && strings.HasPrefix(e.Name(), ".") {
				continue
			}
			n.Children = append(n.Children, &Node{
				Name:  e.Name(),
				Path:  filepath.Join(n.Path, e.Name()),
				IsDir: e.IsDir(),
				Depth: n.Depth + 1,
			})
		}
		// Directories first, each group alphabetical.
		sort.SliceStable(n.Children, func(i, j int) bool {
			a, b := n.Children[i], n.Children[j]
			if a.IsDir != b.IsDir {
				return a.IsDir
			}
			return a.Name < b.Name
		})
		n.loaded = true
	}
	n.Expanded = true
	return nil
}

// reflatten rebuilds the visible row list and clamps the selection.
func (t *Tree) reflatten() {
	t.visible = t.visible[:0]
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			t.visible = append(t.visible, c)
			if c.IsDir && c.Expanded {
				walk(c)
			}
		}
	}
	walk(t.root)
	if t.selected >= len(t.visible) {
		t.selected = len(t.visible) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
}

// Visible returns the flattened rows of the expanded tree, top to
// bottom. The root itself is not a row.
func (t *Tree) Visible() []*Node { return t.visible }

// Selected returns the selection index into Visible.
func (t *Tree) Selected() int { return t.selected }

// SelectedNode returns the selected row, or nil for an empty tree.
func (t *Tree) SelectedNode() *Node {
	if len(t.visible) == 0 {
		return nil
	}
	return t.visible[t.selected]
}

// MoveSelection moves the selection by delta rows, clamped.
func (t *Tree) MoveSelection(delta int) {
	t.selected += delta
	if t.selected < 0 {
		t.selected = 0
	}
	if t.selected >= len(t.visible) {
		t.selected = len(t.visible) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
}

// Toggle expands a collapsed selected directory or collapses an
// expanded one. No-op on files. Returns the load error, if any.
func (t *Tree) Toggle() error {
	n := t.SelectedNode()
	if n == nil || !n.IsDir {
		return nil
	}
	if n.Expanded {
		n.Expanded = false
	} else if err := t.expand(n); err != nil {
		return err
	}
	t.reflatten()
	return nil
}

// JumpTo moves the selection to the first visible row whose name
// fuzzy-matches query. Returns false when nothing matches.
func (t *Tree) JumpTo(query string) bool {
	for i, n := range t.visible {
		if FuzzyMatch(query, n.Name) {
			t.selected = i
			return true
		}
	}
	return false
}
