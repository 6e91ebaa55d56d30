package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/shrub4thedub/shrimp/internal/plugin/api"
)

// Draw paints plugin text at a 1-based (row, col) screen position,
// implementing the plugin drawing surface. Empty style fields fall
// back to the theme's text style.
func (r *Renderer) Draw(row, col int, text string, style api.Style) {
	st := r.theme.Text
	if style.FG != "" {
		st = st.Foreground(tcell.GetColor(style.FG))
	}
	if style.BG != "" {
		st = st.Background(tcell.GetColor(style.BG))
	}
	st = st.Bold(style.Bold).Reverse(style.Reverse).Underline(style.Underline)

	width, _ := r.screen.Size()
	x := col - 1
	r.drawText(x, row-1, width-x, st, text)
}

// Size reports the screen size in cells.
func (r *Renderer) Size() (int, int) { return r.screen.Size() }
