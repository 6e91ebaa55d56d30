// Package renderer paints the editor onto a tcell screen.
//
// Each frame redraws the sidebar (activity log, help, file tree, or
// search results depending on mode), the text area with its cursor
// indicator and line numbers, the powerline status bar, and the
// centered command box in command mode. The renderer also serves as
// the drawing surface handed to plugin draw hooks, which run after
// the frame is painted and before it is shown.
package renderer
