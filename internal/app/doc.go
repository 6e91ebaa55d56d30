// Package app assembles the editor and runs its event loop.
//
// Key events flow through two stages: enabled plugin key binds for the
// active mode run first, then the mode handlers. Frames are painted by
// the renderer, plugin draw hooks run on top, and the screen is shown.
// Plugin directory changes arrive as posted screen events so reloads
// happen on the event loop, never concurrently with editing state.
package app
