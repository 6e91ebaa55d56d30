package api

// Style describes the text attributes a plugin may request when
// drawing. Colors are names or "#rrggbb" strings; the renderer maps
// them onto the terminal.
type Style struct {
	FG        string
	BG        string
	Bold      bool
	Reverse   bool
	Underline bool
}

// Surface is the drawing target for plugin draw calls. The renderer
// implements it; during the render-hook pass the runtime points the
// capability object at the live screen.
type Surface interface {
	// Draw writes text at (row, col) in screen coordinates.
	Draw(row, col int, text string, style Style)

	// Size returns the surface dimensions in cells.
	Size() (width, height int)
}

// Capabilities is the restricted function set injected into a plugin
// action invocation. It is rebuilt fresh for every call.
type Capabilities struct {
	// Log appends to the bounded recent-activity log.
	Log func(msg string)

	// Status sets the transient status-bar message.
	Status func(msg string)

	// Snapshot captures the current buffer's lines into the bounded
	// snapshot history. Reports whether a snapshot was taken.
	Snapshot func() bool

	// Draw paints onto the current surface. No-op outside the
	// render-hook pass.
	Draw func(row, col int, text string, style Style)

	// AddDrawHook registers a render-time callback. The hook value is
	// opaque to this package; the runtime owns its representation.
	AddDrawHook func(hook any)

	// RemoveDrawHook unregisters a previously added callback.
	RemoveDrawHook func(hook any)
}
