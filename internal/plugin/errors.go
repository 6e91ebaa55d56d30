package plugin

import "errors"

// Errors returned by the compiler and runtime.
var (
	// ErrMissingTrigger marks a bind line with no trigger word; the
	// whole definition source is abandoned.
	ErrMissingTrigger = errors.New("bind has no trigger")

	// ErrUnknownPlugin is returned by toggles naming no loaded plugin.
	ErrUnknownPlugin = errors.New("unknown plugin")

	// ErrUnknownBind is returned by bind toggles naming no such bind.
	ErrUnknownBind = errors.New("unknown bind")
)
