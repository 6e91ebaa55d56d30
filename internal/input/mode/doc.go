// Package mode implements the modal key dispatcher: one handler per
// editing mode, routed by a Manager that runs Exit/Enter hooks when a
// handler switches the context's mode.
//
// Handlers mutate the shared editor context directly. Plugin key binds
// are consulted before the manager; a key that reaches a handler is
// known to have no plugin bind for the active mode.
package mode
