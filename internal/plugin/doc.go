// Package plugin implements the declarative plugin subsystem: a
// compiler for .plug definition sources and a runtime that owns the
// compiled plugins, dispatches their key and command binds ahead of
// the built-in handlers, runs registered draw hooks each frame and
// persists enable state across sessions.
//
// A failing plugin never crashes the editor: action errors are
// contained, the pre-invocation mode, buffer selection and buffer
// content are restored, and the failure is surfaced through the status
// bar and activity log.
package plugin
