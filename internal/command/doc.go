// Package command executes command-line (":" mode) text. Plugin
// command binds are consulted before the built-ins, so a plugin can
// claim any command word ahead of the editor's own.
package command
