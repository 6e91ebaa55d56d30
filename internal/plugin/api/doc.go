// Package api defines the capability surface handed to plugin actions:
// logging, status updates, snapshotting and draw-hook drawing. Actions
// never see editor internals beyond the context bridge and this set.
package api
