// Package logger routes slog output to a file. A terminal editor owns
// the screen, so diagnostics can never go to stderr while running.
package logger
