// Package key defines the terminal-independent keystroke model used by
// the modal dispatcher. Terminal events are decoded once at the loop
// boundary by FromTcell; everything downstream sees only Event values.
package key
