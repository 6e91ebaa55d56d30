// Package editor holds the core editing state: the line-oriented text
// buffer with its cursor, scroll and mark invariants, and the editor
// context that aggregates open buffers, the active mode, clipboards and
// transient input state.
//
// Nothing in this package touches the terminal. Buffers perform no I/O
// except the explicit save operations, and the context mutates only its
// own state. Both are mutated exclusively by the single foreground
// event loop; plugin actions receive the same context by reference and
// operate under the same invariants.
//
// Invariants maintained after every mutation:
//   - lines is never empty; an emptied buffer is normalized to one
//     empty line
//   - 0 <= cursorLine < len(lines)
//   - 0 <= cursorCol <= len(lines[cursorLine])
//   - 0 <= scroll <= max(0, len(lines)-visibleHeight)
package editor
