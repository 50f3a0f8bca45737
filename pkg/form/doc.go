// Package form holds the task-creation FormData record and the pure
// transitions applied to it. Callers build new state with Reduce and derive
// field validity with Validate; nothing in this package performs I/O or keeps
// state between calls.
package form
