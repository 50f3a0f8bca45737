// Package session hosts the form controller for a single task-creation
// session. A Controller owns one FormData record, applies form actions to it,
// keeps the derived validity current and runs the simulated submission
// protocol (submitting, success, reset, success cleared after a delay).
//
// Each Controller is independent; there is no state shared between sessions.
package session
