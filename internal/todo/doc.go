// Package todo defines the task-tracking data model and the operations that
// act on a single user's todo list.
//
// # Overview
//
// A User owns an ordered slice of Todo values. Every todo operation works on
// that slice in place:
//
//	┌──────────────────────────────┐
//	│ User{ID, Name, Username}     │
//	│   Todos: [t0, t1, t2, ...]   │
//	└──────────────────────────────┘
//	      │ Add      → append
//	      │ Update   → title + deadline in place
//	      │ Complete → done = true (idempotent)
//	      │ Remove   → delete, order of rest kept
//
// Lookups by id resolve to the first match. Ids are UUIDs generated by the
// store, so in practice there is only ever one.
//
// # Errors
//
// The package exports the sentinel errors used across the service:
// ErrUserExists, ErrUserNotFound, ErrTodoNotFound and ErrInvalidDeadline.
// Callers match them with errors.Is.
//
// # Thread Safety
//
// User methods are not synchronized. The storage package serializes access.
package todo
