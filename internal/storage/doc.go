// Package storage holds the process-resident user store that backs the
// task-tracking service, together with every user's todo list.
//
// # Overview
//
// The store is the sole source of truth. It lives for the lifetime of the
// process and is created once in main, then handed to the HTTP layer:
//
//	┌─────────────────────────────────────┐
//	│        HTTP handlers (api)          │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│          Store interface            │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│   MemoryStore (map + RWMutex)       │
//	│   username → *todo.User             │
//	└─────────────────────────────────────┘
//
// # Core Interface
//
// Store: user registration and per-user todo operations
//   - CreateUser(name, username) - Register a user, ErrUserExists on duplicates
//   - FindUser(username) - Resolve a user, ErrUserNotFound when absent
//   - ListTodos / CreateTodo / UpdateTodo / CompleteTodo / DeleteTodo
//   - Stats() - Counts of users, todos and successful mutations
//
// The user dimension is append-only: there is no removal and no update of
// identity fields.
//
// # Concurrency
//
// A single sync.RWMutex guards the user map and every user's todo slice.
// Reads (FindUser, ListTodos, Stats) share the read lock; every mutation takes
// the write lock, so two concurrent creates against the same user are applied
// one after the other. Operation counters are maintained with sync/atomic.
//
// # Data Safety
//
// Every User and Todo returned by the store is a copy. Mutating a returned
// value never affects stored state.
//
// # Testing
//
// WithIDGenerator and WithClock make ids and created_at timestamps
// deterministic:
//
//	store := NewMemoryStore(
//		WithIDGenerator(sequentialIDs()),
//		WithClock(func() time.Time { return fixed }),
//	)
package storage
