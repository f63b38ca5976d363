package storage

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dreamware/tasktrack/internal/todo"
)

// Store defines the user and todo storage operations
// All implementations must be thread-safe for concurrent access
type Store interface {
	// CreateUser registers a new user with an empty todo list
	// Returns todo.ErrUserExists if the username is taken
	CreateUser(name, username string) (todo.User, error)

	// FindUser looks a user up by username
	// Returns todo.ErrUserNotFound if no such user exists
	FindUser(username string) (todo.User, error)

	// ListTodos returns the user's todos in creation order
	ListTodos(username string) ([]todo.Todo, error)

	// CreateTodo appends a new, not-done todo to the user's list
	CreateTodo(username, title string, deadline time.Time) (todo.Todo, error)

	// UpdateTodo replaces the title and deadline of an existing todo
	UpdateTodo(username, id, title string, deadline time.Time) (todo.Todo, error)

	// CompleteTodo marks a todo as done
	CompleteTodo(username, id string) (todo.Todo, error)

	// DeleteTodo removes a todo from the user's list
	DeleteTodo(username, id string) error

	// Stats returns storage statistics
	Stats() StoreStats
}

// StoreStats contains statistics about the store
type StoreStats struct {
	Users     int            `json:"users"`      // Number of registered users
	Todos     int            `json:"todos"`      // Number of todos across all users
	Completed int            `json:"completed"`  // Number of todos marked done
	Ops       OperationStats `json:"operations"` // Mutation counters
}

// OperationStats counts successful mutations since the store was created
type OperationStats struct {
	UsersCreated uint64 `json:"users_created"`
	Creates      uint64 `json:"creates"`
	Updates      uint64 `json:"updates"`
	Completes    uint64 `json:"completes"`
	Deletes      uint64 `json:"deletes"`
}

// Option configures a MemoryStore
type Option func(*MemoryStore)

// WithIDGenerator replaces the UUID generator used for user and todo ids
func WithIDGenerator(fn func() string) Option {
	return func(m *MemoryStore) { m.newID = fn }
}

// WithClock replaces the clock used to stamp created_at
func WithClock(fn func() time.Time) Option {
	return func(m *MemoryStore) { m.now = fn }
}

// MemoryStore implements Store with in-memory storage
// Uses sync.RWMutex for thread-safe concurrent access
type MemoryStore struct {
	mu    sync.RWMutex          // Protects users and every user's todos
	users map[string]*todo.User // Keyed by username
	ops   OperationStats        // Updated atomically

	newID func() string
	now   func() time.Time
}

// NewMemoryStore creates a new, empty in-memory store
func NewMemoryStore(opts ...Option) *MemoryStore {
	m := &MemoryStore{
		users: make(map[string]*todo.User),
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateUser registers a new user
// Returns a copy of the user to prevent external modification
func (m *MemoryStore) CreateUser(name, username string) (todo.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[username]; exists {
		return todo.User{}, todo.ErrUserExists
	}

	u := &todo.User{
		ID:       m.newID(),
		Name:     name,
		Username: username,
	}
	m.users[username] = u
	atomic.AddUint64(&m.ops.UsersCreated, 1)

	return u.Clone(), nil
}

// FindUser looks a user up by username
// Returns a copy of the user to prevent external modification
func (m *MemoryStore) FindUser(username string) (todo.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, exists := m.users[username]
	if !exists {
		return todo.User{}, todo.ErrUserNotFound
	}
	return u.Clone(), nil
}

// ListTodos returns a copy of the user's todos in creation order
func (m *MemoryStore) ListTodos(username string) ([]todo.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, exists := m.users[username]
	if !exists {
		return nil, todo.ErrUserNotFound
	}
	return u.List(), nil
}

// CreateTodo appends a new todo stamped with the store's clock
func (m *MemoryStore) CreateTodo(username, title string, deadline time.Time) (todo.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.users[username]
	if !exists {
		return todo.Todo{}, todo.ErrUserNotFound
	}

	t := todo.Todo{
		ID:        m.newID(),
		Title:     title,
		Deadline:  deadline,
		CreatedAt: m.now().UTC(),
	}
	u.Add(t)
	atomic.AddUint64(&m.ops.Creates, 1)

	return t, nil
}

// UpdateTodo replaces the title and deadline of one of the user's todos
func (m *MemoryStore) UpdateTodo(username, id, title string, deadline time.Time) (todo.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.users[username]
	if !exists {
		return todo.Todo{}, todo.ErrUserNotFound
	}

	t, err := u.Update(id, title, deadline)
	if err != nil {
		return todo.Todo{}, err
	}
	atomic.AddUint64(&m.ops.Updates, 1)
	return t, nil
}

// CompleteTodo marks one of the user's todos as done
// Idempotent: completing a done todo succeeds
func (m *MemoryStore) CompleteTodo(username, id string) (todo.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.users[username]
	if !exists {
		return todo.Todo{}, todo.ErrUserNotFound
	}

	t, err := u.Complete(id)
	if err != nil {
		return todo.Todo{}, err
	}
	atomic.AddUint64(&m.ops.Completes, 1)
	return t, nil
}

// DeleteTodo removes one of the user's todos
func (m *MemoryStore) DeleteTodo(username, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.users[username]
	if !exists {
		return todo.ErrUserNotFound
	}

	if err := u.Remove(id); err != nil {
		return err
	}
	atomic.AddUint64(&m.ops.Deletes, 1)
	return nil
}

// Stats returns storage statistics
func (m *MemoryStore) Stats() StoreStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := StoreStats{Users: len(m.users)}
	for _, u := range m.users {
		stats.Todos += len(u.Todos)
		for _, t := range u.Todos {
			if t.Done {
				stats.Completed++
			}
		}
	}

	stats.Ops = OperationStats{
		UsersCreated: atomic.LoadUint64(&m.ops.UsersCreated),
		Creates:      atomic.LoadUint64(&m.ops.Creates),
		Updates:      atomic.LoadUint64(&m.ops.Updates),
		Completes:    atomic.LoadUint64(&m.ops.Completes),
		Deletes:      atomic.LoadUint64(&m.ops.Deletes),
	}
	return stats
}
