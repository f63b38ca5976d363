package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

var (
	// ErrUserExists is returned when a username is already registered.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is returned when a username cannot be resolved.
	ErrUserNotFound = errors.New("user not found")

	// ErrTodoNotFound is returned when a todo id does not belong to the user.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrInvalidDeadline is returned when a deadline cannot be parsed.
	ErrInvalidDeadline = errors.New("invalid deadline")
)

// dateLayout is the calendar-date form accepted for deadlines.
const dateLayout = "2006-01-02"

// User is a registered identity owning a private, ordered list of todos.
// Insertion order of Todos is the listing order.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Todos    []Todo `json:"todos"`
}

// Todo is a single task owned by exactly one User.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	Deadline  time.Time `json:"deadline"`
	CreatedAt time.Time `json:"created_at"`
}

// ParseDeadline accepts an RFC 3339 timestamp or a YYYY-MM-DD date.
// Dates resolve to midnight UTC; timestamps are normalized to UTC.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDeadline)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, s)
	}
	return t.UTC(), nil
}

// Clone returns a deep copy of the user.
// The todo slice is always non-nil so it encodes as [] rather than null.
func (u *User) Clone() User {
	c := *u
	c.Todos = u.List()
	return c
}

// List returns a copy of the user's todos in stored order.
func (u *User) List() []Todo {
	out := slices.Clone(u.Todos)
	if out == nil {
		out = []Todo{}
	}
	return out
}

// Add appends t to the end of the user's todos.
func (u *User) Add(t Todo) {
	u.Todos = append(u.Todos, t)
}

// index returns the position of the first todo with the given id, or -1.
func (u *User) index(id string) int {
	return slices.IndexFunc(u.Todos, func(t Todo) bool { return t.ID == id })
}

// Update replaces the title and deadline of the todo with the given id.
// Done, ID and CreatedAt are left untouched.
func (u *User) Update(id, title string, deadline time.Time) (Todo, error) {
	i := u.index(id)
	if i < 0 {
		return Todo{}, ErrTodoNotFound
	}
	u.Todos[i].Title = title
	u.Todos[i].Deadline = deadline
	return u.Todos[i], nil
}

// Complete marks the todo with the given id as done. Completing an already
// done todo succeeds without change.
func (u *User) Complete(id string) (Todo, error) {
	i := u.index(id)
	if i < 0 {
		return Todo{}, ErrTodoNotFound
	}
	u.Todos[i].Done = true
	return u.Todos[i], nil
}

// Remove deletes the todo with the given id, keeping the order of the rest.
func (u *User) Remove(id string) error {
	i := u.index(id)
	if i < 0 {
		return ErrTodoNotFound
	}
	u.Todos = slices.Delete(u.Todos, i, i+1)
	return nil
}
