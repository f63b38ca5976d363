// Package identity resolves the acting user of a request from a header that
// carries a raw username.
//
// This is a lookup, not authentication: the header is trusted as sent. The
// middleware must wrap every todo route and never the user registration
// route.
package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dreamware/tasktrack/internal/todo"
)

// DefaultHeader is the request header carrying the username.
const DefaultHeader = "username"

// contextKey is a private type to avoid context key collisions.
type contextKey string

// userKey stores the resolved todo.User in the request context.
const userKey contextKey = "user"

// Finder looks users up by username.
type Finder interface {
	FindUser(username string) (todo.User, error)
}

// Middleware returns an http middleware that resolves the username found in
// header and attaches the matching user to the request context. Requests with
// a missing header or an unknown username are answered with 404 and never
// reach next.
func Middleware(finder Finder, header string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := strings.TrimSpace(r.Header.Get(header))
			if username == "" {
				reject(w)
				return
			}

			user, err := finder.FindUser(username)
			if err != nil {
				reject(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user todo.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// FromContext returns the user attached by Middleware.
func FromContext(ctx context.Context) (todo.User, bool) {
	user, ok := ctx.Value(userKey).(todo.User)
	return user, ok
}

// reject answers with the same {"error": "..."} body the api package writes
// for every other failure. The api tests pin both against each other.
func reject(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: todo.ErrUserNotFound.Error()})
}
