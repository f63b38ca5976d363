package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dreamware/tasktrack/internal/identity"
	"github.com/dreamware/tasktrack/internal/todo"
)

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("bad request")

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	// Header values arrive trimmed, so a padded username could never be
	// resolved again.
	username := strings.TrimSpace(req.Username)
	if username == "" {
		s.fail(w, r, fmt.Errorf("%w: username is required", errBadRequest))
		return
	}

	user, err := s.store.CreateUser(req.Name, username)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Info("user created", "username", user.Username, "id", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	todos, err := s.store.ListTodos(user.Username)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req TodoRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	deadline, err := todo.ParseDeadline(req.Deadline)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.store.CreateTodo(user.Username, req.Title, deadline)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]

	var req TodoRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	deadline, err := todo.ParseDeadline(req.Deadline)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	updated, err := s.store.UpdateTodo(user.Username, id, req.Title, deadline)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleCompleteTodo(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	done, err := s.store.CompleteTodo(user.Username, mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, done)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.store.DeleteTodo(user.Username, mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Stats())
}

// caller returns the user resolved by identity.Middleware. A route mounted
// without the middleware fails with ErrUserNotFound.
func caller(r *http.Request) (todo.User, error) {
	user, ok := identity.FromContext(r.Context())
	if !ok {
		return todo.User{}, todo.ErrUserNotFound
	}
	return user, nil
}

// decode reads a JSON body into v.
func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body", errBadRequest)
	}
	return nil
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, todo.ErrUserExists),
		errors.Is(err, todo.ErrInvalidDeadline),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, todo.ErrTodoNotFound),
		errors.Is(err, todo.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
