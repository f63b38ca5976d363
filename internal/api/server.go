// Package api exposes the task-tracking store over HTTP.
//
// Routes:
//
//	POST   /users             register a user           201 / 400
//	GET    /todos             list the caller's todos   200
//	POST   /todos             create a todo             201 / 400
//	PUT    /todos/{id}        replace title + deadline  200 / 400 / 404
//	PATCH  /todos/{id}/done   mark a todo done          200 / 404
//	DELETE /todos/{id}        delete a todo             204 / 404
//	GET    /health            liveness                  200
//	GET    /stats             store statistics          200
//
// Every /todos route requires the identity header (see package identity);
// an unresolvable username is answered with 404 before the handler runs.
// Error bodies are {"error": "<message>"}.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/dreamware/tasktrack/internal/identity"
	"github.com/dreamware/tasktrack/internal/storage"
)

// Server routes HTTP requests to the store.
type Server struct {
	store  storage.Store
	logger *log.Logger
	router *mux.Router
}

// NewServer wires the routes for store. identityHeader names the request
// header carrying the caller's username.
func NewServer(store storage.Store, logger *log.Logger, identityHeader string) *Server {
	s := &Server{
		store:  store,
		logger: logger,
		router: mux.NewRouter(),
	}

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	s.router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	s.router.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	s.router.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)

	resolve := identity.Middleware(store, identityHeader)
	s.router.Handle("/todos", resolve(http.HandlerFunc(s.handleListTodos))).Methods(http.MethodGet)
	s.router.Handle("/todos", resolve(http.HandlerFunc(s.handleCreateTodo))).Methods(http.MethodPost)
	s.router.Handle("/todos/{id}", resolve(http.HandlerFunc(s.handleUpdateTodo))).Methods(http.MethodPut)
	s.router.Handle("/todos/{id}", resolve(http.HandlerFunc(s.handleDeleteTodo))).Methods(http.MethodDelete)
	s.router.Handle("/todos/{id}/done", resolve(http.HandlerFunc(s.handleCompleteTodo))).Methods(http.MethodPatch)

	return s
}

// ServeHTTP dispatches the request and logs its outcome at debug level.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	s.router.ServeHTTP(rec, r)

	s.logger.Debug("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
