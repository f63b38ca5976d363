// Package client is a typed HTTP client for the task-tracking API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dreamware/tasktrack/internal/api"
	"github.com/dreamware/tasktrack/internal/identity"
	"github.com/dreamware/tasktrack/internal/storage"
	"github.com/dreamware/tasktrack/internal/todo"
)

var defaultHTTPClient = &http.Client{Timeout: 5 * time.Second}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Message)
}

// Client talks to a single server. Username, when set, is sent in the
// identity header on every request.
type Client struct {
	BaseURL  string
	Username string
	Header   string
	HTTP     *http.Client
}

// New returns a client for baseURL using the default identity header.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Header:  identity.DefaultHeader,
		HTTP:    defaultHTTPClient,
	}
}

// As returns a copy of c acting as username.
func (c *Client) As(username string) *Client {
	cp := *c
	cp.Username = username
	return &cp
}

// CreateUser registers a user.
func (c *Client) CreateUser(ctx context.Context, name, username string) (todo.User, error) {
	var out todo.User
	err := c.do(ctx, http.MethodPost, "/users", api.CreateUserRequest{Name: name, Username: username}, &out)
	return out, err
}

// ListTodos returns the caller's todos.
func (c *Client) ListTodos(ctx context.Context) ([]todo.Todo, error) {
	var out []todo.Todo
	err := c.do(ctx, http.MethodGet, "/todos", nil, &out)
	return out, err
}

// CreateTodo creates a todo. deadline is sent verbatim.
func (c *Client) CreateTodo(ctx context.Context, title, deadline string) (todo.Todo, error) {
	var out todo.Todo
	err := c.do(ctx, http.MethodPost, "/todos", api.TodoRequest{Title: title, Deadline: deadline}, &out)
	return out, err
}

// UpdateTodo replaces a todo's title and deadline.
func (c *Client) UpdateTodo(ctx context.Context, id, title, deadline string) (todo.Todo, error) {
	var out todo.Todo
	err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), api.TodoRequest{Title: title, Deadline: deadline}, &out)
	return out, err
}

// CompleteTodo marks a todo done.
func (c *Client) CompleteTodo(ctx context.Context, id string) (todo.Todo, error) {
	var out todo.Todo
	err := c.do(ctx, http.MethodPatch, "/todos/"+url.PathEscape(id)+"/done", nil, &out)
	return out, err
}

// DeleteTodo deletes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}

// Stats fetches store statistics.
func (c *Client) Stats(ctx context.Context) (storage.StoreStats, error) {
	var out storage.StoreStats
	err := c.do(ctx, http.MethodGet, "/stats", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Username != "" {
		req.Header.Set(c.Header, c.Username)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
