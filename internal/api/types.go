package api

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// TodoRequest is the body of POST /todos and PUT /todos/{id}.
// Deadline is kept as a string so that parsing errors surface as
// todo.ErrInvalidDeadline instead of a generic decode failure.
type TodoRequest struct {
	Title    string `json:"title"`
	Deadline string `json:"deadline"`
}
