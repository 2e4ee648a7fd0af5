// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/todolist/internal/models"
)

// Store defines the persistence operations for users and todos.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
//
// Every operation touches a single row and runs in the store's implicit
// per-statement transaction. Lookups that find nothing return nil and a
// nil error.
type Store interface {
	// CreateUser persists a new user. The user.ID field is populated by the store.
	// A duplicate username is rejected by the store's unique constraint.
	CreateUser(ctx context.Context, user *models.User) error

	// FindUser returns the user whose username and password both match exactly.
	FindUser(ctx context.Context, username, password string) (*models.User, error)

	// GetUserByUsername returns the user with the given username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CreateTodo persists a new todo. The todo.ID field is populated by the store.
	CreateTodo(ctx context.Context, todo *models.Todo) error

	// ListTodos returns every todo across all users in insertion order.
	ListTodos(ctx context.Context) ([]*models.Todo, error)

	// GetTodo retrieves a todo by its ID.
	GetTodo(ctx context.Context, id int64) (*models.Todo, error)

	// UpdateTodo overwrites the mutable fields of an existing todo.
	UpdateTodo(ctx context.Context, todo *models.Todo) error

	// DeleteTodo removes a todo.
	DeleteTodo(ctx context.Context, todo *models.Todo) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
