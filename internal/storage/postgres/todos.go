package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/todolist/internal/models"
)

const todoColumns = "id, title, details, completed, user_id"

// CreateTodo inserts a new todo and records the generated ID.
func (s *PostgresStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	err := s.pool.QueryRow(ctx,
		"INSERT INTO todos (title, details, completed, user_id) VALUES ($1, $2, $3, $4) RETURNING id",
		todo.Title, todo.Details, todo.Completed, todo.UserID,
	).Scan(&todo.ID)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// ListTodos retrieves all todos ordered by ID.
func (s *PostgresStore) ListTodos(ctx context.Context) ([]*models.Todo, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+todoColumns+" FROM todos ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	todos, err := pgx.CollectRows(rows, scanTodo)
	if err != nil {
		return nil, fmt.Errorf("failed to scan todos: %w", err)
	}
	if todos == nil {
		todos = []*models.Todo{}
	}
	return todos, nil
}

// GetTodo retrieves a todo by ID. Returns nil, nil if it does not exist.
func (s *PostgresStore) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+todoColumns+" FROM todos WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	todo, err := pgx.CollectOneRow(rows, scanTodo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// UpdateTodo writes title, details and completed back to the row.
func (s *PostgresStore) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	_, err := s.pool.Exec(ctx,
		"UPDATE todos SET title = $1, details = $2, completed = $3 WHERE id = $4",
		todo.Title, todo.Details, todo.Completed, todo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// DeleteTodo removes the todo's row.
func (s *PostgresStore) DeleteTodo(ctx context.Context, todo *models.Todo) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM todos WHERE id = $1", todo.ID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func scanTodo(row pgx.CollectableRow) (*models.Todo, error) {
	todo := &models.Todo{}
	err := row.Scan(&todo.ID, &todo.Title, &todo.Details, &todo.Completed, &todo.UserID)
	return todo, err
}
