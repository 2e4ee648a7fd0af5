package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/todolist/internal/models"
)

// CreateTodo persists a new todo to the database.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO todos (title, details, completed, user_id) VALUES (?, ?, ?, ?)",
		todo.Title, nullString(todo.Details), todo.Completed, todo.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read todo id: %w", err)
	}
	todo.ID = id

	return nil
}

// ListTodos retrieves all todos ordered by ID.
func (s *SQLiteStore) ListTodos(ctx context.Context) ([]*models.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, details, completed, user_id FROM todos ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []*models.Todo{}
	for rows.Next() {
		todo := &models.Todo{}
		var details sql.NullString
		if err := rows.Scan(&todo.ID, &todo.Title, &details, &todo.Completed, &todo.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todo.Details = stringPtr(details)
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// GetTodo retrieves a todo by ID. Returns nil, nil if it does not exist.
func (s *SQLiteStore) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	todo := &models.Todo{}
	var details sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, details, completed, user_id FROM todos WHERE id = ?",
		id,
	).Scan(&todo.ID, &todo.Title, &details, &todo.Completed, &todo.UserID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	todo.Details = stringPtr(details)

	return todo, nil
}

// UpdateTodo writes title, details and completed back to the row.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE todos SET title = ?, details = ?, completed = ? WHERE id = ?",
		todo.Title, nullString(todo.Details), todo.Completed, todo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// DeleteTodo removes the todo's row.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, todo *models.Todo) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", todo.ID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
