package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

// TodoService serves the todo collection and individual todos.
// It performs no ownership checks: any caller may list, change or
// delete any todo.
type TodoService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewTodoService creates a new TodoService with the given storage backend.
func NewTodoService(store storage.Store, logger *slog.Logger) *TodoService {
	return &TodoService{store: store, logger: logger}
}

// ListTodos returns every todo across all users.
func (s *TodoService) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.store.ListTodos(r.Context())
	if err != nil {
		writeFailure(w, s.logger, "ListTodos", err)
		return
	}

	s.logger.Debug("ListTodos successful", "count", len(todos))
	writeJSON(w, s.logger, http.StatusOK, todos)
}

// CreateTodo stores a new uncompleted todo. The user_id is trusted as given.
func (s *TodoService) CreateTodo(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeObject(w, r)
	if err != nil {
		writeFailure(w, s.logger, "CreateTodo", err)
		return
	}

	title, err := requiredString(fields, "title")
	if err != nil {
		writeFailure(w, s.logger, "CreateTodo", err)
		return
	}
	details, err := optionalString(fields, "details")
	if err != nil {
		writeFailure(w, s.logger, "CreateTodo", err)
		return
	}
	userID, err := requiredInt(fields, "user_id")
	if err != nil {
		writeFailure(w, s.logger, "CreateTodo", err)
		return
	}

	todo := models.NewTodo(userID, title, details)
	if err := s.store.CreateTodo(r.Context(), todo); err != nil {
		writeFailure(w, s.logger, "CreateTodo", err)
		return
	}

	s.logger.Info("Todo created", "todo_id", todo.ID, "user_id", todo.UserID)
	writeMessage(w, s.logger, "Todo created!")
}

// UpdateTodo applies a partial update: each key present in the body
// overwrites its field, absent keys are left alone.
func (s *TodoService) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	todo, ok := s.lookup(w, r, "UpdateTodo")
	if !ok {
		return
	}

	fields, err := decodeObject(w, r)
	if err != nil {
		writeFailure(w, s.logger, "UpdateTodo", err)
		return
	}
	if err := applyPatch(todo, fields); err != nil {
		writeFailure(w, s.logger, "UpdateTodo", err)
		return
	}

	if err := s.store.UpdateTodo(r.Context(), todo); err != nil {
		writeFailure(w, s.logger, "UpdateTodo", err)
		return
	}

	s.logger.Info("Todo updated", "todo_id", todo.ID)
	writeMessage(w, s.logger, "Todo updated!")
}

// DeleteTodo removes a todo.
func (s *TodoService) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	todo, ok := s.lookup(w, r, "DeleteTodo")
	if !ok {
		return
	}

	if err := s.store.DeleteTodo(r.Context(), todo); err != nil {
		writeFailure(w, s.logger, "DeleteTodo", err)
		return
	}

	s.logger.Info("Todo deleted", "todo_id", todo.ID)
	writeMessage(w, s.logger, "Todo deleted!")
}

// lookup resolves the {id} path value. It writes the 404 (or 500)
// response itself and reports whether the handler should continue.
func (s *TodoService) lookup(w http.ResponseWriter, r *http.Request, op string) (*models.Todo, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, s.logger, http.StatusNotFound, "Todo not found")
		return nil, false
	}

	todo, err := s.store.GetTodo(r.Context(), id)
	if err != nil {
		writeFailure(w, s.logger, op, err)
		return nil, false
	}
	if todo == nil {
		s.logger.Debug("Todo not found", "todo_id", id)
		writeError(w, s.logger, http.StatusNotFound, "Todo not found")
		return nil, false
	}
	return todo, true
}

// applyPatch validates every present field before changing todo, so a
// rejected body leaves it untouched.
func applyPatch(todo *models.Todo, fields map[string]json.RawMessage) error {
	next := *todo

	if _, ok := fields["title"]; ok {
		title, err := requiredString(fields, "title")
		if err != nil {
			return err
		}
		next.Title = title
	}
	if _, ok := fields["details"]; ok {
		details, err := optionalString(fields, "details")
		if err != nil {
			return err
		}
		next.Details = details
	}
	if raw, ok := fields["completed"]; ok {
		completed, err := boolField(raw, "completed")
		if err != nil {
			return err
		}
		next.Completed = completed
	}

	*todo = next
	return nil
}
