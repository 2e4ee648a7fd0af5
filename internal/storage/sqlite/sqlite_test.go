package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmynk/todolist/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "todolist-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID", func(t *testing.T) {
		user := &models.User{Username: "alice", Password: "secret"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}
	})

	t.Run("CreateUser rejects duplicate username", func(t *testing.T) {
		user := &models.User{Username: "alice", Password: "other"}
		if err := store.CreateUser(ctx, user); err == nil {
			t.Error("Expected error for duplicate username, got nil")
		}
	})

	t.Run("FindUser matches username and password", func(t *testing.T) {
		user, err := store.FindUser(ctx, "alice", "secret")
		if err != nil {
			t.Fatalf("FindUser failed: %v", err)
		}
		if user == nil {
			t.Fatal("Expected user, got nil")
		}
		if user.Username != "alice" {
			t.Errorf("Username mismatch: got %s, want alice", user.Username)
		}
	})

	t.Run("FindUser returns nil for wrong password", func(t *testing.T) {
		user, err := store.FindUser(ctx, "alice", "wrong")
		if err != nil {
			t.Fatalf("FindUser failed: %v", err)
		}
		if user != nil {
			t.Errorf("Expected nil user, got %+v", user)
		}
	})

	t.Run("GetUserByUsername", func(t *testing.T) {
		user, err := store.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if user == nil || user.Password != "secret" {
			t.Errorf("Unexpected user: %+v", user)
		}

		missing, err := store.GetUserByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if missing != nil {
			t.Errorf("Expected nil for unknown username, got %+v", missing)
		}
	})
}

func TestSQLiteStore_Todos(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := &models.User{Username: "bob", Password: "pw"}
	if err := store.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("CreateTodo and GetTodo", func(t *testing.T) {
		todo := models.NewTodo(owner.ID, "Buy milk", nil)
		if err := store.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}
		if todo.ID == 0 {
			t.Fatal("Expected todo ID to be assigned")
		}

		got, err := store.GetTodo(ctx, todo.ID)
		if err != nil {
			t.Fatalf("GetTodo failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected todo, got nil")
		}
		if got.Title != "Buy milk" {
			t.Errorf("Title mismatch: got %s, want Buy milk", got.Title)
		}
		if got.Details != nil {
			t.Errorf("Expected nil details, got %q", *got.Details)
		}
		if got.Completed {
			t.Error("Expected new todo to be uncompleted")
		}
		if got.UserID != owner.ID {
			t.Errorf("UserID mismatch: got %d, want %d", got.UserID, owner.ID)
		}
	})

	t.Run("CreateTodo rejects unknown user", func(t *testing.T) {
		todo := models.NewTodo(owner.ID+1000, "Orphan", nil)
		if err := store.CreateTodo(ctx, todo); err == nil {
			t.Error("Expected foreign key error, got nil")
		}
	})

	t.Run("GetTodo returns nil for nonexistent todo", func(t *testing.T) {
		got, err := store.GetTodo(ctx, 99999)
		if err != nil {
			t.Fatalf("GetTodo failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %+v", got)
		}
	})

	t.Run("UpdateTodo persists fields", func(t *testing.T) {
		details := "two litres"
		todo := models.NewTodo(owner.ID, "Shop", &details)
		if err := store.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}

		todo.Completed = true
		todo.Details = nil
		if err := store.UpdateTodo(ctx, todo); err != nil {
			t.Fatalf("UpdateTodo failed: %v", err)
		}

		got, err := store.GetTodo(ctx, todo.ID)
		if err != nil {
			t.Fatalf("GetTodo failed: %v", err)
		}
		if !got.Completed {
			t.Error("Expected completed to be true")
		}
		if got.Details != nil {
			t.Errorf("Expected details to be cleared, got %q", *got.Details)
		}
		if got.Title != "Shop" {
			t.Errorf("Title changed unexpectedly: %s", got.Title)
		}
	})

	t.Run("ListTodos returns insertion order", func(t *testing.T) {
		todos, err := store.ListTodos(ctx)
		if err != nil {
			t.Fatalf("ListTodos failed: %v", err)
		}
		if len(todos) != 2 {
			t.Fatalf("Expected 2 todos, got %d", len(todos))
		}
		if todos[0].Title != "Buy milk" || todos[1].Title != "Shop" {
			t.Errorf("Unexpected order: %s, %s", todos[0].Title, todos[1].Title)
		}
	})

	t.Run("DeleteTodo removes row", func(t *testing.T) {
		todos, _ := store.ListTodos(ctx)
		victim := todos[0]

		if err := store.DeleteTodo(ctx, victim); err != nil {
			t.Fatalf("DeleteTodo failed: %v", err)
		}

		got, err := store.GetTodo(ctx, victim.ID)
		if err != nil {
			t.Fatalf("GetTodo failed: %v", err)
		}
		if got != nil {
			t.Error("Expected todo to be deleted")
		}
	})
}

func TestSQLiteStore_ListTodosEmpty(t *testing.T) {
	store := newTestStore(t)

	todos, err := store.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("ListTodos failed: %v", err)
	}
	if todos == nil {
		t.Error("Expected empty slice, got nil")
	}
	if len(todos) != 0 {
		t.Errorf("Expected 0 todos, got %d", len(todos))
	}
}

func TestSQLiteStore_LengthLimits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := &models.User{Username: "limits", Password: "pw"}
	if err := store.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("values at the limit are accepted", func(t *testing.T) {
		user := &models.User{Username: strings.Repeat("u", 80), Password: strings.Repeat("p", 200)}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Errorf("CreateUser failed: %v", err)
		}

		details := strings.Repeat("d", 500)
		if err := store.CreateTodo(ctx, models.NewTodo(owner.ID, strings.Repeat("t", 200), &details)); err != nil {
			t.Errorf("CreateTodo failed: %v", err)
		}
	})

	t.Run("oversized values are rejected", func(t *testing.T) {
		long := func(n int) string { return strings.Repeat("x", n) }
		details := long(501)

		users := []*models.User{
			{Username: long(81), Password: "pw"},
			{Username: "long-password", Password: long(201)},
		}
		for _, u := range users {
			if err := store.CreateUser(ctx, u); err == nil {
				t.Errorf("Expected error for username len=%d password len=%d", len(u.Username), len(u.Password))
			}
		}

		todos := []*models.Todo{
			models.NewTodo(owner.ID, long(201), nil),
			models.NewTodo(owner.ID, "ok", &details),
		}
		for _, todo := range todos {
			if err := store.CreateTodo(ctx, todo); err == nil {
				t.Errorf("Expected error for title len=%d", len(todo.Title))
			}
		}
	})

	t.Run("update cannot exceed limits", func(t *testing.T) {
		todo := models.NewTodo(owner.ID, "short", nil)
		if err := store.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}
		todo.Title = strings.Repeat("x", 201)
		if err := store.UpdateTodo(ctx, todo); err == nil {
			t.Error("Expected error for oversized title on update")
		}
	})
}

func TestDSN(t *testing.T) {
	query := "?_pragma=foreign_keys%281%29&_pragma=busy_timeout%285000%29"

	tests := []struct {
		path string
		want string
	}{
		{"/tmp/x.db", "file:/tmp/x.db" + query},
		{"./data/todo.db", "file:./data/todo.db" + query},
		{"/tmp/a?b#c%d.db", "file:/tmp/a%3Fb%23c%25d.db" + query},
		{"/tmp/with space/x.db", "file:/tmp/with%20space/x.db" + query},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := dsn(tt.path); got != tt.want {
				t.Errorf("dsn(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewWithURISyntaxInPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "odd?dir#50%")
	dbPath := filepath.Join(dir, "test.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	if err := store.CreateUser(context.Background(), &models.User{Username: "u", Password: "p"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("Expected database file at %s: %v", dbPath, err)
	}
}
