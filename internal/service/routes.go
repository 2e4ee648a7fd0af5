// Package service implements the HTTP/JSON handlers of the todo API.
package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is satisfied by storage.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Register mounts the API routes on mux.
func Register(mux *http.ServeMux, authSvc *AuthService, todoSvc *TodoService) {
	mux.HandleFunc("POST /signup", authSvc.Signup)
	mux.HandleFunc("POST /signin", authSvc.Signin)

	mux.HandleFunc("GET /todos", todoSvc.ListTodos)
	mux.HandleFunc("POST /todos", todoSvc.CreateTodo)
	mux.HandleFunc("PATCH /todos/{id}", todoSvc.UpdateTodo)
	mux.HandleFunc("DELETE /todos/{id}", todoSvc.DeleteTodo)
}

// Health reports 200 when the store answers a ping within two seconds.
func Health(store Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.Error("Health check failed", "error", err)
			writeJSON(w, logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}
