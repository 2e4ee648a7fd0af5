package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies accepted by the JSON handlers.
const maxBodyBytes = 1 << 20

// messageResponse is the body of every successful mutation.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the body of 400, 404 and 500 responses.
type errorResponse struct {
	Error string `json:"error"`
}

// validationError is a client input problem reported as 400.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, logger *slog.Logger, msg string) {
	writeJSON(w, logger, http.StatusOK, messageResponse{Message: msg})
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, errorResponse{Error: msg})
}

// writeFailure maps err to 400 for validation errors and 500 otherwise.
// Internal details are logged, never returned to the client.
func writeFailure(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	var verr *validationError
	if errors.As(err, &verr) {
		writeError(w, logger, http.StatusBadRequest, verr.msg)
		return
	}
	logger.Error(op+" failed", "error", err)
	writeError(w, logger, http.StatusInternalServerError, "internal server error")
}

// decodeObject reads a JSON object body into a map of raw fields so
// handlers can tell absent keys from null ones.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var fields map[string]json.RawMessage
	dec := json.NewDecoder(body)
	if err := dec.Decode(&fields); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return nil, invalid("request body is required")
		case errors.As(err, &maxErr):
			return nil, invalid("request body too large")
		default:
			return nil, invalid("malformed JSON body")
		}
	}
	if fields == nil {
		return nil, invalid("request body must be a JSON object")
	}
	if dec.More() {
		return nil, invalid("request body must contain a single JSON object")
	}
	return fields, nil
}

// requiredString returns a non-empty string field.
func requiredString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return "", invalid("%s is required", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", invalid("%s must be a string", key)
	}
	if strings.TrimSpace(s) == "" {
		return "", invalid("%s is required", key)
	}
	return s, nil
}

// optionalString returns nil when the field is absent or null.
func optionalString(fields map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, invalid("%s must be a string", key)
	}
	return &s, nil
}

func requiredInt(fields map[string]json.RawMessage, key string) (int64, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return 0, invalid("%s is required", key)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, invalid("%s must be an integer", key)
	}
	return n, nil
}

func boolField(raw json.RawMessage, key string) (bool, error) {
	var b bool
	if isNull(raw) {
		return false, invalid("%s must be a boolean", key)
	}
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, invalid("%s must be a boolean", key)
	}
	return b, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
