package service

import (
	"bytes"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSONLogsToInjectedLogger(t *testing.T) {
	var injected, global bytes.Buffer

	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&global, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := slog.New(slog.NewTextHandler(&injected, nil))
	rec := httptest.NewRecorder()

	// +Inf cannot be encoded as JSON.
	writeJSON(rec, logger, http.StatusOK, map[string]float64{"x": math.Inf(1)})

	if !strings.Contains(injected.String(), "Failed to encode response") {
		t.Errorf("expected encode failure on injected logger, got %q", injected.String())
	}
	if global.Len() != 0 {
		t.Errorf("expected nothing on the default logger, got %q", global.String())
	}
}
