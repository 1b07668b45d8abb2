package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/froliik/froliik-backend/pkg/logger"
)

func newCaptureLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "api-test",
		Level:       zerolog.InfoLevel,
		Output:      buf,
	})
}

func completionEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("parse log line %q: %v", line, err)
		}
		if entry["message"] == "request.complete" {
			return entry
		}
	}
	t.Fatalf("no request.complete entry in: %s", buf.String())
	return nil
}

func TestLoggingRecordsHandlerStatus(t *testing.T) {
	var buf bytes.Buffer
	mw := Logging(newCaptureLogger(&buf))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/quests/missing", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 passed through, got %d", resp.Code)
	}
	entry := completionEntry(t, &buf)
	if got, ok := entry["status"].(float64); !ok || int(got) != http.StatusNotFound {
		t.Fatalf("expected status 404 in log entry, got %v", entry["status"])
	}
	if entry["path"] != "/api/v1/quests/missing" {
		t.Fatalf("expected request path in log entry, got %v", entry["path"])
	}
}

func TestLoggingDefaultsImplicitStatusToOK(t *testing.T) {
	var buf bytes.Buffer
	mw := Logging(newCaptureLogger(&buf))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	mw(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))

	entry := completionEntry(t, &buf)
	if got, ok := entry["status"].(float64); !ok || int(got) != http.StatusOK {
		t.Fatalf("expected implicit 200 in log entry, got %v", entry["status"])
	}
}
