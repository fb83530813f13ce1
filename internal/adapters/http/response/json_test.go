package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kunlun/internal/logger"
)

func TestWriteValidationErrorSummarizes(t *testing.T) {
	tests := []struct {
		name   string
		errors map[string]string
		want   string
	}{
		{"single", map[string]string{"uptime": "missing required field: uptime"}, "missing required field: uptime"},
		{"two", map[string]string{
			"uptime": "missing required field: uptime",
			"name":   "missing required field: name",
		}, "missing required field: name (and 1 more error)"},
		{"three", map[string]string{
			"uptime":     "missing required field: uptime",
			"name":       "missing required field: name",
			"machine_id": "missing required field: machine_id",
		}, "missing required field: machine_id (and 2 more errors)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewJSONWriter(logger.Nop()).WriteValidationError(rec, tt.errors)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}

			var body Response
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Success || body.Error == nil || *body.Error != tt.want {
				t.Errorf("unexpected body: %s", rec.Body.String())
			}
		})
	}
}

func TestWriteSetsEnvelope(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	w := &JSONWriter{log: logger.Nop(), now: func() time.Time { return at }}

	rec := httptest.NewRecorder()
	w.Write(rec, http.StatusOK, &Response{Data: map[string]int{"client_id": 1}})

	want := `{"success":true,"timestamp":"2026-03-01T12:00:00Z","data":{"client_id":1},"error":null}` + "\n"
	if rec.Body.String() != want {
		t.Errorf("body = %s, want %s", rec.Body.String(), want)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
}
