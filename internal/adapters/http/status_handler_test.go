package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/kylelemons/godebug/pretty"

	"kunlun/internal/adapters/ws/statusws"
	"kunlun/internal/config"
	"kunlun/internal/domain"
	"kunlun/internal/logger"
)

type fakeStatusService struct {
	reports   []domain.StatusReport
	latest    []domain.Status
	ingestErr error
}

func (f *fakeStatusService) Ingest(_ context.Context, report domain.StatusReport) (*domain.IngestResult, error) {
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	f.reports = append(f.reports, report)
	return &domain.IngestResult{ClientID: 7, Name: *report.Name, Location: report.Location}, nil
}

func (f *fakeStatusService) Latest(context.Context) ([]domain.Status, error) {
	return f.latest, nil
}

func (f *fakeStatusService) Cleanup(context.Context, time.Duration) (int64, error) {
	return 0, nil
}

type envelope struct {
	Success   bool              `json:"success"`
	Timestamp string            `json:"timestamp"`
	Data      json.RawMessage   `json:"data"`
	Error     *string           `json:"error"`
	Errors    map[string]string `json:"errors"`
}

func newTestRouter(t *testing.T, svc domain.StatusService, rateLimit int) http.Handler {
	t.Helper()

	hub := statusws.NewHub(context.Background(), logger.Nop())
	t.Cleanup(hub.Stop)

	cfg := &config.Server{RateLimit: rateLimit, RateWindow: time.Minute}
	return NewRouter(cfg, &RouterDeps{
		WsStatus: statusws.NewHandler(hub, logger.Nop()),
		Status:   NewStatusHandler(svc, logger.Nop()),
	})
}

func validForm() url.Values {
	return url.Values{
		"machine_id":    {"0123456789abcdef0123456789abcdef"},
		"name":          {"web-1"},
		"system":        {"Debian GNU/Linux 12 (bookworm)"},
		"location":      {"Frankfurt"},
		"uptime":        {"3600"},
		"cpu_percent":   {"12.50"},
		"mem_total":     {"16000.0"},
		"process_count": {"120"},
	}
}

func postForm(h http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "203.0.113.9:5000"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json body %q: %v", rec.Body.String(), err)
	}
	if env.Timestamp == "" {
		t.Error("timestamp missing from envelope")
	}
	return env
}

func TestStoreAcceptsReport(t *testing.T) {
	svc := &fakeStatusService{}
	h := newTestRouter(t, svc, 100)

	rec := postForm(h, validForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if !env.Success || env.Error != nil {
		t.Errorf("unexpected envelope: %+v", env)
	}

	var got domain.IngestResult
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	want := domain.IngestResult{ClientID: 7, Name: "web-1", Location: "Frankfurt"}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}

	if len(svc.reports) != 1 {
		t.Fatalf("service got %d reports, want 1", len(svc.reports))
	}
	r := svc.reports[0]
	if *r.MachineID != "0123456789abcdef0123456789abcdef" || *r.Uptime != "3600" || r.CPUPercent != "12.50" || r.NetTx != "" {
		t.Errorf("report decoded wrongly: %+v", r)
	}

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestStoreRejectsIncompleteReport(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(url.Values)
		wantField string
	}{
		{"missing uptime", func(v url.Values) { v.Del("uptime") }, "uptime"},
		{"missing machine id", func(v url.Values) { v.Del("machine_id") }, "machine_id"},
		{"empty machine id", func(v url.Values) { v.Set("machine_id", "") }, "machine_id"},
		{"missing system", func(v url.Values) { v.Del("system") }, "system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeStatusService{}
			h := newTestRouter(t, svc, 100)

			form := validForm()
			tt.mutate(form)

			rec := postForm(h, form)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}

			env := decodeEnvelope(t, rec)
			if env.Success {
				t.Error("success should be false")
			}
			if _, ok := env.Errors[tt.wantField]; !ok {
				t.Errorf("errors %v lack %q", env.Errors, tt.wantField)
			}
			if len(svc.reports) != 0 {
				t.Error("invalid report reached the service")
			}
		})
	}
}

func TestStoreAllowsEmptyName(t *testing.T) {
	svc := &fakeStatusService{}
	h := newTestRouter(t, svc, 100)

	form := validForm()
	form.Set("name", "")

	if rec := postForm(h, form); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestStoreServiceFailure(t *testing.T) {
	svc := &fakeStatusService{ingestErr: errors.New("disk I/O error")}
	h := newTestRouter(t, svc, 100)

	rec := postForm(h, validForm())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == nil || *env.Error != "database operation failed" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestStoreRateLimited(t *testing.T) {
	svc := &fakeStatusService{}
	h := newTestRouter(t, svc, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, postForm(h, validForm()).Code)
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	if diff := pretty.Compare(want, codes); diff != "" {
		t.Errorf("status codes mismatch (-want +got):\n%s", diff)
	}
	if len(svc.reports) != 2 {
		t.Errorf("service got %d reports, want 2", len(svc.reports))
	}
}

func TestLatest(t *testing.T) {
	svc := &fakeStatusService{latest: []domain.Status{
		{ID: 3, ClientID: 1, MachineID: "aa", Name: "web-1", CPUPercent: 12.5},
	}}
	h := newTestRouter(t, svc, 100)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/latest", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-cache" {
		t.Errorf("Cache-Control = %q", got)
	}

	env := decodeEnvelope(t, rec)
	var got []domain.Status
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Compare(svc.latest, got); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestPingAndNotFound(t *testing.T) {
	h := newTestRouter(t, &fakeStatusService{}, 100)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "kunlun" {
		t.Errorf("GET /status = %d %q", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "text/plain" {
		t.Errorf("Content-Type = %q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /nope = %d, want 404", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Success || env.Error == nil {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestPreflight(t *testing.T) {
	h := newTestRouter(t, &fakeStatusService{}, 100)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/status", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Max-Age":       "86400",
	}
	got := make(map[string]string, len(want))
	for k := range want {
		got[k] = rec.Header().Get(k)
	}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
}
