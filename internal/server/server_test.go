package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schedgrid/pkg/buildinfo"
	"github.com/matzehuels/schedgrid/pkg/cache"
	"github.com/matzehuels/schedgrid/pkg/storage/memory"
)

const conferenceJSON = `{
  "id": "conf",
  "timezone": "UTC",
  "venues": [{"id": "hall", "name": "Hall", "rooms": [{"id": "r1", "name": "Room 1"}]}],
  "tracks": [{"id": "go", "name": "Go", "color": "#00ADD8"}],
  "sessions": [
    {"id": "a", "title": "Opening", "start": "2025-06-10T10:00:00Z", "end": "2025-06-10T11:00:00Z", "venue": "hall", "room": "r1", "track": "go"},
    {"id": "b", "title": "Lunch", "start": "2025-06-10T12:00:00Z", "end": "2025-06-10T13:00:00Z"},
    {"id": "c", "title": "Day two", "start": "2025-06-11T09:30:00Z", "end": "2025-06-11T10:00:00Z"}
  ]
}`

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(Config{Store: memory.New(), Cache: c, Logger: log.New(&logs)})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, &logs
}

func do(t *testing.T, s *Server, method, target, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func seed(t *testing.T, s *Server) {
	t.Helper()
	if rec := do(t, s, http.MethodPut, "/v1/events/conf", conferenceJSON); rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", rec.Code, rec.Body)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Server"); got != buildinfo.ServerHeader() {
		t.Errorf("Server header = %q", got)
	}
	if body := decode[map[string]string](t, rec); body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestEventLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPut, "/v1/events/conf", conferenceJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", rec.Code, rec.Body)
	}
	put := decode[putEventResponse](t, rec)
	if put.ID != "conf" || put.Sessions != 3 || len(put.Days) != 2 {
		t.Errorf("PUT response = %+v", put)
	}

	rec = do(t, s, http.MethodGet, "/v1/events", "")
	if got := decode[eventsResponse](t, rec); len(got.Events) != 1 || got.Events[0] != "conf" {
		t.Errorf("list = %+v", got)
	}

	rec = do(t, s, http.MethodGet, "/v1/events/conf", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Opening"`) {
		t.Errorf("GET = %d %s", rec.Code, rec.Body)
	}

	rec = do(t, s, http.MethodGet, "/v1/events/conf/days?tz=Asia/Tokyo", "")
	days := decode[daysResponse](t, rec)
	if days.Timezone != "Asia/Tokyo" || len(days.Days) != 2 {
		t.Errorf("days = %+v", days)
	}

	if rec := do(t, s, http.MethodDelete, "/v1/events/conf", ""); rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/v1/events/conf", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/v1/events/conf", ""); rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d", rec.Code)
	}
}

func TestPutEventRejects(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		name   string
		target string
		body   string
		code   string
	}{
		{"id mismatch", "/v1/events/other", conferenceJSON, "INVALID_INPUT"},
		{"malformed", "/v1/events/conf", `{"sessions": [`, "INVALID_SCHEDULE"},
		{"unknown field", "/v1/events/conf", `{"rooms": []}`, "INVALID_SCHEDULE"},
		{"bad id", "/v1/events/bad%20id", `{}`, "INVALID_EVENT_ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPut, tt.target, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body)
			}
			if got := decode[errorBody](t, rec); string(got.Error.Code) != tt.code {
				t.Errorf("code = %s, want %s", got.Error.Code, tt.code)
			}
		})
	}
}

func TestPutEventTOML(t *testing.T) {
	s, _ := newTestServer(t)
	body := `
[[sessions]]
title = "Keynote"
start = 2025-06-10T10:00:00Z
end = 2025-06-10T11:00:00Z
`
	rec := do(t, s, http.MethodPut, "/v1/events/devfest", body, "Content-Type", "application/toml")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if got := decode[putEventResponse](t, rec); got.ID != "devfest" || got.Sessions != 1 {
		t.Errorf("response = %+v", got)
	}
}

func TestEventGrid(t *testing.T) {
	s, _ := newTestServer(t)
	seed(t, s)

	rec := do(t, s, http.MethodGet, "/v1/events/conf/grid", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Schedgrid-Day") != "2025-06-10" || rec.Header().Get("X-Schedgrid-Cache") != "miss" {
		t.Errorf("headers = %v", rec.Header())
	}
	layout := decode[map[string]any](t, rec)
	if layout["has_any_rooms"] != true || len(layout["placements"].([]any)) != 2 {
		t.Errorf("layout = %v", layout)
	}

	etag := rec.Header().Get("ETag")
	rec = do(t, s, http.MethodGet, "/v1/events/conf/grid", "", "If-None-Match", etag)
	if rec.Code != http.StatusNotModified {
		t.Errorf("revalidation status = %d, want 304", rec.Code)
	}
	if rec.Header().Get("X-Schedgrid-Cache") != "hit" {
		t.Error("second request should be served from the artifact cache")
	}

	rec = do(t, s, http.MethodGet, "/v1/events/conf/grid?day=2025-06-11&format=agenda", "")
	if !strings.Contains(rec.Body.String(), "Day two") || strings.Contains(rec.Body.String(), "Opening") {
		t.Errorf("agenda = %s", rec.Body)
	}

	rec = do(t, s, http.MethodGet, "/v1/events/conf/grid?track=go&format=text", "")
	if !strings.Contains(rec.Body.String(), "Opening") || strings.Contains(rec.Body.String(), "Lunch") {
		t.Errorf("track-filtered text = %s", rec.Body)
	}

	rec = do(t, s, http.MethodGet, "/v1/events/conf/grid?q=nothing&format=text", "")
	if !strings.Contains(rec.Body.String(), "No sessions to display") {
		t.Errorf("empty grid = %s", rec.Body)
	}
}

func TestEventGridErrors(t *testing.T) {
	s, _ := newTestServer(t)
	seed(t, s)

	tests := []struct {
		target string
		status int
	}{
		{"/v1/events/missing/grid", http.StatusNotFound},
		{"/v1/events/conf/grid?day=tomorrow", http.StatusBadRequest},
		{"/v1/events/conf/grid?format=png", http.StatusBadRequest},
		{"/v1/events/conf/grid?tz=Mars/Olympus", http.StatusBadRequest},
		{"/v1/events/conf/grid?details=maybe", http.StatusBadRequest},
		{"/v1/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if rec := do(t, s, http.MethodGet, tt.target, ""); rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
		})
	}
}

func TestAdHocGrid(t *testing.T) {
	s, logs := newTestServer(t)
	body := `{"sessions": [
	  {"title": "Standup", "start": "2025-06-10T09:30:00Z", "end": "2025-06-10T09:45:00Z"},
	  {"title": "Elsewhere", "start": "2025-06-10T10:00:00Z", "end": "2025-06-10T11:00:00Z", "venue": "ghost"}
	]}`

	rec := do(t, s, http.MethodPost, "/v1/grid?format=dot", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "Standup") {
		t.Errorf("dot = %s", rec.Body)
	}
	if rec.Header().Get("X-Schedgrid-Dropped") != "1" {
		t.Errorf("dropped header = %q", rec.Header().Get("X-Schedgrid-Dropped"))
	}
	if !strings.Contains(logs.String(), "route=/v1/grid") {
		t.Errorf("request should be logged with its route:\n%s", logs)
	}

	list := decode[eventsResponse](t, do(t, s, http.MethodGet, "/v1/events", ""))
	if len(list.Events) != 0 {
		t.Errorf("ad-hoc grids must not be stored, got %v", list.Events)
	}
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() without a store should fail")
	}
}
