package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/deskgrid/pkg/buildinfo"
	"github.com/matzehuels/deskgrid/pkg/cache"
	"github.com/matzehuels/deskgrid/pkg/dashboard"
	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/layout"
	"github.com/matzehuels/deskgrid/pkg/persist"
	"github.com/matzehuels/deskgrid/pkg/store"
)

func newTestServer(t *testing.T) (*Server, *dashboard.Service) {
	t.Helper()
	svc, err := dashboard.Open(context.Background(), persist.NewCacheRepository(cache.NewMemoryCache(), ""))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { svc.Close() })
	return New(svc), svc
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func addWidget(t *testing.T, s *Server, body string) layout.Widget {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/widgets", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/widgets = %d: %s", rec.Code, rec.Body.String())
	}
	return decode[layout.Widget](t, rec)
}

func TestGetVersion(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/version", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	info := decode[buildinfo.Info](t, rec)
	if info.DocumentVersion != persist.CurrentVersion || info.Version == "" {
		t.Errorf("info = %+v", info)
	}
}

func TestGetDashboard(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	snap := decode[store.Snapshot](t, rec)
	if snap.Grid.Columns != 24 || snap.Grid.Rows != 12 || !snap.Loaded || len(snap.Widgets) != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestAddWidget(t *testing.T) {
	s, svc := newTestServer(t)

	w := addWidget(t, s, `{"widgetType": "clock", "id": "clock-main"}`)
	if w.ID != "clock-main" || w.X != 0 || w.Y != 0 || w.Width != 3 || w.Height != 2 {
		t.Errorf("widget = %+v", w)
	}

	w2 := addWidget(t, s, `{"widgetType": "notes", "x": 20, "y": 0, "width": 4, "height": 4}`)
	if w2.X != 20 {
		t.Errorf("X = %d, want 20", w2.X)
	}
	if got := len(svc.Store().Widgets()); got != 2 {
		t.Errorf("widgets = %d, want 2", got)
	}

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"duplicate id", `{"widgetType": "clock", "id": "clock-main"}`, http.StatusConflict, "DUPLICATE_ID"},
		{"collision", `{"widgetType": "clock", "x": 1, "y": 1}`, http.StatusConflict, "COLLISION"},
		{"bad type", `{"widgetType": "no spaces"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed", `{"widgetType":`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown field", `{"widgetType": "clock", "colour": "red"}`, http.StatusBadRequest, "INVALID_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/widgets", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if got := decode[errorResponse](t, rec); string(got.Error) != tt.code {
				t.Errorf("error = %s, want %s", got.Error, tt.code)
			}
		})
	}
}

func TestWidgetMutations(t *testing.T) {
	s, _ := newTestServer(t)
	addWidget(t, s, `{"widgetType": "clock", "id": "a"}`)
	addWidget(t, s, `{"widgetType": "clock", "id": "b", "x": 10, "y": 0}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"move", http.MethodPut, "/api/widgets/a/position", `{"x": 4, "y": 3}`, http.StatusOK},
		{"move onto b", http.MethodPut, "/api/widgets/a/position", `{"x": 10, "y": 0}`, http.StatusConflict},
		{"move unknown", http.MethodPut, "/api/widgets/zz/position", `{"x": 1, "y": 1}`, http.StatusNotFound},
		{"resize", http.MethodPut, "/api/widgets/a/size", `{"width": 5, "height": 3}`, http.StatusOK},
		{"resize missing height", http.MethodPut, "/api/widgets/a/size", `{"width": 5}`, http.StatusBadRequest},
		{"lock", http.MethodPut, "/api/widgets/a/lock", `{"locked": true}`, http.StatusOK},
		{"move locked", http.MethodPut, "/api/widgets/a/position", `{"x": 0, "y": 0}`, http.StatusConflict},
		{"lock without value", http.MethodPut, "/api/widgets/a/lock", `{}`, http.StatusBadRequest},
		{"settings", http.MethodPut, "/api/widgets/b/settings", `{"format": "24h"}`, http.StatusOK},
		{"settings malformed", http.MethodPut, "/api/widgets/b/settings", `{`, http.StatusBadRequest},
		{"get", http.MethodGet, "/api/widgets/b", "", http.StatusOK},
		{"get unknown", http.MethodGet, "/api/widgets/zz", "", http.StatusNotFound},
		{"delete", http.MethodDelete, "/api/widgets/b", "", http.StatusNoContent},
		{"delete again", http.MethodDelete, "/api/widgets/b", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Errorf("%s %s = %d, want %d: %s", tt.method, tt.path, rec.Code, tt.status, rec.Body.String())
			}
		})
	}

	rec := do(t, s, http.MethodGet, "/api/widgets/a", "")
	a := decode[layout.Widget](t, rec)
	if a.X != 4 || a.Y != 3 || a.Width != 5 || a.Height != 3 || !a.Locked {
		t.Errorf("a = %+v", a)
	}
}

func TestPostOperation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/operations",
		`{"type": "addWidget", "widgetType": "timer", "layout": {"id": "t", "x": 30, "y": 0, "width": 3, "height": 2}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	snap := decode[store.Snapshot](t, rec)
	if len(snap.Widgets) != 1 || snap.Widgets[0].X != 21 {
		t.Errorf("widgets = %+v, want timer clamped to x=21", snap.Widgets)
	}

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"unknown type", `{"type": "explode"}`, http.StatusBadRequest},
		{"malformed", `not json`, http.StatusBadRequest},
		{"unknown widget", `{"type": "removeWidget", "id": "nope"}`, http.StatusNotFound},
		{"collision", `{"type": "addWidget", "widgetType": "clock", "layout": {"x": 22, "y": 0, "width": 3, "height": 2}}`, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, s, http.MethodPost, "/api/operations", tt.body); rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeWidgetNotFound, http.StatusNotFound},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeCollision, http.StatusConflict},
		{errors.ErrCodeOutOfBounds, http.StatusConflict},
		{errors.ErrCodeWidgetLocked, http.StatusConflict},
		{errors.ErrCodeDuplicateID, http.StatusConflict},
		{errors.ErrCodeNoFreeSlot, http.StatusConflict},
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeInvalidOperation, http.StatusBadRequest},
		{errors.ErrCodeInvalidFormat, http.StatusBadRequest},
		{errors.ErrCodeInvalidConfig, http.StatusBadRequest},
		{errors.ErrCodeStorage, http.StatusInternalServerError},
		{errors.ErrCodeIncompatible, http.StatusInternalServerError},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestOccupied(t *testing.T) {
	s, _ := newTestServer(t)
	addWidget(t, s, `{"widgetType": "clock", "id": "a"}`)

	tests := []struct {
		query string
		want  bool
	}{
		{"x=0&y=0&width=1&height=1", true},
		{"x=3&y=0&width=2&height=2", false},
		{"x=0&y=0&width=3&height=2&exclude=a", false},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodGet, "/api/occupied?"+tt.query, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := decode[map[string]bool](t, rec)["occupied"]; got != tt.want {
			t.Errorf("occupied(%s) = %v, want %v", tt.query, got, tt.want)
		}
	}

	for _, query := range []string{
		"x=a",
		"x=30&y=0&width=1&height=1",
		"x=0&y=0&width=0&height=1",
		"x=9223372036854775806&y=0&width=5&height=1",
		"x=0&y=0&width=9223372036854775807&height=1",
	} {
		if rec := do(t, s, http.MethodGet, "/api/occupied?"+query, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("occupied(%s) status = %d, want 400", query, rec.Code)
		}
	}
}

func TestConstraints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/constraints/mail", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[constraintsResponse](t, rec)
	if got.Constraints.MinWidth != 6 || got.Constraints.MaxHeight != 12 || got.DefaultSize.Width != 6 {
		t.Errorf("mail constraints = %+v", got)
	}

	if rec := do(t, s, http.MethodGet, "/api/constraints/unknown", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown type status = %d, want 404", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/constraints", "")
	if list := decode[[]constraintsResponse](t, rec); len(list) < 8 {
		t.Errorf("listed %d types, want all builtins", len(list))
	}
}

func TestDebugGrid(t *testing.T) {
	s, svc := newTestServer(t)
	for _, want := range []bool{true, false} {
		rec := do(t, s, http.MethodPost, "/api/debug-grid", "")
		if got := decode[map[string]bool](t, rec)["debugGrid"]; got != want {
			t.Errorf("debugGrid = %v, want %v", got, want)
		}
	}
	if svc.Store().DebugGrid() {
		t.Error("store debug grid should be off")
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("ListenAndServe = %v, want nil after cancel", err)
	}
}
