package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"anchor-hq/anchor/pkg/config"
	"anchor-hq/anchor/pkg/guardrail"
	"anchor-hq/anchor/pkg/guardrail/lexicon"
	"anchor-hq/anchor/pkg/server/middleware"
	"anchor-hq/anchor/pkg/telemetry"
)

func newTestServer(t *testing.T, mutate func(*config.Config), p *guardrail.Pipeline) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.ListenAddress = "127.0.0.1:0"
	if mutate != nil {
		mutate(cfg)
	}

	tel, err := telemetry.New(cfg.Telemetry, telemetry.BuildInfo{Version: "test"}, io.Discard)
	if err != nil {
		t.Fatalf("telemetry.New() error = %v", err)
	}
	if p == nil {
		p = guardrail.Default()
	}
	return New(cfg, p, tel)
}

func TestHandler_Routes(t *testing.T) {
	h := newTestServer(t, nil, nil).Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"postprocess", http.MethodPost, RoutePostprocess, `{"reply":"You should rest.","last_user_message":"tired"}`, http.StatusOK, `"content"`},
		{"health", http.MethodGet, RouteHealth, "", http.StatusOK, `"status":"ok"`},
		{"ready", http.MethodGet, RouteReady, "", http.StatusOK, `"guardrail"`},
		{"version", http.MethodGet, RouteVersion, "", http.StatusOK, `"version":"test"`},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK, "anchor_guardrail_http_requests_total"},
		{"unknown", http.MethodGet, "/nope", "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tt.wantBody)
			}
			if rec.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("response missing request ID")
			}
		})
	}
}

func TestHandler_MetricsDisabled(t *testing.T) {
	h := newTestServer(t, func(cfg *config.Config) { cfg.Telemetry.Metrics.Enabled = false }, nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 with metrics disabled", rec.Code)
	}
}

func TestHandler_ReadyFailsWithDirectiveLexicon(t *testing.T) {
	tables := lexicon.DefaultTables()
	tables.RewriteClosers = []string{"you could try taking a walk."}
	h := newTestServer(t, nil, guardrail.New(lexicon.MustCompile(tables))).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, RouteReady, nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandler_BodyLimit(t *testing.T) {
	h := newTestServer(t, func(cfg *config.Config) { cfg.Server.MaxBodyBytes = 16 }, nil).Handler()

	rec := httptest.NewRecorder()
	body := `{"reply":"` + strings.Repeat("a", 64) + `"}`
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, RoutePostprocess, strings.NewReader(body)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for !srv.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Post("http://"+srv.Addr()+RoutePostprocess, "application/json",
		bytes.NewBufferString(`{"reply":"You need to calm down.","last_user_message":"ugh"}`))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	var out struct {
		Content string `json:"content"`
	}
	err = json.NewDecoder(resp.Body).Decode(&out)
	resp.Body.Close()
	http.DefaultClient.CloseIdleConnections()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Contains(strings.ToLower(out.Content), "you need to") {
		t.Errorf("content %q not rewritten", out.Content)
	}

	srv.Shutdown()
	srv.Shutdown()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
}

func TestServer_StartFailsOnBadAddress(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config) { cfg.Server.ListenAddress = "256.0.0.1:99999" }, nil)

	if err := srv.Start(context.Background()); err == nil {
		t.Error("Start() with invalid address should fail")
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true after failed start")
	}
}
