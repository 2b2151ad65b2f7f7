package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/digitpad/internal/config"
	"github.com/ironsheep/digitpad/internal/imaging"
	"github.com/ironsheep/digitpad/internal/predict"
)

// createDrawing returns a white canvas with a black bar as a PNG data URL.
func createDrawing(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if x > width/3 && x < width/2 {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.Set(x, y, c)
		}
	}
	u, err := imaging.EncodeDataURL(img, imaging.MimePNG)
	if err != nil {
		t.Fatalf("failed to encode drawing: %v", err)
	}
	return u
}

func formBody(dataURL string) io.Reader {
	return strings.NewReader(url.Values{predict.FormField: {dataURL}}.Encode())
}

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	s, err := New(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func decodeError(t *testing.T, body io.Reader) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	return e
}

func TestNew_InvalidEndpoint(t *testing.T) {
	cfg := config.Default()
	cfg.Endpoint = "http://[::1"
	if _, err := New(cfg, nil); err == nil {
		t.Error("expected error for invalid endpoint")
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, config.Default())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" || body["endpoint"] != "/hook2" || body["backend"] != false {
		t.Errorf("body: %v", body)
	}
}

func TestPredict_NoBackend(t *testing.T) {
	s := newTestServer(t, config.Default())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hook2", formBody(createDrawing(t, 20, 20)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rec.Code)
	}
	if e := decodeError(t, rec.Body); e.Code != "no_backend" {
		t.Errorf("code: got %s, want no_backend", e.Code)
	}
}

func TestPredict_ForwardsToBackend(t *testing.T) {
	drawing := createDrawing(t, 200, 200)

	var forwarded string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hook2" {
			t.Errorf("backend path: got %s, want /hook2", r.URL.Path)
		}
		forwarded = r.FormValue(predict.FormField)
		io.WriteString(w, predict.Sentinel)
	}))
	defer backend.Close()

	cfg := config.Default()
	cfg.BackendURL = backend.URL
	s := newTestServer(t, cfg)

	front := httptest.NewServer(s.Handler())
	defer front.Close()

	c := predict.NewClient(front.URL+"/hook2", predict.WithHTTPClient(front.Client()))
	out, err := c.Submit(context.Background(), drawing)
	if err != nil {
		t.Fatalf("Submit through proxy failed: %v", err)
	}
	if !out.Empty {
		t.Errorf("expected sentinel outcome, got %+v", out)
	}
	if forwarded != drawing {
		t.Error("backend did not receive the drawing unchanged")
	}
}

func TestPredict_RejectsBadImage(t *testing.T) {
	called := false
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer backend.Close()

	cfg := config.Default()
	cfg.BackendURL = backend.URL
	s := newTestServer(t, cfg)

	tests := []struct {
		name string
		body io.Reader
	}{
		{"missing field", strings.NewReader("digit=4")},
		{"not a data url", formBody("hello")},
		{"not an image", formBody("data:image/png;base64,aGVsbG8=")},
		{"bad form", strings.NewReader("%zz")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/hook2", tt.body)
			s.Handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
	if called {
		t.Error("invalid requests must not reach the backend")
	}
}

func TestPredict_BackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	backendURL := backend.URL
	backend.Close()

	cfg := config.Default()
	cfg.BackendURL = backendURL
	s := newTestServer(t, cfg)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hook2", formBody(createDrawing(t, 20, 20)))
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", rec.Code)
	}
	if e := decodeError(t, rec.Body); e.Code != "backend_unavailable" {
		t.Errorf("code: got %s", e.Code)
	}
}

func TestPredict_CORSPreflight(t *testing.T) {
	s := newTestServer(t, config.Default())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/hook2", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<canvas id=\"the_stage\"></canvas>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "digitpad.wasm"), []byte("\x00asm"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.StaticDir = dir
	s := newTestServer(t, cfg)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "the_stage") {
		t.Errorf("index: got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/digitpad.wasm", nil))
	if ct := rec.Header().Get("Content-Type"); ct != "application/wasm" {
		t.Errorf("wasm Content-Type: got %s", ct)
	}
}

func TestStatic_MissingDir(t *testing.T) {
	cfg := config.Default()
	cfg.StaticDir = filepath.Join(t.TempDir(), "missing")
	s := newTestServer(t, cfg)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Debug = true
	s, err := New(cfg, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if !strings.Contains(buf.String(), "GET /health") {
		t.Errorf("expected request log, got %q", buf.String())
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	s := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}
}
