package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/ironsheep/digitpad/internal/imaging"
	"github.com/ironsheep/digitpad/internal/predict"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("[DEBUG] %s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"endpoint": s.path,
		"backend":  s.proxy != nil,
		"uptime":   time.Since(s.started).Round(time.Second).String(),
	})
}

// handlePredict checks that the request carries a decodable drawing and
// forwards it unchanged to the backend.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if s.proxy == nil {
		sendError(w, "no_backend", "No classifier backend configured", "", http.StatusServiceUnavailable)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		sendError(w, "invalid_request", "Failed to read request body", err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	form, err := url.ParseQuery(string(body))
	if err != nil {
		sendError(w, "invalid_request", "Failed to parse form", err.Error(), http.StatusBadRequest)
		return
	}
	img, err := imaging.DecodeDataURL(form.Get(predict.FormField))
	if err != nil {
		sendError(w, "invalid_image", "No decodable image in field "+predict.FormField, err.Error(), http.StatusBadRequest)
		return
	}

	if s.cfg.Debug {
		s.logger.Printf("[DEBUG] Forwarding %dx%d drawing (%d bytes)", img.Bounds().Dx(), img.Bounds().Dy(), len(body))
	}

	s.proxy.ServeHTTP(w, r)
}

func (s *Server) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Printf("Backend request %s %s failed: %v", r.Method, r.URL.Path, err)
	sendError(w, "backend_unavailable", "Classifier backend unavailable", err.Error(), http.StatusBadGateway)
}

// staticHandler serves the page directory. A missing directory is reported
// per request rather than at startup so the server can run before the wasm
// binary is built.
func (s *Server) staticHandler() http.Handler {
	files := http.FileServer(http.Dir(s.cfg.StaticDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(s.cfg.StaticDir); errors.Is(err, os.ErrNotExist) {
			sendError(w, "no_static_dir", "Static directory not found", s.cfg.StaticDir, http.StatusNotFound)
			return
		}
		if filepath.Ext(r.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", "application/wasm")
		}
		files.ServeHTTP(w, r)
	})
}

func sendError(w http.ResponseWriter, code, message, details string, status int) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
