package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"github.com/ironsheep/digitpad/internal/config"
)

// maxFormBytes bounds a prediction request body. A 200x200 canvas encodes
// to a few KB; the bound leaves room for large canvases and JPEG noise.
const maxFormBytes = 10 << 20

// Server serves the digit pad page and forwards predictions to the
// classifier backend.
type Server struct {
	cfg     config.Config
	logger  *log.Logger
	router  *mux.Router
	proxy   *httputil.ReverseProxy
	path    string
	started time.Time
}

// ErrorResponse is the JSON body of every error the server itself produces.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// New builds a Server from cfg. A nil logger means log.Default().
func New(cfg config.Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil || endpoint.Path == "" {
		return nil, fmt.Errorf("invalid endpoint %q", cfg.Endpoint)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		path:    endpoint.Path,
		started: time.Now(),
	}

	if cfg.BackendURL != "" {
		target, err := url.Parse(cfg.BackendURL)
		if err != nil {
			return nil, fmt.Errorf("invalid backend URL: %w", err)
		}
		s.proxy = httputil.NewSingleHostReverseProxy(target)
		s.proxy.ErrorHandler = s.proxyError
	}

	s.router = s.routes()
	return s, nil
}

// routes registers the handlers:
//
//	GET  /health     liveness and configuration summary
//	POST <endpoint>  validated and forwarded to the backend
//	GET  /...        static files from the configured directory
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(enableCORS)
	if s.cfg.Debug {
		r.Use(s.logRequests)
	}

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc(s.path, s.handlePredict).Methods(http.MethodPost, http.MethodOptions)
	r.PathPrefix("/").Handler(s.staticHandler()).Methods(http.MethodGet, http.MethodHead)

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Printf("Serving %s on %s", s.cfg.StaticDir, s.cfg.Addr)
	if s.proxy != nil {
		s.logger.Printf("Forwarding POST %s to %s", s.path, s.cfg.BackendURL)
	} else {
		s.logger.Printf("No backend configured; POST %s answers 503", s.path)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
