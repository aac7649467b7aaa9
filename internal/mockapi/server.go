// Package mockapi is an in-memory, json-server compatible /products backend used
// for local development and tests.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds the server settings.
type Config struct {
	Addr  string
	RPS   float64 // per client; <= 0 disables rate limiting
	Burst int
}

// DefaultConfig matches json-server's default port.
func DefaultConfig() Config {
	return Config{
		Addr:  ":3001",
		RPS:   20,
		Burst: 40,
	}
}

// Server serves a Store over HTTP.
type Server struct {
	cfg      Config
	store    *Store
	logger   *slog.Logger
	limiters *limiterStore
	started  time.Time
}

// NewServer creates a server. A nil logger means slog.Default().
func NewServer(cfg Config, store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		started: time.Now(),
	}
	if cfg.RPS > 0 {
		s.limiters = newLimiterStore(cfg.RPS, cfg.Burst)
	}
	return s
}

// Handler returns the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.limiters != nil {
		r.Use(rateLimit(s.limiters))
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Post("/", s.createProduct)
		r.Get("/{id}", s.getProduct)
		r.Put("/{id}", s.replaceProduct)
		r.Delete("/{id}", s.deleteProduct)
	})
	r.Get("/health", s.health)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if s.limiters != nil {
		go s.limiters.janitor(ctx, 2*time.Minute)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock api listening", "addr", s.cfg.Addr, "products", s.store.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("mock api shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"latency_ms", float64(time.Since(start).Microseconds())/1000.0,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	p, found := s.store.Get(id)
	if !found {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	p := s.store.Create(draft)
	s.logger.Info("product_created", "id", p.ID, "name", p.Name)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) replaceProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	p, found := s.store.Replace(id, draft)
	if !found {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	if !s.store.Delete(id) {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	s.logger.Info("product_deleted", "id", id)
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"products":   s.store.Len(),
		"uptime_sec": time.Since(s.started).Seconds(),
	})
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		// json-server answers 404 for ids it cannot find, malformed ones included.
		writeError(w, http.StatusNotFound, "not_found", "")
		return 0, false
	}
	return id, true
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (catalog.Draft, bool) {
	var draft catalog.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return catalog.Draft{}, false
	}
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return catalog.Draft{}, false
	}
	return draft, true
}
