// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package server serves generated documentation over HTTP. Every request re-runs the
// generator, so the pages follow the source tree while it is being edited.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grimm.is/uridoc/internal/brand"
	"grimm.is/uridoc/internal/endpoint"
	"grimm.is/uridoc/internal/errors"
	"grimm.is/uridoc/internal/generator"
	"grimm.is/uridoc/internal/logging"
	"grimm.is/uridoc/internal/metrics"
	"grimm.is/uridoc/internal/render"
)

// RequestIDHeader carries the request ID on every response.
const RequestIDHeader = "X-Request-ID"

// unmatchedRoute labels requests that matched no route.
const unmatchedRoute = "unmatched"

// DiagnosticsHeader carries the diagnostic count of the run behind a rendered page.
const DiagnosticsHeader = "X-Uridoc-Diagnostics"

var contentTypes = map[render.Format]string{
	render.FormatMarkdown: "text/markdown; charset=utf-8",
	render.FormatJSON:     "application/json",
	render.FormatYAML:     "application/yaml",
	render.FormatOpenAPI:  "application/json",
	render.FormatTable:    "text/plain; charset=utf-8",
}

// ServerConfig holds HTTP server timeouts.
type ServerConfig struct {
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	ShutdownTimeout   time.Duration
}

// DefaultServerConfig returns the timeouts used by ListenAndServe.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadHeaderTimeout: 10 * time.Second, // Slowloris prevention
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
		ShutdownTimeout:   5 * time.Second,
	}
}

// Server renders documentation on demand.
type Server struct {
	gen     *generator.Generator
	opts    render.Options
	metrics *metrics.Registry
	logger  *logging.Logger
	config  *ServerConfig
}

// New returns a Server backed by gen. A nil registry gets a fresh one.
func New(gen *generator.Generator, opts render.Options, reg *metrics.Registry, logger *logging.Logger) *Server {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Server{
		gen:     gen,
		opts:    opts,
		metrics: reg,
		logger:  logger.WithComponent("server"),
		config:  DefaultServerConfig(),
	}
}

// Handler returns the router with all routes and middleware installed.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.requestMiddleware)
	// Middleware registered with Use only runs for matched routes.
	router.NotFoundHandler = s.requestMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	}))
	router.MethodNotAllowedHandler = s.requestMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	}))
	s.RegisterRoutes(router)
	return router
}

// RegisterRoutes adds the documentation routes to router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	router.HandleFunc("/api.md", s.handleFormat(render.FormatMarkdown)).Methods("GET")
	router.HandleFunc("/openapi.json", s.handleFormat(render.FormatOpenAPI)).Methods("GET")
	router.HandleFunc("/render/{format}", s.handleRender).Methods("GET")
	router.HandleFunc("/endpoints", s.handleEndpoints).Methods("GET")
	router.HandleFunc("/diagnostics", s.handleDiagnostics).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(s.metrics.Gatherer(), promhttp.HandlerOpts{})).Methods("GET")
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, errors.KindIO, "failed to listen on %s", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	cfg := s.config
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving documentation", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, errors.KindIO, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, errors.KindIO, "failed to shut down server")
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, errors.KindIO, "server failed")
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestMiddleware tags each request with an ID, then logs and counts the response.
func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := unmatchedRoute
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.ObserveRequest(route, rec.statusCode)
		s.logger.Debug("Request served",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.statusCode,
			"duration", time.Since(start))
	})
}

// generate runs the generator and records the outcome.
func (s *Server) generate(ctx context.Context) (*generator.Result, error) {
	start := time.Now()
	res, err := s.gen.Run(ctx)
	if err != nil {
		s.metrics.ObserveGeneration(time.Since(start), 0, 0, err)
		return nil, err
	}
	s.metrics.ObserveGeneration(time.Since(start), len(res.Endpoints), len(res.Diagnostics), nil)
	return res, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": brand.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.handleFormat(format)(w, r)
}

func (s *Server) handleFormat(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.generate(r.Context())
		if err != nil {
			s.respondWithRunError(w, err)
			return
		}
		data, err := generator.Render(res, format, s.opts)
		if err != nil {
			s.respondWithRunError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set(DiagnosticsHeader, strconv.Itoa(len(res.Diagnostics)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	var method endpoint.Method
	if q := r.URL.Query().Get("method"); q != "" {
		m, ok := endpoint.ParseMethod(q)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "unknown method "+strconv.Quote(q))
			return
		}
		method = m
	}

	res, err := s.generate(r.Context())
	if err != nil {
		s.respondWithRunError(w, err)
		return
	}

	eps := make([]*endpoint.Endpoint, 0, len(res.Endpoints))
	for _, ep := range res.Endpoints {
		if method == "" || ep.Method == method {
			eps = append(eps, ep)
		}
	}
	w.Header().Set(DiagnosticsHeader, strconv.Itoa(len(res.Diagnostics)))
	respondWithJSON(w, http.StatusOK, eps)
}

// diagnosticView is the JSON form of a generator.Diagnostic.
type diagnosticView struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	res, err := s.generate(r.Context())
	if err != nil {
		s.respondWithRunError(w, err)
		return
	}
	views := make([]diagnosticView, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		views = append(views, diagnosticView{
			File:    d.File,
			Line:    d.Line,
			Kind:    d.Kind.String(),
			Message: d.Err.Error(),
		})
	}
	respondWithJSON(w, http.StatusOK, views)
}

// respondWithRunError maps a failed run to a status code. Comment errors that abort a
// run are 422; I/O and internal failures are 500.
func (s *Server) respondWithRunError(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	switch errors.GetKind(err) {
	case errors.KindIO, errors.KindInternal, errors.KindUnknown:
		status = http.StatusInternalServerError
	}
	s.logger.Warn("Generation failed", "error", err)
	respondWithJSON(w, status, map[string]string{
		"error": err.Error(),
		"kind":  errors.GetKind(err).String(),
	})
}

func respondWithJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, map[string]string{"error": message})
}
