package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/pipgrab"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout is how long in-flight requests get to finish on shutdown.
const ShutdownTimeout = 10 * time.Second

// Server exposes a pipgrab.Service over HTTP.
type Server struct {
	service  pipgrab.Service
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	router   chi.Router
}

// NewServer creates a Server for service. Metrics are registered with a
// new registry served at /metrics.
func NewServer(service pipgrab.Service, logger *slog.Logger) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		service:  service,
		logger:   logger,
		registry: registry,
		metrics:  NewMetrics(registry),
	}
	s.router = s.setupRouter()
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Post("/extract", s.handleExtract)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// observe logs and records metrics for every request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		duration := time.Since(begin)

		s.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", duration,
			"requestId", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the pipgrab API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req pipgrab.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.ExtractionsTotal.WithLabelValues(pipgrab.EINVALID).Inc()
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := pipgrab.Run(r.Context(), s.service, &req)
	if err != nil {
		code := pipgrab.ErrorCode(err)
		s.metrics.ExtractionsTotal.WithLabelValues(code).Inc()
		if code == pipgrab.EINTERNAL {
			s.logger.Error("extraction failed", "url", req.URL, "err", err)
		}
		s.respondWithError(w, statusForCode(code), "Error processing URL: "+errorText(err))
		return
	}

	s.metrics.ExtractionsTotal.WithLabelValues("ok").Inc()
	s.respondWithJSON(w, http.StatusOK, result)
}

// statusForCode maps application error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case pipgrab.EINVALID:
		return http.StatusBadRequest
	case pipgrab.ENOTFOUND:
		return http.StatusNotFound
	case pipgrab.EFETCH:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorText returns the message of application errors and the full text
// of anything else.
func errorText(err error) string {
	var e *pipgrab.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("encoding response", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
