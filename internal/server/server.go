// Package server is the web front-end: a chi router serving the embedded
// chat client, a WebSocket endpoint for interview events, and health and
// metrics endpoints.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/trxu05/mock-interview-chatbot/internal/ai"
	"github.com/trxu05/mock-interview-chatbot/internal/config"
	"github.com/trxu05/mock-interview-chatbot/internal/interview"
	"github.com/trxu05/mock-interview-chatbot/internal/metrics"
	"github.com/trxu05/mock-interview-chatbot/internal/model"
	"github.com/trxu05/mock-interview-chatbot/internal/notifier"
	"github.com/trxu05/mock-interview-chatbot/internal/summary"
)

//go:embed static
var staticFiles embed.FS

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators the server drives.
type Deps struct {
	Client    ai.ModelClient
	Chat      interview.ChatSettings
	Assembler *summary.Assembler
	Notifier  notifier.SummaryNotifier
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// Server handles HTTP and WebSocket traffic for the interview client.
type Server struct {
	cfg      config.ServerConfig
	deps     Deps
	logger   *slog.Logger
	upgrader websocket.Upgrader
	static   http.FileSystem
}

// New creates a server. It fails when cfg.StaticDir is set but unusable.
func New(cfg config.ServerConfig, deps Deps) (*Server, error) {
	static, err := staticFS(cfg.StaticDir)
	if err != nil {
		return nil, err
	}
	if deps.Notifier == nil {
		deps.Notifier = notifier.NopNotifier{}
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: deps.Logger,
		static: static,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s, nil
}

func staticFS(dir string) (http.FileSystem, error) {
	if dir == "" {
		sub, err := fs.Sub(staticFiles, "static")
		if err != nil {
			return nil, fmt.Errorf("embedded static files: %w", err)
		}
		return http.FS(sub), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("server.static_dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("server.static_dir: %s is not a directory", dir)
	}
	return http.Dir(dir), nil
}

// Handler returns the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(s.logger), middleware.Recoverer)
	r.Use(s.deps.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", s.deps.Metrics.Handler())
	r.Get("/api/interview-types", s.handleInterviewTypes)
	r.Get("/ws", s.handleWS)
	r.Handle("/*", http.FileServer(s.static))

	return r
}

// ListenAndServe serves on cfg.Addr() until ctx is cancelled, then shuts down
// gracefully. Open WebSocket connections are closed through ctx.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if err := ai.CheckReady(s.deps.Client); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleInterviewTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.KnownTypes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request via slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
