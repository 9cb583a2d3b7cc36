package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roman-kulish/signal-plots/internal/chartpage"
	"github.com/roman-kulish/signal-plots/internal/commands"
	"github.com/roman-kulish/signal-plots/internal/render"
	"github.com/roman-kulish/signal-plots/internal/signal"
)

const (
	defaultShutdownTimeout   = 5 * time.Second
	defaultReadHeaderTimeout = 10 * time.Second

	heatmapImageName = "heatmap"
)

// WithLogger sets the logger for lifecycle and request logs.
func WithLogger(logger *slog.Logger) func(*Server) {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests once
// its context is cancelled.
func WithShutdownTimeout(d time.Duration) func(*Server) {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

func WithCharts(b *chartpage.Builder) func(*Server) {
	return func(s *Server) {
		s.charts = b
	}
}

func WithRenderer(r *render.Renderer) func(*Server) {
	return func(s *Server) {
		s.renderer = r
	}
}

// Server exposes the command registry and chart previews over HTTP.
type Server struct {
	address         string
	registry        *commands.Registry
	generator       *signal.Generator
	charts          *chartpage.Builder
	renderer        *render.Renderer
	logger          *slog.Logger
	shutdownTimeout time.Duration
	started         time.Time

	server *http.Server
}

// New creates a server listening on address. Chart and image routes draw
// fresh surfaces from generator.
func New(address string, registry *commands.Registry, generator *signal.Generator, options ...func(*Server)) (*Server, error) {
	if registry == nil {
		return nil, errors.New("command registry is required")
	}

	s := Server{
		address:         address,
		registry:        registry,
		generator:       generator,
		logger:          slog.Default(),
		shutdownTimeout: defaultShutdownTimeout,
		started:         time.Now(),
	}
	for _, option := range options {
		option(&s)
	}

	if s.generator == nil {
		s.generator = signal.NewDefaultGenerator()
	}
	if s.charts == nil {
		s.charts = chartpage.NewBuilder()
	}
	if s.renderer == nil {
		r, err := render.NewRenderer(render.Config{})
		if err != nil {
			return nil, fmt.Errorf("creating renderer: %w", err)
		}
		s.renderer = r
	}

	s.server = &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}
	return &s, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting HTTP server", slog.String("address", ln.Addr().String()))
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("graceful shutdown failed", slog.String("error", err.Error()))
			return errors.Join(err, s.server.Close())
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("HTTP server stopped")
	return err
}

// Handler returns the route table wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/commands", s.handleCommands)
	mux.HandleFunc("GET /api/invoke/{command}", s.handleInvoke)
	mux.HandleFunc("POST /api/invoke/{command}", s.handleInvoke)
	mux.HandleFunc("GET /charts/{kind}", s.handleChart)
	mux.HandleFunc("GET /images/{file}", s.handleImage)

	return s.logRequests(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"commands": s.registry.Names()})
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("command")

	v, err := s.registry.Invoke(r.Context(), name)
	if errors.Is(err, commands.ErrUnknownCommand) {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	kind, err := chartpage.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	var surface *signal.Surface
	if kind.NeedsSurface() {
		surface = s.generator.Generate()
	}

	var buf bytes.Buffer
	if err := s.charts.Render(&buf, kind, surface); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name, ext, ok := strings.Cut(r.PathValue("file"), ".")
	if !ok || name != heatmapImageName {
		s.writeJSONError(w, http.StatusNotFound, "image not found")
		return
	}

	format, err := render.ParseImageFormat(ext)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	img, err := s.renderer.Render(s.generator.Generate())
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render image: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := render.Encode(&buf, img, format); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		s.logger.Debug("request served", slog.Group("http",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(start)),
		))
	})
}
