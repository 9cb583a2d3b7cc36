package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownCommand is returned by Invoke for names that were never registered.
var ErrUnknownCommand = errors.New("unknown command")

// Handler is a zero-argument command returning a JSON-compatible value.
type Handler func(ctx context.Context) any

// Registry dispatches command names to handlers.
type Registry struct {
	handlers map[string]Handler
	names    []string
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// NewPlotRegistry registers the three chart commands of p.
func NewPlotRegistry(p *Plots, logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	r.MustRegister(PlotCommand, func(context.Context) any { return p.GeneratePlotJSON() })
	r.MustRegister(SurfaceCommand, func(ctx context.Context) any { return p.GenerateSurfacePlotJSON(ctx) })
	r.MustRegister(HeatmapCommand, func(ctx context.Context) any { return p.GenerateHeatmapPlotJSON(ctx) })
	return r
}

func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return errors.New("command name is required")
	}
	if h == nil {
		return fmt.Errorf("command %s: handler is nil", name)
	}
	if _, ok := r.handlers[name]; ok {
		return fmt.Errorf("command %s already registered", name)
	}
	r.handlers[name] = h
	r.names = append(r.names, name)
	return nil
}

func (r *Registry) MustRegister(name string, h Handler) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Names returns registered command names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Invoke runs the named command.
func (r *Registry) Invoke(ctx context.Context, name string) (any, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	id := uuid.New()
	start := time.Now()
	v := h(ctx)

	r.logger.Debug("command invoked",
		slog.String("command", name),
		slog.String("invocationID", id.String()),
		slog.Duration("elapsed", time.Since(start)))
	return v, nil
}
