package healthcheck_head

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

const checkTimeout = time.Second

// Dependency то, без чего сервис не может обслуживать запросы (например, пул PostgreSQL).
type Dependency interface {
	Ping(ctx context.Context) error
}

type DependencyFunc func(ctx context.Context) error

func (f DependencyFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type Handler struct {
	isShuttingDown *atomic.Bool
	dependencies   []Dependency
}

func New(isShuttingDown *atomic.Bool, dependencies ...Dependency) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
		dependencies:   dependencies,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	for _, dependency := range h.dependencies {
		if err := dependency.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
