package graceful_shutdown

import (
	"net/http"
	"sync/atomic"
)

// Middleware после начала остановки отвечает 503 на новые запросы и просит клиента закрыть соединение.
// Уже начатые запросы и открытые websocket соединения дорабатывают до server.Shutdown.
func Middleware(isShuttingDown *atomic.Bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isShuttingDown.Load() {
				w.Header().Set("Connection", "close")
				w.Header().Set("Retry-After", "5")
				http.Error(w, "Service is shutting down", http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
