package timeout

import (
	"context"
	"net/http"
	"time"

	"tracker/internal/pkg/middlewares/upgrade"
)

// Middleware ограничивает время обработки запроса.
// Websocket соединения живут дольше любого таймаута и пропускаются как есть.
func Middleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if upgrade.IsWebsocket(r) {
				next.ServeHTTP(w, r)
				return
			}

			// r.Context() = ongoingCtx (из BaseContext)
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
