package rate_limiter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
	"tracker/internal/handlers/rest/dto"
	"tracker/pkg/logger"
)

// NewLimiter общий лимит на процесс: qps запросов в секунду, не больше burst подряд.
func NewLimiter(qps, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(qps), burst)
}

func Middleware(log handlerLogger, qps int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed := limiter.Allow()
			RateLimitTokens.Set(limiter.Tokens())

			route := routeTemplate(r)
			if allowed {
				RateLimitDecisionsTotal.WithLabelValues(route, "allowed").Inc()
				next.ServeHTTP(w, r)
				return
			}

			RateLimitDecisionsTotal.WithLabelValues(route, "rejected").Inc()

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
			).Warn("rate limit exceeded")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(qps))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			err := json.NewEncoder(w).Encode(dto.Error{
				Error:   "too_many_requests",
				Message: "Rate limit exceeded. Try again later.",
			})
			if err != nil {
				log.With(
					logger.NewField("error", err),
				).Error("failed to write rate limit response")
			}
		})
	}
}

// routeTemplate шаблон маршрута mux, чтобы метки не зависели от id заказа.
func routeTemplate(r *http.Request) string {
	if current := mux.CurrentRoute(r); current != nil {
		if template, err := current.GetPathTemplate(); err == nil {
			return template
		}
	}
	return "unmatched"
}
