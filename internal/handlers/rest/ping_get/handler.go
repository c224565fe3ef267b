package ping_get

import (
	"encoding/json"
	"net/http"

	"tracker/internal/handlers/rest/dto"
	"tracker/pkg/logger"
)

type Handler struct {
	log       handlerLogger
	observers Observers
}

// New observers может быть nil, тогда поле observers в ответ не попадает.
func New(log handlerLogger, observers Observers) *Handler {
	return &Handler{
		log: log.With(
			logger.NewField("handler", "ping_get"),
		),
		observers: observers,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := "pong"
	res := dto.PingResponse{
		Message: &message,
	}
	if h.observers != nil {
		live := h.observers.Len()
		res.Observers = &live
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode ping response")
	}
}
