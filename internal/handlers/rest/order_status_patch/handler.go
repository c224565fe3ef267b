package order_status_patch

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"tracker/internal/entities"
	"tracker/internal/handlers/rest/dto"
	"tracker/internal/service/order"
	"tracker/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "order_status_patch"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var statusUpdateDTO dto.StatusUpdate
	err := json.NewDecoder(r.Body).Decode(&statusUpdateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	change, err := h.service.UpdateStatus(r.Context(), entities.StatusUpdate{
		OrderID:   id,
		NewStatus: entities.OrderStatusType(statusUpdateDTO.NewStatus),
		Source:    statusUpdateDTO.Source,
	})
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingRequiredFields):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, order.ErrInvalidTransition):
			w.WriteHeader(http.StatusUnprocessableEntity)
		case errors.Is(err, order.ErrConflictingWrite):
			w.WriteHeader(http.StatusConflict)
		case errors.Is(err, order.ErrStorage):
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			h.log.With(
				logger.NewField("order", id),
				logger.NewField("error", err),
			).Error("update order status")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromStatusChange(*change))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
