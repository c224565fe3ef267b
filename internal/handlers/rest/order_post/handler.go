package order_post

import (
	"encoding/json"
	"errors"
	"net/http"

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
		logger.NewField("handler", "order_post"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var orderCreateDTO dto.OrderCreate
	err := json.NewDecoder(r.Body).Decode(&orderCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	orderModifyEntity := entities.OrderModify{
		CustomerName:    orderCreateDTO.CustomerName,
		CustomerContact: orderCreateDTO.CustomerContact,
		MerchantRef:     orderCreateDTO.MerchantRef,
	}

	orderEntity, err := h.service.CreateOrder(r.Context(), orderModifyEntity)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingRequiredFields):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, order.ErrConflictingWrite):
			w.WriteHeader(http.StatusConflict)
		case errors.Is(err, order.ErrStorage):
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("create order")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.FromOrder(orderEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
