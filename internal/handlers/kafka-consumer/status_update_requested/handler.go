package status_update_requested

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"tracker/internal/entities"
	orderservice "tracker/internal/service/order"
	"tracker/pkg/logger"
)

type Handler struct {
	orderService             Service
	retrier                  Retrier
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

// New retrier повторяет только временные ошибки, см. ShouldRetry.
func New(log handlerLogger, orderService Service, retrier Retrier, timeout time.Duration) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "status.update.requested"),
	)

	return &Handler{
		orderService:             orderService,
		retrier:                  retrier,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

const (
	terminalOrderMessage      = "status.update.requested: order already finished, request dropped"
	rejectedTransitionMessage = "status.update.requested handler rejected transition"
)

// ShouldRetry true для конфликтов записи и недоступности базы.
func ShouldRetry(err error) bool {
	return errors.Is(err, orderservice.ErrConflictingWrite) ||
		errors.Is(err, orderservice.ErrStorage)
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("status.update.requested: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("status.update.requested: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение.
// true означает, что контекст отменён и сообщение останется непрочитанным.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event statusUpdateRequested
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("status.update.requested handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("status", event.NewStatus),
		logger.NewField("source", event.Source),
		logger.NewField("offset", message.Offset),
	)

	update := entities.StatusUpdate{
		OrderID:   event.OrderID,
		NewStatus: entities.OrderStatusType(event.NewStatus),
		Source:    event.Source,
	}

	var change *entities.StatusChange
	err = h.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		var err error
		change, err = h.orderService.UpdateStatus(ctx, update)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("status.update.requested handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, orderservice.ErrMissingRequiredFields):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("status.update.requested handler incomplete request")

		case errors.Is(err, orderservice.ErrOrderNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("status.update.requested handler unknown order")

		case errors.Is(err, orderservice.ErrInvalidTransition):
			var transitionErr *orderservice.InvalidTransitionError
			if errors.As(err, &transitionErr) && orderservice.IsTerminal(transitionErr.From) {
				// заказ уже в конечном статусе: запоздавший запрос от источника
				msgLog.With(
					logger.NewField("current_status", transitionErr.From.String()),
				).Info(terminalOrderMessage)
				break
			}
			msgLog.With(
				logger.NewField("error", err),
			).Warn(rejectedTransitionMessage)

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("status.update.requested handler failed after retries")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("updated_at", change.UpdatedAt),
	).Info("status.update.requested: processed")

	sess.MarkMessage(message, "")
	return false
}
