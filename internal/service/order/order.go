package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"tracker/internal/entities"
	"tracker/pkg/logger"
	"tracker/pkg/tx"
)

type Service struct {
	orderRepository   OrderRepository
	historyRepository HistoryRepository
	notifier          Notifier
	txManager         TxManager
	log               serviceLogger
}

func New(
	orderRepository OrderRepository,
	historyRepository HistoryRepository,
	notifier Notifier,
	txManager TxManager,
	log serviceLogger,
) *Service {
	serviceLog := log.With(
		logger.NewField("component", "order-service"),
	)

	return &Service{
		orderRepository:   orderRepository,
		historyRepository: historyRepository,
		notifier:          notifier,
		txManager:         txManager,
		log:               serviceLog,
	}
}

func (s *Service) CreateOrder(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	if orderModify.CustomerName == nil ||
		orderModify.CustomerContact == nil ||
		orderModify.MerchantRef == nil {
		return nil, ErrMissingRequiredFields
	}

	if isBlank(*orderModify.CustomerName) ||
		isBlank(*orderModify.CustomerContact) ||
		isBlank(*orderModify.MerchantRef) {
		return nil, ErrMissingRequiredFields
	}

	id := uuid.NewString()
	status := entities.DefaultOrderStatus
	createdAt := time.Now().UTC()

	orderModify.ID = &id
	orderModify.Status = &status
	orderModify.CreatedAt = &createdAt

	order, err := s.orderRepository.Create(ctx, orderModify)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", classify(err))
	}

	OrdersCreatedTotal.Inc()
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*entities.Order, error) {
	order, err := s.orderRepository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", classify(err))
	}

	return order, nil
}

// GetHistory возвращает журнал статусов по возрастанию времени.
// Для заказа без переходов это пустой срез, для несуществующего ErrOrderNotFound.
func (s *Service) GetHistory(ctx context.Context, orderID string) ([]entities.StatusEvent, error) {
	var events []entities.StatusEvent

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		_, err := s.orderRepository.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		events, err = s.historyRepository.ListByOrderID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("list status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	return events, nil
}

// GetActiveOrders отдаёт все заказы кроме delivered. Отменённые заказы тоже
// считаются активными, так исторически ведёт себя GET /orders.
func (s *Service) GetActiveOrders(ctx context.Context) ([]entities.Order, error) {
	orders, err := s.orderRepository.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("get active orders: %w", classify(err))
	}

	return orders, nil
}

// UpdateStatus проверяет переход, в одной транзакции меняет заказ и пишет
// событие в историю, и только после коммита уведомляет наблюдателей.
func (s *Service) UpdateStatus(ctx context.Context, update entities.StatusUpdate) (*entities.StatusChange, error) {
	if isBlank(update.OrderID) ||
		isBlank(update.NewStatus.String()) ||
		isBlank(update.Source) {
		return nil, ErrMissingRequiredFields
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		previous entities.OrderStatusType
		change   entities.StatusChange
	)

	// начатую смену статуса отмена запроса уже не прерывает: транзакция
	// либо коммитится целиком, либо откатывается
	txCtx := context.WithoutCancel(ctx)

	err := s.txManager.Do(txCtx, func(ctx context.Context) error {
		order, err := s.orderRepository.GetByIDForUpdate(ctx, update.OrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		if !IsValidTransition(order.Status, update.NewStatus) {
			return &InvalidTransitionError{From: order.Status, To: update.NewStatus}
		}

		at := time.Now().UTC()
		if order.UpdatedAt != nil && at.Before(*order.UpdatedAt) {
			at = *order.UpdatedAt
		}

		updated, err := s.orderRepository.ApplyTransition(ctx, order.ID, order.Version, update.NewStatus, at)
		if err != nil {
			return fmt.Errorf("apply transition: %w", err)
		}

		_, err = s.historyRepository.Append(ctx, order.ID, update.NewStatus, update.Source, at)
		if err != nil {
			return fmt.Errorf("append status history: %w", err)
		}

		updatedAt := at
		if updated.UpdatedAt != nil {
			updatedAt = *updated.UpdatedAt
		}

		previous = order.Status
		change = entities.StatusChange{
			OrderID:   updated.ID,
			NewStatus: updated.Status,
			UpdatedAt: updatedAt,
		}
		return nil
	})
	if err != nil {
		err = classify(err)
		StatusUpdateRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	StatusTransitionsTotal.WithLabelValues(previous.String(), change.NewStatus.String()).Inc()

	s.notify(txCtx, change, update.Source)

	return &change, nil
}

// notify best-effort: ошибки доставки никогда не возвращаются вызывающему,
// изменение к этому моменту уже закоммичено.
func (s *Service) notify(ctx context.Context, change entities.StatusChange, source string) {
	err := s.notifier.Notify(ctx, change)
	if err != nil {
		s.log.With(
			logger.NewField("order", change.OrderID),
			logger.NewField("status", change.NewStatus.String()),
			logger.NewField("source", source),
			logger.NewField("error", err),
		).Warn("status change committed but notification failed")
	}
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrConflictingWrite),
		errors.Is(err, ErrMissingRequiredFields),
		errors.Is(err, ErrStorage):
		return err
	case errors.Is(err, tx.ErrSerialization):
		return fmt.Errorf("%w: %w", ErrConflictingWrite, err)
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrConflictingWrite):
		return "conflicting_write"
	default:
		return "storage"
	}
}
