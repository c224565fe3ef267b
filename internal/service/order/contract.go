//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"
	"time"

	"tracker/internal/entities"
	"tracker/pkg/logger"
)

type OrderRepository interface {
	Create(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entities.Order, error)
	ApplyTransition(ctx context.Context, id string, expectedVersion int64, status entities.OrderStatusType, at time.Time) (*entities.Order, error)
	GetActive(ctx context.Context) ([]entities.Order, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, orderID string, status entities.OrderStatusType, source string, at time.Time) (*entities.StatusEvent, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.StatusEvent, error)
}

// Notifier получает изменения только после коммита.
type Notifier interface {
	Notify(ctx context.Context, change entities.StatusChange) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
