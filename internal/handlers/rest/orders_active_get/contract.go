//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_active_get_test
package orders_active_get

import (
	"context"

	"tracker/internal/entities"
	"tracker/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetActiveOrders(ctx context.Context) ([]entities.Order, error)
}
