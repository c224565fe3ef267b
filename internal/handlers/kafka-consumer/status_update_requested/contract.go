//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=status_update_requested_test
package status_update_requested

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
	UpdateStatus(ctx context.Context, update entities.StatusUpdate) (*entities.StatusChange, error)
}

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
