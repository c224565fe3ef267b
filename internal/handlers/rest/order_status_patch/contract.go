//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_status_patch_test
package order_status_patch

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
