//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_live_test
package orders_live

import (
	"tracker/internal/service/broadcast"
	"tracker/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Hub interface {
	Register(conn broadcast.Connection)
	Unregister(conn broadcast.Connection)
}
