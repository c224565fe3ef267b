package tx

import (
	"context"
	"errors"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const pgErrSerializationFailure = "40001"

// ErrSerialization транзакция откатилась из-за конкурентной записи, её можно повторить.
var ErrSerialization = errors.New("transaction serialization failure")

// Manager инкапсулирует логику управления транзакциями.
// Вложенные вызовы Do переиспользуют транзакцию из контекста.
type Manager struct {
	internal *manager.Manager
}

// New создаёт новый менеджер транзакций.
func New(db pgxv5.Transactional) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
	}
}

func (m *Manager) exec(
	ctx context.Context,
	opts pgx.TxOptions,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(opts),
	)
	err := m.internal.DoWithSettings(ctx, txSettings, fn)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrSerializationFailure {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return err
}

// Do выполняет fn в read committed транзакции: смена статуса и запись в историю
// либо коммитятся вместе, либо не коммитятся вовсе. Заказ сериализуют
// SELECT ... FOR UPDATE и проверка версии, так что обновления разных заказов
// не конфликтуют друг с другом.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.exec(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// DoReadOnly даёт согласованный снимок для нескольких чтений подряд
// (например, проверка заказа и выборка его истории).
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.exec(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, fn)
}
