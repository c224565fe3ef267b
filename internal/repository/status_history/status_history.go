package status_history

import (
	"context"
	"fmt"
	"time"

	"tracker/internal/entities"
	"tracker/internal/repository"
	"tracker/internal/service/order"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Append добавляет событие в журнал. Время события не меньше времени
// предыдущего события того же заказа, даже если часы ушли назад.
func (r *Repository) Append(
	ctx context.Context,
	orderID string,
	status entities.OrderStatusType,
	source string,
	at time.Time,
) (*entities.StatusEvent, error) {
	query := `INSERT INTO order_status_history (order_id, status, source, "timestamp")
		SELECT $1, $2, $3, GREATEST($4::timestamptz, COALESCE(MAX(h."timestamp"), $4::timestamptz))
		FROM order_status_history h
		WHERE h.order_id = $1
		RETURNING id, order_id, status, source, "timestamp"`

	var eventModel StatusEventDB
	err := r.querier.QueryRow(ctx, query, orderID, status.String(), source, at).
		Scan(
			&eventModel.ID,
			&eventModel.OrderID,
			&eventModel.Status,
			&eventModel.Source,
			&eventModel.Timestamp,
		)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, order.ErrOrderNotFound
		}

		if repository.IsPgErrorWithCode(err, repository.PgErrSerializationFailure) {
			return nil, order.ErrConflictingWrite
		}

		return nil, fmt.Errorf("unexpected status history repository append error: %w", err)
	}

	return ToDomain(&eventModel), nil
}

// ListByOrderID отдаёт журнал по возрастанию (timestamp, id).
func (r *Repository) ListByOrderID(ctx context.Context, orderID string) ([]entities.StatusEvent, error) {
	query := `SELECT id, order_id, status, source, "timestamp"
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY "timestamp", id`

	rows, err := r.querier.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("unexpected status history repository list error: %w", err)
	}
	defer rows.Close()

	eventModels := make([]StatusEventDB, 0, 4)
	for rows.Next() {
		var eventModel StatusEventDB
		err := rows.Scan(
			&eventModel.ID,
			&eventModel.OrderID,
			&eventModel.Status,
			&eventModel.Source,
			&eventModel.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected status history repository list error: %w", err)
		}
		eventModels = append(eventModels, eventModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected status history repository list error: %w", err)
	}

	return ToDomainList(eventModels), nil
}
