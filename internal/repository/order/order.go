package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"tracker/internal/entities"
	"tracker/internal/repository"
	"tracker/internal/service/order"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id",
	"customer_name",
	"customer_contact",
	"merchant_ref",
	"current_status",
	"version",
	"created_at",
	"updated_at",
}

const selectOrderQuery = `SELECT id, customer_name, customer_contact, merchant_ref, current_status, version, created_at, updated_at
		FROM orders
		WHERE id = $1`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderModifyEntity entities.OrderModify) (*entities.Order, error) {
	orderModifyModel := FromDomainModify(&orderModifyEntity)

	values := map[string]interface{}{
		"id":               orderModifyModel.ID,
		"customer_name":    orderModifyModel.CustomerName,
		"customer_contact": orderModifyModel.CustomerContact,
		"merchant_ref":     orderModifyModel.MerchantRef,
		"version":          entities.InitialOrderVersion,
	}
	// остальные поля берут значения по умолчанию из схемы
	if orderModifyModel.CurrentStatus != nil {
		values["current_status"] = orderModifyModel.CurrentStatus
	}
	if orderModifyModel.CreatedAt != nil {
		values["created_at"] = orderModifyModel.CreatedAt
	}

	query, args, err := qb.
		Insert("orders").
		SetMap(values).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, order.ErrConflictingWrite
		}

		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(orderModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	orderModel, err := scanOrder(r.querier.QueryRow(ctx, selectOrderQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}

		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(orderModel), nil
}

// GetByIDForUpdate блокирует строку заказа до конца текущей транзакции.
// Вне транзакции блокировка снимается сразу после запроса.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id string) (*entities.Order, error) {
	orderModel, err := scanOrder(r.querier.QueryRow(ctx, selectOrderQuery+" FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}

		if repository.IsPgErrorWithCode(err, repository.PgErrSerializationFailure) {
			return nil, order.ErrConflictingWrite
		}

		return nil, fmt.Errorf("unexpected order repository getbyid for update error: %w", err)
	}

	return ToDomain(orderModel), nil
}

// ApplyTransition меняет статус только если версия в базе совпадает с expectedVersion.
// Ноль обновлённых строк значит, что заказ успели изменить: ErrConflictingWrite.
func (r *Repository) ApplyTransition(
	ctx context.Context,
	id string,
	expectedVersion int64,
	status entities.OrderStatusType,
	at time.Time,
) (*entities.Order, error) {
	query, args, err := qb.
		Update("orders").
		Set("current_status", status.String()).
		Set("updated_at", at).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{
			"id":      id,
			"version": expectedVersion,
		}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository apply transition error: %w", err)
	}

	orderModel, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrConflictingWrite
		}

		if repository.IsPgErrorWithCode(err, repository.PgErrSerializationFailure) {
			return nil, order.ErrConflictingWrite
		}

		return nil, fmt.Errorf("unexpected order repository apply transition error: %w", err)
	}

	return ToDomain(orderModel), nil
}

// GetActive возвращает заказы в любом статусе кроме delivered.
func (r *Repository) GetActive(ctx context.Context) ([]entities.Order, error) {
	query, args, err := qb.
		Select(orderColumns...).
		From("orders").
		Where(sq.NotEq{"current_status": entities.OrderDelivered.String()}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getactive error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getactive error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 16)
	for rows.Next() {
		orderModel, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository getactive error: %w", err)
		}
		orderModels = append(orderModels, *orderModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getactive error: %w", err)
	}

	return ToDomainList(orderModels), nil
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	var orderModel OrderDB
	err := row.Scan(
		&orderModel.ID,
		&orderModel.CustomerName,
		&orderModel.CustomerContact,
		&orderModel.MerchantRef,
		&orderModel.CurrentStatus,
		&orderModel.Version,
		&orderModel.CreatedAt,
		&orderModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &orderModel, nil
}

func joinColumns() string {
	return strings.Join(orderColumns, ", ")
}
