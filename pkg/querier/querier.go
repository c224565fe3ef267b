package querier

import (
	"context"
	"errors"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var QueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries by method, transaction scope and outcome",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"method", "scope", "outcome"},
)

// Querier выполняет запросы в транзакции из контекста, если она есть, иначе напрямую в пуле.
type Querier struct {
	pool   *pgxpool.Pool
	getter *pgxv5.CtxGetter
}

func New(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Querier {
	return &Querier{
		pool:   pool,
		getter: getter,
	}
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	executor, scope := q.get(ctx)
	start := time.Now()

	tag, err := executor.Exec(ctx, sql, args...)
	observe("exec", scope, start, err)

	return tag, err
}

// Query измеряет только отправку запроса, чтение строк остаётся за вызывающим.
func (q *Querier) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	executor, scope := q.get(ctx)
	start := time.Now()

	rows, err := executor.Query(ctx, sql, args...)
	observe("query", scope, start, err)

	return rows, err
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	executor, scope := q.get(ctx)

	return &timedRow{
		row:   executor.QueryRow(ctx, sql, args...),
		scope: scope,
		start: time.Now(),
	}
}

func (q *Querier) get(ctx context.Context) (pgxv5.Tr, string) {
	if tr := q.getter.DefaultTrOrDB(ctx, nil); tr != nil {
		return tr, "tx"
	}
	return q.pool, "pool"
}

// timedRow откладывает замер до Scan: pgx выполняет QueryRow лениво.
type timedRow struct {
	row   pgx.Row
	scope string
	start time.Time
}

func (r *timedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	observe("query_row", r.scope, r.start, err)

	return err
}

func observe(method, scope string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		outcome = "no_rows"
	case err != nil:
		outcome = "error"
	}

	QueryDuration.WithLabelValues(method, scope, outcome).Observe(time.Since(start).Seconds())
}
