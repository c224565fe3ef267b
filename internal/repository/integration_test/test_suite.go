package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"tracker/internal/pkg/config"
	"tracker/internal/pkg/postgres"
	"tracker/pkg/logger/zap_adapter"
	"tracker/pkg/querier"
)

const statementTimeout = 2 * time.Second

var (
	poolInstance    *pgxpool.Pool
	querierInstance *querier.Querier
	connectOnce     sync.Once
)

func connect() {
	connectOnce.Do(func() {
		// переменные POSTGRES_* выставляет Makefile из .env.test
		cfg := &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			// конкурентные тесты держат несколько транзакций одновременно
			MaxConns: 16,
		}

		zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Printf("failed to sync logger: %v", err)
			}
		}()

		poolInstance, err = postgres.NewConnPool(context.Background(), zapLogger, cfg)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}

		querierInstance = querier.New(poolInstance, pgxv5.DefaultCtxGetter)
	})
}

// GetPool общий пул процесса, нужен для tx.Manager в сервисных тестах.
func GetPool() *pgxpool.Pool {
	connect()
	return poolInstance
}

// GetQuerier подключается к базе из POSTGRES_* один раз на процесс.
func GetQuerier() *querier.Querier {
	connect()
	return querierInstance
}

func SetupDB(t *testing.T, setupSql string) {
	t.Helper()

	if setupSql == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)
	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `TRUNCATE TABLE order_status_history, orders RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

// OrderState текущие статус и версия заказа и число событий в его истории.
func OrderState(t *testing.T, orderID string) (status string, version int64, events int) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	err := GetQuerier().QueryRow(ctx, `
		SELECT o.current_status, o.version, COUNT(h.id)
		FROM orders o
		LEFT JOIN order_status_history h ON h.order_id = o.id
		WHERE o.id = $1
		GROUP BY o.id`, orderID).
		Scan(&status, &version, &events)
	require.NoError(t, err)

	return status, version, events
}
