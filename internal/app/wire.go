//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"tracker/internal/handlers/kafka-consumer/status_update_requested"
	"tracker/internal/handlers/rest/order_get"
	"tracker/internal/handlers/rest/order_history_get"
	"tracker/internal/handlers/rest/order_post"
	"tracker/internal/handlers/rest/order_status_patch"
	"tracker/internal/handlers/rest/orders_active_get"
	"tracker/internal/handlers/tasks/observer_sweep"
	"tracker/internal/pkg/config"
	"tracker/internal/pkg/relay"
	orderRepo "tracker/internal/repository/order"
	historyRepo "tracker/internal/repository/status_history"
	"tracker/internal/service/broadcast"
	orderService "tracker/internal/service/order"
	"tracker/pkg/background"
	"tracker/pkg/logger"
	"tracker/pkg/querier"
	"tracker/pkg/retrier"
	"tracker/pkg/retrier/backoff_adapter"
	"tracker/pkg/tx"
)

const (
	statusUpdateInitialInterval = 50 * time.Millisecond
	statusUpdateMaxInterval     = time.Second
	statusUpdateRandomization   = 0.3
	statusUpdateMultiplier      = 2
)

type Application struct {
	ServiceOrder ServiceOrder
	Hub          *broadcast.Hub
	// nil без REDIS_URL
	RelaySubscriber  *relay.Subscriber
	BackgroundWorker *background.Worker
}

type ServiceOrder interface {
	order_post.Service
	order_get.Service
	orders_active_get.Service
	order_history_get.Service
	order_status_patch.Service
}

// InitializeApplication для HTTP сервиса (cmd/service).
// redisClient может быть nil, тогда изменения получают только наблюдатели этого процесса.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,
		provideHistoryRepository,

		provideHub,
		provideRelayPublisher,
		provideRelaySubscriber,
		provideServiceNotifier,
		provideOrderService,

		provideObserverSweepTask,
		provideTaskList,
		provideBackgroundWorker,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
		wire.Bind(new(orderService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.HistoryRepository), new(*historyRepo.Repository)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	StatusUpdateHandler *status_update_requested.Handler
}

// InitializeKafkaWorkerApp для kafka воркера (cmd/worker-status-update-requested).
// Наблюдателей у воркера нет, закоммиченные изменения уходят в Redis.
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,
		provideHistoryRepository,

		provideRelayPublisher,
		provideOrderService,

		provideStatusUpdateRetrier,
		provideStatusUpdateHandler,

		wire.Struct(new(KafkaWorkerApp), "*"),

		wire.Bind(new(orderService.Notifier), new(*relay.Publisher)),
		wire.Bind(new(orderService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.HistoryRepository), new(*historyRepo.Repository)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),
		wire.Bind(new(status_update_requested.Service), new(*orderService.Service)),
		wire.Bind(new(status_update_requested.Retrier), new(*backoff_adapter.Retrier)),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideHistoryRepository(querier *querier.Querier) *historyRepo.Repository {
	return historyRepo.New(querier)
}

func provideHub(log logger.Logger, cfg *config.Config) *broadcast.Hub {
	return broadcast.New(broadcast.Config{
		SendTimeout:      cfg.Broadcast.SendTimeout,
		QueueSize:        cfg.Broadcast.QueueSize,
		MaxParallelSends: cfg.Broadcast.MaxParallelSends,
	}, log)
}

func provideRelayPublisher(redisClient *goredis.Client, cfg *config.Config) *relay.Publisher {
	if redisClient == nil {
		return nil
	}
	return relay.NewPublisher(redisClient, cfg.Redis.Channel)
}

func provideRelaySubscriber(
	log logger.Logger,
	redisClient *goredis.Client,
	cfg *config.Config,
	hub *broadcast.Hub,
) *relay.Subscriber {
	if redisClient == nil {
		return nil
	}
	return relay.NewSubscriber(log, redisClient, cfg.Redis.Channel, hub)
}

// provideServiceNotifier с Redis изменения идут через канал, и подписчик каждого
// процесса, включая этот, отдаёт их своему хабу. Без Redis сервис пишет в хаб напрямую.
func provideServiceNotifier(hub *broadcast.Hub, publisher *relay.Publisher) orderService.Notifier {
	if publisher != nil {
		return publisher
	}
	return hub
}

func provideOrderService(
	log logger.Logger,
	orderRepository orderService.OrderRepository,
	historyRepository orderService.HistoryRepository,
	notifier orderService.Notifier,
	txManager orderService.TxManager,
) *orderService.Service {
	return orderService.New(orderRepository, historyRepository, notifier, txManager, log)
}

func provideObserverSweepTask(log logger.Logger, hub *broadcast.Hub, cfg *config.Config) *observer_sweep.ObserverSweep {
	return observer_sweep.New(log, hub, cfg.Tasks.ObserverSweepInterval)
}

func provideTaskList(observerSweepTask *observer_sweep.ObserverSweep) []background.Task {
	return []background.Task{
		observerSweepTask,
	}
}

func provideBackgroundWorker(log logger.Logger, tasks []background.Task) *background.Worker {
	return background.New(log, tasks...)
}

func provideStatusUpdateRetrier(cfg *config.Config) *backoff_adapter.Retrier {
	return backoff_adapter.New(retrier.Config{
		Name:            "status_update_requested",
		InitialInterval: statusUpdateInitialInterval,
		MaxInterval:     statusUpdateMaxInterval,
		MaxElapsedTime:  cfg.Kafka.Handlers.StatusUpdateRequested.ProcessTimeout,
		Randomization:   statusUpdateRandomization,
		Multiplier:      statusUpdateMultiplier,
		ShouldRetry:     status_update_requested.ShouldRetry,
	})
}

func provideStatusUpdateHandler(
	log logger.Logger,
	service status_update_requested.Service,
	retrier status_update_requested.Retrier,
	cfg *config.Config,
) *status_update_requested.Handler {
	return status_update_requested.New(log, service, retrier, cfg.Kafka.Handlers.StatusUpdateRequested.ProcessTimeout)
}
