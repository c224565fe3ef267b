package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	application "tracker/internal/app"
	"tracker/internal/handlers/rest/healthcheck_head"
	"tracker/internal/handlers/rest/order_get"
	"tracker/internal/handlers/rest/order_history_get"
	"tracker/internal/handlers/rest/order_post"
	"tracker/internal/handlers/rest/order_status_patch"
	"tracker/internal/handlers/rest/orders_active_get"
	"tracker/internal/handlers/rest/ping_get"
	"tracker/internal/handlers/ws/orders_live"
	"tracker/internal/pkg/config"
	"tracker/internal/pkg/dotenv"
	metrics_system "tracker/internal/pkg/metrics"
	"tracker/internal/pkg/middlewares/graceful_shutdown"
	"tracker/internal/pkg/middlewares/metrics"
	"tracker/internal/pkg/middlewares/rate_limiter"
	"tracker/internal/pkg/middlewares/timeout"
	"tracker/internal/pkg/postgres"
	"tracker/internal/pkg/redis"
	"tracker/pkg/logger"
	"tracker/pkg/logger/zap_adapter"
)

func main() {
	dotenvErr := dotenv.LoadIfExists(".env")

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting order tracker service")

	switch {
	case errors.Is(dotenvErr, dotenv.ErrNoFile):
		mainLog.Warn("No .env file found, using system environment variables")
	case dotenvErr != nil:
		mainLog.Error("failed to load .env file", logger.NewField("error", dotenvErr))
		return
	}

	cfg, err := config.LoadService()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // ongoingCtx и shutdownCtx наследуются от context.Background() намеренно, это часть graceful shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	dependencies := []healthcheck_head.Dependency{pool}

	var redisClient *goredis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = redis.NewClient(ctx, log, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer func() {
			err := redisClient.Close()
			if err != nil {
				runLog.Error("failed to close redis client",
					logger.NewField("error", err),
				)
			}
		}()

		dependencies = append(dependencies, healthcheck_head.DependencyFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}))
	} else {
		runLog.Warn("REDIS_URL is not set, status changes reach only observers of this instance")
	}

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, redisClient, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx)

	// фоновые части живут до сигнала остановки
	background, backgroundCtx := errgroup.WithContext(ctx)

	background.Go(func() error {
		return businessApp.Hub.Run(backgroundCtx)
	})

	if businessApp.RelaySubscriber != nil {
		background.Go(func() error {
			return businessApp.RelaySubscriber.Run(backgroundCtx)
		})
	}

	err = businessApp.BackgroundWorker.Start(backgroundCtx)
	if err != nil {
		return fmt.Errorf("background tasks: %w", err)
	}

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(log, &isShuttingDown, businessApp, cfg, dependencies),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// websocket соединения hijack'нуты и не ждут server.Shutdown, их закрывает хаб
	server.RegisterOnShutdown(businessApp.Hub.CloseAll)

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	backgroundErr := make(chan error, 1)
	go func() {
		defer close(backgroundErr)
		if err := background.Wait(); err != nil {
			backgroundErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	case err := <-backgroundErr:
		return fmt.Errorf("background: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var pprofShutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		pprofShutdownErr = pprofServer.Shutdown(shutdownCtx)
		if pprofShutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", pprofShutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || pprofShutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorker.Wait()
	<-backgroundErr

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg *config.Config,
	dependencies []healthcheck_head.Dependency,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(
		log,
		cfg.Server.RateLimiterQPS,
		rate_limiter.NewLimiter(cfg.Server.RateLimiterQPS, cfg.Server.RateLimiterBurst),
	))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, dependencies...)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log, app.Hub)).Methods("GET")

	router.Handle("/orders", order_post.New(log, app.ServiceOrder)).Methods("POST")
	router.Handle("/orders", orders_active_get.New(log, app.ServiceOrder)).Methods("GET")
	router.Handle("/orders/{id}", order_get.New(log, app.ServiceOrder)).Methods("GET")
	router.Handle("/orders/{id}/status", order_status_patch.New(log, app.ServiceOrder)).Methods("PATCH")
	router.Handle("/orders/{id}/history", order_history_get.New(log, app.ServiceOrder)).Methods("GET")

	router.Handle("/ws/orders", orders_live.New(log, app.Hub, cfg.Broadcast.OriginPatterns)).Methods("GET")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
