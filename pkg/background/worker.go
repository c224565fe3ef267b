package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
	"tracker/pkg/logger"
)

// Task периодическая задача.
type Task interface {
	// TTL интервал между запусками. Задача с TTL <= 0 выполняется только при прогреве.
	TTL() time.Duration
	Do(context.Context) error
	// Info имя задачи для логов и метрик.
	Info() string
}

type workerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

var TaskRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "background_task_runs_total",
		Help: "Total number of background task runs by task and result",
	},
	[]string{"task", "result"},
)

type Worker struct {
	log   workerLogger
	tasks []Task
	wg    sync.WaitGroup
}

func New(log workerLogger, tasks ...Task) *Worker {
	return &Worker{
		log: log.With(
			logger.NewField("component", "background"),
		),
		tasks: tasks,
	}
}

// Start один раз выполняет все задачи и, если прогрев прошёл, запускает их по расписанию до отмены ctx.
// Ошибка или паника любой задачи на прогреве возвращается, фоновые циклы тогда не стартуют.
func (w *Worker) Start(ctx context.Context) error {
	warmUp, warmUpCtx := errgroup.WithContext(ctx)
	for _, task := range w.tasks {
		warmUp.Go(func() error {
			w.log.Info("warming up task",
				logger.NewField("task", task.Info()),
			)
			return w.run(warmUpCtx, task)
		})
	}

	err := warmUp.Wait()
	if err != nil {
		return fmt.Errorf("warm up background tasks: %w", err)
	}

	for _, task := range w.tasks {
		if task.TTL() <= 0 {
			w.log.Warn("task has no interval, periodic runs disabled",
				logger.NewField("task", task.Info()),
			)
			continue
		}

		w.wg.Add(1)
		go w.loop(ctx, task)
	}

	return nil
}

// Wait ждёт завершения фоновых циклов после отмены ctx, переданного в Start.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context, task Task) {
	defer w.wg.Done()

	ticker := time.NewTicker(task.TTL())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("task stopped",
				logger.NewField("task", task.Info()),
			)
			return
		case <-ticker.C:
			err := w.run(ctx, task)
			if err != nil {
				w.log.Error("task failed",
					logger.NewField("task", task.Info()),
					logger.NewField("error", err),
				)
			}
		}
	}
}

// run выполняет задачу один раз, паника превращается в ошибку.
func (w *Worker) run(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %q panic: %v", task.Info(), r)
			w.log.Error("task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			)
		}

		result := "ok"
		if err != nil {
			result = "failed"
		}
		TaskRunsTotal.WithLabelValues(task.Info(), result).Inc()
	}()

	return task.Do(ctx)
}
