package broadcast

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"tracker/internal/entities"
	"tracker/pkg/logger"
)

const (
	defaultSendTimeout      = 5 * time.Second
	defaultQueueSize        = 256
	defaultMaxParallelSends = 32
)

type Config struct {
	// SendTimeout ограничивает одну отправку одному наблюдателю.
	SendTimeout time.Duration
	// QueueSize ёмкость очереди Publish, при переполнении уведомления теряются.
	QueueSize int
	// MaxParallelSends сколько отправок идёт одновременно в рамках одной рассылки.
	MaxParallelSends int
}

// Hub рассылает закоммиченные смены статусов всем подключённым наблюдателям.
// Лок защищает только множество соединений, отправки идут без него.
type Hub struct {
	cfg   Config
	log   hubLogger
	queue chan entities.StatusChange

	mu    sync.RWMutex
	conns map[Connection]struct{}
}

func New(cfg Config, log hubLogger) *Hub {
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.MaxParallelSends <= 0 {
		cfg.MaxParallelSends = defaultMaxParallelSends
	}

	hubLog := log.With(
		logger.NewField("component", "broadcast-hub"),
	)

	return &Hub{
		cfg:   cfg,
		log:   hubLog,
		queue: make(chan entities.StatusChange, cfg.QueueSize),
		conns: make(map[Connection]struct{}),
	}
}

func (h *Hub) Register(conn Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[conn] = struct{}{}
	// гауж обновляется под той же блокировкой, что и множество
	ObserversLive.Set(float64(len(h.conns)))
}

// Unregister идемпотентен: повторный вызов для того же соединения ничего не делает.
func (h *Hub) Unregister(conn Connection) {
	h.remove(conn)
}

// Len число зарегистрированных наблюдателей.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns)
}

// Broadcast отправляет изменение каждому наблюдателю из снимка на момент вызова.
// Упавшая или зависшая отправка выкидывает только это соединение.
func (h *Hub) Broadcast(ctx context.Context, change entities.StatusChange) {
	conns := h.snapshot()
	if len(conns) == 0 {
		return
	}

	var g errgroup.Group
	g.SetLimit(h.cfg.MaxParallelSends)

	for _, conn := range conns {
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, h.cfg.SendTimeout)
			defer cancel()

			err := conn.Send(sendCtx, change)
			if err != nil {
				DeliveriesTotal.WithLabelValues("failed").Inc()
				h.evict(conn, "send_failed", err)
				return nil
			}

			DeliveriesTotal.WithLabelValues("delivered").Inc()
			return nil
		})
	}

	_ = g.Wait()
}

// Publish ставит изменение в очередь и никогда не блокируется.
func (h *Hub) Publish(change entities.StatusChange) error {
	select {
	case h.queue <- change:
		return nil
	default:
		DroppedTotal.Inc()
		return fmt.Errorf("order %s -> %s: %w", change.OrderID, change.NewStatus, ErrQueueFull)
	}
}

// Notify позволяет использовать хаб как получателя уведомлений сервиса заказов.
func (h *Hub) Notify(_ context.Context, change entities.StatusChange) error {
	return h.Publish(change)
}

// Run разбирает очередь по порядку до отмены ctx.
func (h *Hub) Run(ctx context.Context) error {
	h.log.Info("broadcast hub started",
		logger.NewField("queue_size", h.cfg.QueueSize),
		logger.NewField("max_parallel_sends", h.cfg.MaxParallelSends),
	)

	for {
		select {
		case <-ctx.Done():
			h.log.Info("broadcast hub stopped",
				logger.NewField("pending", len(h.queue)),
			)
			return nil
		case change := <-h.queue:
			h.Broadcast(ctx, change)
		}
	}
}

// Sweep пингует всех наблюдателей и выкидывает тех, кто не ответил.
// Возвращает число выкинутых соединений.
func (h *Hub) Sweep(ctx context.Context) int {
	conns := h.snapshot()
	if len(conns) == 0 {
		return 0
	}

	var (
		g       errgroup.Group
		mu      sync.Mutex
		evicted int
	)
	g.SetLimit(h.cfg.MaxParallelSends)

	for _, conn := range conns {
		g.Go(func() error {
			pingCtx, cancel := context.WithTimeout(ctx, h.cfg.SendTimeout)
			defer cancel()

			err := conn.Ping(pingCtx)
			if err != nil {
				if h.evict(conn, "ping_failed", err) {
					mu.Lock()
					evicted++
					mu.Unlock()
				}
			}
			return nil
		})
	}

	_ = g.Wait()
	return evicted
}

// CloseAll закрывает все соединения при остановке сервиса.
func (h *Hub) CloseAll() {
	for _, conn := range h.snapshot() {
		if h.remove(conn) {
			_ = conn.Close()
		}
	}
}

func (h *Hub) snapshot() []Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := make([]Connection, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	return conns
}

func (h *Hub) remove(conn Connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.conns[conn]
	if ok {
		delete(h.conns, conn)
		ObserversLive.Set(float64(len(h.conns)))
	}
	return ok
}

func (h *Hub) evict(conn Connection, reason string, cause error) bool {
	if !h.remove(conn) {
		return false
	}

	EvictedTotal.WithLabelValues(reason).Inc()

	err := conn.Close()
	h.log.Warn("observer evicted",
		logger.NewField("reason", reason),
		logger.NewField("error", cause),
		logger.NewField("close_error", err),
	)
	return true
}
