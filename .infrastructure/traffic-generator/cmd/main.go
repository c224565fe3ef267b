package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_requests_total",
		Help: "Запросы генератора к сервису по операции и коду ответа",
	}, []string{"operation", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "traffic_request_duration_seconds",
		Help:    "Длительность запросов генератора в секундах",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.3, 0.5, 1, 2},
	}, []string{"operation"})

	lifecyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_lifecycles_total",
		Help: "Прогнанные жизненные циклы заказа по итоговому статусу",
	}, []string{"final_status"})
)

// happyPath обычный путь заказа, отмена вставляется случайно.
var happyPath = []string{"picked_up", "in_transit", "delivered"}

type generator struct {
	client  *http.Client
	baseURL string
	pause   time.Duration
	cancel  float64
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "адрес сервиса")
	workers := flag.Int("workers", 4, "число параллельных заказов")
	pause := flag.Duration("pause", 500*time.Millisecond, "пауза между сменами статуса")
	cancelRate := flag.Float64("cancel-rate", 0.1, "доля отменённых заказов")
	metricsAddr := flag.String("metrics", ":2112", "адрес для /metrics")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
			log.Printf("metrics server: %v", err)
		}
	}()

	g := &generator{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: *baseURL,
		pause:   *pause,
		cancel:  *cancelRate,
	}

	done := make(chan struct{})
	for range *workers {
		go func() {
			defer func() { done <- struct{}{} }()
			for ctx.Err() == nil {
				if err := g.lifecycle(ctx); err != nil && ctx.Err() == nil {
					log.Printf("lifecycle: %v", err)
					time.Sleep(time.Second)
				}
			}
		}()
	}

	for range *workers {
		<-done
	}
}

// lifecycle создаёт заказ и проводит его по статусам до конечного.
func (g *generator) lifecycle(ctx context.Context) error {
	var created struct {
		ID string `json:"id"`
	}
	err := g.call(ctx, "create", http.MethodPost, "/orders", map[string]string{
		"customer_name":    fmt.Sprintf("customer-%d", rand.IntN(10000)),
		"customer_contact": "+70000000000",
		"merchant_ref":     fmt.Sprintf("merchant-%d", rand.IntN(100)),
	}, &created)
	if err != nil {
		return err
	}

	final := "created"
	for _, status := range happyPath {
		if status != "delivered" && rand.Float64() < g.cancel {
			status = "cancelled"
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.pause):
		}

		err = g.call(ctx, "update_status", http.MethodPatch, "/orders/"+created.ID+"/status", map[string]string{
			"new_status": status,
			"source":     "traffic-generator",
		}, nil)
		if err != nil {
			return err
		}

		final = status
		if status == "cancelled" {
			break
		}
	}

	if err = g.call(ctx, "history", http.MethodGet, "/orders/"+created.ID+"/history", nil, nil); err != nil {
		return err
	}

	lifecyclesTotal.WithLabelValues(final).Inc()
	return nil
}

func (g *generator) call(ctx context.Context, operation, method, path string, body, out any) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, &payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(req)
	requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(operation, "error").Inc()
		return err
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(operation, fmt.Sprint(resp.StatusCode)).Inc()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
