package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultRedisChannel = "order-status-changes"

type (
	Tasks struct {
		ObserverSweepInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		// нули означают значения по умолчанию пула
		MaxConns int
		MinConns int
	}

	// Broadcast нули означают значения по умолчанию хаба.
	Broadcast struct {
		SendTimeout      time.Duration
		QueueSize        int
		MaxParallelSends int
		OriginPatterns   []string // websocket, пусто значит только same-origin
	}

	// Redis необязателен для сервиса: без REDIS_URL изменения видят только наблюдатели этого процесса.
	Redis struct {
		URL     string
		Channel string
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         []string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		StatusUpdateRequested StatusUpdateRequested
	}

	StatusUpdateRequested struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		LogLevel  string
		Tasks     Tasks
		Server    HTTPServer
		Database  Database
		Broadcast Broadcast
		Redis     Redis
		Kafka     Kafka
	}
)

// LoadService конфиг HTTP сервиса (cmd/service).
func LoadService() (*Config, error) {
	return load(validateService)
}

// LoadWorker конфиг kafka воркера (cmd/worker-status-update-requested).
func LoadWorker() (*Config, error) {
	return load(validateWorker)
}

func load(validate func(*Config) error) (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	err = validateCommon(cfg)
	if err == nil {
		err = validate(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	sweepInterval, err := osGetEnvDuration("BACKGROUND_OBSERVER_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	sendTimeout, err := osGetEnvDuration("BROADCAST_SEND_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	queueSize, err := osGetInt("BROADCAST_QUEUE_SIZE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxParallelSends, err := osGetInt("BROADCAST_MAX_PARALLEL_SENDS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	statusUpdateTimeout, err := osGetEnvDuration("KAFKA_HANDLER_STATUS_UPDATE_REQUESTED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	minConns, err := osGetInt("POSTGRES_MIN_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisChannel := os.Getenv("REDIS_CHANNEL")
	if redisChannel == "" {
		redisChannel = defaultRedisChannel
	}

	return &Config{
		LogLevel: os.Getenv("LOG_LEVEL"),
		Tasks: Tasks{
			ObserverSweepInterval: sweepInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: maxConns,
			MinConns: minConns,
		},
		Broadcast: Broadcast{
			SendTimeout:      sendTimeout,
			QueueSize:        queueSize,
			MaxParallelSends: maxParallelSends,
			OriginPatterns:   osGetList("WS_ORIGIN_PATTERNS"),
		},
		Redis: Redis{
			URL:     os.Getenv("REDIS_URL"),
			Channel: redisChannel,
		},
		Kafka: Kafka{
			Brokers:         osGetList("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				StatusUpdateRequested: StatusUpdateRequested{
					ProcessTimeout: statusUpdateTimeout,
				},
			},
		},
	}, nil
}

func validateCommon(cfg *Config) error {
	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if cfg.Database.MaxConns > 0 && cfg.Database.MinConns > cfg.Database.MaxConns {
		return errors.New("POSTGRES_MIN_CONNS must not exceed POSTGRES_MAX_CONNS")
	}

	return nil
}

func validateService(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Tasks.ObserverSweepInterval == time.Duration(0) {
		return errors.New("BACKGROUND_OBSERVER_SWEEP_INTERVAL is required")
	}

	if cfg.Broadcast.SendTimeout < 0 {
		return errors.New("BROADCAST_SEND_TIMEOUT must not be negative")
	}
	if cfg.Broadcast.QueueSize < 0 {
		return errors.New("BROADCAST_QUEUE_SIZE must not be negative")
	}
	if cfg.Broadcast.MaxParallelSends < 0 {
		return errors.New("BROADCAST_MAX_PARALLEL_SENDS must not be negative")
	}

	return nil
}

func validateWorker(cfg *Config) error {
	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.StatusUpdateRequested.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_STATUS_UPDATE_REQUESTED_PROCESS_TIMEOUT is required")
	}

	// у воркера нет своих наблюдателей, изменения доходят до них только через Redis
	if cfg.Redis.URL == "" {
		return errors.New("REDIS_URL is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

// osGetList значения через запятую, пустые элементы отбрасываются.
func osGetList(s string) []string {
	val := os.Getenv(s)
	if val == "" {
		return nil
	}

	parts := strings.Split(val, ",")
	res := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}
