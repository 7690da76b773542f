package di

import (
	"fmt"

	"RegimeScope/internal/domain/repository"
	"RegimeScope/internal/handler/api"
	"RegimeScope/internal/report"
	internalrepo "RegimeScope/internal/repository"
	"RegimeScope/internal/saver"
	"RegimeScope/internal/service/stooq"
	"RegimeScope/internal/service/yahoo"
	"RegimeScope/internal/usecase"
	pkgcache "RegimeScope/pkg/cache"
	pkgch "RegimeScope/pkg/clickhouse"
	"RegimeScope/pkg/config"
	pkgkafka "RegimeScope/pkg/kafka"
	applogger "RegimeScope/pkg/logger"
	"RegimeScope/pkg/metrics"
	"RegimeScope/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketData selects the market-data provider from config.
func ProvideMarketData(cfg *config.Config) (repository.MarketData, error) {
	switch cfg.Provider.Name {
	case "yahoo":
		return yahoo.New(), nil
	case "stooq":
		return stooq.New(cfg.Provider.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider.Name)
	}
}

// ProvideCache selects the cache backend from config. Returns nil when
// caching is disabled.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	redisOpts := []pkgcache.RedisOption{
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	}
	switch cfg.Cache.Backend {
	case "memory":
		return pkgcache.NewMemoryCache(), nil
	case "redis":
		return pkgcache.NewRedisCache(redisOpts...)
	case "layered":
		redis, err := pkgcache.NewRedisCache(redisOpts...)
		if err != nil {
			return nil, err
		}
		return pkgcache.NewLayeredCache(redis), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// ProvideClickHouseClient creates a ClickHouse client. Returns nil unless
// the clickhouse backend is selected.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideStorage creates ClickHouse storage when that backend is selected.
func ProvideStorage(chClient *pkgch.Client, cfg *config.Config) repository.Storage {
	if cfg.Backend.Type != "clickhouse" || chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseStorage(chClient)
}

// ProvideKafkaProducer creates a Kafka producer. Returns nil unless the
// kafka backend is selected.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the report publisher for the kafka backend.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if cfg.Backend.Type != "kafka" || producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvidePipeline assembles the analysis pipeline from config and wiring.
func ProvidePipeline(
	cfg *config.Config,
	l *applogger.Logger,
	provider repository.MarketData,
	cacheSvc pkgcache.Service,
	storage repository.Storage,
	publisher repository.Publisher,
	m repository.Metrics,
) (*usecase.Pipeline, error) {
	start, err := cfg.StartTime()
	if err != nil {
		return nil, err
	}
	end, err := cfg.EndTime()
	if err != nil {
		return nil, err
	}

	var charts *report.ChartRenderer
	if cfg.Output.Charts {
		charts = report.NewChartRenderer()
	}

	return usecase.NewPipeline(usecase.Params{
		Provider:    provider,
		Cache:       cacheSvc,
		CacheTTL:    cfg.Cache.TTL,
		Storage:     storage,
		Publisher:   publisher,
		Metrics:     m,
		Saver:       saver.Must(cfg.Output.Format),
		Charts:      charts,
		Logger:      l,
		Ticker:      cfg.Analysis.Ticker,
		Start:       start,
		End:         end,
		Window:      cfg.Analysis.Window,
		TradingDays: cfg.Analysis.TradingDays,
		OutputDir:   cfg.Output.Dir,
	}), nil
}

// ProvideReportHandler creates the HTTP report handler.
func ProvideReportHandler() *api.ReportHandler {
	return api.NewReportHandler()
}

// ProvideApp creates the application and registers resource closers.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	pipeline *usecase.Pipeline,
	handler *api.ReportHandler,
	cacheSvc pkgcache.Service,
	storage repository.Storage,
	publisher repository.Publisher,
) *server.App {
	app := server.New(cfg, l, pipeline, handler)
	if cacheSvc != nil {
		app.AddCloser(cacheSvc.Close)
	}
	if storage != nil {
		app.AddCloser(storage.Close)
	}
	if publisher != nil {
		app.AddCloser(publisher.Close)
	}
	return app
}
