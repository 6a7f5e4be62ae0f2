package di

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"PriceCast/internal/domain/repository"
	"PriceCast/internal/handler/api"
	internalrepo "PriceCast/internal/repository"
	icache "PriceCast/internal/service/cache"
	imetrics "PriceCast/internal/service/metrics"
	"PriceCast/internal/service/ratelimit"
	"PriceCast/internal/usecase"
	pkgch "PriceCast/pkg/clickhouse"
	"PriceCast/pkg/config"
	xhttp "PriceCast/pkg/http"
	pkgkafka "PriceCast/pkg/kafka"
	applogger "PriceCast/pkg/logger"
	"PriceCast/pkg/metrics"
	"PriceCast/pkg/server"
)

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the process-wide Prometheus registry.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.NewWithRegistry(reg)
}

func ProvideEndpointMetrics(reg *prometheus.Registry) (*imetrics.Endpoint, error) {
	return imetrics.NewEndpoint(reg)
}

// ProvideCatalog loads instruments.file or falls back to the built-in table.
func ProvideCatalog(cfg *config.Config) (repository.InstrumentCatalog, error) {
	c, err := internalrepo.LoadCatalog(cfg.Instruments.File)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ProvideClickHouseClient connects only when the clickhouse source is selected.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, func(), error) {
	if cfg.Source.Type != "clickhouse" {
		return nil, func() {}, nil
	}
	ch := cfg.ClickHouse
	client, err := pkgch.NewClient(context.Background(),
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(ch.UseHTTP),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout),
		pkgch.WithMaxExecutionTime(ch.MaxExecutionTime),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideSourceFactory selects synthetic or stored history.
func ProvideSourceFactory(cfg *config.Config, catalog repository.InstrumentCatalog, ch *pkgch.Client, l *applogger.Logger) (usecase.SourceFactory, error) {
	if ch == nil {
		return usecase.SyntheticSources(catalog), nil
	}
	src, err := internalrepo.NewCHSeriesSource(ch, cfg.ClickHouse.Table, l)
	if err != nil {
		return nil, err
	}
	return usecase.FixedSource(src), nil
}

// ProvideKafkaProducer creates a Kafka producer when kafka is enabled.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(reg,
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Linger),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideReportPublisher returns the Kafka publisher or a no-op.
func ProvideReportPublisher(cfg *config.Config, producer *pkgkafka.Producer, l *applogger.Logger) repository.ReportPublisher {
	if producer == nil {
		return internalrepo.NoopReportPublisher{}
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic, l)
}

// ProvideReportCache returns nil when caching is off.
func ProvideReportCache(cfg *config.Config) icache.BytesCache {
	switch cfg.Cache.Type {
	case "redis":
		r := cfg.Cache.Redis
		return icache.NewRedisCache(icache.RedisConfig{Addr: r.Addr, Password: r.Password, DB: r.DB, Prefix: r.Prefix})
	case "layered":
		r := cfg.Cache.Redis
		l2 := icache.NewRedisCache(icache.RedisConfig{Addr: r.Addr, Password: r.Password, DB: r.DB, Prefix: r.Prefix})
		return icache.NewLayeredCache(l2, cfg.Cache.MaxEntries, cfg.Cache.L1TTL)
	case "memory":
		return icache.NewTTLCache(cfg.Cache.MaxEntries)
	default:
		return nil
	}
}

func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)
}

func ProvideReportBuilder(
	cfg *config.Config,
	catalog repository.InstrumentCatalog,
	sources usecase.SourceFactory,
	m repository.Metrics,
	pub repository.ReportPublisher,
	l *applogger.Logger,
) *usecase.ReportBuilder {
	opts := []usecase.BuilderOption{
		usecase.WithMetrics(m),
		usecase.WithPublisher(pub),
		usecase.WithLogger(l),
		usecase.WithInvestmentAmounts(cfg.Pipeline.InvestmentAmounts),
	}
	if cfg.Pipeline.SeedMode == "daily" {
		opts = append(opts, usecase.WithSeeds(usecase.DailySeeds()))
	}
	return usecase.NewReportBuilder(catalog, sources, opts...)
}

// ProvideReportWarmer returns nil when the warmer is disabled.
func ProvideReportWarmer(cfg *config.Config, b *usecase.ReportBuilder, cache icache.BytesCache, l *applogger.Logger) *usecase.ReportWarmer {
	if !cfg.Warmer.Enabled {
		return nil
	}
	return usecase.NewReportWarmer(b, cache, usecase.WarmerConfig{
		Schedule:     cfg.Warmer.Cron,
		Symbols:      cfg.Warmer.Symbols,
		LookbackDays: cfg.Pipeline.LookbackDays,
		HorizonDays:  cfg.Pipeline.HorizonDays,
		RiskFreeRate: cfg.Pipeline.RiskFreeRate,
		CacheTTL:     cfg.Cache.TTL,
	}, l)
}

func ProvideReportsHandler(
	cfg *config.Config,
	l *applogger.Logger,
	b *usecase.ReportBuilder,
	catalog repository.InstrumentCatalog,
	cache icache.BytesCache,
	rl *ratelimit.Limiter,
	em *imetrics.Endpoint,
) *api.ReportsEchoHandler {
	opts := []api.HandlerOption{api.WithEndpointMetrics(em)}
	if cache != nil {
		opts = append(opts, api.WithCache(cache, cfg.Cache.TTL))
	}
	if rl != nil {
		opts = append(opts, api.WithRateLimit(rl))
	}
	return api.NewReportsEchoHandler(l, b, catalog, opts...)
}

// ProvideHTTPServer builds the echo server around the reports handler.
func ProvideHTTPServer(
	cfg *config.Config,
	h *api.ReportsEchoHandler,
	l *applogger.Logger,
	reg *prometheus.Registry,
	ch *pkgch.Client,
	cache icache.BytesCache,
) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS, cfg.Server.CORSOrigins...),
		xhttp.WithRegistry(reg),
		xhttp.WithMetricsPath(metricsPath),
	}
	if ch != nil {
		opts = append(opts, xhttp.WithReadinessCheck("clickhouse", ch.Health))
	}
	if p, ok := cache.(interface{ Ping(context.Context) error }); ok {
		opts = append(opts, xhttp.WithReadinessCheck("cache", p.Ping))
	}
	return xhttp.NewServer(h, l, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	b *usecase.ReportBuilder,
	warmer *usecase.ReportWarmer,
	pub repository.ReportPublisher,
	cache icache.BytesCache,
	rl *ratelimit.Limiter,
) *server.App {
	return server.New(cfg, l, srv, b, warmer, pub, cache, rl)
}
