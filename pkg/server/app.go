package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/domain/repository"
	icache "PriceCast/internal/service/cache"
	"PriceCast/internal/service/ratelimit"
	"PriceCast/internal/usecase"
	"PriceCast/pkg/config"
	xhttp "PriceCast/pkg/http"
	applogger "PriceCast/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	httpServer *xhttp.Server
	builder    *usecase.ReportBuilder
	warmer     *usecase.ReportWarmer
	publisher  repository.ReportPublisher
	cache      icache.BytesCache
	limiter    *ratelimit.Limiter
}

// New creates a new App instance with all dependencies. warmer, cache and
// limiter may be nil.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	builder *usecase.ReportBuilder,
	warmer *usecase.ReportWarmer,
	publisher repository.ReportPublisher,
	cache icache.BytesCache,
	limiter *ratelimit.Limiter,
) *App {
	return &App{
		cfg:        cfg,
		l:          l,
		httpServer: httpServer,
		builder:    builder,
		warmer:     warmer,
		publisher:  publisher,
		cache:      cache,
		limiter:    limiter,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	if a.warmer != nil {
		if err := a.warmer.Start(); err != nil {
			a.l.Error("warmer start error", applogger.Error(err))
			_ = a.shutdown()
			return err
		}
	}

	if a.limiter != nil {
		go a.sweepLimiter(ctx, a.cfg.RateLimit.IdleTTL)
	}

	a.l.Info("pricecast started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("source", a.cfg.Source.Type),
		applogger.String("cache", a.cfg.Cache.Type),
		applogger.String("seed_mode", a.cfg.Pipeline.SeedMode),
	)

	<-ctx.Done()
	a.l.Info("shutdown signal received")
	return a.shutdown()
}

// PrintReport builds a single report with the configured pipeline defaults
// and writes it to w as indented JSON. A nil seed follows the seed mode.
func (a *App) PrintReport(ctx context.Context, w io.Writer, symbol string, seed *uint64) error {
	defer func() {
		if err := a.publisher.Close(); err != nil {
			a.l.Warn("publisher close error", applogger.Error(err))
		}
	}()

	p := usecase.ReportParams{
		Symbol:       symbol,
		LookbackDays: a.cfg.Pipeline.LookbackDays,
		HorizonDays:  a.cfg.Pipeline.HorizonDays,
		RiskFreeRate: a.cfg.Pipeline.RiskFreeRate,
	}
	if seed != nil {
		p = p.WithSeed(*seed)
	}
	rep, err := a.builder.Build(ctx, p)
	if err != nil {
		return fmt.Errorf("build report %s: %w", symbol, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(models.NewReportResponse(rep))
}

func (a *App) sweepLimiter(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := a.limiter.Sweep(); n > 0 {
				a.l.Debug("ratelimit.sweep", applogger.Int("evicted", n))
			}
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.l.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.warmer != nil {
		a.warmer.Stop(shutdownCtx)
	}

	var firstErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}

	if err := a.publisher.Close(); err != nil {
		a.l.Warn("publisher close error", applogger.Error(err))
	}

	if c, ok := a.cache.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return firstErr
}
