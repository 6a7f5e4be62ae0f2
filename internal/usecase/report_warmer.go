package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"PriceCast/internal/domain/models"
	icache "PriceCast/internal/service/cache"
	applogger "PriceCast/pkg/logger"
)

// WarmerConfig describes what the warmer pre-builds.
type WarmerConfig struct {
	Schedule     string // standard 5-field cron spec
	Symbols      []string
	LookbackDays int
	HorizonDays  int
	RiskFreeRate float64
	CacheTTL     time.Duration
}

// ReportWarmer pre-builds the daily-seeded report of every watched symbol
// and stores it in the report cache. Building also publishes it.
type ReportWarmer struct {
	b     *ReportBuilder
	cache icache.BytesCache
	cfg   WarmerConfig
	l     *applogger.Logger
	cron  *cron.Cron
	clock func() time.Time
}

func NewReportWarmer(b *ReportBuilder, cache icache.BytesCache, cfg WarmerConfig, l *applogger.Logger) *ReportWarmer {
	if l == nil {
		l = applogger.Nop()
	}
	return &ReportWarmer{
		b:     b,
		cache: cache,
		cfg:   cfg,
		l:     l,
		cron:  cron.New(cron.WithLocation(time.UTC)),
		clock: time.Now,
	}
}

// Start registers the job and starts the scheduler.
func (w *ReportWarmer) Start() error {
	if _, err := w.cron.AddFunc(w.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := w.RunOnce(ctx); err != nil {
			w.l.Warn("warmer.run partial failure", applogger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("register warmer %q: %w", w.cfg.Schedule, err)
	}
	w.cron.Start()
	w.l.Info("warmer.started",
		applogger.String("schedule", w.cfg.Schedule),
		applogger.Strings("symbols", w.cfg.Symbols),
	)
	return nil
}

// Stop waits for a running job or ctx, whichever ends first.
func (w *ReportWarmer) Stop(ctx context.Context) {
	done := w.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
	w.l.Info("warmer.stopped")
}

// RunOnce builds every symbol for today and returns how many reports were cached.
// One failing symbol does not stop the others; all failures are joined.
func (w *ReportWarmer) RunOnce(ctx context.Context) (int, error) {
	asOf := w.clock()
	var (
		errs   []error
		warmed int
	)
	for _, sym := range w.cfg.Symbols {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		p := ReportParams{
			Symbol:       sym,
			LookbackDays: w.cfg.LookbackDays,
			HorizonDays:  w.cfg.HorizonDays,
			RiskFreeRate: w.cfg.RiskFreeRate,
			AsOf:         asOf,
		}
		p = w.b.Resolve(p)
		p = p.WithSeed(DailySeed(p.Symbol, p.AsOf))

		rep, err := w.b.Build(ctx, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("warm %s: %w", p.Symbol, err))
			continue
		}
		if w.cache == nil {
			warmed++
			continue
		}
		body, err := EncodeReport(rep)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", p.Symbol, err))
			continue
		}
		if err := w.cache.SetBytes(ctx, p.CacheKey(), body, w.cfg.CacheTTL); err != nil {
			errs = append(errs, fmt.Errorf("cache %s: %w", p.Symbol, err))
			continue
		}
		warmed++
	}
	w.l.Info("warmer.run done",
		applogger.Int("warmed", warmed),
		applogger.Int("failed", len(errs)),
	)
	return warmed, errors.Join(errs...)
}

// EncodeReport renders the cached wire form of a report.
func EncodeReport(r *models.Report) ([]byte, error) {
	return json.Marshal(models.NewReportResponse(r))
}
