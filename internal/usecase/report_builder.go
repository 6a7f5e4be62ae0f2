package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"PriceCast/internal/domain/models"
	domrepo "PriceCast/internal/domain/repository"
	domsvc "PriceCast/internal/domain/service"
	"PriceCast/internal/services/analytics"
	"PriceCast/internal/services/features"
	applogger "PriceCast/pkg/logger"
	"PriceCast/pkg/util"
)

// SourceFactory binds a SeriesSource to the random source of one request.
// Sources that read stored data may ignore rnd.
type SourceFactory func(rnd domsvc.RandomSource) domsvc.SeriesSource

// SyntheticSources builds a SeriesSynthesizer per request.
func SyntheticSources(catalog domrepo.InstrumentCatalog) SourceFactory {
	return func(rnd domsvc.RandomSource) domsvc.SeriesSource {
		return analytics.NewSeriesSynthesizer(catalog, rnd)
	}
}

// FixedSource returns src for every request.
func FixedSource(src domsvc.SeriesSource) SourceFactory {
	return func(domsvc.RandomSource) domsvc.SeriesSource { return src }
}

// ForecastResult is the forecast slice of a report.
type ForecastResult struct {
	Params        ReportParams
	Volatility    float64
	Points        []models.ForecastPoint
	ModelAccuracy float64
}

type BuilderOption func(*ReportBuilder)

// WithClock overrides time.Now for asOf and GeneratedAt.
func WithClock(clock func() time.Time) BuilderOption {
	return func(b *ReportBuilder) { b.clock = clock }
}

// WithSeeds overrides how unseeded requests get their seed.
func WithSeeds(f SeedFunc) BuilderOption {
	return func(b *ReportBuilder) { b.seeds = f }
}

// WithInvestmentAmounts overrides the principals valued in scenarios.
func WithInvestmentAmounts(amounts []float64) BuilderOption {
	return func(b *ReportBuilder) {
		if len(amounts) > 0 {
			b.amounts = amounts
		}
	}
}

func WithMetrics(m domrepo.Metrics) BuilderOption {
	return func(b *ReportBuilder) {
		if m != nil {
			b.metrics = m
		}
	}
}

func WithPublisher(p domrepo.ReportPublisher) BuilderOption {
	return func(b *ReportBuilder) {
		if p != nil {
			b.publisher = p
		}
	}
}

func WithLogger(l *applogger.Logger) BuilderOption {
	return func(b *ReportBuilder) {
		if l != nil {
			b.l = l
		}
	}
}

// ReportBuilder runs the full pipeline for one request: history, volatility,
// forecast, risk, performance, price change and scenarios.
type ReportBuilder struct {
	catalog   domrepo.InstrumentCatalog
	sources   SourceFactory
	metrics   domrepo.Metrics
	publisher domrepo.ReportPublisher
	l         *applogger.Logger
	clock     func() time.Time
	seeds     SeedFunc
	amounts   []float64
}

func NewReportBuilder(catalog domrepo.InstrumentCatalog, sources SourceFactory, opts ...BuilderOption) *ReportBuilder {
	b := &ReportBuilder{
		catalog:   catalog,
		sources:   sources,
		metrics:   noopMetrics{},
		publisher: noopPublisher{},
		l:         applogger.Nop(),
		clock:     time.Now,
		amounts:   analytics.DefaultInvestmentAmounts,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.seeds == nil {
		b.seeds = ClockSeeds(b.clock)
	}
	return b
}

// Resolve normalizes the symbol and fills asOf and the seed. Idempotent.
func (b *ReportBuilder) Resolve(p ReportParams) ReportParams {
	p.Symbol = util.NormalizeSymbol(p.Symbol)
	if p.AsOf.IsZero() {
		p.AsOf = b.clock()
	}
	p.AsOf = util.Day(p.AsOf)
	if !p.Seeded {
		p.Seed, p.Replayable = b.seeds(p.Symbol, p.AsOf)
		p.Seeded = true
	}
	return p
}

// History loads or synthesizes the lookback window only.
func (b *ReportBuilder) History(ctx context.Context, p ReportParams) (models.Series, ReportParams, error) {
	p = b.Resolve(p)
	series, err := b.history(ctx, p, analytics.NewRand(p.Seed))
	return series, p, err
}

// Forecast runs history, volatility and forecast with the same random stream
// as Build, so its points match the report's.
func (b *ReportBuilder) Forecast(ctx context.Context, p ReportParams) (ForecastResult, error) {
	_, fc, err := b.run(ctx, b.Resolve(p))
	return fc, err
}

// run draws history then forecast from one stream seeded by p.Seed.
func (b *ReportBuilder) run(ctx context.Context, p ReportParams) (models.Series, ForecastResult, error) {
	rnd := analytics.NewRand(p.Seed)
	series, err := b.history(ctx, p, rnd)
	if err != nil {
		return nil, ForecastResult{}, err
	}
	vol := features.EstimateVolatility(series)
	points, err := analytics.NewForecastGenerator(rnd).ForecastWithVolatility(series, vol, p.HorizonDays, p.AsOf)
	if err != nil {
		return nil, ForecastResult{}, err
	}
	// drawn last so the history and forecast draws stay fixed for a seed
	acc := analytics.ModelAccuracy(rnd)
	return series, ForecastResult{Params: p, Volatility: vol, Points: points, ModelAccuracy: acc}, nil
}

// Build assembles a full report and hands it to the publisher. Publishing
// failures are logged and never fail the build.
func (b *ReportBuilder) Build(ctx context.Context, p ReportParams) (*models.Report, error) {
	start := time.Now()
	defer func() { b.metrics.RecordLatency("report.build", time.Since(start).Seconds()) }()

	p = b.Resolve(p)
	series, fc, err := b.run(ctx, p)
	if err != nil {
		b.metrics.RecordError(errorKind(err))
		return nil, err
	}

	rep := b.assemble(p, series, fc)
	b.metrics.RecordReport(rep.Symbol)
	b.metrics.RecordLastPrice(rep.Symbol, rep.CurrentPrice)
	b.metrics.RecordVolatility(rep.Symbol, rep.Volatility)

	if err := b.publisher.Publish(ctx, rep); err != nil {
		b.metrics.RecordError("publish")
		b.l.Warn("report.publish failed", applogger.String("id", rep.ID), applogger.Error(err))
	}
	b.l.Debug("report.build ok",
		applogger.String("symbol", rep.Symbol),
		applogger.Uint64("seed", rep.Seed),
		applogger.Float64("volatility", rep.Volatility),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return rep, nil
}

func (b *ReportBuilder) assemble(p ReportParams, series models.Series, fc ForecastResult) *models.Report {
	name := p.Symbol
	if in, ok := b.catalog.Lookup(p.Symbol); ok && in.Name != "" {
		name = in.Name
	}

	current := analytics.DefaultBasePrice
	if last, ok := series.Last(); ok {
		current = last.Close
	}
	// the next trading day's forecast drives price change and scenarios
	predicted := current
	if len(fc.Points) > 0 {
		predicted = fc.Points[0].Price
	}

	rep := &models.Report{
		ID:                   reportID(p),
		Symbol:               p.Symbol,
		Name:                 name,
		AsOf:                 p.AsOf,
		Seed:                 p.Seed,
		LookbackDays:         p.LookbackDays,
		HorizonDays:          p.HorizonDays,
		History:              series,
		Forecast:             fc.Points,
		Volatility:           fc.Volatility,
		AnnualizedVolatility: features.Annualize(fc.Volatility, features.TradingDaysPerYear),
		Risk:                 analytics.Classify(fc.Volatility).Profile(current),
		Performance:          analytics.Summarize(series, p.RiskFreeRate),
		CurrentPrice:         current,
		PredictedPrice:       predicted,
		BreakEvenPrice:       current,
		ModelAccuracy:        fc.ModelAccuracy,
		Allocations:          analytics.DefaultAllocations(),
		GeneratedAt:          b.clock().UTC(),
	}

	diff, pct, err := analytics.PriceChange(current, predicted)
	if err == nil {
		rep.PriceChange, rep.PriceChangePct = diff, pct
		rep.ExpectedAnnualReturnPct = analytics.ExpectedAnnualReturnPct(pct)
		rep.Scenarios, err = analytics.BuildScenarios(b.amounts, current, predicted)
	}
	if err != nil {
		b.metrics.RecordError("scenarios")
		b.l.Warn("report.scenarios skipped",
			applogger.String("symbol", p.Symbol),
			applogger.Float64("current_price", current),
			applogger.Error(err),
		)
		rep.PriceChange = predicted - current
	}
	return rep
}

func (b *ReportBuilder) history(ctx context.Context, p ReportParams, rnd domsvc.RandomSource) (models.Series, error) {
	if b.sources == nil {
		return nil, errors.New("report builder: no series source")
	}
	series, err := b.sources(rnd).History(ctx, p.Symbol, p.LookbackDays, p.AsOf)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", p.Symbol, err)
	}
	if len(series) == 0 {
		b.l.Warn("report.history empty", applogger.String("symbol", p.Symbol))
	}
	return series, nil
}

// AssessRisk prices a volatility level at price.
func AssessRisk(volatility, price float64) models.RiskProfile {
	return analytics.Classify(volatility).Profile(price)
}

// EvaluatePerformance scores caller-supplied data. Sharpe uses returns when
// given, otherwise simple returns of prices. Drawdown needs prices.
func EvaluatePerformance(returns, prices []float64, riskFreeRate float64) models.PerformanceSummary {
	if len(returns) == 0 {
		returns = features.ComputeSimpleReturns(prices)
	}
	return models.PerformanceSummary{
		SharpeRatio: analytics.SharpeRatio(returns, riskFreeRate),
		MaxDrawdown: analytics.MaxDrawdown(prices),
	}
}

var reportNamespace = uuid.MustParse("6f1c1e0a-3b7e-4d55-9a55-1f3e0d7c2a10")

// reportID is stable for identical params so replays carry the same id.
func reportID(p ReportParams) string {
	return uuid.NewSHA1(reportNamespace, []byte(p.CacheKey())).String()
}

func errorKind(err error) string {
	if errors.Is(err, domsvc.ErrInvalidWindow) {
		return "invalid_window"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "source"
}

type noopMetrics struct{}

func (noopMetrics) RecordReport(string)              {}
func (noopMetrics) RecordError(string)               {}
func (noopMetrics) RecordLastPrice(string, float64)  {}
func (noopMetrics) RecordVolatility(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)    {}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, *models.Report) error { return nil }
func (noopPublisher) Close() error                                  { return nil }
