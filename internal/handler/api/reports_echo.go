package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	models "PriceCast/internal/domain/models"
	domrepo "PriceCast/internal/domain/repository"
	domsvc "PriceCast/internal/domain/service"
	icache "PriceCast/internal/service/cache"
	"PriceCast/internal/service/metrics"
	"PriceCast/internal/service/ratelimit"
	"PriceCast/internal/usecase"
	xhttp "PriceCast/pkg/http"
	xlogger "PriceCast/pkg/logger"
	"PriceCast/pkg/util"
)

type HandlerOption func(*ReportsEchoHandler)

// WithCache caches replayable reports for ttl.
func WithCache(c icache.BytesCache, ttl time.Duration) HandlerOption {
	return func(h *ReportsEchoHandler) {
		h.cache, h.cacheTTL = c, ttl
	}
}

// WithRateLimit enables per-client limiting on /api.
func WithRateLimit(rl *ratelimit.Limiter) HandlerOption {
	return func(h *ReportsEchoHandler) { h.rl = rl }
}

func WithEndpointMetrics(m *metrics.Endpoint) HandlerOption {
	return func(h *ReportsEchoHandler) { h.m = m }
}

// ReportsEchoHandler exposes the report pipeline over Echo.
type ReportsEchoHandler struct {
	logger   *xlogger.Logger
	b        *usecase.ReportBuilder
	catalog  domrepo.InstrumentCatalog
	cache    icache.BytesCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
	m        *metrics.Endpoint
}

func NewReportsEchoHandler(logger *xlogger.Logger, b *usecase.ReportBuilder, catalog domrepo.InstrumentCatalog, opts ...HandlerOption) *ReportsEchoHandler {
	h := &ReportsEchoHandler{logger: logger, b: b, catalog: catalog}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = xlogger.Nop()
	}
	if h.m == nil {
		// unregistered collectors keep the handler usable without a registry
		h.m, _ = metrics.NewEndpoint(nil)
	}
	return h
}

func (h *ReportsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api", h.rateLimit)
	g.GET("/instruments", h.observe("instruments", h.Instruments))
	g.GET("/history", h.observe("history", h.History))
	g.GET("/forecast", h.observe("forecast", h.Forecast))
	g.GET("/report", h.observe("report", h.Report))
	g.GET("/risk", h.observe("risk", h.Risk))
	g.POST("/performance", h.observe("performance", h.Performance))
}

func (h *ReportsEchoHandler) Instruments(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.NewInstrumentsResponse(h.catalog.Instruments()))
}

func (h *ReportsEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "history", verr)
	}
	p, aerr := toParams(req.Symbol, req.Lookback, 1, req.Seed, req.AsOf, 0)
	if aerr != nil {
		return h.fail(c, "history", aerr)
	}

	series, p, err := h.b.History(c.Request().Context(), p)
	if err != nil {
		return h.fail(c, "history", err)
	}
	return xhttp.SuccessResponse(c, models.HistoryResponse{
		Symbol: p.Symbol,
		AsOf:   p.AsOf.Format(util.DateLayout),
		Seed:   p.Seed,
		Points: models.NewHistoryResponse(series),
	})
}

func (h *ReportsEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "forecast", verr)
	}
	p, aerr := toParams(req.Symbol, req.Lookback, req.Horizon, req.Seed, req.AsOf, 0)
	if aerr != nil {
		return h.fail(c, "forecast", aerr)
	}

	res, err := h.b.Forecast(c.Request().Context(), p)
	if err != nil {
		return h.fail(c, "forecast", err)
	}
	return xhttp.SuccessResponse(c, models.ForecastResponse{
		Symbol:     res.Params.Symbol,
		AsOf:       res.Params.AsOf.Format(util.DateLayout),
		Seed:       res.Params.Seed,
		Volatility: res.Volatility,
		Points:     models.NewForecastPointsResponse(res.Points),

		ModelAccuracy: res.ModelAccuracy,
	})
}

// Report serves the full report. Replayable requests go through the cache;
// X-Cache tells which path served it.
func (h *ReportsEchoHandler) Report(c echo.Context) error {
	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "report", verr)
	}
	p, aerr := toParams(req.Symbol, req.Lookback, req.Horizon, req.Seed, req.AsOf, req.RiskFreeRate)
	if aerr != nil {
		return h.fail(c, "report", aerr)
	}
	ctx := c.Request().Context()
	p = h.b.Resolve(p)
	cacheable := h.cache != nil && p.Replayable
	key := p.CacheKey()

	if cacheable {
		b, ok, err := h.cache.GetBytes(ctx, key)
		switch {
		case err != nil:
			h.m.Cache.WithLabelValues("error").Inc()
			h.logger.Warn("report.cache get_error", xlogger.String("key", key), xlogger.Error(err))
		case ok:
			h.m.Cache.WithLabelValues("hit").Inc()
			c.Response().Header().Set("X-Cache", "HIT")
			return xhttp.SuccessResponse(c, json.RawMessage(b))
		default:
			h.m.Cache.WithLabelValues("miss").Inc()
		}
	}

	rep, err := h.b.Build(ctx, p)
	if err != nil {
		return h.fail(c, "report", err)
	}
	body, err := usecase.EncodeReport(rep)
	if err != nil {
		return h.fail(c, "report", err)
	}
	if cacheable {
		if err := h.cache.SetBytes(ctx, key, body, h.cacheTTL); err != nil {
			h.logger.Warn("report.cache set_error", xlogger.String("key", key), xlogger.Error(err))
		}
	}
	c.Response().Header().Set("X-Cache", "MISS")
	return xhttp.SuccessResponse(c, json.RawMessage(body))
}

func (h *ReportsEchoHandler) Risk(c echo.Context) error {
	req := &models.RiskRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "risk", verr)
	}
	return xhttp.SuccessResponse(c, models.NewRiskResponse(usecase.AssessRisk(req.Volatility, req.Price)))
}

func (h *ReportsEchoHandler) Performance(c echo.Context) error {
	req := &models.PerformanceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.badRequest(c, "performance", verr)
	}
	sum := usecase.EvaluatePerformance(req.Returns, req.Prices, req.RiskFreeRate)
	return xhttp.SuccessResponse(c, models.NewPerformanceResponse(sum))
}

func (h *ReportsEchoHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.rl != nil && !h.rl.Allow(c.RealIP()+":"+c.Path()) {
			h.logger.Warn("api.rate_limited", xlogger.String("remote", c.RealIP()), xlogger.String("path", c.Path()))
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded"))
		}
		return next(c)
	}
}

func (h *ReportsEchoHandler) observe(endpoint string, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		defer func() { h.m.Latency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()
		return next(c)
	}
}

func (h *ReportsEchoHandler) badRequest(c echo.Context, endpoint string, verr interface{}) error {
	h.m.Errors.WithLabelValues(endpoint, "validation").Inc()
	return xhttp.BadRequestResponse(c, verr)
}

// fail maps usecase errors onto AppErrors. Invalid windows are the caller's fault.
func (h *ReportsEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	var appErr *xhttp.AppError
	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, domsvc.ErrInvalidWindow):
		appErr = xhttp.BadRequestError(err.Error()).WithError(err)
	default:
		h.logger.Error(endpoint+" usecase error", xlogger.Error(err))
		appErr = xhttp.InternalError("report pipeline failed").WithError(err)
	}
	kind := "client"
	if appErr.Status >= http.StatusInternalServerError {
		kind = "server"
	}
	h.m.Errors.WithLabelValues(endpoint, kind).Inc()
	return xhttp.AppErrorResponse(c, appErr)
}

func toParams(symbol string, lookback, horizon int, seed, asOf string, rf float64) (usecase.ReportParams, error) {
	p := usecase.ReportParams{
		Symbol:       symbol,
		LookbackDays: lookback,
		HorizonDays:  horizon,
		RiskFreeRate: rf,
	}
	if asOf != "" {
		t, ok := util.ParseDate(asOf)
		if !ok {
			return p, xhttp.InvalidParamError("as_of", "as_of %q is not a date", asOf)
		}
		p.AsOf = t
	}
	if seed != "" {
		s, ok := util.ParseSeed(seed)
		if !ok {
			return p, xhttp.InvalidParamError("seed", "seed %q is not an unsigned integer", seed)
		}
		p = p.WithSeed(s)
	}
	return p, nil
}
