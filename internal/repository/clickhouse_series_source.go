package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"PriceCast/internal/domain/models"
	domrepo "PriceCast/internal/domain/repository"
	domsvc "PriceCast/internal/domain/service"
	pkgch "PriceCast/pkg/clickhouse"
	applogger "PriceCast/pkg/logger"
	"PriceCast/pkg/util"
)

const DefaultDailyTable = "pricecast.daily_bars"

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// CHSeriesSource reads daily closes from ClickHouse.
// Expected columns: symbol String, day Date, close Float64, volume Int64.
type CHSeriesSource struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHSeriesSource(ch *pkgch.Client, table string, l *applogger.Logger) (*CHSeriesSource, error) {
	if table == "" {
		table = DefaultDailyTable
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("clickhouse: invalid table name %q", table)
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &CHSeriesSource{db: ch.DB(), table: table, l: l}, nil
}

// GetDailyBars returns bars with from <= day <= to, ascending.
func (s *CHSeriesSource) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) (models.Series, error) {
	start := time.Now()
	q := fmt.Sprintf(`
        SELECT day, close, volume
        FROM %s
        WHERE symbol = ? AND day >= ? AND day <= ?
        ORDER BY day ASC
    `, s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to)
	if err != nil {
		s.l.Error("clickhouse.daily_bars query error",
			applogger.String("table", s.table),
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("get daily bars %s: %w", symbol, err)
	}
	defer rows.Close()

	out := make(models.Series, 0, int(to.Sub(from).Hours()/24)+1)
	for rows.Next() {
		var (
			day    time.Time
			close_ float64
			volume int64
		)
		if err := rows.Scan(&day, &close_, &volume); err != nil {
			s.l.Error("clickhouse.daily_bars scan error",
				applogger.String("table", s.table),
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
			return nil, fmt.Errorf("scan daily bar: %w", err)
		}
		out = append(out, models.PricePoint{
			Date:   util.Day(day),
			Close:  close_,
			Volume: volume,
			Kind:   models.KindHistorical,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	out = dedupeAscending(out)
	s.l.Debug("clickhouse.daily_bars ok",
		applogger.String("symbol", symbol),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}

// History implements SeriesSource over the last lookbackDays+1 calendar days.
// Days without a row are simply absent.
func (s *CHSeriesSource) History(ctx context.Context, symbol string, lookbackDays int, asOf time.Time) (models.Series, error) {
	from, to, err := historyWindow(lookbackDays, asOf)
	if err != nil {
		return nil, fmt.Errorf("clickhouse history %s: %w", symbol, err)
	}
	return s.GetDailyBars(ctx, symbol, from, to)
}

func historyWindow(lookbackDays int, asOf time.Time) (time.Time, time.Time, error) {
	if lookbackDays < 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("lookback %d: %w", lookbackDays, domsvc.ErrInvalidWindow)
	}
	to := util.Day(asOf)
	return to.AddDate(0, 0, -lookbackDays), to, nil
}

// dedupeAscending drops non-positive closes and repeated days, keeping the last row per day.
func dedupeAscending(in models.Series) models.Series {
	out := in[:0]
	for _, p := range in {
		if p.Close <= 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

var (
	_ domrepo.DailyBarStore = (*CHSeriesSource)(nil)
	_ domsvc.SeriesSource   = (*CHSeriesSource)(nil)
)
