package server

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/repository"
	"PriceCast/internal/usecase"
	"PriceCast/pkg/config"
	applogger "PriceCast/pkg/logger"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	catalog := repository.NewStaticCatalog(repository.DefaultInstruments())
	b := usecase.NewReportBuilder(catalog, usecase.SyntheticSources(catalog))
	return New(cfg, applogger.Nop(), nil, b, nil, repository.NoopReportPublisher{}, nil, nil)
}

func TestPrintReport_SeededIsStable(t *testing.T) {
	app := newTestApp(t)
	seed := uint64(42)

	var first, second bytes.Buffer
	require.NoError(t, app.PrintReport(context.Background(), &first, "aapl", &seed))
	require.NoError(t, app.PrintReport(context.Background(), &second, "AAPL", &seed))

	var a, b models.ReportResponse
	require.NoError(t, json.Unmarshal(first.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Bytes(), &b))

	assert.Equal(t, "AAPL", a.Symbol)
	assert.Equal(t, seed, a.Seed)
	assert.Len(t, a.History, 91)
	assert.Len(t, a.Forecast, 7)
	assert.Equal(t, a.Forecast, b.Forecast)
	assert.Equal(t, a.ID, b.ID)
}

func TestPrintReport_InvalidWindow(t *testing.T) {
	app := newTestApp(t)
	app.cfg.Pipeline.HorizonDays = 0

	var out bytes.Buffer
	err := app.PrintReport(context.Background(), &out, "AAPL", nil)
	require.Error(t, err)
	assert.Zero(t, out.Len())
}
