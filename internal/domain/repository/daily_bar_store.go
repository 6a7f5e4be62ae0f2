package repository

import (
	"context"
	"time"

	"PriceCast/internal/domain/models"
)

// DailyBarStore provides read-only access to stored daily closes.
type DailyBarStore interface {
	GetDailyBars(ctx context.Context, symbol string, from, to time.Time) (models.Series, error)
}
