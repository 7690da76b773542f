package repository

import (
	"context"
	"time"

	"RegimeScope/internal/domain/models"
)

// MarketData fetches daily closing prices from an external source.
// Implementations return models.ErrDataUnavailable (wrapped) when the
// source has no rows for the requested range.
type MarketData interface {
	FetchDaily(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error)
	Name() string
}

// Storage persists fetched bars and computed summaries.
type Storage interface {
	Init(ctx context.Context) error
	StoreBars(ctx context.Context, ticker string, bars []models.PricePoint) error
	StoreSummaries(ctx context.Context, report *models.Report) error
	Health(ctx context.Context) error
	Close() error
}

// Publisher emits the finished report to a message broker for downstream
// consumers.
type Publisher interface {
	PublishReport(ctx context.Context, report *models.Report) error
	Close() error
}

// Metrics records operational metrics for the pipeline.
type Metrics interface {
	RecordFetch(provider, ticker string, rows int, seconds float64)
	RecordStageLatency(stage string, seconds float64)
	RecordError(kind string)
	RecordRegimeDays(ticker, regime string, days int)
	RecordMedianVolatility(ticker string, value float64)
}
