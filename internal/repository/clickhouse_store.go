package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"RegimeScope/internal/domain/models"
	"RegimeScope/internal/domain/repository"
	pkgch "RegimeScope/pkg/clickhouse"
)

var schemaStatements = []string{
	`CREATE DATABASE IF NOT EXISTS regimescope`,
	`CREATE TABLE IF NOT EXISTS regimescope.daily_bars (
		ticker String,
		d Date,
		close Float64
	) ENGINE = ReplacingMergeTree
	ORDER BY (ticker, d)`,
	`CREATE TABLE IF NOT EXISTS regimescope.regime_summaries (
		ticker String,
		regime String,
		samples UInt64,
		ann_return Float64,
		ann_vol Float64,
		max_drawdown Float64,
		insufficient UInt8,
		generated_at DateTime
	) ENGINE = MergeTree
	ORDER BY (ticker, generated_at)`,
}

// ClickHouseStorage implements Storage for ClickHouse.
type ClickHouseStorage struct {
	client *pkgch.Client
	db     *sql.DB
}

// NewClickHouseStorage creates ClickHouse storage.
func NewClickHouseStorage(client *pkgch.Client) repository.Storage {
	return &ClickHouseStorage{client: client, db: client.DB()}
}

// Init creates the database and tables if they do not exist.
func (s *ClickHouseStorage) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, schemaStatements)
}

// StoreBars writes closing prices with multi-row VALUES inserts to reduce
// round-trips. Chunk size tuned to 2000 rows per batch.
func (s *ClickHouseStorage) StoreBars(ctx context.Context, ticker string, bars []models.PricePoint) error {
	if len(bars) == 0 {
		return nil
	}
	const chunkSize = 2000
	for start := 0; start < len(bars); start += chunkSize {
		end := start + chunkSize
		if end > len(bars) {
			end = len(bars)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*3)
		for _, b := range bars[start:end] {
			if b.Date.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?)")
			args = append(args, ticker, b.Date, b.Close)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO regimescope.daily_bars (ticker, d, close) VALUES %s",
			strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert daily bars: %w", err)
		}
	}
	return nil
}

// StoreSummaries writes one row per regime summary in the report.
func (s *ClickHouseStorage) StoreSummaries(ctx context.Context, report *models.Report) error {
	if report == nil || len(report.Summaries) == 0 {
		return nil
	}
	values := make([]string, 0, len(report.Summaries))
	args := make([]interface{}, 0, len(report.Summaries)*8)
	for _, sum := range report.Summaries {
		insufficient := uint8(0)
		if sum.Insufficient {
			insufficient = 1
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			report.Ticker,
			sum.Regime.String(),
			uint64(sum.Samples),
			sum.AnnualizedReturn,
			sum.AnnualizedVolatility,
			sum.MaxDrawdown,
			insufficient,
			report.GeneratedAt,
		)
	}
	q := fmt.Sprintf("INSERT INTO regimescope.regime_summaries (ticker, regime, samples, ann_return, ann_vol, max_drawdown, insufficient, generated_at) VALUES %s",
		strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert regime summaries: %w", err)
	}
	return nil
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStorage) Close() error {
	return s.client.Close()
}
