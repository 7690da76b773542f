package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"RegimeScope/internal/domain/models"
	domrepo "RegimeScope/internal/domain/repository"
	"RegimeScope/internal/report"
	"RegimeScope/internal/saver"
	"RegimeScope/internal/services/analytics"
	pkgcache "RegimeScope/pkg/cache"
	applogger "RegimeScope/pkg/logger"
	"RegimeScope/pkg/util"
)

// Params carries the wiring and run parameters for a Pipeline. Cache,
// Storage, Publisher, Charts and Logger are optional; a nil value disables
// that concern.
type Params struct {
	Provider  domrepo.MarketData
	Cache     pkgcache.Service
	CacheTTL  time.Duration
	Storage   domrepo.Storage
	Publisher domrepo.Publisher
	Metrics   domrepo.Metrics
	Saver     saver.PriceSaver
	Charts    *report.ChartRenderer
	Logger    *applogger.Logger

	Ticker      string
	Start       time.Time
	End         time.Time
	Window      int
	TradingDays int
	OutputDir   string
}

// Pipeline runs one end-to-end analysis: fetch daily closes, compute log
// returns and rolling volatility, classify regimes against the median,
// summarize per regime, then export and publish the result.
type Pipeline struct {
	p Params
}

// NewPipeline creates a pipeline from params.
func NewPipeline(p Params) *Pipeline {
	if p.Metrics == nil {
		p.Metrics = noopMetrics{}
	}
	return &Pipeline{p: p}
}

// Run executes the pipeline once and returns the finished report.
func (pl *Pipeline) Run(ctx context.Context) (*models.Report, error) {
	p := pl.p

	prices, err := pl.fetchPrices(ctx)
	if err != nil {
		p.Metrics.RecordError("fetch")
		return nil, err
	}

	if p.Saver != nil {
		if err := pl.savePrices(prices); err != nil {
			p.Metrics.RecordError("save")
			return nil, err
		}
	}

	rep, err := pl.analyze(prices)
	if err != nil {
		p.Metrics.RecordError("analyze")
		return nil, err
	}

	if err := pl.export(ctx, rep); err != nil {
		return nil, err
	}

	pl.logSummaries(rep)
	return rep, nil
}

func (pl *Pipeline) fetchPrices(ctx context.Context) ([]models.PricePoint, error) {
	p := pl.p
	key := pkgcache.GenerateKeyWithParams("prices",
		p.Ticker, util.FormatDate(p.Start), util.FormatDate(p.End))

	if p.Cache != nil {
		var cached []models.PricePoint
		if err := p.Cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			pl.info("price cache hit",
				applogger.String("ticker", p.Ticker),
				applogger.Int("rows", len(cached)))
			return cached, nil
		}
	}

	start := time.Now()
	prices, err := p.Provider.FetchDaily(ctx, p.Ticker, p.Start, p.End)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		return nil, fmt.Errorf("fetch %s from %s: %w", p.Ticker, p.Provider.Name(), err)
	}
	p.Metrics.RecordFetch(p.Provider.Name(), p.Ticker, len(prices), elapsed)
	pl.info("fetched daily bars",
		applogger.String("provider", p.Provider.Name()),
		applogger.String("ticker", p.Ticker),
		applogger.Int("rows", len(prices)),
		applogger.Duration("duration", time.Since(start)))

	if p.Cache != nil {
		if err := p.Cache.Set(ctx, key, prices, p.CacheTTL); err != nil {
			pl.warn("price cache set failed", applogger.Error(err))
		}
	}
	return prices, nil
}

func (pl *Pipeline) savePrices(prices []models.PricePoint) error {
	p := pl.p
	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(p.OutputDir, "index_prices."+p.Saver.Extension())
	if err := p.Saver.Save(prices, path); err != nil {
		return fmt.Errorf("save prices: %w", err)
	}
	pl.info("saved price series", applogger.String("path", path))
	return nil
}

func (pl *Pipeline) analyze(prices []models.PricePoint) (*models.Report, error) {
	p := pl.p

	stage := time.Now()
	returns, err := analytics.LogReturns(prices)
	if err != nil {
		return nil, fmt.Errorf("compute returns: %w", err)
	}
	p.Metrics.RecordStageLatency("returns", time.Since(stage).Seconds())

	stage = time.Now()
	vol := analytics.RollingVolatility(returns, p.Window, p.TradingDays)
	p.Metrics.RecordStageLatency("volatility", time.Since(stage).Seconds())

	stage = time.Now()
	labels, median := analytics.ClassifyRegimes(vol)
	p.Metrics.RecordStageLatency("classify", time.Since(stage).Seconds())

	stage = time.Now()
	summaries := analytics.Summarize(returns, labels, p.TradingDays)
	p.Metrics.RecordStageLatency("summarize", time.Since(stage).Seconds())

	counts := map[models.Regime]int{}
	for _, l := range labels {
		counts[l.Regime]++
	}
	for _, regime := range []models.Regime{models.RegimeLow, models.RegimeHigh} {
		p.Metrics.RecordRegimeDays(p.Ticker, regime.String(), counts[regime])
	}
	if len(vol) > 0 {
		p.Metrics.RecordMedianVolatility(p.Ticker, median)
	}

	return &models.Report{
		Ticker:           p.Ticker,
		Provider:         p.Provider.Name(),
		Start:            p.Start,
		End:              p.End,
		Window:           p.Window,
		TradingDays:      p.TradingDays,
		Prices:           prices,
		Returns:          returns,
		Volatility:       vol,
		Labels:           labels,
		MedianVolatility: median,
		Summaries:        summaries,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

func (pl *Pipeline) export(ctx context.Context, rep *models.Report) error {
	p := pl.p

	if p.Storage != nil {
		if err := p.Storage.Init(ctx); err != nil {
			p.Metrics.RecordError("storage_init")
			return fmt.Errorf("init storage: %w", err)
		}
		start := time.Now()
		if err := p.Storage.StoreBars(ctx, rep.Ticker, rep.Prices); err != nil {
			p.Metrics.RecordError("storage_bars")
			return fmt.Errorf("store bars: %w", err)
		}
		if err := p.Storage.StoreSummaries(ctx, rep); err != nil {
			p.Metrics.RecordError("storage_summaries")
			return fmt.Errorf("store summaries: %w", err)
		}
		p.Metrics.RecordStageLatency("store", time.Since(start).Seconds())
	}

	if p.Publisher != nil {
		start := time.Now()
		if err := p.Publisher.PublishReport(ctx, rep); err != nil {
			p.Metrics.RecordError("publish")
			return fmt.Errorf("publish report: %w", err)
		}
		p.Metrics.RecordStageLatency("publish", time.Since(start).Seconds())
	}

	if p.Charts != nil {
		paths, err := p.Charts.RenderAll(rep, p.OutputDir)
		if err != nil {
			p.Metrics.RecordError("charts")
			return fmt.Errorf("render charts: %w", err)
		}
		pl.info("rendered charts", applogger.Int("files", len(paths)))
	}
	return nil
}

func (pl *Pipeline) logSummaries(rep *models.Report) {
	for _, s := range rep.Summaries {
		if s.Insufficient {
			pl.info("regime summary",
				applogger.String("ticker", rep.Ticker),
				applogger.String("regime", s.Regime.String()),
				applogger.String("status", "insufficient data"))
			continue
		}
		pl.info("regime summary",
			applogger.String("ticker", rep.Ticker),
			applogger.String("regime", s.Regime.String()),
			applogger.Int("samples", s.Samples),
			applogger.Float64("annualized_return", s.AnnualizedReturn),
			applogger.Float64("annualized_volatility", s.AnnualizedVolatility),
			applogger.Float64("max_drawdown", s.MaxDrawdown))
	}
}

func (pl *Pipeline) info(msg string, fields ...applogger.Field) {
	if pl.p.Logger != nil {
		pl.p.Logger.Info(msg, fields...)
	}
}

func (pl *Pipeline) warn(msg string, fields ...applogger.Field) {
	if pl.p.Logger != nil {
		pl.p.Logger.Warn(msg, fields...)
	}
}

type noopMetrics struct{}

func (noopMetrics) RecordFetch(string, string, int, float64) {}
func (noopMetrics) RecordStageLatency(string, float64)       {}
func (noopMetrics) RecordError(string)                       {}
func (noopMetrics) RecordRegimeDays(string, string, int)     {}
func (noopMetrics) RecordMedianVolatility(string, float64)   {}
