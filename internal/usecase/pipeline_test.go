package usecase

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegimeScope/internal/domain/models"
	"RegimeScope/internal/report"
	"RegimeScope/internal/saver"
	pkgcache "RegimeScope/pkg/cache"
)

type fakeProvider struct {
	prices []models.PricePoint
	err    error
	calls  int
}

func (f *fakeProvider) FetchDaily(_ context.Context, _ string, _, _ time.Time) ([]models.PricePoint, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.prices, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func dailyPrices(closes []float64) []models.PricePoint {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		out[i] = models.PricePoint{Date: base.AddDate(0, 0, i), Close: c}
	}
	return out
}

func testParams(provider *fakeProvider, dir string) Params {
	return Params{
		Provider:    provider,
		Ticker:      "^GSPC",
		Start:       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Window:      3,
		TradingDays: 252,
		OutputDir:   dir,
	}
}

func TestRunProducesReport(t *testing.T) {
	provider := &fakeProvider{prices: dailyPrices([]float64{100, 105, 103, 108, 110, 107, 112, 115})}
	p := testParams(provider, t.TempDir())
	p.Saver = saver.Must("csv")

	rep, err := NewPipeline(p).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "^GSPC", rep.Ticker)
	assert.Equal(t, "fake", rep.Provider)
	assert.Len(t, rep.Returns, 7)
	assert.Len(t, rep.Volatility, 5)
	assert.Len(t, rep.Labels, 5)
	require.Len(t, rep.Summaries, 2)

	low, ok := rep.Summary(models.RegimeLow)
	require.True(t, ok)
	high, ok := rep.Summary(models.RegimeHigh)
	require.True(t, ok)
	assert.False(t, low.Insufficient)
	assert.False(t, high.Insufficient)
	assert.LessOrEqual(t, low.MaxDrawdown, 0.0)
	assert.LessOrEqual(t, high.MaxDrawdown, 0.0)

	data, err := os.ReadFile(filepath.Join(p.OutputDir, "index_prices.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Close")
	assert.Contains(t, string(data), "2024-01-02,100")
}

func TestRunIsDeterministic(t *testing.T) {
	closes := []float64{100, 102, 101, 104, 103, 106, 108, 105, 109, 111}
	provider := &fakeProvider{prices: dailyPrices(closes)}
	p := testParams(provider, t.TempDir())

	first, err := NewPipeline(p).Run(context.Background())
	require.NoError(t, err)
	second, err := NewPipeline(p).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Returns, second.Returns)
	assert.Equal(t, first.Volatility, second.Volatility)
	assert.Equal(t, first.Labels, second.Labels)
	assert.Equal(t, first.MedianVolatility, second.MedianVolatility)
	assert.Equal(t, first.Summaries, second.Summaries)
}

func TestRunUsesCacheOnSecondRun(t *testing.T) {
	provider := &fakeProvider{prices: dailyPrices([]float64{100, 105, 103, 108, 110})}
	p := testParams(provider, t.TempDir())
	p.Cache = pkgcache.NewMemoryCache()
	p.CacheTTL = time.Hour
	defer p.Cache.Close()

	pl := NewPipeline(p)
	_, err := pl.Run(context.Background())
	require.NoError(t, err)
	_, err = pl.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls, "second run should hit the price cache")
}

func TestRunRendersCharts(t *testing.T) {
	provider := &fakeProvider{prices: dailyPrices([]float64{100, 105, 103, 108, 110, 107, 112})}
	p := testParams(provider, t.TempDir())
	p.Charts = report.NewChartRenderer()

	_, err := NewPipeline(p).Run(context.Background())
	require.NoError(t, err)

	for _, name := range []string{"price.html", "volatility.html", "return_distribution.html"} {
		info, err := os.Stat(filepath.Join(p.OutputDir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestRunShortSeriesMarksInsufficient(t *testing.T) {
	// three prices and a window of 3: two returns, no volatility points
	provider := &fakeProvider{prices: dailyPrices([]float64{100, 101, 102})}
	p := testParams(provider, t.TempDir())

	rep, err := NewPipeline(p).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, rep.Volatility)
	assert.Empty(t, rep.Labels)
	require.Len(t, rep.Summaries, 2)
	for _, s := range rep.Summaries {
		assert.True(t, s.Insufficient, "regime %s", s.Regime)
	}
}

func TestRunPropagatesInvalidPrice(t *testing.T) {
	provider := &fakeProvider{prices: dailyPrices([]float64{100, 0, 102})}
	p := testParams(provider, t.TempDir())

	_, err := NewPipeline(p).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidPrice)
}

func TestRunPropagatesDataUnavailable(t *testing.T) {
	provider := &fakeProvider{err: models.ErrDataUnavailable}
	p := testParams(provider, t.TempDir())

	_, err := NewPipeline(p).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDataUnavailable)
}

func TestRunVolatilityIsAnnualized(t *testing.T) {
	provider := &fakeProvider{prices: dailyPrices([]float64{100, 110, 100, 110, 100})}
	p := testParams(provider, t.TempDir())
	p.Window = 2

	rep, err := NewPipeline(p).Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, rep.Volatility)

	// window 2: std = |r1-r2|/sqrt(2), annualized by sqrt(252)
	r1 := math.Log(110.0 / 100.0)
	r2 := math.Log(100.0 / 110.0)
	want := math.Abs(r1-r2) / math.Sqrt2 * math.Sqrt(252)
	assert.InDelta(t, want, rep.Volatility[0].Value, 1e-12)
}
