package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegimeScope/internal/domain/models"
)

func sampleReport() *models.Report {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	day := func(i int) time.Time { return base.AddDate(0, 0, i) }

	return &models.Report{
		Ticker:   "^GSPC",
		Provider: "yahoo",
		Start:    day(0),
		End:      day(4),
		Window:   2,
		Prices: []models.PricePoint{
			{Date: day(0), Close: 100}, {Date: day(1), Close: 105},
			{Date: day(2), Close: 103}, {Date: day(3), Close: 108},
			{Date: day(4), Close: 110},
		},
		Returns: []models.ReturnPoint{
			{Date: day(1), Value: 0.0488}, {Date: day(2), Value: -0.0192},
			{Date: day(3), Value: 0.0474}, {Date: day(4), Value: 0.0183},
		},
		Volatility: []models.VolatilityPoint{
			{Date: day(2), Value: 0.76}, {Date: day(3), Value: 0.75},
			{Date: day(4), Value: 0.33},
		},
		Labels: []models.RegimePoint{
			{Date: day(2), Regime: models.RegimeHigh},
			{Date: day(3), Regime: models.RegimeHigh},
			{Date: day(4), Regime: models.RegimeLow},
		},
		MedianVolatility: 0.75,
		GeneratedAt:      day(5),
	}
}

func TestRenderAllWritesThreeCharts(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewChartRenderer().RenderAll(sampleReport(), dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	want := []string{"price.html", "volatility.html", "return_distribution.html"}
	for i, name := range want {
		assert.Equal(t, filepath.Join(dir, name), paths[i])
		info, err := os.Stat(paths[i])
		require.NoError(t, err)
		assert.Positive(t, info.Size(), "%s should not be empty", name)
	}
}

func TestSplitReturnsExcludesWarmup(t *testing.T) {
	low, high := splitReturns(sampleReport())
	// day(1) has no regime label and must not appear in either bucket.
	assert.Equal(t, []float64{0.0183}, low)
	assert.Equal(t, []float64{-0.0192, 0.0474}, high)
}

func TestBinEdges(t *testing.T) {
	edges := binEdges([]float64{0, 1}, 4)
	require.Len(t, edges, 5)
	assert.Equal(t, 0.0, edges[0])
	assert.Equal(t, 1.0, edges[4])
	assert.InDelta(t, 0.25, edges[1], 1e-12)
}

func TestBinEdgesFlatSample(t *testing.T) {
	edges := binEdges([]float64{0.5, 0.5}, 2)
	require.Len(t, edges, 3)
	assert.Equal(t, 0.0, edges[0])
	assert.Equal(t, 1.0, edges[2])
}

func TestHistogramCountsIntoBins(t *testing.T) {
	edges := binEdges([]float64{0, 1}, 2)
	counts := histogram([]float64{0.1, 0.2, 0.9, 1.0}, edges)
	// the top edge is inclusive so 1.0 lands in the last bin
	assert.Equal(t, []int{2, 2}, counts)
}
