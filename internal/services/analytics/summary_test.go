package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegimeScope/internal/domain/models"
)

func TestMaxDrawdownNonPositive(t *testing.T) {
	cases := [][]float64{
		{0.01, 0.02, 0.03},
		{-0.05, 0.02, -0.10},
		{0.0, 0.0},
		nil,
	}
	for _, rs := range cases {
		assert.LessOrEqual(t, MaxDrawdown(rs), 0.0)
	}
}

func TestMaxDrawdownKnownPath(t *testing.T) {
	// curve: 1.0 -> 1.10 -> 0.88 -> 0.968; trough 0.88 against peak 1.10
	dd := MaxDrawdown([]float64{0.10, -0.20, 0.10})
	assert.InDelta(t, -0.20, dd, 1e-12)
}

func TestMaxDrawdownMonotonicGains(t *testing.T) {
	assert.Zero(t, MaxDrawdown([]float64{0.01, 0.01, 0.01}))
}

func TestSummarizeGroupsByLabel(t *testing.T) {
	returns := returnsFrom(0.01, -0.02, 0.03, -0.01)
	vol := volFrom(0.1, 0.2, 0.3, 0.4)
	labels, _ := ClassifyRegimes(vol)

	summaries := Summarize(returns, labels, 252)
	require.Len(t, summaries, 2)

	low, ok := findSummary(summaries, models.RegimeLow)
	require.True(t, ok)
	high, ok := findSummary(summaries, models.RegimeHigh)
	require.True(t, ok)

	assert.Equal(t, 2, low.Samples)
	assert.Equal(t, 2, high.Samples)

	// low regime holds the first two returns
	assert.InDelta(t, (0.01-0.02)/2*252, low.AnnualizedReturn, 1e-9)
	assert.InDelta(t, sampleStdDev([]float64{0.01, -0.02})*math.Sqrt(252), low.AnnualizedVolatility, 1e-9)
}

func TestSummarizeExcludesUnlabeledReturns(t *testing.T) {
	// four returns, labels only for the last two dates
	returns := returnsFrom(0.5, 0.5, 0.01, 0.02)
	vol := volFrom(0, 0, 0, 0)[2:]
	labels, _ := ClassifyRegimes(vol)

	summaries := Summarize(returns, labels, 252)
	high, ok := findSummary(summaries, models.RegimeHigh)
	require.True(t, ok)
	assert.Equal(t, 2, high.Samples)
}

func TestSummarizeInsufficientData(t *testing.T) {
	summaries := Summarize(nil, nil, 252)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		assert.True(t, s.Insufficient)
		assert.Zero(t, s.Samples)
		assert.Zero(t, s.AnnualizedReturn)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	returns := returnsFrom(0.01, -0.02, 0.03, -0.01, 0.02, 0.01)
	labels, _ := ClassifyRegimes(volFrom(0.1, 0.6, 0.2, 0.5, 0.3, 0.4))

	first := Summarize(returns, labels, 252)
	second := Summarize(returns, labels, 252)
	assert.Equal(t, first, second)
}

func findSummary(summaries []models.RegimeSummary, regime models.Regime) (models.RegimeSummary, bool) {
	for _, s := range summaries {
		if s.Regime == regime {
			return s, true
		}
	}
	return models.RegimeSummary{}, false
}
