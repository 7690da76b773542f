package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegimeScope/internal/domain/models"
)

func volFrom(vals ...float64) []models.VolatilityPoint {
	// same date axis as returnsFrom so summary tests can join by date
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.VolatilityPoint, len(vals))
	for i, v := range vals {
		out[i] = models.VolatilityPoint{Date: base.AddDate(0, 0, i), Value: v}
	}
	return out
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))
	assert.Equal(t, 7.0, Median([]float64{7}))
	assert.Zero(t, Median(nil))
}

func TestClassifyRegimesThreshold(t *testing.T) {
	labels, med := ClassifyRegimes(volFrom(0.10, 0.20, 0.30, 0.40))
	require.Len(t, labels, 4)
	assert.Equal(t, 0.25, med)

	assert.Equal(t, models.RegimeLow, labels[0].Regime)
	assert.Equal(t, models.RegimeLow, labels[1].Regime)
	assert.Equal(t, models.RegimeHigh, labels[2].Regime)
	assert.Equal(t, models.RegimeHigh, labels[3].Regime)
}

func TestClassifyRegimesHalfSplit(t *testing.T) {
	labels, _ := ClassifyRegimes(volFrom(0.1, 0.5, 0.2, 0.6, 0.3, 0.4))
	var high int
	for _, l := range labels {
		if l.Regime == models.RegimeHigh {
			high++
		}
	}
	assert.Equal(t, len(labels)/2, high)
}

func TestClassifyRegimesInclusiveAtMedian(t *testing.T) {
	// odd length: the middle value sits exactly at the median
	labels, med := ClassifyRegimes(volFrom(0.1, 0.2, 0.3))
	assert.Equal(t, 0.2, med)
	assert.Equal(t, models.RegimeHigh, labels[1].Regime)
}

func TestClassifyRegimesAllIdentical(t *testing.T) {
	labels, _ := ClassifyRegimes(volFrom(0.25, 0.25, 0.25, 0.25))
	for _, l := range labels {
		assert.Equal(t, models.RegimeHigh, l.Regime)
	}
}

func TestClassifyRegimesEmpty(t *testing.T) {
	labels, med := ClassifyRegimes(nil)
	assert.Empty(t, labels)
	assert.Zero(t, med)
}
