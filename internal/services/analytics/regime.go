package analytics

import (
	"sort"

	"RegimeScope/internal/domain/models"
)

// ClassifyRegimes labels every volatility date against the full-series
// median: high when volatility >= median, low otherwise. The threshold is
// computed once from the whole series, not incrementally, so a date at
// exactly the median lands in the high regime. Returns the labels and the
// median used.
func ClassifyRegimes(vol []models.VolatilityPoint) ([]models.RegimePoint, float64) {
	if len(vol) == 0 {
		return nil, 0
	}

	med := Median(volValues(vol))
	labels := make([]models.RegimePoint, len(vol))
	for i, v := range vol {
		regime := models.RegimeLow
		if v.Value >= med {
			regime = models.RegimeHigh
		}
		labels[i] = models.RegimePoint{Date: v.Date, Regime: regime}
	}
	return labels, med
}

// Median averages the two middle values for even-length input.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func volValues(points []models.VolatilityPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}
