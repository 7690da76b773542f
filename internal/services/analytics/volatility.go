package analytics

import (
	"math"

	"RegimeScope/internal/domain/models"
)

// RollingVolatility computes the trailing-window annualized standard
// deviation of returns. Each output point covers the `window` returns
// ending at its date, so the series starts once a full window exists:
// length = max(0, len(returns)-window+1). A short input yields an empty
// series, not an error.
func RollingVolatility(returns []models.ReturnPoint, window, tradingDays int) []models.VolatilityPoint {
	if window < 2 || len(returns) < window {
		return nil
	}

	factor := math.Sqrt(float64(tradingDays))
	vol := make([]models.VolatilityPoint, 0, len(returns)-window+1)
	for i := window - 1; i < len(returns); i++ {
		sd := sampleStdDev(values(returns[i-window+1 : i+1]))
		vol = append(vol, models.VolatilityPoint{
			Date:  returns[i].Date,
			Value: sd * factor,
		})
	}
	return vol
}

func values(points []models.ReturnPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

// sampleStdDev is the n-1 normalized standard deviation.
func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
