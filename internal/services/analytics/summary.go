package analytics

import (
	"math"

	"RegimeScope/internal/domain/models"
)

// Summarize aggregates per-regime statistics over the returns whose dates
// carry a regime label. Returns before the first labeled date have no
// regime and are excluded. Both regimes always appear in the result; a
// regime with no returns is marked Insufficient instead of carrying
// statistics.
func Summarize(returns []models.ReturnPoint, labels []models.RegimePoint, tradingDays int) []models.RegimeSummary {
	byDate := make(map[int64]models.Regime, len(labels))
	for _, l := range labels {
		byDate[l.Date.Unix()] = l.Regime
	}

	grouped := map[models.Regime][]float64{
		models.RegimeLow:  nil,
		models.RegimeHigh: nil,
	}
	for _, r := range returns {
		regime, ok := byDate[r.Date.Unix()]
		if !ok {
			continue
		}
		grouped[regime] = append(grouped[regime], r.Value)
	}

	summaries := make([]models.RegimeSummary, 0, 2)
	for _, regime := range []models.Regime{models.RegimeLow, models.RegimeHigh} {
		rs := grouped[regime]
		if len(rs) == 0 {
			summaries = append(summaries, models.RegimeSummary{Regime: regime, Insufficient: true})
			continue
		}
		summaries = append(summaries, models.RegimeSummary{
			Regime:               regime,
			Samples:              len(rs),
			AnnualizedReturn:     mean(rs) * float64(tradingDays),
			AnnualizedVolatility: sampleStdDev(rs) * math.Sqrt(float64(tradingDays)),
			MaxDrawdown:          MaxDrawdown(rs),
		})
	}
	return summaries
}

// MaxDrawdown is the deepest peak-to-trough decline of the cumulative
// return curve built from the given returns in order. The result is <= 0
// by construction.
func MaxDrawdown(returns []float64) float64 {
	cumulative := 1.0
	peak := 1.0
	worst := 0.0
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		dd := cumulative/peak - 1
		if dd < worst {
			worst = dd
		}
	}
	return worst
}
