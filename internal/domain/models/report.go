package models

import "time"

// RegimeSummary holds per-regime descriptive statistics over the daily
// returns whose dates carry that regime label.
type RegimeSummary struct {
	Regime               Regime  `json:"regime"`
	Samples              int     `json:"samples"`
	AnnualizedReturn     float64 `json:"annualized_return"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	MaxDrawdown          float64 `json:"max_drawdown"`
	// Insufficient is set when the regime has no returns to aggregate;
	// the statistic fields are zero and must not be interpreted.
	Insufficient bool `json:"insufficient"`
}

// Report is the complete output of one analysis run. Create-once: nothing
// mutates a Report after the pipeline returns it.
type Report struct {
	Ticker           string            `json:"ticker"`
	Provider         string            `json:"provider"`
	Start            time.Time         `json:"start"`
	End              time.Time         `json:"end"`
	Window           int               `json:"window"`
	TradingDays      int               `json:"trading_days"`
	Prices           []PricePoint      `json:"prices"`
	Returns          []ReturnPoint     `json:"returns"`
	Volatility       []VolatilityPoint `json:"volatility"`
	Labels           []RegimePoint     `json:"labels"`
	MedianVolatility float64           `json:"median_volatility"`
	Summaries        []RegimeSummary   `json:"summaries"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// Summary returns the summary for a regime, if present.
func (r *Report) Summary(regime Regime) (RegimeSummary, bool) {
	for _, s := range r.Summaries {
		if s.Regime == regime {
			return s, true
		}
	}
	return RegimeSummary{}, false
}
