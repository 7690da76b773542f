package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchRows     *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	errorsTotal   *prometheus.CounterVec
	stageLatency  *prometheus.HistogramVec
	regimeDays    *prometheus.GaugeVec
	medianVol     *prometheus.GaugeVec
}

// New creates a recorder on the default registry, which /metrics scrapes.
func New() *Recorder {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates a recorder on the given registerer. Use a dedicated
// registry to build more than one recorder in a process.
func NewWith(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		fetchRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regimescope_fetch_rows_total",
				Help: "Total daily bars fetched from a market-data provider",
			},
			[]string{"provider", "ticker"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regimescope_fetch_duration_seconds",
				Help:    "Duration of market-data fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regimescope_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		stageLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regimescope_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		regimeDays: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "regimescope_regime_days",
				Help: "Number of classified days per volatility regime",
			},
			[]string{"ticker", "regime"},
		),
		medianVol: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "regimescope_median_volatility",
				Help: "Median annualized rolling volatility of the last run",
			},
			[]string{"ticker"},
		),
	}
}

// RecordFetch records a completed provider fetch.
func (r *Recorder) RecordFetch(provider, ticker string, rows int, seconds float64) {
	r.fetchRows.WithLabelValues(provider, ticker).Add(float64(rows))
	r.fetchDuration.WithLabelValues(provider).Observe(seconds)
}

// RecordStageLatency records a pipeline stage duration in seconds.
func (r *Recorder) RecordStageLatency(stage string, seconds float64) {
	r.stageLatency.WithLabelValues(stage).Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordRegimeDays records the size of a regime after classification.
func (r *Recorder) RecordRegimeDays(ticker, regime string, days int) {
	r.regimeDays.WithLabelValues(ticker, regime).Set(float64(days))
}

// RecordMedianVolatility records the classification threshold.
func (r *Recorder) RecordMedianVolatility(ticker string, value float64) {
	r.medianVol.WithLabelValues(ticker).Set(value)
}
