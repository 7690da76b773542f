package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewWithSeparateRegistries(t *testing.T) {
	// two recorders in one process must not collide on registration
	first := NewWith(prometheus.NewRegistry())
	second := NewWith(prometheus.NewRegistry())

	first.RecordFetch("yahoo", "^GSPC", 100, 0.5)
	second.RecordFetch("stooq", "^GSPC", 100, 0.5)
}

func TestRecorderExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWith(reg)

	r.RecordFetch("yahoo", "^GSPC", 42, 1.2)
	r.RecordStageLatency("volatility", 0.01)
	r.RecordError("fetch")
	r.RecordRegimeDays("^GSPC", "high", 10)
	r.RecordMedianVolatility("^GSPC", 0.15)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"regimescope_fetch_rows_total",
		"regimescope_fetch_duration_seconds",
		"regimescope_errors_total",
		"regimescope_stage_duration_seconds",
		"regimescope_regime_days",
		"regimescope_median_volatility",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}
