package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegimeScope/internal/domain/models"
)

func testReport() *models.Report {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return &models.Report{
		Ticker:           "^GSPC",
		Provider:         "yahoo",
		Window:           30,
		MedianVolatility: 0.15,
		Labels: []models.RegimePoint{
			{Date: base, Regime: models.RegimeLow},
			{Date: base.AddDate(0, 0, 1), Regime: models.RegimeHigh},
			{Date: base.AddDate(0, 0, 2), Regime: models.RegimeHigh},
		},
		Summaries: []models.RegimeSummary{
			{Regime: models.RegimeLow, Samples: 1},
			{Regime: models.RegimeHigh, Samples: 2},
		},
	}
}

func serve(t *testing.T, h *ReportHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(t, NewReportHandler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestReportBeforeRun(t *testing.T) {
	rec := serve(t, NewReportHandler(), "/api/report")
	// envelope carries the 404 status; transport is always 200
	assert.Contains(t, rec.Body.String(), "no report available yet")
}

func TestSummary(t *testing.T) {
	h := NewReportHandler()
	h.SetReport(testReport())
	rec := serve(t, h, "/api/summary")

	var body struct {
		Data summaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "^GSPC", body.Data.Ticker)
	assert.Equal(t, 30, body.Data.Window)
	assert.Len(t, body.Data.Summaries, 2)
}

func TestRegimesFiltered(t *testing.T) {
	h := NewReportHandler()
	h.SetReport(testReport())
	rec := serve(t, h, "/api/regimes?regime=high")

	var body struct {
		Data regimesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Count)
	for _, d := range body.Data.Days {
		assert.Equal(t, models.RegimeHigh, d.Regime)
	}
}

func TestRegimesUnfiltered(t *testing.T) {
	h := NewReportHandler()
	h.SetReport(testReport())
	rec := serve(t, h, "/api/regimes")

	var body struct {
		Data regimesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.Count)
}

func TestRegimesRejectsBadFilter(t *testing.T) {
	h := NewReportHandler()
	h.SetReport(testReport())
	rec := serve(t, h, "/api/regimes?regime=sideways")
	assert.Contains(t, rec.Body.String(), "ERR_ONEOF")
}
