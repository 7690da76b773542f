package api

import (
	"sync"

	"github.com/labstack/echo/v4"

	"RegimeScope/internal/domain/models"
	pkghttp "RegimeScope/pkg/http"
	applogger "RegimeScope/pkg/logger"
)

// ReportHandler serves the latest analysis report over HTTP. The report is
// set once after the pipeline finishes; reads are lock-protected so a
// re-run can swap it in safely.
type ReportHandler struct {
	mu        sync.RWMutex
	report    *models.Report
	chartsDir string
	l         *applogger.Logger
}

// NewReportHandler creates a report handler. The report may be nil until
// SetReport is called.
func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// SetLogger injects a structured logger.
func (h *ReportHandler) SetLogger(l *applogger.Logger) { h.l = l }

// SetChartsDir serves rendered chart files under /charts when set.
func (h *ReportHandler) SetChartsDir(dir string) { h.chartsDir = dir }

// SetReport swaps in the report to serve.
func (h *ReportHandler) SetReport(r *models.Report) {
	h.mu.Lock()
	h.report = r
	h.mu.Unlock()
}

// RegisterRoutes registers API routes.
func (h *ReportHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	if h.chartsDir != "" {
		e.Static("/charts", h.chartsDir)
	}
	api := e.Group("/api")
	api.GET("/report", h.Report)
	api.GET("/summary", h.Summary)
	api.GET("/regimes", h.Regimes)
}

// Health reports liveness.
func (h *ReportHandler) Health(c echo.Context) error {
	return pkghttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// Report returns the full report: prices, returns, volatility, labels and
// summaries.
func (h *ReportHandler) Report(c echo.Context) error {
	rep := h.current()
	if rep == nil {
		return pkghttp.AppErrorResponse(c, pkghttp.NotFoundError("no report available yet"))
	}
	return pkghttp.SuccessResponse(c, rep)
}

type summaryResponse struct {
	Ticker           string                 `json:"ticker"`
	Provider         string                 `json:"provider"`
	Window           int                    `json:"window"`
	MedianVolatility float64                `json:"median_volatility"`
	Summaries        []models.RegimeSummary `json:"summaries"`
}

// Summary returns the per-regime statistics without the full series.
func (h *ReportHandler) Summary(c echo.Context) error {
	rep := h.current()
	if rep == nil {
		return pkghttp.AppErrorResponse(c, pkghttp.NotFoundError("no report available yet"))
	}
	return pkghttp.SuccessResponse(c, summaryResponse{
		Ticker:           rep.Ticker,
		Provider:         rep.Provider,
		Window:           rep.Window,
		MedianVolatility: rep.MedianVolatility,
		Summaries:        rep.Summaries,
	})
}

type regimesRequest struct {
	Regime string `query:"regime" validate:"omitempty,oneof=low high"`
}

type regimesResponse struct {
	Ticker string               `json:"ticker"`
	Count  int                  `json:"count"`
	Days   []models.RegimePoint `json:"days"`
}

// Regimes returns the labeled days, optionally filtered to one regime via
// ?regime=low|high.
func (h *ReportHandler) Regimes(c echo.Context) error {
	var req regimesRequest
	if errs := pkghttp.ReadAndValidateRequest(c, &req); errs != nil {
		if h.l != nil {
			h.l.Warn("regimes request invalid", applogger.Any("errors", errs))
		}
		return pkghttp.BadRequestResponse(c, errs)
	}

	rep := h.current()
	if rep == nil {
		return pkghttp.AppErrorResponse(c, pkghttp.NotFoundError("no report available yet"))
	}

	days := rep.Labels
	if req.Regime != "" {
		want := models.RegimeLow
		if req.Regime == "high" {
			want = models.RegimeHigh
		}
		days = make([]models.RegimePoint, 0, len(rep.Labels))
		for _, l := range rep.Labels {
			if l.Regime == want {
				days = append(days, l)
			}
		}
	}

	return pkghttp.SuccessResponse(c, regimesResponse{
		Ticker: rep.Ticker,
		Count:  len(days),
		Days:   days,
	})
}

func (h *ReportHandler) current() *models.Report {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.report
}

var _ pkghttp.Handler = (*ReportHandler)(nil)
