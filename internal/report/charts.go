package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"RegimeScope/internal/domain/models"
	"RegimeScope/pkg/util"
)

const histogramBins = 50

// ChartRenderer renders the analysis report as standalone HTML charts.
type ChartRenderer struct {
	width  string
	height string
}

// NewChartRenderer creates a renderer with the default canvas size.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{width: "1100px", height: "500px"}
}

// RenderAll writes the price, volatility and return-distribution charts into
// dir and returns the paths written. dir is created if missing.
func (r *ChartRenderer) RenderAll(rep *models.Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	paths := make([]string, 0, 3)
	for _, c := range []struct {
		name   string
		render func(*models.Report, string) error
	}{
		{"price.html", r.renderPrice},
		{"volatility.html", r.renderVolatility},
		{"return_distribution.html", r.renderDistribution},
	} {
		path := filepath.Join(dir, c.name)
		if err := c.render(rep, path); err != nil {
			return nil, fmt.Errorf("render %s: %w", c.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *ChartRenderer) renderPrice(rep *models.Report, path string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Index Price Over Time",
			Subtitle: fmt.Sprintf("%s %s to %s", rep.Ticker, util.FormatDate(rep.Start), util.FormatDate(rep.End)),
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: r.width, Height: r.height}),
	)

	dates := make([]string, len(rep.Prices))
	data := make([]opts.LineData, len(rep.Prices))
	for i, p := range rep.Prices {
		dates[i] = util.FormatDate(p.Date)
		data[i] = opts.LineData{Value: p.Close}
	}
	line.SetXAxis(dates).AddSeries("Close", data)

	return renderToFile(line, path)
}

func (r *ChartRenderer) renderVolatility(rep *models.Report, path string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Rolling %d-Day Volatility (Annualized)", rep.Window),
			Subtitle: fmt.Sprintf("median %.4f splits low and high regimes", rep.MedianVolatility),
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: r.width, Height: r.height}),
	)

	dates := make([]string, len(rep.Volatility))
	vol := make([]opts.LineData, len(rep.Volatility))
	med := make([]opts.LineData, len(rep.Volatility))
	for i, v := range rep.Volatility {
		dates[i] = util.FormatDate(v.Date)
		vol[i] = opts.LineData{Value: v.Value}
		med[i] = opts.LineData{Value: rep.MedianVolatility}
	}
	line.SetXAxis(dates).
		AddSeries("Volatility", vol).
		AddSeries("Median", med)

	return renderToFile(line, path)
}

func (r *ChartRenderer) renderDistribution(rep *models.Report, path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Return Distribution by Volatility Regime",
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: r.width, Height: r.height}),
	)

	low, high := splitReturns(rep)
	edges := binEdges(append(append([]float64{}, low...), high...), histogramBins)
	labels := make([]string, 0, histogramBins)
	lowData := make([]opts.BarData, 0, histogramBins)
	highData := make([]opts.BarData, 0, histogramBins)
	lowCounts := histogram(low, edges)
	highCounts := histogram(high, edges)
	for i := 0; i < len(edges)-1; i++ {
		labels = append(labels, fmt.Sprintf("%.4f", (edges[i]+edges[i+1])/2))
		lowData = append(lowData, opts.BarData{Value: lowCounts[i]})
		highData = append(highData, opts.BarData{Value: highCounts[i]})
	}
	bar.SetXAxis(labels).
		AddSeries("Low volatility", lowData).
		AddSeries("High volatility", highData)

	return renderToFile(bar, path)
}

type renderable interface {
	Render(w io.Writer) error
}

func renderToFile(c renderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.Render(f)
}

// splitReturns partitions daily returns by their day's regime label. Returns
// with no label (the warmup window) are excluded from the histogram.
func splitReturns(rep *models.Report) (low, high []float64) {
	labels := make(map[int64]models.Regime, len(rep.Labels))
	for _, l := range rep.Labels {
		labels[l.Date.Unix()] = l.Regime
	}
	for _, ret := range rep.Returns {
		regime, ok := labels[ret.Date.Unix()]
		if !ok {
			continue
		}
		if regime == models.RegimeHigh {
			high = append(high, ret.Value)
		} else {
			low = append(low, ret.Value)
		}
	}
	return low, high
}

// binEdges computes bins+1 equal-width edges over the data range. A flat or
// empty sample still yields usable edges around the single value.
func binEdges(values []float64, bins int) []float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if len(values) == 0 {
		min, max = 0, 1
	}
	if min == max {
		min -= 0.5
		max += 0.5
	}
	width := (max - min) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	return edges
}

func histogram(values []float64, edges []float64) []int {
	counts := make([]int, len(edges)-1)
	width := edges[1] - edges[0]
	for _, v := range values {
		idx := int((v - edges[0]) / width)
		if idx < 0 {
			continue
		}
		if idx >= len(counts) {
			idx = len(counts) - 1
		}
		counts[idx]++
	}
	return counts
}
