package stooq

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"RegimeScope/internal/domain/models"
	"RegimeScope/internal/domain/repository"
	"RegimeScope/pkg/util"
)

const baseURL = "https://stooq.com"

// Client fetches daily bars from Stooq's CSV download endpoint. Useful as
// a fallback when the Yahoo chart API is unavailable.
type Client struct {
	http *resty.Client
}

// New creates a Stooq market-data client.
func New(timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return "stooq" }

// FetchDaily returns closing prices for the inclusive calendar range. An
// empty or "no data" response fails with ErrDataUnavailable.
func (c *Client) FetchDaily(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error) {
	symbol := normalizeSymbol(ticker)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"s":  symbol,
			"d1": start.Format("20060102"),
			"d2": end.Format("20060102"),
			"i":  "d",
		}).
		Get("/q/d/l/")
	if err != nil {
		return nil, fmt.Errorf("stooq download %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("stooq download %s: status %d", symbol, resp.StatusCode())
	}

	points, err := parseDailyCSV(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("stooq parse %s: %w", symbol, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("stooq %s %s..%s: %w",
			symbol, util.FormatDate(start), util.FormatDate(end), models.ErrDataUnavailable)
	}
	return points, nil
}

// parseDailyCSV reads Stooq's Date,Open,High,Low,Close[,Volume] layout.
func parseDailyCSV(r io.Reader) ([]models.PricePoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	points := make([]models.PricePoint, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 5 {
			continue
		}
		date, ok := util.ParseDate(rec[0])
		if !ok {
			continue
		}
		close, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			continue
		}
		points = append(points, models.PricePoint{Date: date, Close: close})
	}
	return points, nil
}

// normalizeSymbol maps common Yahoo index tickers onto Stooq's naming and
// lowercases the rest, which is what the endpoint expects.
func normalizeSymbol(ticker string) string {
	s := strings.ToLower(strings.TrimSpace(ticker))
	switch s {
	case "^gspc":
		return "^spx"
	case "^ixic":
		return "^ndq"
	case "^dji":
		return "^dji"
	}
	return s
}

var _ repository.MarketData = (*Client)(nil)
