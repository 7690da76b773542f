package yahoo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"RegimeScope/internal/domain/models"
	"RegimeScope/internal/domain/repository"
	"RegimeScope/pkg/util"
)

// Client fetches daily bars from the Yahoo Finance chart API.
type Client struct{}

// New creates a Yahoo Finance market-data client.
func New() *Client {
	return &Client{}
}

// Name returns the provider name.
func (c *Client) Name() string { return "yahoo" }

// FetchDaily returns closing prices for the inclusive calendar range,
// date-ascending, one point per trading day. An empty result fails with
// ErrDataUnavailable.
func (c *Client) FetchDaily(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ticker = strings.TrimSpace(strings.ToUpper(ticker))
	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)
	points := make([]models.PricePoint, 0, 256)
	for iter.Next() {
		bar := iter.Bar()
		close, _ := bar.Close.Float64()
		points = append(points, models.PricePoint{
			Date:  util.Day(time.Unix(int64(bar.Timestamp), 0)),
			Close: close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("yahoo chart %s %s..%s: %w",
			ticker, util.FormatDate(start), util.FormatDate(end), models.ErrDataUnavailable)
	}
	return points, nil
}

var _ repository.MarketData = (*Client)(nil)
