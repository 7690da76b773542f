package analytics

import (
	"fmt"
	"math"

	"RegimeScope/internal/domain/models"
)

// LogReturns derives the log-return series from a price series. The first
// date is dropped (no prior close to compare), so the result has exactly
// len(prices)-1 entries. Any non-positive close fails with ErrInvalidPrice.
func LogReturns(prices []models.PricePoint) ([]models.ReturnPoint, error) {
	if len(prices) < 2 {
		return nil, nil
	}

	returns := make([]models.ReturnPoint, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		prev, cur := prices[i-1], prices[i]
		if prev.Close <= 0 {
			return nil, fmt.Errorf("close %.4f at %s: %w", prev.Close, prev.Date.Format("2006-01-02"), models.ErrInvalidPrice)
		}
		if cur.Close <= 0 {
			return nil, fmt.Errorf("close %.4f at %s: %w", cur.Close, cur.Date.Format("2006-01-02"), models.ErrInvalidPrice)
		}
		returns = append(returns, models.ReturnPoint{
			Date:  cur.Date,
			Value: math.Log(cur.Close / prev.Close),
		})
	}
	return returns, nil
}
