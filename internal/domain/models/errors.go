package models

import "errors"

var (
	// ErrDataUnavailable indicates the market-data source returned no rows
	// for the requested ticker and range. Terminal for the run.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrInvalidPrice indicates a non-positive closing price, for which a
	// log return is undefined. Terminal for the run.
	ErrInvalidPrice = errors.New("invalid price")
)
