package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PricePoint is one daily close. Series are date-ascending, one entry per
// trading day, price strictly positive.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// ReturnPoint is the log return for a date: ln(close_t / close_{t-1}).
type ReturnPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// VolatilityPoint is the annualized rolling standard deviation of returns
// ending at Date.
type VolatilityPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Regime is the volatility regime of a date.
type Regime int

const (
	RegimeLow Regime = iota
	RegimeHigh
)

func (r Regime) String() string {
	switch r {
	case RegimeLow:
		return "low"
	case RegimeHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the regime as its name.
func (r Regime) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a regime name.
func (r *Regime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "low":
		*r = RegimeLow
	case "high":
		*r = RegimeHigh
	default:
		return fmt.Errorf("unknown regime %q", s)
	}
	return nil
}

// RegimePoint labels one date of the volatility series.
type RegimePoint struct {
	Date   time.Time `json:"date"`
	Regime Regime    `json:"regime"`
}
