package saver

import (
	"fmt"
	"strings"

	"RegimeScope/internal/domain/models"
)

// PriceSaver persists a daily price series to disk. The pipeline picks the
// implementation from config; callers only depend on the interface.
type PriceSaver interface {
	Save(points []models.PricePoint, path string) error
	Extension() string
}

// New returns the saver for the given format, or nil when the format is
// not supported.
func New(format string) PriceSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{}
	case "parquet":
		return ParquetSaver{}
	default:
		return nil
	}
}

// Must is New but panics on an unsupported format. Used at startup where a
// bad value means the config already failed validation.
func Must(format string) PriceSaver {
	s := New(format)
	if s == nil {
		panic(fmt.Sprintf("saver: unsupported format %q (use: csv, json, parquet)", format))
	}
	return s
}
