package saver

import (
	"github.com/parquet-go/parquet-go"

	"RegimeScope/internal/domain/models"
	"RegimeScope/pkg/util"
)

// priceRow is the on-disk row shape shared by the JSON and Parquet savers.
// Dates are serialized as YYYY-MM-DD strings so files stay readable.
type priceRow struct {
	Date  string  `json:"date" parquet:"date"`
	Close float64 `json:"close" parquet:"close"`
}

// ParquetSaver writes the series as a Parquet file.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(points []models.PricePoint, path string) error {
	rows := make([]priceRow, len(points))
	for i, p := range points {
		rows[i] = priceRow{Date: util.FormatDate(p.Date), Close: p.Close}
	}
	return parquet.WriteFile(path, rows)
}
