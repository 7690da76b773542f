package saver

import (
	"encoding/json"
	"os"

	"RegimeScope/internal/domain/models"
	"RegimeScope/pkg/util"
)

// JSONSaver writes the series as an indented JSON array.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(points []models.PricePoint, path string) error {
	rows := make([]priceRow, len(points))
	for i, p := range points {
		rows[i] = priceRow{Date: util.FormatDate(p.Date), Close: p.Close}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
