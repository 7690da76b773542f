package saver

import (
	"encoding/csv"
	"os"
	"strconv"

	"RegimeScope/internal/domain/models"
	"RegimeScope/pkg/util"
)

// CSVSaver writes the series as CSV (header: Date,Close).
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(points []models.PricePoint, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Close"}); err != nil {
		return err
	}
	for _, p := range points {
		if err := w.Write([]string{
			util.FormatDate(p.Date),
			strconv.FormatFloat(p.Close, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	return nil
}
