package saver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"RegimeScope/internal/domain/models"
)

func samplePoints() []models.PricePoint {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return []models.PricePoint{
		{Date: base, Close: 4742.83},
		{Date: base.AddDate(0, 0, 1), Close: 4704.81},
	}
}

func TestNewSelectsFormat(t *testing.T) {
	cases := map[string]string{
		"csv":     "csv",
		" CSV ":   "csv",
		"json":    "json",
		"parquet": "parquet",
		"PARQUET": "parquet",
	}
	for format, ext := range cases {
		s := New(format)
		if s == nil {
			t.Fatalf("New(%q) returned nil", format)
		}
		if got := s.Extension(); got != ext {
			t.Errorf("New(%q).Extension() = %q, want %q", format, got, ext)
		}
	}
	if s := New("xml"); s != nil {
		t.Errorf("New(xml) = %v, want nil", s)
	}
}

func TestMustPanicsOnUnsupported(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Must(xml) did not panic")
		}
	}()
	Must("xml")
}

func TestCSVSaverRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index_prices.csv")
	if err := (CSVSaver{}).Save(samplePoints(), path); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "Date,Close\n2024-01-02,4742.83\n2024-01-03,4704.81\n"
	if string(data) != want {
		t.Errorf("csv content = %q, want %q", data, want)
	}
}

func TestJSONSaverRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index_prices.json")
	if err := (JSONSaver{}).Save(samplePoints(), path); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var rows []priceRow
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Date != "2024-01-02" || rows[0].Close != 4742.83 {
		t.Errorf("first row = %+v", rows[0])
	}
}

func TestParquetSaverWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index_prices.parquet")
	if err := (ParquetSaver{}).Save(samplePoints(), path); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("parquet file is empty")
	}
}
