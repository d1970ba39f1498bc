package app

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"fuelcast/internal/config"
	"fuelcast/internal/forecast"
)

func testApp() *App {
	cfg := &config.Config{
		Prediction: config.PredictionConfig{Window: 7, DefaultHour: 6},
		Export:     config.ExportConfig{MaxDataPoints: 1000},
	}
	return NewApp(cfg, zerolog.Nop())
}

func TestExportRequiresDestination(t *testing.T) {
	if err := testApp().Export(context.Background(), ExportOptions{}); err == nil {
		t.Fatal("export without --csv or --png must error")
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	target := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	err := testApp().Export(context.Background(), ExportOptions{
		FuelID:  "e10",
		Date:    &target,
		CSVPath: path,
	})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(records) != 16 {
		t.Fatalf("expected header plus 15 rows, got %d", len(records))
	}
	if records[0][0] != "date" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	targets := 0
	for _, record := range records[1:] {
		if record[3] == "true" {
			targets++
			if record[0] != "2024-03-15" {
				t.Fatalf("target row has wrong date: %v", record)
			}
		}
	}
	if targets != 1 {
		t.Fatalf("expected exactly one target row, got %d", targets)
	}
}

func TestExportPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.png")
	target := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	err := testApp().Export(context.Background(), ExportOptions{
		Date:    &target,
		PNGPath: path,
	})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat png: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("png must not be empty")
	}
}

func TestDownsamplePoints(t *testing.T) {
	target := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	cat := testApp().Config.BuildCatalog()
	points := forecast.BuildSeries(target, cat.ProductByID("u91"), 7)

	down := downsamplePoints(points, 5)
	if len(down) != 5 {
		t.Fatalf("expected 5 points, got %d", len(down))
	}
	if !down[0].Date.Equal(points[0].Date) || !down[4].Date.Equal(points[14].Date) {
		t.Fatal("downsampling must keep both endpoints")
	}

	if got := downsamplePoints(points, 100); len(got) != len(points) {
		t.Fatal("max above length must be a no-op")
	}
}

func TestDownsamplePointsSingleBudget(t *testing.T) {
	target := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	cat := testApp().Config.BuildCatalog()
	points := forecast.BuildSeries(target, cat.ProductByID("u91"), 7)

	down := downsamplePoints(points, 1)
	if len(down) != 1 {
		t.Fatalf("expected 1 point, got %d", len(down))
	}
	if !down[0].IsTarget {
		t.Fatal("single-point budget must keep the target")
	}
}

func TestExportSinglePointBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	target := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	err := testApp().Export(context.Background(), ExportOptions{
		FuelID:    "u91",
		Date:      &target,
		CSVPath:   path,
		MaxPoints: 1,
	})
	if err != nil {
		t.Fatalf("export with --max-points 1 failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus the target row, got %d rows", len(records))
	}
	if records[1][3] != "true" {
		t.Fatalf("remaining row must be the target: %v", records[1])
	}
}
