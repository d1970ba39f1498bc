package app

import (
	"context"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	chart "github.com/wcharczuk/go-chart/v2"

	"fuelcast/internal/forecast"
)

// Export writes a prediction series as CSV and/or a PNG chart. The
// series is recomputed from the date, so no database is needed.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	maxPoints := opts.MaxPoints
	if maxPoints <= 0 {
		maxPoints = a.Config.Export.MaxDataPoints
	}

	target := time.Now()
	if opts.Date != nil {
		target = *opts.Date
	}

	cat := a.Config.BuildCatalog()
	product := cat.ProductByID(opts.FuelID)
	points := forecast.BuildSeries(target, product, a.Config.Prediction.Window)
	points = downsamplePoints(points, maxPoints)

	a.Logger.Info().
		Str("fuel", product.ID).
		Int("points", len(points)).
		Msg("exporting prediction series")

	if opts.CSVPath != "" {
		if err := writeSeriesCSV(opts.CSVPath, points); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeSeriesPNG(opts.PNGPath, product.Name, points); err != nil {
			return err
		}
	}

	return nil
}

func downsamplePoints(points []forecast.PricePoint, max int) []forecast.PricePoint {
	if max <= 0 || len(points) <= max {
		return points
	}

	// A single-point budget keeps the target; the step interpolation
	// below needs at least two slots.
	if max == 1 {
		for _, point := range points {
			if point.IsTarget {
				return []forecast.PricePoint{point}
			}
		}
		return points[:1]
	}

	result := make([]forecast.PricePoint, 0, max)
	step := float64(len(points)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(points) {
			idx = len(points) - 1
		}
		result = append(result, points[idx])
	}
	return result
}

func writeSeriesCSV(path string, points []forecast.PricePoint) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"date", "display_date", "price", "is_target"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, point := range points {
		isTarget := "false"
		if point.IsTarget {
			isTarget = "true"
		}
		record := []string{
			point.Date.Format("2006-01-02"),
			point.DisplayDate,
			point.Price.StringFixed(3),
			isTarget,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeSeriesPNG(path, fuelName string, points []forecast.PricePoint) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]time.Time, len(points))
	y := make([]float64, len(points))
	var targetX []time.Time
	var targetY []float64

	for i, point := range points {
		x[i] = point.Date
		y[i] = point.Price.InexactFloat64()
		if point.IsTarget {
			targetX = append(targetX, point.Date)
			targetY = append(targetY, point.Price.InexactFloat64())
		}
	}

	priceFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.3f")
	}
	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Price ($/litre)",
			ValueFormatter: priceFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    fuelName,
				XValues: x,
				YValues: y,
			},
			chart.TimeSeries{
				Name:    "Target",
				XValues: targetX,
				YValues: targetY,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    6,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func formatDecimal(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}
