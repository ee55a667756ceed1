// Command indexcalc computes a drought index from a CSV of monthly values.
//
// The input CSV has one value per row (an optional header row is skipped);
// empty cells and "NaN" mark missing months. The first row corresponds to
// January of -start-year. The output CSV has year, month and index columns.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"climdex/internal/indices"
)

func main() {
	index := flag.String("index", "spi", "index to compute: spi | spei | pnp | pet")
	dist := flag.String("dist", "gamma", "distribution for spi/spei: gamma | pearson")
	scale := flag.Int("scale", 3, "months scale for the moving sum")
	in := flag.String("in", "", "input csv of monthly values (default stdin)")
	out := flag.String("out", "", "output csv path (default stdout)")
	startYear := flag.Int("start-year", 0, "calendar year of the first value")
	calibStart := flag.Int("calib-start", indices.DefaultCalibrationStartYear, "calibration start year")
	calibEnd := flag.Int("calib-end", indices.DefaultCalibrationEndYear, "calibration end year")
	latitude := flag.Float64("latitude", math.NaN(), "latitude in degrees north (pet, and spei from temperature)")
	petPath := flag.String("pet", "", "csv of monthly PET values for spei (mutually exclusive with -temps)")
	tempsPath := flag.String("temps", "", "csv of monthly temperatures for spei (requires -latitude and -start-year)")
	logLevel := flag.String("log-level", "info", "log level: debug | info | warn | error")
	flag.Parse()

	logger := newLogger(*logLevel)
	slog.SetDefault(logger)

	values, err := readSeries(*in)
	if err != nil {
		logger.Error("Failed to read input", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Computing index",
		slog.String("index", *index),
		slog.String("distribution", *dist),
		slog.Int("scale", *scale),
		slog.Int("months", len(values)))

	calc := indices.NewCalculator(nil, nil, logger)
	monthScale := indices.Scale(*scale)

	var result []float64
	switch *index {
	case "spi":
		if *dist == "pearson" {
			result, err = calc.SPIPearson(values, monthScale, *startYear, *calibStart, *calibEnd)
		} else {
			result, err = calc.SPIGamma(values, monthScale)
		}
	case "spei":
		var source indices.PETSource
		source, err = buildPETSource(*petPath, *tempsPath, *latitude, *startYear)
		if err == nil {
			if *dist == "pearson" {
				result, err = calc.SPEIPearson(values, monthScale, *startYear, *calibStart, *calibEnd, source)
			} else {
				result, err = calc.SPEIGamma(values, monthScale, source)
			}
		}
	case "pnp":
		result, err = calc.PercentOfNormal(values, monthScale, *startYear, *calibStart, *calibEnd)
	case "pet":
		result, err = calc.PET(values, *latitude, *startYear)
	default:
		err = fmt.Errorf("unknown index %q", *index)
	}
	if err != nil {
		logger.Error("Computation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := writeSeries(*out, *index, *startYear, result); err != nil {
		logger.Error("Failed to write output", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Done", slog.Int("months", len(result)))
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func buildPETSource(petPath, tempsPath string, latitude float64, startYear int) (indices.PETSource, error) {
	var petSeries, tempSeries []float64
	var err error

	if petPath != "" {
		petSeries, err = readSeries(petPath)
		if err != nil {
			return indices.PETSource{}, fmt.Errorf("read pet csv: %w", err)
		}
	}
	if tempsPath != "" {
		tempSeries, err = readSeries(tempsPath)
		if err != nil {
			return indices.PETSource{}, fmt.Errorf("read temps csv: %w", err)
		}
	}

	// -start-year also anchors the pearson calibration window and -latitude
	// serves the pet index, so they reach the source only when PET is being
	// derived from temperature.
	var lat *float64
	var year *int
	if tempsPath != "" {
		if !math.IsNaN(latitude) {
			lat = &latitude
		}
		if startYear != 0 {
			year = &startYear
		}
	}
	return indices.NewPETSource(petSeries, tempSeries, lat, year)
}

// readSeries reads one monthly value per row from the first CSV column.
func readSeries(path string) ([]float64, error) {
	var reader io.Reader = os.Stdin
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer file.Close()
		reader = file
	}

	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	values := make([]float64, 0, len(records))
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		cell := strings.TrimSpace(record[0])
		if i == 0 {
			if _, err := strconv.ParseFloat(cell, 64); err != nil && !isMissing(cell) {
				continue // header row
			}
		}
		if isMissing(cell) {
			values = append(values, math.NaN())
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("parse value (line %d): %w", i+1, err)
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no values in input")
	}
	return values, nil
}

func isMissing(cell string) bool {
	return cell == "" || strings.EqualFold(cell, "nan") || strings.EqualFold(cell, "na")
}

// writeSeries writes year, month and value rows, leaving the value cell
// empty for missing months.
func writeSeries(path, index string, startYear int, series []float64) error {
	var out io.Writer = os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"year", "month", index}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, v := range series {
		cell := ""
		if !math.IsNaN(v) {
			cell = strconv.FormatFloat(v, 'f', 6, 64)
		}
		row := []string{
			strconv.Itoa(startYear + i/12),
			strconv.Itoa(i%12 + 1),
			cell,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return w.Error()
}
