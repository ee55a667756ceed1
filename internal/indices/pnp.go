package indices

import (
	"log/slog"
	"math"

	"climdex/internal/compute"
)

// PercentOfNormal computes each month's scaled sum as a fraction of the
// average scaled sum for its calendar month over the calibration period.
// A value of 1.0 is exactly normal; 0.5 is half of normal. Months whose
// calendar-month average is not positive, or that fall inside the partial
// scale window, are NaN.
func (c *Calculator) PercentOfNormal(monthlyValues []float64, scale Scale, dataStartYear, calibrationStartYear, calibrationEndYear int) ([]float64, error) {
	if err := validateSeries(monthlyValues); err != nil {
		return nil, err
	}
	if err := validateScale(scale); err != nil {
		return nil, err
	}
	if err := compute.ValidateCalibration(len(monthlyValues), dataStartYear, calibrationStartYear, calibrationEndYear); err != nil {
		return nil, err
	}

	c.logger.Debug("computing percent of normal",
		slog.String("scale", scale.String()),
		slog.Int("months", len(monthlyValues)),
		slog.Int("calibration_start", calibrationStartYear),
		slog.Int("calibration_end", calibrationEndYear))

	scaledSums := compute.SumToScale(monthlyValues, scale.Months())

	calibStart := (calibrationStartYear - dataStartYear) * 12
	calibEnd := calibStart + (calibrationEndYear-calibrationStartYear+1)*12
	if calibEnd > len(scaledSums) {
		calibEnd = len(scaledSums)
	}
	calibration := scaledSums[calibStart:calibEnd]

	// Average of each calendar month's scaled sums over the calibration
	// period, ignoring missing values.
	var monthAverages [12]float64
	for month := 0; month < 12; month++ {
		sum, count := 0.0, 0
		for i := month; i < len(calibration); i += 12 {
			if !math.IsNaN(calibration[i]) {
				sum += calibration[i]
				count++
			}
		}
		if count == 0 {
			monthAverages[month] = math.NaN()
		} else {
			monthAverages[month] = sum / float64(count)
		}
	}

	percentages := make([]float64, len(scaledSums))
	for i, v := range scaledSums {
		average := monthAverages[i%12]
		if math.IsNaN(v) || !(average > 0) {
			percentages[i] = math.NaN()
			continue
		}
		percentages[i] = v / average
	}
	return percentages, nil
}
