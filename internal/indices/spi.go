package indices

import (
	"log/slog"

	"climdex/internal/compute"
)

// SPIGamma computes the monthly Standardized Precipitation Index using a
// gamma distribution fit. Precipitation can be in any unit; the first value
// is assumed to correspond to January of the initial year. The result has
// the same length as the input, with values clipped to [-3.09, 3.09] and
// NaN marking months that are missing or belong to a degenerate fit.
func (c *Calculator) SPIGamma(precips []float64, scale Scale) ([]float64, error) {
	if err := validateSeries(precips); err != nil {
		return nil, err
	}
	if err := validateScale(scale); err != nil {
		return nil, err
	}

	c.logger.Debug("computing SPI",
		slog.String("distribution", "gamma"),
		slog.String("scale", scale.String()),
		slog.Int("months", len(precips)))

	scaled := compute.SumToScale(precips, scale.Months())
	transformed := compute.TransformFittedGamma(scaled)
	return clipFitted(transformed, len(precips)), nil
}

// SPIPearson computes the monthly Standardized Precipitation Index using a
// Pearson Type III distribution fitted over the calibration period. The
// series is assumed to start in January of dataStartYear.
func (c *Calculator) SPIPearson(precips []float64, scale Scale, dataStartYear, calibrationStartYear, calibrationEndYear int) ([]float64, error) {
	if err := validateSeries(precips); err != nil {
		return nil, err
	}
	if err := validateScale(scale); err != nil {
		return nil, err
	}
	if err := compute.ValidateCalibration(len(precips), dataStartYear, calibrationStartYear, calibrationEndYear); err != nil {
		return nil, err
	}

	c.logger.Debug("computing SPI",
		slog.String("distribution", "pearson3"),
		slog.String("scale", scale.String()),
		slog.Int("months", len(precips)),
		slog.Int("calibration_start", calibrationStartYear),
		slog.Int("calibration_end", calibrationEndYear))

	scaled := compute.SumToScale(precips, scale.Months())
	transformed, err := compute.TransformFittedPearson(scaled, dataStartYear, calibrationStartYear, calibrationEndYear)
	if err != nil {
		return nil, err
	}
	return clipFitted(transformed, len(precips)), nil
}
