package indices

import "log/slog"

// PET computes potential evapotranspiration, in millimeters per month, from
// monthly average temperatures in degrees Celsius using the configured
// Thornthwaite estimator.
//
// An all-missing temperature series is passed through unchanged without
// validating the latitude. Otherwise the latitude must lie strictly inside
// (-90, 90) degrees north or the call fails with ErrInvalidLatitude.
func (c *Calculator) PET(tempsCelsius []float64, latitudeDegrees float64, dataStartYear int) ([]float64, error) {
	if err := validateSeries(tempsCelsius); err != nil {
		return nil, err
	}

	if allNaN(tempsCelsius) {
		// nothing to estimate from; hand the missing series back
		return tempsCelsius, nil
	}

	if err := validateLatitude(latitudeDegrees); err != nil {
		c.logger.Error("rejecting PET request", slog.Float64("latitude", latitudeDegrees))
		return nil, err
	}

	return c.pet(tempsCelsius, latitudeDegrees, dataStartYear)
}
