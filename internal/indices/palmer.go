package indices

import "climdex/internal/compute"

// PDSI computes the Palmer Drought Severity Index, the Palmer Hydrological
// Drought Index and the Palmer Z-Index by delegating to the configured
// water-balance model. Precipitation and PET are in inches.
func (c *Calculator) PDSI(precip, pet []float64, awc float64, dataStartYear, calibrationStartYear, calibrationEndYear int) (pdsi, phdi, zindex []float64, err error) {
	if err := c.validatePalmerInputs(precip, pet, dataStartYear, calibrationStartYear, calibrationEndYear); err != nil {
		return nil, nil, nil, err
	}
	return c.palmer.PDSI(precip, pet, awc, dataStartYear, calibrationStartYear, calibrationEndYear)
}

// SCPDSI computes the self-calibrated PDSI along with the PDSI, PHDI, PMDI
// and Z-Index, delegating to the configured water-balance model.
func (c *Calculator) SCPDSI(precip, pet []float64, awc float64, dataStartYear, calibrationStartYear, calibrationEndYear int) (scpdsi, pdsi, phdi, pmdi, zindex []float64, err error) {
	if err := c.validatePalmerInputs(precip, pet, dataStartYear, calibrationStartYear, calibrationEndYear); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	return c.palmer.SCPDSI(precip, pet, awc, dataStartYear, calibrationStartYear, calibrationEndYear)
}

// PDSIFromClimatology computes the Palmer indices from precipitation and
// temperature, delegating to the legacy-reference implementation of the
// configured model.
func (c *Calculator) PDSIFromClimatology(precip, temps []float64, awc, latitudeDegrees, b, h float64, dataStartYear, calibrationStartYear, calibrationEndYear int) (pdsi, phdi, pmdi, zindex []float64, err error) {
	if err := c.validatePalmerInputs(precip, temps, dataStartYear, calibrationStartYear, calibrationEndYear); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := validateLatitude(latitudeDegrees); err != nil {
		return nil, nil, nil, nil, err
	}
	return c.palmer.PDSIFromClimatology(precip, temps, awc, latitudeDegrees, b, h, dataStartYear, calibrationStartYear, calibrationEndYear)
}

// validatePalmerInputs applies the shared Palmer argument contract: a model
// must be configured, the two series must align, and the calibration window
// must fit the data.
func (c *Calculator) validatePalmerInputs(precip, secondary []float64, dataStartYear, calibrationStartYear, calibrationEndYear int) error {
	if c.palmer == nil {
		return ErrPalmerUnavailable
	}
	if err := validateSeries(precip); err != nil {
		return err
	}
	if err := validateSameLength("companion series", precip, secondary); err != nil {
		return err
	}
	return compute.ValidateCalibration(len(precip), dataStartYear, calibrationStartYear, calibrationEndYear)
}
