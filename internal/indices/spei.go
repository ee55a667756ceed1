package indices

import (
	"log/slog"

	"climdex/internal/compute"
)

// SPEIGamma computes the Standardized Precipitation-Evapotranspiration
// Index using a gamma distribution fit. The PET series is either supplied
// directly or derived from temperature via the source union; see
// ProvidedPET, DerivedPET and NewPETSource. Precipitation and PET are in
// millimeters.
func (c *Calculator) SPEIGamma(precipsMM []float64, scale Scale, source PETSource) ([]float64, error) {
	waterBalance, err := c.resolveWaterBalance(precipsMM, scale, source)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("computing SPEI",
		slog.String("distribution", "gamma"),
		slog.String("scale", scale.String()),
		slog.Int("months", len(precipsMM)))

	scaled := compute.SumToScale(waterBalance, scale.Months())
	transformed := compute.TransformFittedGamma(scaled)
	return clipFitted(transformed, len(precipsMM)), nil
}

// SPEIPearson computes SPEI using a Pearson Type III distribution fitted
// over the calibration period. The series is assumed to start in January of
// dataStartYear.
func (c *Calculator) SPEIPearson(precipsMM []float64, scale Scale, dataStartYear, calibrationStartYear, calibrationEndYear int, source PETSource) ([]float64, error) {
	if err := compute.ValidateCalibration(len(precipsMM), dataStartYear, calibrationStartYear, calibrationEndYear); err != nil {
		return nil, err
	}
	waterBalance, err := c.resolveWaterBalance(precipsMM, scale, source)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("computing SPEI",
		slog.String("distribution", "pearson3"),
		slog.String("scale", scale.String()),
		slog.Int("months", len(precipsMM)),
		slog.Int("calibration_start", calibrationStartYear),
		slog.Int("calibration_end", calibrationEndYear))

	scaled := compute.SumToScale(waterBalance, scale.Months())
	transformed, err := compute.TransformFittedPearson(scaled, dataStartYear, calibrationStartYear, calibrationEndYear)
	if err != nil {
		return nil, err
	}
	return clipFitted(transformed, len(precipsMM)), nil
}

// resolveWaterBalance validates the inputs, resolves the PET series from
// its source, and returns the offset P - PET series. The additive offset
// keeps all values positive for the gamma fitting domain.
func (c *Calculator) resolveWaterBalance(precipsMM []float64, scale Scale, source PETSource) ([]float64, error) {
	if err := validateSeries(precipsMM); err != nil {
		return nil, err
	}
	if err := validateScale(scale); err != nil {
		return nil, err
	}

	var petMM []float64
	switch source.kind {
	case petSourceProvided:
		petMM = source.pet
	case petSourceDerived:
		if err := validateSameLength("temperature", precipsMM, source.temps); err != nil {
			return nil, err
		}
		derived, err := c.PET(source.temps, source.latitudeDegrees, source.dataStartYear)
		if err != nil {
			return nil, err
		}
		petMM = derived
	default:
		return nil, errIncompat("a PET source is required: supply a PET series or temperature with latitude and start year")
	}

	if err := validateSameLength("PET", precipsMM, petMM); err != nil {
		return nil, err
	}

	waterBalance := make([]float64, len(precipsMM))
	for i := range precipsMM {
		waterBalance[i] = precipsMM[i] - petMM[i] + speiOffset
	}
	return waterBalance, nil
}
