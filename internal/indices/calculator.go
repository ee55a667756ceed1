package indices

import (
	"log/slog"

	"climdex/internal/thornthwaite"
)

// ThornthwaiteFunc produces a PET series, in millimeters per month, from
// monthly average temperatures in degrees Celsius, a latitude in degrees
// north, and the initial year of the temperature series.
type ThornthwaiteFunc func(tempsCelsius []float64, latitudeDegrees float64, dataStartYear int) ([]float64, error)

// PalmerModel is the external water-balance model behind the Palmer-family
// indices. Precipitation and PET are in inches; awc is the available water
// capacity soil constant, also in inches.
type PalmerModel interface {
	// PDSI returns the PDSI, PHDI and Z-Index series.
	PDSI(precip, pet []float64, awc float64, dataStartYear, calibrationStartYear, calibrationEndYear int) (pdsi, phdi, zindex []float64, err error)

	// SCPDSI returns the self-calibrated SCPDSI plus the PDSI, PHDI, PMDI
	// and Z-Index series.
	SCPDSI(precip, pet []float64, awc float64, dataStartYear, calibrationStartYear, calibrationEndYear int) (scpdsi, pdsi, phdi, pmdi, zindex []float64, err error)

	// PDSIFromClimatology computes the Palmer indices from a precipitation
	// and temperature climatology, intended to numerically match the
	// historical reference implementation.
	PDSIFromClimatology(precip, temps []float64, awc, latitudeDegrees, b, h float64, dataStartYear, calibrationStartYear, calibrationEndYear int) (pdsi, phdi, pmdi, zindex []float64, err error)
}

// Calculator orchestrates the drought-index drivers. It is stateless apart
// from its collaborators and safe for concurrent use: each driver call is
// pure given its inputs.
type Calculator struct {
	pet    ThornthwaiteFunc
	palmer PalmerModel
	logger *slog.Logger
}

// NewCalculator creates a calculator. A nil pet falls back to the built-in
// Thornthwaite estimator; a nil palmer leaves the Palmer-family drivers
// returning ErrPalmerUnavailable; a nil logger falls back to slog.Default.
func NewCalculator(pet ThornthwaiteFunc, palmer PalmerModel, logger *slog.Logger) *Calculator {
	if pet == nil {
		pet = thornthwaite.PotentialEvapotranspiration
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{pet: pet, palmer: palmer, logger: logger}
}
