package indices

import (
	"errors"
	"fmt"
	"math"

	"climdex/internal/compute"
)

// Error taxonomy for the drivers. All are reported to the caller before any
// computation proceeds; none are retried internally.
var (
	// ErrIncompatibleArguments reports an invalid optional-argument
	// combination, such as supplying both a PET series and temperatures.
	ErrIncompatibleArguments = errors.New("incompatible arguments")

	// ErrIncompatibleArrays reports primary and secondary input series of
	// different lengths.
	ErrIncompatibleArrays = errors.New("incompatible array lengths")

	// ErrInvalidCalibration mirrors the compute package's calibration-window
	// error so callers can match either layer.
	ErrInvalidCalibration = compute.ErrInvalidCalibration

	// ErrInvalidLatitude reports a latitude outside (-90, 90) degrees north
	// where PET derivation requires one.
	ErrInvalidLatitude = errors.New("invalid latitude")

	// ErrInvalidScale reports a non-positive months scale.
	ErrInvalidScale = errors.New("invalid months scale")

	// ErrEmptySeries reports an input series with no values.
	ErrEmptySeries = errors.New("empty input series")

	// ErrPalmerUnavailable reports a Palmer-family request on a Calculator
	// constructed without a Palmer model.
	ErrPalmerUnavailable = errors.New("no palmer model configured")
)

func errIncompat(detail string) error {
	return fmt.Errorf("%w: %s", ErrIncompatibleArguments, detail)
}

// validateSeries rejects empty primary inputs.
func validateSeries(series []float64) error {
	if len(series) == 0 {
		return ErrEmptySeries
	}
	return nil
}

// validateScale rejects non-positive window widths before they reach the
// scaler, whose contract assumes a positive scale.
func validateScale(scale Scale) error {
	if !scale.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidScale, int(scale))
	}
	return nil
}

// validateSameLength rejects secondary series that do not align with the
// primary series month for month.
func validateSameLength(what string, primary, secondary []float64) error {
	if len(primary) != len(secondary) {
		return fmt.Errorf("%w: precipitation has %d months, %s has %d",
			ErrIncompatibleArrays, len(primary), what, len(secondary))
	}
	return nil
}

// validateLatitude enforces the open interval (-90, 90) degrees north.
func validateLatitude(latitudeDegrees float64) error {
	if math.IsNaN(latitudeDegrees) || latitudeDegrees <= -90 || latitudeDegrees >= 90 {
		return fmt.Errorf("%w: %v (must be in degrees north, between -90.0 and 90.0)",
			ErrInvalidLatitude, latitudeDegrees)
	}
	return nil
}

// clipFitted clamps transformed values into the valid fitted-index range,
// leaving missing values untouched, and truncates to the original length.
func clipFitted(values []float64, originalLength int) []float64 {
	clipped := values[:originalLength]
	for i, v := range clipped {
		switch {
		case math.IsNaN(v):
		case v < FittedIndexValidMin:
			clipped[i] = FittedIndexValidMin
		case v > FittedIndexValidMax:
			clipped[i] = FittedIndexValidMax
		}
	}
	return clipped
}
