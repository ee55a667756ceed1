package indices

import (
	"math"
	"strconv"
)

// Scale is the moving-sum window width in months over which a series is
// aggregated before an index is computed.
type Scale int

const (
	// Scale1 computes the index on raw monthly values.
	Scale1 Scale = 1
	// Scale3 represents a 3-month aggregation.
	Scale3 Scale = 3
	// Scale6 represents a 6-month aggregation.
	Scale6 Scale = 6
	// Scale12 represents a 12-month aggregation.
	Scale12 Scale = 12
	// Scale24 represents a 24-month aggregation.
	Scale24 Scale = 24
)

// String returns the conventional label for the scale, e.g. "3mo".
func (s Scale) String() string {
	if s <= 0 {
		return "invalid"
	}
	return strconv.Itoa(int(s)) + "mo"
}

// Months returns the window width in months.
func (s Scale) Months() int {
	return int(s)
}

// IsValid reports whether the scale is a usable window width.
func (s Scale) IsValid() bool {
	return s >= 1
}

// Valid bounds for indices fitted and transformed to a distribution (SPI and
// SPEI). Transformed values are clipped into this range.
const (
	FittedIndexValidMin = -3.09
	FittedIndexValidMax = 3.09
)

// Default calibration period. The normal period for the US is conventionally
// 1981-2010.
const (
	DefaultCalibrationStartYear = 1981
	DefaultCalibrationEndYear   = 2010
)

// speiOffset keeps P - PET positive so the difference series stays inside
// the gamma fitting domain.
const speiOffset = 1000.0

type petSourceKind int

const (
	petSourceNone petSourceKind = iota
	petSourceProvided
	petSourceDerived
)

// PETSource identifies where the PET series for an SPEI computation comes
// from: either a PET series supplied directly, or temperature plus latitude
// and start year from which PET is derived. The two are mutually exclusive
// by construction; the zero value is invalid.
type PETSource struct {
	kind            petSourceKind
	pet             []float64
	temps           []float64
	latitudeDegrees float64
	dataStartYear   int
}

// ProvidedPET builds a PET source from a precomputed PET series, in
// millimeters per month.
func ProvidedPET(petMM []float64) PETSource {
	return PETSource{kind: petSourceProvided, pet: petMM}
}

// DerivedPET builds a PET source that derives PET from monthly average
// temperatures in degrees Celsius, the location's latitude in degrees north,
// and the initial year of the temperature series.
func DerivedPET(tempsCelsius []float64, latitudeDegrees float64, dataStartYear int) PETSource {
	return PETSource{
		kind:            petSourceDerived,
		temps:           tempsCelsius,
		latitudeDegrees: latitudeDegrees,
		dataStartYear:   dataStartYear,
	}
}

// NewPETSource validates the optional-argument combination at a call
// boundary and builds the corresponding PETSource. Exactly one of petMM or
// tempsCelsius must be non-nil; latitude and start year accompany the
// temperature path only.
func NewPETSource(petMM, tempsCelsius []float64, latitudeDegrees *float64, dataStartYear *int) (PETSource, error) {
	switch {
	case petMM != nil && tempsCelsius != nil:
		return PETSource{}, errIncompat("either temperature or PET can be specified, but not both")
	case petMM != nil:
		if latitudeDegrees != nil || dataStartYear != nil {
			return PETSource{}, errIncompat("latitude and data start year must not accompany a PET series")
		}
		return ProvidedPET(petMM), nil
	case tempsCelsius != nil:
		if latitudeDegrees == nil || dataStartYear == nil {
			return PETSource{}, errIncompat("temperature input requires both latitude and data start year")
		}
		return DerivedPET(tempsCelsius, *latitudeDegrees, *dataStartYear), nil
	default:
		return PETSource{}, errIncompat("either a PET series or a temperature series is required")
	}
}

// allNaN reports whether every value in the series is missing.
func allNaN(series []float64) bool {
	for _, v := range series {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}
