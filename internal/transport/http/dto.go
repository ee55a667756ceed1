package http

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Series values travel as JSON numbers with null marking missing months,
// since NaN is not representable in JSON. These helpers convert between the
// wire form and the internal NaN-marked slices.

func toFloats(values []*float64) []float64 {
	series := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			series[i] = math.NaN()
		} else {
			series[i] = *v
		}
	}
	return series
}

func toWire(series []float64) []*float64 {
	values := make([]*float64, len(series))
	for i := range series {
		if math.IsNaN(series[i]) {
			continue
		}
		v := series[i]
		values[i] = &v
	}
	return values
}

// SPIRequest asks for a Standardized Precipitation Index computation.
type SPIRequest struct {
	Values               []*float64 `json:"values" validate:"required,min=1"`
	Scale                int        `json:"scale" validate:"required,min=1"`
	Distribution         string     `json:"distribution" validate:"required,oneof=gamma pearson"`
	DataStartYear        int        `json:"data_start_year" validate:"required_if=Distribution pearson,omitempty,min=1800,max=2200"`
	CalibrationStartYear int        `json:"calibration_start_year" validate:"omitempty,min=1800,max=2200"`
	CalibrationEndYear   int        `json:"calibration_end_year" validate:"omitempty,min=1800,max=2200"`
}

// SPEIRequest asks for a Standardized Precipitation-Evapotranspiration
// Index computation. Exactly one of PET or Temps must be supplied; Latitude
// and DataStartYear accompany the temperature path.
type SPEIRequest struct {
	Precip               []*float64 `json:"precip" validate:"required,min=1"`
	PET                  []*float64 `json:"pet,omitempty"`
	Temps                []*float64 `json:"temps,omitempty"`
	Latitude             *float64   `json:"latitude,omitempty"`
	Scale                int        `json:"scale" validate:"required,min=1"`
	Distribution         string     `json:"distribution" validate:"required,oneof=gamma pearson"`
	DataStartYear        *int       `json:"data_start_year,omitempty"`
	CalibrationStartYear int        `json:"calibration_start_year" validate:"omitempty,min=1800,max=2200"`
	CalibrationEndYear   int        `json:"calibration_end_year" validate:"omitempty,min=1800,max=2200"`
}

// PercentOfNormalRequest asks for a percent-of-normal computation.
type PercentOfNormalRequest struct {
	Values               []*float64 `json:"values" validate:"required,min=1"`
	Scale                int        `json:"scale" validate:"required,min=1"`
	DataStartYear        int        `json:"data_start_year" validate:"required,min=1800,max=2200"`
	CalibrationStartYear int        `json:"calibration_start_year" validate:"omitempty,min=1800,max=2200"`
	CalibrationEndYear   int        `json:"calibration_end_year" validate:"omitempty,min=1800,max=2200"`
}

// PETRequest asks for a Thornthwaite potential-evapotranspiration series.
type PETRequest struct {
	Temps         []*float64 `json:"temps" validate:"required,min=1"`
	Latitude      float64    `json:"latitude"`
	DataStartYear int        `json:"data_start_year" validate:"required,min=1800,max=2200"`
}

// SeriesSummary describes the non-missing values of a computed series.
type SeriesSummary struct {
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
}

// IndexResponse carries a computed index series back to the client.
type IndexResponse struct {
	Index        string         `json:"index"`
	Distribution string         `json:"distribution,omitempty"`
	Scale        int            `json:"scale,omitempty"`
	Months       int            `json:"months"`
	Values       []*float64     `json:"values"`
	Summary      *SeriesSummary `json:"summary,omitempty"`
}

// summarize computes the summary block over the non-missing values. A
// series with no observed values gets a summary with only the counts set.
func summarize(series []float64) *SeriesSummary {
	observed := make([]float64, 0, len(series))
	for _, v := range series {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}

	summary := &SeriesSummary{
		Count:   len(observed),
		Missing: len(series) - len(observed),
	}
	if len(observed) == 0 {
		return summary
	}

	summary.Min, _ = stats.Min(observed)
	summary.Max, _ = stats.Max(observed)
	summary.Mean, _ = stats.Mean(observed)
	if len(observed) > 1 {
		summary.StdDev, _ = stats.StandardDeviationSample(observed)
	}
	return summary
}
