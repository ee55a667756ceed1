package compute

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidCalibration reports a calibration window that is inconsistent
// with the data: start/end inverted, start before the data start, or a span
// exceeding the available data.
var ErrInvalidCalibration = errors.New("invalid calibration window")

const (
	// MinPearsonSampleSize is the minimum number of calibration observations
	// a calendar month needs before a Pearson III fit is attempted. The skew
	// estimator needs at least three points; one more keeps it from being
	// pure noise.
	MinPearsonSampleSize = 4

	// skewEpsilon is the near-zero-skew threshold below which the Pearson III
	// fit degenerates to a plain normal distribution. At |skew| = 1e-6 the
	// shape parameter 4/skew^2 exceeds 4e12 and the incomplete-gamma
	// evaluation loses all precision, while the normal approximation is exact
	// in the skew->0 limit.
	skewEpsilon = 1e-6
)

// pearsonParams holds the fitted Pearson Type III parameters for a single
// calendar month, derived from calibration-period moments.
type pearsonParams struct {
	Mean   float64
	StdDev float64
	Skew   float64
	Shape  float64 // alpha = 4 / skew^2
	Scale  float64 // beta, carries the sign of the skew
	Loc    float64 // xi = mean - alpha*beta
}

func (p pearsonParams) degenerate() bool {
	return math.IsNaN(p.Mean) || math.IsNaN(p.StdDev) || p.StdDev <= 0
}

// normalFallback reports whether the skew is too close to zero for the
// gamma-based transform to be numerically stable.
func (p pearsonParams) normalFallback() bool {
	return math.Abs(p.Skew) < skewEpsilon
}

// TransformFittedPearson fits a Pearson Type III distribution to each
// calendar month of the scaled series, estimating parameters from the
// calibration period only, and transforms every value in the full series to
// the corresponding standard-normal quantile.
//
// The series is assumed to start in January of dataStartYear. The
// calibration window [calibrationStartYear, calibrationEndYear] is validated
// before any fitting begins.
func TransformFittedPearson(scaled []float64, dataStartYear, calibrationStartYear, calibrationEndYear int) ([]float64, error) {
	if err := ValidateCalibration(len(scaled), dataStartYear, calibrationStartYear, calibrationEndYear); err != nil {
		return nil, err
	}

	calibStart := (calibrationStartYear - dataStartYear) * 12
	calibEnd := calibStart + (calibrationEndYear-calibrationStartYear+1)*12
	if calibEnd > len(scaled) {
		calibEnd = len(scaled)
	}
	calibration := scaled[calibStart:calibEnd]

	var params [12]pearsonParams
	for month := 0; month < 12; month++ {
		params[month] = fitPearson(monthValues(calibration, month))
	}

	transformed := make([]float64, len(scaled))
	for i, value := range scaled {
		transformed[i] = pearsonQuantile(value, params[i%12])
	}
	return transformed, nil
}

// ValidateCalibration checks a calibration year range against the data
// extent. n is the series length in months.
func ValidateCalibration(n, dataStartYear, calibrationStartYear, calibrationEndYear int) error {
	if calibrationEndYear < calibrationStartYear {
		return fmt.Errorf("%w: end year %d precedes start year %d",
			ErrInvalidCalibration, calibrationEndYear, calibrationStartYear)
	}
	if calibrationStartYear < dataStartYear {
		return fmt.Errorf("%w: calibration start year %d precedes data start year %d",
			ErrInvalidCalibration, calibrationStartYear, dataStartYear)
	}
	if startMonth := (calibrationStartYear - dataStartYear) * 12; startMonth >= n {
		return fmt.Errorf("%w: calibration start year %d lies beyond the %d months of data",
			ErrInvalidCalibration, calibrationStartYear, n)
	}
	if span := (calibrationEndYear - calibrationStartYear + 1) * 12; span > n {
		return fmt.Errorf("%w: %d calibration months exceed the %d months of data",
			ErrInvalidCalibration, span, n)
	}
	return nil
}

// fitPearson estimates Pearson III parameters from one calendar month's
// calibration sample using the method of moments.
func fitPearson(sample []float64) pearsonParams {
	observed := make([]float64, 0, len(sample))
	for _, v := range sample {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}

	degenerate := pearsonParams{
		Mean: math.NaN(), StdDev: math.NaN(), Skew: math.NaN(),
		Shape: math.NaN(), Scale: math.NaN(), Loc: math.NaN(),
	}
	if len(observed) < MinPearsonSampleSize {
		return degenerate
	}

	mean, err := stats.Mean(observed)
	if err != nil {
		return degenerate
	}
	stdDev, err := stats.StandardDeviationSample(observed)
	if err != nil || stdDev <= 0 || !isFinite(stdDev) {
		return degenerate
	}
	skew := stat.Skew(observed, nil)
	if !isFinite(skew) {
		return degenerate
	}

	p := pearsonParams{Mean: mean, StdDev: stdDev, Skew: skew}
	if p.normalFallback() {
		return p
	}

	p.Shape = 4 / (skew * skew)
	p.Scale = math.Copysign(stdDev/2*math.Sqrt(p.Shape), skew)
	p.Loc = mean - p.Shape*p.Scale
	return p
}

// pearsonQuantile maps one observed value to its pre-clip index value under
// the fitted Pearson III distribution.
func pearsonQuantile(value float64, p pearsonParams) float64 {
	if math.IsNaN(value) || p.degenerate() {
		return math.NaN()
	}

	// Near-zero skew: the distribution is effectively normal, so the plain
	// z-score avoids the shape parameter blowing up as skew -> 0.
	if p.normalFallback() {
		return (value - p.Mean) / p.StdDev
	}

	// Dividing by the signed scale makes y positive anywhere inside the
	// distribution's support, for either sign of the skew.
	dist := distuv.Gamma{Alpha: p.Shape, Beta: 1}
	y := (value - p.Loc) / p.Scale

	var prob float64
	if p.Scale > 0 {
		if y > 0 {
			prob = dist.CDF(y)
		} else {
			// below the support of a positively skewed fit
			prob = probabilityFloor
		}
	} else {
		// negative skew mirrors the tail: support lies below the location
		if y > 0 {
			prob = 1 - dist.CDF(y)
		} else {
			// at or above the upper bound of a negatively skewed fit
			prob = 1 - probabilityFloor
		}
	}

	return normalQuantile(prob)
}
