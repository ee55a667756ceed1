package compute

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// MinGammaSampleSize is the minimum number of positive observations a
	// calendar month needs before a gamma fit is attempted. Thom's estimator
	// works on log-moments; below this count the A statistic is dominated by
	// sampling noise and the fit is meaningless.
	MinGammaSampleSize = 4

	// probabilityFloor bounds fitted cumulative probabilities away from 0
	// and 1 so the normal quantile stays finite. Phi^-1(0.0005) is about
	// -3.29, outside the valid index range, so the clamp never distorts an
	// in-range value.
	probabilityFloor = 0.0005
)

// gammaParams holds the fitted zero-inflated gamma parameters for a single
// calendar month. Shape and Scale are NaN for a degenerate fit.
type gammaParams struct {
	Shape    float64 // alpha
	Scale    float64 // beta
	ProbZero float64 // fraction of exactly-zero observations
}

func (p gammaParams) degenerate() bool {
	return math.IsNaN(p.Shape) || math.IsNaN(p.Scale)
}

// TransformFittedGamma fits a zero-inflated gamma distribution to each
// calendar month of the scaled series and transforms every value to the
// corresponding standard-normal quantile. The whole series serves as the
// fitting sample for each calendar-month group.
//
// Precipitation can be exactly zero, so the fit is a mixed distribution: a
// discrete probability mass at zero plus a continuous gamma over the
// positive values. NaN inputs yield NaN outputs, and a calendar month with a
// degenerate fit yields NaN for all of its values.
func TransformFittedGamma(scaled []float64) []float64 {
	var params [12]gammaParams
	for month := 0; month < 12; month++ {
		params[month] = fitGamma(monthValues(scaled, month))
	}

	transformed := make([]float64, len(scaled))
	for i, value := range scaled {
		transformed[i] = gammaQuantile(value, params[i%12])
	}
	return transformed
}

// fitGamma estimates zero-inflated gamma parameters from one calendar
// month's sample using the Thom maximum-likelihood approximation.
func fitGamma(sample []float64) gammaParams {
	zeros := 0
	positives := make([]float64, 0, len(sample))
	for _, v := range sample {
		switch {
		case math.IsNaN(v):
			// missing observations contribute nothing to the fit
		case v == 0:
			zeros++
		case v > 0:
			positives = append(positives, v)
		}
	}

	observed := zeros + len(positives)
	degenerate := gammaParams{Shape: math.NaN(), Scale: math.NaN(), ProbZero: math.NaN()}
	if observed == 0 {
		return degenerate
	}

	probZero := float64(zeros) / float64(observed)
	if len(positives) < MinGammaSampleSize {
		return degenerate
	}

	mean, err := stats.Mean(positives)
	if err != nil || mean <= 0 {
		return degenerate
	}

	sumLog := 0.0
	for _, v := range positives {
		sumLog += math.Log(v)
	}
	meanLog := sumLog / float64(len(positives))

	// Thom (1958): A = ln(mean) - mean(ln(x)); alpha from the bias-corrected
	// approximation. A approaches zero when the sample has no spread, which
	// would blow the shape up to infinity.
	a := math.Log(mean) - meanLog
	if a <= 1e-12 {
		return degenerate
	}

	shape := (1 + math.Sqrt(1+4*a/3)) / (4 * a)
	scale := mean / shape
	if !isFinite(shape) || !isFinite(scale) {
		return degenerate
	}

	return gammaParams{Shape: shape, Scale: scale, ProbZero: probZero}
}

// gammaQuantile maps one observed value to its pre-clip index value under
// the fitted zero-inflated gamma distribution.
func gammaQuantile(value float64, p gammaParams) float64 {
	if math.IsNaN(value) || p.degenerate() {
		return math.NaN()
	}

	prob := p.ProbZero
	if value > 0 {
		// distuv parameterizes gamma by rate, the reciprocal of scale.
		dist := distuv.Gamma{Alpha: p.Shape, Beta: 1 / p.Scale}
		prob = p.ProbZero + (1-p.ProbZero)*dist.CDF(value)
	}

	return normalQuantile(prob)
}

// normalQuantile converts a cumulative probability to the standard-normal
// quantile, clamping the probability into the open unit interval first.
func normalQuantile(prob float64) float64 {
	if math.IsNaN(prob) {
		return math.NaN()
	}
	if prob < probabilityFloor {
		prob = probabilityFloor
	}
	if prob > 1-probabilityFloor {
		prob = 1 - probabilityFloor
	}
	return distuv.UnitNormal.Quantile(prob)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
