// Package compute implements the statistical fitting and transform pipeline
// behind the drought indices.
//
// The pipeline has three stages, applied to a monthly time series whose
// first value corresponds to January of some start year:
//
//  1. SumToScale converts the raw series into moving-window sums at the
//     requested month scale, marking the partial-window head as missing.
//  2. A distribution fitter estimates parameters independently for each of
//     the twelve calendar months: TransformFittedGamma fits a zero-inflated
//     gamma distribution to the whole series, TransformFittedPearson fits a
//     Pearson Type III distribution to the calibration period only.
//  3. Each observed value is mapped to its fitted cumulative probability and
//     then to the standard-normal quantile, producing the raw index value.
//
// Missing values are represented as NaN and propagate through every stage:
// missing in, missing out. A calendar month whose sample is too small or
// degenerate yields NaN parameters and NaN outputs for that month only, so
// the rest of the series remains usable.
//
// All functions are pure and operate on in-memory slices; concurrent calls
// on disjoint inputs need no synchronization.
package compute
