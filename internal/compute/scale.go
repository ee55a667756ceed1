package compute

import "math"

// SumToScale converts a monthly series into moving sums over the specified
// number of months. The returned slice has the same length as the input.
// The first scale-1 entries are NaN because insufficient history exists to
// fill the window; entry i (i >= scale-1) is the sum of the trailing scale
// values ending at i. A NaN anywhere in the window makes the sum NaN.
//
// A non-positive scale is a caller contract violation; callers validate the
// scale before reaching this function.
func SumToScale(series []float64, scale int) []float64 {
	sums := make([]float64, len(series))

	for i := range series {
		if i < scale-1 {
			sums[i] = math.NaN()
			continue
		}

		sum := 0.0
		for j := i - scale + 1; j <= i; j++ {
			sum += series[j]
		}
		sums[i] = sum
	}

	return sums
}

// monthValues collects the values of a single calendar month (0 = January)
// from a monthly series, preserving series order.
func monthValues(series []float64, month int) []float64 {
	values := make([]float64, 0, (len(series)+11)/12)
	for i := month; i < len(series); i += 12 {
		values = append(values, series[i])
	}
	return values
}
