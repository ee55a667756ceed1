package indices

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monthlyPET builds a PET series roughly proportional to the seasonal
// temperature cycle, in millimeters per month.
func monthlyPET(years int) []float64 {
	series := make([]float64, years*12)
	for year := 0; year < years; year++ {
		for month := 0; month < 12; month++ {
			series[year*12+month] = 60.0 + 45.0*math.Sin(2*math.Pi*(float64(month)-3)/12)
		}
	}
	return series
}

func TestSPEIGammaWithProvidedPET(t *testing.T) {
	calc := testCalculator()
	precips := monthlyPrecip(30)
	pet := monthlyPET(30)

	got, err := calc.SPEIGamma(precips, Scale6, ProvidedPET(pet))
	require.NoError(t, err)
	require.Len(t, got, len(precips))

	for i, v := range got {
		if math.IsNaN(v) {
			continue
		}
		assert.GreaterOrEqual(t, v, FittedIndexValidMin, "index %d", i)
		assert.LessOrEqual(t, v, FittedIndexValidMax, "index %d", i)
	}
}

func TestSPEIGammaWithDerivedPET(t *testing.T) {
	calc := testCalculator()
	years := 30
	precips := monthlyPrecip(years)

	temps := make([]float64, years*12)
	for year := 0; year < years; year++ {
		for month := 0; month < 12; month++ {
			temps[year*12+month] = 15.0 + 12.0*math.Sin(2*math.Pi*(float64(month)-3)/12)
		}
	}

	got, err := calc.SPEIGamma(precips, Scale3, DerivedPET(temps, 38.5, 1990))
	require.NoError(t, err)
	require.Len(t, got, len(precips))
}

func TestSPEIPearson(t *testing.T) {
	calc := testCalculator()
	precips := monthlyPrecip(30)
	pet := monthlyPET(30)

	got, err := calc.SPEIPearson(precips, Scale3, 1985, 1990, 2009, ProvidedPET(pet))
	require.NoError(t, err)
	require.Len(t, got, len(precips))
}

func TestSPEIPETSourceValidation(t *testing.T) {
	calc := testCalculator()
	precips := monthlyPrecip(10)

	t.Run("zero value source", func(t *testing.T) {
		_, err := calc.SPEIGamma(precips, Scale3, PETSource{})
		assert.ErrorIs(t, err, ErrIncompatibleArguments)
	})

	t.Run("mismatched pet length", func(t *testing.T) {
		_, err := calc.SPEIGamma(precips, Scale3, ProvidedPET(monthlyPET(5)))
		assert.ErrorIs(t, err, ErrIncompatibleArrays)
	})

	t.Run("mismatched temperature length", func(t *testing.T) {
		temps := make([]float64, 60)
		_, err := calc.SPEIGamma(precips, Scale3, DerivedPET(temps, 40, 2000))
		assert.ErrorIs(t, err, ErrIncompatibleArrays)
	})

	t.Run("bad latitude on derivation", func(t *testing.T) {
		temps := make([]float64, len(precips))
		for i := range temps {
			temps[i] = 12.0
		}
		_, err := calc.SPEIGamma(precips, Scale3, DerivedPET(temps, 95, 2000))
		assert.ErrorIs(t, err, ErrInvalidLatitude)
	})
}

func TestNewPETSource(t *testing.T) {
	pet := monthlyPET(5)
	temps := make([]float64, 60)
	lat := 33.0
	year := 2000

	tests := []struct {
		name    string
		pet     []float64
		temps   []float64
		lat     *float64
		year    *int
		wantErr bool
	}{
		{"pet only", pet, nil, nil, nil, false},
		{"temps with latitude and year", nil, temps, &lat, &year, false},
		{"both pet and temps", pet, temps, &lat, &year, true},
		{"neither", nil, nil, nil, nil, true},
		{"temps missing latitude", nil, temps, nil, &year, true},
		{"temps missing year", nil, temps, &lat, nil, true},
		{"pet with extraneous latitude", pet, nil, &lat, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPETSource(tt.pet, tt.temps, tt.lat, tt.year)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncompatibleArguments)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSPEIWaterBalanceOffsetCancels(t *testing.T) {
	// Two computations whose water balances are identical must agree,
	// because the offset applies uniformly before fitting.
	calc := testCalculator()
	precips := monthlyPrecip(30)
	pet := monthlyPET(30)

	shiftedPrecips := make([]float64, len(precips))
	shiftedPET := make([]float64, len(pet))
	for i := range precips {
		shiftedPrecips[i] = precips[i] + 5.0
		shiftedPET[i] = pet[i] + 5.0
	}

	a, err := calc.SPEIGamma(precips, Scale3, ProvidedPET(pet))
	require.NoError(t, err)
	b, err := calc.SPEIGamma(shiftedPrecips, Scale3, ProvidedPET(shiftedPET))
	require.NoError(t, err)

	for i := range a {
		if math.IsNaN(a[i]) {
			assert.True(t, math.IsNaN(b[i]), "index %d", i)
			continue
		}
		assert.InDelta(t, a[i], b[i], 1e-9, "index %d", i)
	}
}
