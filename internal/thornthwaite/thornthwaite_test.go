package thornthwaite

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// northernYear is a plausible mid-latitude northern-hemisphere temperature
// cycle, coldest in January and warmest in July.
var northernYear = []float64{-2, 0, 5, 11, 16, 21, 24, 23, 18, 12, 6, 1}

func TestPotentialEvapotranspirationBasics(t *testing.T) {
	pet, err := PotentialEvapotranspiration(northernYear, 40.0, 2001)
	require.NoError(t, err)
	require.Len(t, pet, 12)

	for m, v := range pet {
		assert.False(t, math.IsNaN(v), "month %d", m)
		assert.GreaterOrEqual(t, v, 0.0, "month %d", m)
	}

	// Freezing months evaporate nothing.
	assert.Equal(t, 0.0, pet[0], "January at -2C")
	assert.Equal(t, 0.0, pet[1], "February at 0C")

	// Summer demand exceeds winter demand in the northern hemisphere.
	assert.Greater(t, pet[6], pet[11], "July must exceed December")
	assert.Greater(t, pet[6], pet[3], "July must exceed April")
}

func TestPotentialEvapotranspirationHemispheres(t *testing.T) {
	warm := make([]float64, 12)
	for m := range warm {
		warm[m] = 18.0
	}

	north, err := PotentialEvapotranspiration(warm, 45.0, 2001)
	require.NoError(t, err)
	south, err := PotentialEvapotranspiration(warm, -45.0, 2001)
	require.NoError(t, err)

	// With uniform temperature, seasonality comes from day length alone:
	// long northern June days against short southern ones.
	assert.Greater(t, north[5], south[5], "June day length favors the north")
	assert.Greater(t, south[11], north[11], "December day length favors the south")
}

func TestPotentialEvapotranspirationHighTemperature(t *testing.T) {
	temps := make([]float64, 12)
	copy(temps, northernYear)
	temps[6] = 30.0 // above the Willmott threshold

	pet, err := PotentialEvapotranspiration(temps, 35.0, 2001)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(pet[6]))
	assert.Greater(t, pet[6], pet[5], "a hotter July demands more than June")
}

func TestPotentialEvapotranspirationMissingMonths(t *testing.T) {
	temps := make([]float64, 12)
	copy(temps, northernYear)
	temps[4] = math.NaN()

	pet, err := PotentialEvapotranspiration(temps, 40.0, 2001)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(pet[4]))
	assert.False(t, math.IsNaN(pet[5]), "other months unaffected")
}

func TestPotentialEvapotranspirationLatitudeRange(t *testing.T) {
	for _, lat := range []float64{-90, 90, 95, -120, math.NaN()} {
		_, err := PotentialEvapotranspiration(northernYear, lat, 2001)
		assert.Error(t, err, "latitude %v", lat)
	}
	for _, lat := range []float64{-89.9, 0, 89.9} {
		_, err := PotentialEvapotranspiration(northernYear, lat, 2001)
		assert.NoError(t, err, "latitude %v", lat)
	}
}

func TestPotentialEvapotranspirationPartialYear(t *testing.T) {
	// Fifteen months: one full year plus January through March.
	temps := make([]float64, 15)
	copy(temps, northernYear)
	temps[12], temps[13], temps[14] = -1, 2, 7

	pet, err := PotentialEvapotranspiration(temps, 40.0, 2001)
	require.NoError(t, err)
	require.Len(t, pet, 15)
	assert.Equal(t, 0.0, pet[12])
	assert.Greater(t, pet[14], 0.0)
}

func TestLeapYearMonthLength(t *testing.T) {
	assert.Equal(t, 29, monthLength(2024, 1))
	assert.Equal(t, 28, monthLength(2023, 1))
	assert.Equal(t, 28, monthLength(1900, 1), "century years are not leap unless divisible by 400")
	assert.Equal(t, 29, monthLength(2000, 1))
	assert.Equal(t, 31, monthLength(2024, 0))
}

func TestDayLengthHours(t *testing.T) {
	// Equator: roughly twelve hours year round.
	for m := 0; m < 12; m++ {
		assert.InDelta(t, 12.0, dayLengthHours(0, m), 0.5, "month %d", m)
	}

	// High northern latitude: June much longer than December.
	lat := 65.0 * math.Pi / 180
	assert.Greater(t, dayLengthHours(lat, 5), 18.0)
	assert.Less(t, dayLengthHours(lat, 11), 6.0)
}
