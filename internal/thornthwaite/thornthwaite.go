// Package thornthwaite estimates potential evapotranspiration from monthly
// average temperature and latitude using Thornthwaite's (1948) equation.
package thornthwaite

import (
	"fmt"
	"math"
)

// mid-month day of year, used for the solar declination of each month
var midMonthDay = [12]int{15, 45, 74, 105, 135, 166, 196, 227, 258, 288, 319, 349}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// highTempThreshold is the temperature above which Thornthwaite's standard
// formula is replaced by the Willmott high-temperature polynomial.
const highTempThreshold = 26.5

// PotentialEvapotranspiration computes monthly PET, in millimeters per
// month, for a temperature series starting in January of dataStartYear.
// Temperatures are monthly averages in degrees Celsius; latitude is in
// degrees north and must lie strictly inside (-90, 90).
//
// Months at or below freezing produce zero PET. NaN temperatures produce
// NaN PET. The heat index is computed per calendar year from that year's
// above-freezing months.
func PotentialEvapotranspiration(tempsCelsius []float64, latitudeDegrees float64, dataStartYear int) ([]float64, error) {
	if math.IsNaN(latitudeDegrees) || latitudeDegrees <= -90 || latitudeDegrees >= 90 {
		return nil, fmt.Errorf("latitude %v out of range (-90, 90)", latitudeDegrees)
	}

	latitudeRadians := latitudeDegrees * math.Pi / 180
	pet := make([]float64, len(tempsCelsius))

	for yearStart := 0; yearStart < len(tempsCelsius); yearStart += 12 {
		yearEnd := yearStart + 12
		if yearEnd > len(tempsCelsius) {
			yearEnd = len(tempsCelsius)
		}
		year := dataStartYear + yearStart/12

		heatIndex := annualHeatIndex(tempsCelsius[yearStart:yearEnd])
		exponent := 6.75e-7*math.Pow(heatIndex, 3) -
			7.71e-5*math.Pow(heatIndex, 2) +
			1.792e-2*heatIndex + 0.49239

		for i := yearStart; i < yearEnd; i++ {
			month := i - yearStart
			temp := tempsCelsius[i]

			switch {
			case math.IsNaN(temp):
				pet[i] = math.NaN()
			case temp <= 0:
				pet[i] = 0
			default:
				correction := dayLengthHours(latitudeRadians, month) / 12 *
					float64(monthLength(year, month)) / 30

				if temp >= highTempThreshold {
					// Willmott et al. adjustment for very hot months, where
					// the standard formula underestimates
					pet[i] = correction * (-415.85 + 32.24*temp - 0.43*temp*temp)
				} else if heatIndex > 0 {
					pet[i] = correction * 16 * math.Pow(10*temp/heatIndex, exponent)
				}
			}
		}
	}

	return pet, nil
}

// annualHeatIndex sums the monthly heat contributions (T/5)^1.514 over the
// year's above-freezing, non-missing months.
func annualHeatIndex(yearTemps []float64) float64 {
	index := 0.0
	for _, t := range yearTemps {
		if !math.IsNaN(t) && t > 0 {
			index += math.Pow(t/5, 1.514)
		}
	}
	return index
}

// dayLengthHours returns the mean day length for the month at the given
// latitude, from the sunset hour angle of the mid-month solar declination.
func dayLengthHours(latitudeRadians float64, month int) float64 {
	declination := 0.4093 * math.Sin(2*math.Pi*float64(284+midMonthDay[month])/365)

	cosHourAngle := -math.Tan(latitudeRadians) * math.Tan(declination)
	// polar day / polar night
	if cosHourAngle < -1 {
		cosHourAngle = -1
	}
	if cosHourAngle > 1 {
		cosHourAngle = 1
	}

	return 24 / math.Pi * math.Acos(cosHourAngle)
}

func monthLength(year, month int) int {
	if month == 1 && isLeapYear(year) {
		return 29
	}
	return daysInMonth[month]
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
