package indices

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePalmer records the arguments it receives and returns canned series.
type fakePalmer struct {
	gotAWC float64
	series []float64
}

func (f *fakePalmer) PDSI(precip, pet []float64, awc float64, dataStartYear, calibStart, calibEnd int) ([]float64, []float64, []float64, error) {
	f.gotAWC = awc
	return f.series, f.series, f.series, nil
}

func (f *fakePalmer) SCPDSI(precip, pet []float64, awc float64, dataStartYear, calibStart, calibEnd int) ([]float64, []float64, []float64, []float64, []float64, error) {
	f.gotAWC = awc
	return f.series, f.series, f.series, f.series, f.series, nil
}

func (f *fakePalmer) PDSIFromClimatology(precip, temps []float64, awc, latitudeDegrees, b, h float64, dataStartYear, calibStart, calibEnd int) ([]float64, []float64, []float64, []float64, error) {
	f.gotAWC = awc
	return f.series, f.series, f.series, f.series, nil
}

func palmerCalculator(model PalmerModel) *Calculator {
	return NewCalculator(nil, model, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPDSIDelegation(t *testing.T) {
	model := &fakePalmer{series: []float64{1, 2, 3}}
	calc := palmerCalculator(model)

	precip := make([]float64, 120)
	pet := make([]float64, 120)

	pdsi, phdi, zindex, err := calc.PDSI(precip, pet, 5.5, 2000, 2000, 2009)
	require.NoError(t, err)
	assert.Equal(t, model.series, pdsi)
	assert.Equal(t, model.series, phdi)
	assert.Equal(t, model.series, zindex)
	assert.Equal(t, 5.5, model.gotAWC)
}

func TestSCPDSIDelegation(t *testing.T) {
	model := &fakePalmer{series: []float64{-1, 0, 1}}
	calc := palmerCalculator(model)

	precip := make([]float64, 120)
	pet := make([]float64, 120)

	scpdsi, pdsi, phdi, pmdi, zindex, err := calc.SCPDSI(precip, pet, 2.5, 2000, 2000, 2009)
	require.NoError(t, err)
	for _, series := range [][]float64{scpdsi, pdsi, phdi, pmdi, zindex} {
		assert.Equal(t, model.series, series)
	}
}

func TestPDSIFromClimatologyDelegation(t *testing.T) {
	model := &fakePalmer{series: []float64{0.5}}
	calc := palmerCalculator(model)

	precip := make([]float64, 120)
	temps := make([]float64, 120)

	pdsi, _, _, _, err := calc.PDSIFromClimatology(precip, temps, 4.0, 35.0, 0.2, 0.5, 2000, 2000, 2009)
	require.NoError(t, err)
	assert.Equal(t, model.series, pdsi)
}

func TestPDSIFromClimatologyLatitude(t *testing.T) {
	calc := palmerCalculator(&fakePalmer{})
	precip := make([]float64, 120)
	temps := make([]float64, 120)

	_, _, _, _, err := calc.PDSIFromClimatology(precip, temps, 4.0, 91.0, 0.2, 0.5, 2000, 2000, 2009)
	assert.ErrorIs(t, err, ErrInvalidLatitude)
}

func TestPalmerUnavailable(t *testing.T) {
	calc := testCalculator() // no model configured
	precip := make([]float64, 120)
	pet := make([]float64, 120)

	_, _, _, err := calc.PDSI(precip, pet, 5.0, 2000, 2000, 2009)
	assert.ErrorIs(t, err, ErrPalmerUnavailable)

	_, _, _, _, _, err = calc.SCPDSI(precip, pet, 5.0, 2000, 2000, 2009)
	assert.ErrorIs(t, err, ErrPalmerUnavailable)
}

func TestPalmerInputValidation(t *testing.T) {
	calc := palmerCalculator(&fakePalmer{})

	t.Run("empty precipitation", func(t *testing.T) {
		_, _, _, err := calc.PDSI(nil, nil, 5.0, 2000, 2000, 2009)
		assert.ErrorIs(t, err, ErrEmptySeries)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		_, _, _, err := calc.PDSI(make([]float64, 120), make([]float64, 60), 5.0, 2000, 2000, 2009)
		assert.ErrorIs(t, err, ErrIncompatibleArrays)
	})

	t.Run("bad calibration window", func(t *testing.T) {
		_, _, _, err := calc.PDSI(make([]float64, 120), make([]float64, 120), 5.0, 2000, 2009, 2000)
		assert.ErrorIs(t, err, ErrInvalidCalibration)
	})
}
