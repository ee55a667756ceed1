// Package indices computes standard meteorological drought indices from
// monthly time series.
//
// # Indices
//
// The Calculator exposes one driver per index:
//
//   - SPIGamma / SPIPearson: Standardized Precipitation Index, fitted to a
//     gamma or Pearson Type III distribution.
//   - SPEIGamma / SPEIPearson: Standardized Precipitation-Evapotranspiration
//     Index over P - PET, same distributions.
//   - PercentOfNormal: scaled sums relative to per-calendar-month averages
//     over a calibration period.
//   - PET: potential evapotranspiration by Thornthwaite's method.
//   - PDSI / SCPDSI / PDSIFromClimatology: Palmer-family indices, delegated
//     to an external water-balance model.
//
// Every driver returns a series of exactly the same length as its primary
// input, with NaN marking missing values. SPI and SPEI outputs are clipped
// to the valid fitted-index range of [-3.09, 3.09].
//
// # Argument contracts
//
// Invalid calls fail fast with a descriptive error before any computation:
// mismatched array lengths, calibration windows outside the data, latitudes
// outside (-90, 90), and PET-source combinations that are ambiguous. The PET
// source for SPEI is a tagged union (ProvidedPET or DerivedPET) so a request
// cannot carry both a PET series and the temperature inputs used to derive
// one.
//
// # Statistical contracts
//
// The gamma drivers fit each calendar month against the full series, while
// the Pearson drivers restrict parameter estimation to the calibration
// period. This asymmetry is deliberate and matches the established reference
// behavior for these indices; unifying the two would change output values.
//
// Usage:
//
//	calc := indices.NewCalculator(nil, nil, slog.Default())
//	spi, err := calc.SPIGamma(precips, indices.Scale3)
//	if err != nil {
//	    log.Fatal(err)
//	}
package indices
