package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"climdex/internal/config"
	apierrors "climdex/internal/errors"
	"climdex/internal/indices"
	"climdex/internal/observability"
)

// IndexHandler handles the drought-index computation requests.
type IndexHandler struct {
	calculator   *indices.Calculator
	compute      config.ComputeConfig
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	metrics      *observability.Metrics
	validate     *validator.Validate
}

// NewIndexHandler creates the handler. metrics may be nil when the caller
// does not collect them.
func NewIndexHandler(calculator *indices.Calculator, compute config.ComputeConfig, logger *slog.Logger, metrics *observability.Metrics) *IndexHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndexHandler{
		calculator:   calculator,
		compute:      compute,
		logger:       logger,
		errorHandler: apierrors.NewErrorHandler(logger, false),
		metrics:      metrics,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the index computation routes.
func (h *IndexHandler) RegisterRoutes(r chi.Router) {
	r.Route("/indices", func(r chi.Router) {
		r.Post("/spi", h.ComputeSPI)
		r.Post("/spei", h.ComputeSPEI)
		r.Post("/percent-of-normal", h.ComputePercentOfNormal)
		r.Post("/pet", h.ComputePET)
	})
}

// decode binds and validates a JSON request body.
func (h *IndexHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error()))
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", err.Error()))
		return false
	}
	return true
}

// checkLength enforces the configured series-length cap.
func (h *IndexHandler) checkLength(w http.ResponseWriter, r *http.Request, months int) bool {
	if months > h.compute.MaxSeriesMonths {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "SERIES_TOO_LONG", "Input series exceeds the configured maximum",
			map[string]int{"months": months, "max_months": h.compute.MaxSeriesMonths}))
		return false
	}
	return true
}

// calibration fills unset calibration years with the configured defaults.
func (h *IndexHandler) calibration(start, end int) (int, int) {
	if start == 0 {
		start = h.compute.CalibrationStartYear
	}
	if end == 0 {
		end = h.compute.CalibrationEndYear
	}
	return start, end
}

func (h *IndexHandler) observe(index string, months int, started time.Time, err error) {
	if h.metrics != nil {
		h.metrics.ObserveComputation(index, months, time.Since(started), err)
	}
}

// ComputeSPI computes SPI for a monthly precipitation series.
func (h *IndexHandler) ComputeSPI(w http.ResponseWriter, r *http.Request) {
	var req SPIRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !h.checkLength(w, r, len(req.Values)) {
		return
	}

	precips := toFloats(req.Values)
	scale := indices.Scale(req.Scale)
	started := time.Now()

	var (
		result []float64
		err    error
	)
	if req.Distribution == "pearson" {
		calibStart, calibEnd := h.calibration(req.CalibrationStartYear, req.CalibrationEndYear)
		result, err = h.calculator.SPIPearson(precips, scale, req.DataStartYear, calibStart, calibEnd)
	} else {
		result, err = h.calculator.SPIGamma(precips, scale)
	}
	h.observe("spi", len(precips), started, err)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FromDomain(err))
		return
	}

	render.JSON(w, r, &IndexResponse{
		Index:        "spi",
		Distribution: req.Distribution,
		Scale:        req.Scale,
		Months:       len(result),
		Values:       toWire(result),
		Summary:      summarize(result),
	})
}

// ComputeSPEI computes SPEI for monthly precipitation and a PET source.
func (h *IndexHandler) ComputeSPEI(w http.ResponseWriter, r *http.Request) {
	var req SPEIRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !h.checkLength(w, r, len(req.Precip)) {
		return
	}

	var petSeries, tempSeries []float64
	if req.PET != nil {
		petSeries = toFloats(req.PET)
	}
	if req.Temps != nil {
		tempSeries = toFloats(req.Temps)
	}

	// data_start_year also anchors the pearson calibration window, so it
	// only belongs to the PET source when PET is derived from temperature.
	sourceStartYear := req.DataStartYear
	if req.PET != nil {
		sourceStartYear = nil
	}

	source, err := indices.NewPETSource(petSeries, tempSeries, req.Latitude, sourceStartYear)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FromDomain(err))
		return
	}

	precips := toFloats(req.Precip)
	scale := indices.Scale(req.Scale)
	started := time.Now()

	var result []float64
	if req.Distribution == "pearson" {
		if req.DataStartYear == nil {
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusBadRequest, "VALIDATION_FAILED",
				"Request validation failed", "data_start_year is required for the pearson distribution"))
			return
		}
		calibStart, calibEnd := h.calibration(req.CalibrationStartYear, req.CalibrationEndYear)
		result, err = h.calculator.SPEIPearson(precips, scale, *req.DataStartYear, calibStart, calibEnd, source)
	} else {
		result, err = h.calculator.SPEIGamma(precips, scale, source)
	}
	h.observe("spei", len(precips), started, err)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FromDomain(err))
		return
	}

	render.JSON(w, r, &IndexResponse{
		Index:        "spei",
		Distribution: req.Distribution,
		Scale:        req.Scale,
		Months:       len(result),
		Values:       toWire(result),
		Summary:      summarize(result),
	})
}

// ComputePercentOfNormal computes the percent-of-normal index.
func (h *IndexHandler) ComputePercentOfNormal(w http.ResponseWriter, r *http.Request) {
	var req PercentOfNormalRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !h.checkLength(w, r, len(req.Values)) {
		return
	}

	values := toFloats(req.Values)
	calibStart, calibEnd := h.calibration(req.CalibrationStartYear, req.CalibrationEndYear)
	started := time.Now()

	result, err := h.calculator.PercentOfNormal(values, indices.Scale(req.Scale), req.DataStartYear, calibStart, calibEnd)
	h.observe("pnp", len(values), started, err)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FromDomain(err))
		return
	}

	render.JSON(w, r, &IndexResponse{
		Index:   "pnp",
		Scale:   req.Scale,
		Months:  len(result),
		Values:  toWire(result),
		Summary: summarize(result),
	})
}

// ComputePET computes a Thornthwaite PET series.
func (h *IndexHandler) ComputePET(w http.ResponseWriter, r *http.Request) {
	var req PETRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !h.checkLength(w, r, len(req.Temps)) {
		return
	}

	temps := toFloats(req.Temps)
	started := time.Now()

	result, err := h.calculator.PET(temps, req.Latitude, req.DataStartYear)
	h.observe("pet", len(temps), started, err)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FromDomain(err))
		return
	}

	render.JSON(w, r, &IndexResponse{
		Index:   "pet",
		Months:  len(result),
		Values:  toWire(result),
		Summary: summarize(result),
	})
}
