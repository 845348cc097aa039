// backend/src/handlers/calculation_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/strscout/backend/src/logger"
	"github.com/strscout/backend/src/models"
	"github.com/strscout/backend/src/processors"
	"github.com/strscout/backend/src/security/validation"
	"github.com/strscout/backend/src/services"
	"github.com/strscout/backend/src/utils"
)

type CalculationHandler struct {
	calculations services.CalculationService
	processor    processors.MetricsProcessor
}

func NewCalculationHandler(calculations services.CalculationService, processor processors.MetricsProcessor) *CalculationHandler {
	return &CalculationHandler{
		calculations: calculations,
		processor:    processor,
	}
}

func (h *CalculationHandler) HandleGetCalculations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctxLogger := logger.FromContext(r.Context())

	result, err := h.calculations.Calculate(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}

	currentETag, etagErr := utils.GenerateETag(result)
	if etagErr != nil {
		ctxLogger.Error("Failed to generate ETag for calculation", "propertyID", id, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")
	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		for _, cETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				ctxLogger.Debug("ETag match for calculation", "propertyID", id)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// parseAlosRange reads ?min= and ?max=, falling back to the default sweep.
func parseAlosRange(r *http.Request) (models.AlosRange, error) {
	rng := processors.DefaultAlosRange()
	q := r.URL.Query()
	if v := q.Get("min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return rng, fmt.Errorf("invalid min %q", v)
		}
		rng.Min = n
	}
	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return rng, fmt.Errorf("invalid max %q", v)
		}
		rng.Max = n
	}
	if err := validation.ValidateStruct(rng); err != nil {
		return rng, err
	}
	return rng, nil
}

func (h *CalculationHandler) HandleGetAlos(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rng, err := parseAlosRange(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	analysis, err := h.calculations.AnalyzeAlos(r.Context(), id, rng)
	if err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}
	if analysis.Points == nil {
		analysis.Points = []models.AlosDataPoint{}
	}
	utils.WriteJSON(w, http.StatusOK, analysis)
}

type compareRequest struct {
	PropertyIDs []int64 `json:"property_ids"`
}

func (h *CalculationHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.PropertyIDs) == 0 {
		utils.SendJSONError(w, "property_ids array is required", http.StatusBadRequest)
		return
	}

	entries, err := h.calculations.Compare(r.Context(), req.PropertyIDs)
	if err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, entries)
}

func (h *CalculationHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.calculations.Dashboard(r.Context())
	if err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}
	if dash.Properties == nil {
		dash.Properties = []models.PropertySummary{}
	}
	utils.WriteJSON(w, http.StatusOK, dash)
}

// calculateResponse carries the ALOS sweep only when the request asked for one.
type calculateResponse struct {
	models.CalculationResult
	Alos *models.AlosAnalysis `json:"alos,omitempty"`
}

// HandleCalculate runs the engine on a request body without touching storage.
func (h *CalculationHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req models.CalculationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	input := req.Input()
	resp := calculateResponse{CalculationResult: h.processor.Calculate(input)}
	if req.AlosRange != nil {
		analysis := h.processor.AnalyzeAlos(input, resp.CalculationResult, *req.AlosRange)
		resp.Alos = &analysis
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *CalculationHandler) HandleMortgage(w http.ResponseWriter, r *http.Request) {
	var req models.MortgageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	utils.WriteJSON(w, http.StatusOK, processors.Mortgage(req))
}
