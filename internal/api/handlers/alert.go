package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sreepuli/AquaAlert-sub000/internal/api/dto"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/engine"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/errors"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/utils"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/validator"
)

type AlertHandler struct {
	engine    *engine.Engine
	logger    *logger.Logger
	validator *validator.Validator
}

func NewAlertHandler(eng *engine.Engine, log *logger.Logger, val *validator.Validator) *AlertHandler {
	return &AlertHandler{engine: eng, logger: log, validator: val}
}

// List returns recent alerts with optional severity and sensor filters
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	filter := alert.Filter{
		Severity: r.URL.Query().Get("severity"),
		SensorID: r.URL.Query().Get("sensor_id"),
	}

	utils.WriteSuccess(w, http.StatusOK, h.engine.Alerts(filter, limit))
}

// Acknowledge marks an alert as acknowledged by an operator
func (h *AlertHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.AcknowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	a, err := h.engine.Acknowledge(id, req.AcknowledgedBy)
	if err != nil {
		writeAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Alert acknowledged", a)
}
