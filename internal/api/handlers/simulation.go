package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sreepuli/AquaAlert-sub000/internal/api/dto"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/sensor"
	"github.com/sreepuli/AquaAlert-sub000/internal/engine"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/errors"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/utils"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/validator"
)

type SimulationHandler struct {
	engine    *engine.Engine
	logger    *logger.Logger
	validator *validator.Validator
}

func NewSimulationHandler(eng *engine.Engine, log *logger.Logger, val *validator.Validator) *SimulationHandler {
	return &SimulationHandler{engine: eng, logger: log, validator: val}
}

// Start begins the monitoring loop
func (h *SimulationHandler) Start(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Start() {
		utils.WriteSuccessWithMessage(w, http.StatusOK, "Monitoring already running", h.engine.Status())
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Monitoring started", h.engine.Status())
}

// Stop halts the monitoring loop
func (h *SimulationHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Stop() {
		utils.WriteSuccessWithMessage(w, http.StatusOK, "Monitoring not running", h.engine.Status())
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Monitoring stopped", h.engine.Status())
}

// Status returns a snapshot of the loop state and sensor fleet
func (h *SimulationHandler) Status(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, h.engine.Status())
}

// TestAlert injects a synthetic reading through the evaluation and
// notification pipeline. Parameters left out of the request default to
// mid-range normal values so only supplied values can trigger findings.
func (h *SimulationHandler) TestAlert(w http.ResponseWriter, r *http.Request) {
	var req dto.TestAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	reading := buildTestReading(&req)

	a, result, err := h.engine.TestAlert(r.Context(), reading)
	if err != nil {
		writeAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"alert":      a,
		"dispatched": result.Success,
		"recipients": result.RecipientCount,
	})
}

func buildTestReading(req *dto.TestAlertRequest) *sensor.Reading {
	params := sensor.Parameters{
		PH:              sensor.NormalRanges[sensor.ParamPH].Mid(),
		Turbidity:       sensor.NormalRanges[sensor.ParamTurbidity].Mid(),
		TDS:             sensor.NormalRanges[sensor.ParamTDS].Mid(),
		EColi:           0,
		Temperature:     sensor.NormalRanges[sensor.ParamTemperature].Mid(),
		FlowRate:        sensor.NormalRanges[sensor.ParamFlowRate].Mid(),
		DissolvedOxygen: sensor.NormalRanges[sensor.ParamDissolvedOxygen].Mid(),
	}

	p := req.Parameters
	if p.PH != nil {
		params.PH = *p.PH
	}
	if p.Turbidity != nil {
		params.Turbidity = *p.Turbidity
	}
	if p.TDS != nil {
		params.TDS = *p.TDS
	}
	if p.EColi != nil {
		params.EColi = *p.EColi
	}
	if p.Temperature != nil {
		params.Temperature = *p.Temperature
	}
	if p.FlowRate != nil {
		params.FlowRate = *p.FlowRate
	}
	if p.DissolvedOxygen != nil {
		params.DissolvedOxygen = *p.DissolvedOxygen
	}

	reading := &sensor.Reading{
		SensorID:       req.SensorID,
		Parameters:     params,
		BatteryLevel:   100,
		SignalStrength: 100,
		Status:         sensor.ConnectivityOnline,
	}
	if req.BatteryLevel != nil {
		reading.BatteryLevel = *req.BatteryLevel
	}
	if req.SignalStrength != nil {
		reading.SignalStrength = *req.SignalStrength
	}
	if req.Status != "" {
		reading.Status = req.Status
	}
	return reading
}
