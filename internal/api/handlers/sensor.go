package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sreepuli/AquaAlert-sub000/internal/engine"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/utils"
)

type SensorHandler struct {
	engine *engine.Engine
	logger *logger.Logger
}

func NewSensorHandler(eng *engine.Engine, log *logger.Logger) *SensorHandler {
	return &SensorHandler{engine: eng, logger: log}
}

// List returns the sensor fleet with runtime counters
func (h *SensorHandler) List(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, h.engine.Sensors())
}

// Get returns a single sensor by ID
func (h *SensorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, err := h.engine.Sensor(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, s)
}

// Readings returns recent readings, optionally scoped to one sensor
func (h *SensorHandler) Readings(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sensorID := r.URL.Query().Get("sensor_id")

	utils.WriteSuccess(w, http.StatusOK, h.engine.Readings(sensorID, limit))
}

// SensorReadings returns recent readings for the sensor in the path
func (h *SensorHandler) SensorReadings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if _, err := h.engine.Sensor(id); err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, h.engine.Readings(id, limit))
}
