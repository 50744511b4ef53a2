package handlers

import (
	"net/http"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/utils"
)

type HealthHandler struct {
	startedAt time.Time
	version   string
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{startedAt: time.Now(), version: version}
}

// Healthz reports process liveness
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Readyz reports readiness to serve traffic
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}
