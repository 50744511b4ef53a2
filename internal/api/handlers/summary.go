package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/errors"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/utils"
	"github.com/sreepuli/AquaAlert-sub000/internal/services"
)

type SummaryHandler struct {
	summary *services.SummaryService
	logger  *logger.Logger
}

func NewSummaryHandler(summary *services.SummaryService, log *logger.Logger) *SummaryHandler {
	return &SummaryHandler{summary: summary, logger: log}
}

// Get returns digest statistics without sending any email. Optional
// start/end query parameters override the default 24 hour window.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	start, end, werr := summaryWindowParams(r)
	if werr != nil {
		utils.WriteError(w, werr)
		return
	}
	stats, alerts := h.summary.Collect(start, end)
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"stats":  stats,
		"alerts": alerts,
	})
}

// Send builds the digest for the requested window and mails it to the
// distribution list
func (h *SummaryHandler) Send(w http.ResponseWriter, r *http.Request) {
	start, end, werr := summaryWindowParams(r)
	if werr != nil {
		utils.WriteError(w, werr)
		return
	}
	stats, err := h.summary.Send(r.Context(), start, end)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Daily summary sent", stats)
}

// summaryWindowParams parses the optional RFC3339 start/end query
// parameters bounding a digest window
func summaryWindowParams(r *http.Request) (start, end time.Time, appErr *errors.AppError) {
	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return start, end, errors.BadRequest(fmt.Sprintf("Invalid start time %q, expected RFC3339", v))
		}
		start = t
	}
	if v := q.Get("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return start, end, errors.BadRequest(fmt.Sprintf("Invalid end time %q, expected RFC3339", v))
		}
		end = t
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return start, end, errors.BadRequest("Window start must not be after window end")
	}
	return start, end, nil
}
