package handlers

import (
	"net/http"

	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/errors"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/utils"
)

// writeAppError writes an AppError as-is and wraps anything else as an
// internal error
func writeAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal("Unexpected error", err))
}
