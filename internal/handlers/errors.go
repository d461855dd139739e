package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// writeError maps domain and business errors onto the JSON error envelope.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var schedErr *availability.ScheduleError

	switch {
	case errors.As(err, &schedErr), errors.Is(err, availability.ErrInvalidSchedule):
		httperr.Internal(c, "invalid_branch_schedule", "Branch opening hours are misconfigured.")

	case errors.Is(err, availability.ErrStylistNotFound):
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
	case errors.Is(err, availability.ErrServiceNotFound):
		httperr.NotFound(c, "service_not_found", "Service not found.")
	case errors.Is(err, availability.ErrBranchNotFound):
		httperr.NotFound(c, "branch_not_found", "Branch not found.")

	case errors.Is(err, availability.ErrInvalidParameter):
		httperr.BadRequest(c, "invalid_parameter", err.Error())

	default:
		code, ok := httperr.BusinessCode(err)
		if !ok {
			log.Error("unhandled error",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			httperr.Internal(c, "internal_error", "Unexpected error.")
			return
		}
		writeBusiness(c, code)
	}
}

func writeBusiness(c *gin.Context, code string) {
	switch {
	case code == "time_conflict":
		httperr.Conflict(c, code, "The requested time is no longer available.")
	case strings.HasSuffix(code, "_not_found"):
		httperr.NotFound(c, code, "Resource not found.")
	default:
		httperr.Write(c, http.StatusBadRequest, code, "Business rule violation.")
	}
}
