package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	availabilityuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
)

type AvailabilityQuery interface {
	Execute(ctx context.Context, in availabilityuc.Input) ([]availability.Slot, error)
}

type AvailabilityHandler struct {
	query AvailabilityQuery
	log   *zap.Logger
}

func NewAvailabilityHandler(query AvailabilityQuery, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{query: query, log: log}
}

type AvailabilityResponse struct {
	Date      string              `json:"date"`
	StylistID uint                `json:"stylist_id"`
	ServiceID uint                `json:"service_id"`
	Slots     []availability.Slot `json:"slots"`
}

// Get answers GET /stylists/:id/availability?service_id=&date=YYYY-MM-DD.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	stylistID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_parameter", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.query.Execute(c.Request.Context(), availabilityuc.Input{
		StylistID: stylistID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, AvailabilityResponse{
		Date:      dateStr,
		StylistID: stylistID,
		ServiceID: serviceID,
		Slots:     slots,
	})
}
