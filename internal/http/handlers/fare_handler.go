// README: Fare handlers: vehicle table, upfront estimates and locked fare lookup.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"stayride/internal/modules/fare"
	"stayride/internal/types"
)

var fareQuotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fare_quotes_total",
		Help: "Upfront fares quoted, by vehicle type and whether surge applied",
	},
	[]string{"vehicle_type", "surged"},
)

func recordFareQuote(calc fare.FareCalculation) {
	surged := strconv.FormatBool(calc.SurgeMultiplier > fare.NoSurge)
	fareQuotesTotal.WithLabelValues(string(calc.VehicleType), surged).Inc()
}

type FareService interface {
	Quote(ctx context.Context, req fare.QuoteRequest) (fare.FareCalculation, error)
	GetLocked(ctx context.Context, id types.ID) (*fare.LockedFare, error)
	VehicleTypes() []fare.VehicleRate
}

// LocationResolver geocodes address-only locations.
type LocationResolver interface {
	Resolve(ctx context.Context, loc types.Location) (types.Location, error)
}

type FareHandler struct {
	fare      FareService
	locations LocationResolver
}

// NewFareHandler builds the handler. locations may be nil, in which case
// requests must carry coordinates.
func NewFareHandler(svc FareService, locations LocationResolver) *FareHandler {
	return &FareHandler{fare: svc, locations: locations}
}

type estimateReq struct {
	Origin      *types.Location `json:"origin" binding:"required"`
	Destination *types.Location `json:"destination" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,len=3"`
	VehicleType string          `json:"vehicle_type"`
	At          *time.Time      `json:"at"`
}

func (h *FareHandler) Vehicles(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"vehicles": h.fare.VehicleTypes()})
}

func (h *FareHandler) Estimate(c *gin.Context) {
	var req estimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	origin, destination := *req.Origin, *req.Destination
	if h.locations != nil {
		var err error
		if origin, err = h.locations.Resolve(ctx, origin); err != nil {
			writeDomainError(c, err)
			return
		}
		if destination, err = h.locations.Resolve(ctx, destination); err != nil {
			writeDomainError(c, err)
			return
		}
	}

	calc, err := h.fare.Quote(ctx, fare.QuoteRequest{
		Origin:      origin,
		Destination: destination,
		Currency:    req.Currency,
		At:          req.At,
		VehicleType: req.VehicleType,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	recordFareQuote(calc)
	writeJSON(c, http.StatusOK, calc)
}

func (h *FareHandler) GetLocked(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing fare id")
		return
	}
	lf, err := h.fare.GetLocked(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, lf)
}
