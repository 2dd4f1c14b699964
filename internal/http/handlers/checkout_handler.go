// README: Checkout handler returns the single stay plus ride total a guest confirms.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stayride/internal/http/middleware"
	"stayride/internal/logger"
	"stayride/internal/modules/checkout"
	"stayride/internal/types"
)

type CheckoutService interface {
	Quote(ctx context.Context, req checkout.Request) (*checkout.Quote, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
}

func NewCheckoutHandler(svc CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc}
}

type checkoutReq struct {
	PropertyID       string         `json:"property_id" binding:"required"`
	Nights           int            `json:"nights" binding:"min=1"`
	Origin           types.Location `json:"origin"`
	VehicleType      string         `json:"vehicle_type"`
	At               *time.Time     `json:"at"`
	IncludeTransport bool           `json:"include_transport"`
	LockFare         bool           `json:"lock_fare"`
}

func (h *CheckoutHandler) Quote(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	q, err := h.checkout.Quote(c.Request.Context(), checkout.Request{
		PropertyID:       types.ID(req.PropertyID),
		Nights:           req.Nights,
		Origin:           req.Origin,
		VehicleType:      req.VehicleType,
		At:               req.At,
		IncludeTransport: req.IncludeTransport,
		LockFare:         req.LockFare,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if q.Transport != nil {
		recordFareQuote(q.Transport.Fare)
		if q.Transport.LockedFareID != "" {
			logger.Info("fare locked",
				zap.String("fare_id", string(q.Transport.LockedFareID)),
				zap.String("property_id", req.PropertyID),
				zap.String("caller_uid", middleware.CallerUID(c)),
				zap.String("caller_role", middleware.CallerRole(c)),
				zap.Float64("total", q.Transport.Fare.Total),
			)
		}
	}
	writeJSON(c, http.StatusOK, q)
}
