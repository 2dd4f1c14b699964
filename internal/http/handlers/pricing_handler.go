// README: Stay pricing handlers: ad-hoc preview and stored property quotes.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayride/internal/modules/pricing"
	"stayride/internal/types"
)

type PricingService interface {
	QuoteStay(ctx context.Context, propertyID types.ID, nights int) (*pricing.StayQuote, error)
	Compose(ctx context.Context, nightlyPrice float64, nights int, services pricing.Services, systemCommission *float64) (pricing.Breakdown, error)
}

type PricingHandler struct {
	pricing PricingService
}

func NewPricingHandler(svc PricingService) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

type stayPreviewReq struct {
	NightlyPrice     float64          `json:"nightly_price"`
	Nights           int              `json:"nights" binding:"min=0"`
	Services         pricing.Services `json:"services"`
	SystemCommission *float64         `json:"system_commission"`
}

// PreviewStay composes a breakdown without touching stored properties.
func (h *PricingHandler) PreviewStay(c *gin.Context) {
	var req stayPreviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	b, err := h.pricing.Compose(c.Request.Context(), req.NightlyPrice, req.Nights, req.Services, req.SystemCommission)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

type propertyPriceQuery struct {
	Nights int `form:"nights,default=1" binding:"min=0"`
}

func (h *PricingHandler) PropertyPrice(c *gin.Context) {
	var q propertyPriceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	quote, err := h.pricing.QuoteStay(c.Request.Context(), types.ID(c.Param("id")), q.Nights)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, quote)
}
