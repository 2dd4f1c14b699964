// README: Geocoding passthrough handler.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayride/internal/modules/location"
)

type Geocoder interface {
	Geocode(ctx context.Context, address string) (location.GeocodeResult, error)
}

type LocationHandler struct {
	location Geocoder
}

func NewLocationHandler(svc Geocoder) *LocationHandler {
	return &LocationHandler{location: svc}
}

type geocodeQuery struct {
	Address string `form:"address" binding:"required"`
}

func (h *LocationHandler) Geocode(c *gin.Context) {
	var q geocodeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.location.Geocode(c.Request.Context(), q.Address)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}
