// README: Base handler utilities (JSON helpers, binding and domain error mapping).
package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"stayride/internal/logger"
	"stayride/internal/modules/checkout"
	"stayride/internal/modules/fare"
	"stayride/internal/modules/location"
	"stayride/internal/modules/pricing"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func init() {
	// Report validation failures by JSON/query name instead of Go field name.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	}
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeBindError reports a request that failed to decode or validate.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
		return
	}
	writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// writeDomainError maps service errors to HTTP status codes.
func writeDomainError(c *gin.Context, err error) {
	var invalid *location.InvalidLocationError
	switch {
	case errors.As(err, &invalid):
		writeJSON(c, http.StatusBadRequest, errorResponse{
			Error:  invalid.Error(),
			Fields: map[string]string{invalid.Field: invalid.Reason},
		})
	case errors.Is(err, pricing.ErrInvalidNights),
		errors.Is(err, checkout.ErrLockWithoutTransport):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pricing.ErrPropertyNotFound),
		errors.Is(err, fare.ErrNotFound),
		errors.Is(err, location.ErrAddressNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, location.ErrGeocodingDisabled):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
