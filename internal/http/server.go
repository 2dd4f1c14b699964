// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"stayride/internal/http/handlers"
	"stayride/internal/http/middleware"
	"stayride/internal/infra"
)

// HealthCheck reports whether one backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type ServerDeps struct {
	Fare     handlers.FareService
	Pricing  handlers.PricingService
	Checkout handlers.CheckoutService
	Location interface {
		handlers.Geocoder
		handlers.LocationResolver
	}
	Verifier infra.TokenVerifier
	Checks   map[string]HealthCheck
	Logger   *zap.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(s.deps.Logger),
		middleware.Logging(s.deps.Logger),
		middleware.Metrics(),
	)

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	var resolver handlers.LocationResolver
	if s.deps.Location != nil {
		resolver = s.deps.Location
		locationHandler := handlers.NewLocationHandler(s.deps.Location)
		api.GET("/geocode", locationHandler.Geocode)
	}

	fareHandler := handlers.NewFareHandler(s.deps.Fare, resolver)
	api.GET("/fares/vehicles", fareHandler.Vehicles)
	api.POST("/fares/estimate", fareHandler.Estimate)
	api.GET("/fares/:id", fareHandler.GetLocked)

	pricingHandler := handlers.NewPricingHandler(s.deps.Pricing)
	api.POST("/pricing/stay", pricingHandler.PreviewStay)
	api.GET("/properties/:id/price", pricingHandler.PropertyPrice)

	checkoutHandler := handlers.NewCheckoutHandler(s.deps.Checkout)
	api.POST("/checkout/quote", middleware.Auth(s.deps.Verifier), checkoutHandler.Quote)

	return r
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(s.deps.Checks))
	for name, check := range s.deps.Checks {
		if err := check(ctx); err != nil {
			s.deps.Logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}
