// README: Entry point; loads config, wires stores and services, serves the pricing API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stayride/internal/config"
	httptransport "stayride/internal/http"
	"stayride/internal/infra"
	"stayride/internal/logger"
	"stayride/internal/maps"
	"stayride/internal/modules/checkout"
	"stayride/internal/modules/fare"
	"stayride/internal/modules/location"
	"stayride/internal/modules/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := logger.Init(cfg.Log.Environment); err != nil {
		logger.Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()
	if cfg.Log.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Fatal("firebase init", zap.Error(err))
		}
	} else {
		logger.Warn("STAYRIDE_FIREBASE_PROJECT_ID not set; checkout auth disabled")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN, cfg.DB.MaxConns)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer dbPool.Close()
	if cfg.DB.Migrate {
		if err := infra.Migrate(ctx, dbPool); err != nil {
			logger.Fatal("migrate db", zap.Error(err))
		}
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()

	var geocoder location.Geocoder
	if cfg.Maps.APIKey != "" {
		geo, err := maps.NewGeocodeService(cfg.Maps.APIKey, cfg.Maps.Region, cfg.Maps.Language)
		if err != nil {
			logger.Fatal("maps init", zap.Error(err))
		}
		geocoder = geo
	} else {
		logger.Warn("STAYRIDE_MAPS_API_KEY not set; geocoding disabled")
	}
	locationSvc := location.NewService(geocoder, location.NewStore(redisClient, cfg.Maps.CacheTTL), logger.With(zap.String("module", "location")))

	fareSvc, err := fare.NewService(fare.NewStore(dbPool), fare.DefaultPricingTable(),
		fare.WithLocation(cfg.Pricing.Location),
		fare.WithCurrency(cfg.Pricing.Currency),
	)
	if err != nil {
		logger.Fatal("fare service", zap.Error(err))
	}

	pricingSvc := pricing.NewService(
		pricing.NewPropertyStore(dbPool),
		pricing.NewSettingsStore(dbPool, redisClient, cfg.Pricing.SettingsCacheTTL),
		cfg.Pricing.SystemCommissionPercent,
		cfg.Pricing.Currency,
		logger.With(zap.String("module", "pricing")),
	)

	checkoutSvc := checkout.NewService(pricingSvc, fareSvc, locationSvc)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Fare:     fareSvc,
		Pricing:  pricingSvc,
		Checkout: checkoutSvc,
		Location: locationSvc,
		Verifier: verifier,
		Checks: map[string]httptransport.HealthCheck{
			"db":    dbPool.Ping,
			"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
		Logger: logger.With(zap.String("module", "http")),
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown", zap.Error(err))
		}
	}()

	logger.Info("stayride api listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server", zap.Error(err))
	}
}
