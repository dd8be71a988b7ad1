package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/vehicle-api/config"
	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/ErlanBelekov/vehicle-api/internal/health"
	"github.com/ErlanBelekov/vehicle-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/vehicle-api/internal/log"
	"github.com/ErlanBelekov/vehicle-api/internal/metrics"
	"github.com/ErlanBelekov/vehicle-api/internal/password"
	"github.com/ErlanBelekov/vehicle-api/internal/token"
	httptransport "github.com/ErlanBelekov/vehicle-api/internal/transport/http"
	"github.com/ErlanBelekov/vehicle-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/vehicle-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(os.Stdout, cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{})
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			stop()
			pool.Close()
			log.Fatalf("migrate: %v", err)
		}
		logger.Info("schema up to date")
	}

	tokens, err := token.NewService([]byte(cfg.JWTSecret))
	if err != nil {
		stop()
		pool.Close()
		log.Fatalf("token service: %v", err)
	}

	// Auth
	authUsecase := usecase.NewAuthUsecase(postgres.NewUserRepository(pool), password.NewHasher(cfg.BcryptCost), tokens)

	// Catalog
	brands := usecase.NewCatalogUsecase[domain.Brand, domain.BrandFilter]("brands", postgres.NewBrandRepository(pool))
	vehicleTypes := usecase.NewCatalogUsecase[domain.VehicleType, domain.VehicleTypeFilter]("vehicle types", postgres.NewVehicleTypeRepository(pool))
	vehicleModels := usecase.NewCatalogUsecase[domain.VehicleModel, domain.VehicleModelFilter]("vehicle models", postgres.NewVehicleModelRepository(pool))
	vehicleYears := usecase.NewCatalogUsecase[domain.VehicleYear, domain.VehicleYearFilter]("vehicle years", postgres.NewVehicleYearRepository(pool))
	priceLists := usecase.NewCatalogUsecase[domain.PriceList, domain.PriceListFilter]("price lists", postgres.NewPriceListRepository(pool))

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, health.PingDependency("postgres", pool))

	router := httptransport.NewRouter(logger, tokens, httptransport.Handlers{
		Auth:          handler.NewAuthHandler(authUsecase, logger),
		Brands:        handler.NewBrandHandler(brands, logger),
		VehicleTypes:  handler.NewVehicleTypeHandler(vehicleTypes, logger),
		VehicleModels: handler.NewVehicleModelHandler(vehicleModels, logger),
		VehicleYears:  handler.NewVehicleYearHandler(vehicleYears, logger),
		PriceLists:    handler.NewPriceListHandler(priceLists, logger),
	}, httptransport.Options{HSTS: cfg.Env == "production"})

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
