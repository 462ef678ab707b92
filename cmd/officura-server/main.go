package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/officura/officura/internal/config"
	"github.com/officura/officura/internal/domain/medication"
	"github.com/officura/officura/internal/domain/screening"
	"github.com/officura/officura/internal/domain/travel"
	"github.com/officura/officura/internal/domain/vaccination"
	"github.com/officura/officura/internal/platform/aigateway"
	"github.com/officura/officura/internal/platform/middleware"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "officura-server",
		Short: "Pharmacy counter API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the counter API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the medication catalog",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Load the catalog and report the entry count",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			catalog, err := medication.LoadCatalog(cfg.MedicationCatalog)
			if err != nil {
				return err
			}
			cmd.Printf("catalog %s: %d entries after deduplication\n", cfg.MedicationCatalog, catalog.Len())
			return nil
		},
	}
	cmd.AddCommand(checkCmd)
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Medication catalog
	catalog, err := medication.LoadCatalog(cfg.MedicationCatalog)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.MedicationCatalog).Msg("failed to load medication catalog")
	}
	logger.Info().Int("entries", catalog.Len()).Msg("medication catalog loaded")

	// AI gateway
	gateway := aigateway.New(cfg.AIGatewayURL, cfg.AIGatewayKey, cfg.AIModel, aigateway.WithLogger(logger))
	if !gateway.Configured() {
		logger.Warn().Msg("AI_GATEWAY_KEY not set; gateway-backed lookups will answer 503")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.SanitizeWithLogger(logger))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// API group
	apiV1 := e.Group("/api/v1")

	// Rate limiting middleware
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// Listing cache: the variant listing, the vaccine schedule and catalog
	// search serve public reference data, so responses are cached and served
	// with ETags.
	cacheStore := middleware.NewInMemoryCacheStore()
	cacheCtx, cacheCancel := context.WithCancel(context.Background())
	defer cacheCancel()
	cacheStore.StartCleanup(cacheCtx, time.Minute)
	listing := []echo.MiddlewareFunc{
		middleware.ETagMiddleware(middleware.DefaultCacheConfig()),
		middleware.ResponseCacheMiddleware(cacheStore, cfg.CacheTTL()),
	}

	// -- Register domain handlers --

	// Screening questionnaires
	registry := screening.NewRegistry(cfg.SessionTTL())
	defer registry.Close()
	screening.NewHandler(registry).RegisterRoutes(apiV1.Group("/screenings"), listing...)

	// Vaccination catch-up
	vaccSvc := vaccination.NewService(gateway, logger)
	vaccination.NewHandler(vaccSvc).RegisterRoutes(apiV1.Group("/vaccinations"), listing...)

	// Medication lookups
	medSvc := medication.NewService(catalog, gateway, logger)
	medication.NewHandler(medSvc).RegisterRoutes(apiV1.Group("/medications"), listing...)

	// Travel health
	travelSvc := travel.NewService(gateway, logger)
	travel.NewHandler(travelSvc).RegisterRoutes(apiV1.Group("/travel"))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
