package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcelrate-backend/config"
	"parcelrate-backend/internal/delivery/http/middleware"
	v1 "parcelrate-backend/internal/delivery/http/v1"
	"parcelrate-backend/internal/infrastructure/cache"
	"parcelrate-backend/internal/repository/postgres"
	"parcelrate-backend/internal/usecase"
	"parcelrate-backend/pkg/logger"
	"parcelrate-backend/pkg/storage"
	"parcelrate-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Successfully connected to PostgreSQL via pgx")

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Initialize Repositories
	ruleRepo := postgres.NewRuleRepository(pgxPool, memCache, cfg.CacheSurchargeTTL)
	carrierRepo := postgres.NewCarrierRepository(pgxPool)
	calcRepo := postgres.NewCalculationRepository(pgxPool)

	// Optional audit archive (R2). The engine runs fine without it.
	var archive usecase.CalculationArchiver
	if cfg.ArchiveEnabled() {
		r2Archive, err := storage.NewCalculationArchive(
			context.Background(),
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize calculation archive")
		}
		archive = r2Archive
		log.Info().Msg("Calculation archive enabled")
	}

	// Set up Router
	mux := http.NewServeMux()

	// --- Modules Initialization ---

	// Rate Resolution Module
	normalizer := usecase.NewNormalizer(cfg.WeightFactor, cfg.SizeFactor, cfg.VolumetricDivisor)
	ranker := usecase.NewRanker(cfg.MaxOptions, usecase.NoTieBreak{})
	exchange := usecase.FixedExchangeRate{Rate: cfg.ExchangeRateUSD}
	rateUC := usecase.NewRateUsecase(
		ruleRepo, calcRepo, normalizer, ranker, exchange, archive,
		cfg.RuleResolveTimeout, cfg.AuditWriteTimeout,
	)
	rateHandler := v1.NewRateHandler(rateUC)

	// Carrier Module
	carrierUC := usecase.NewCarrierUsecase(carrierRepo, memCache, cfg.CacheCarrierTTL)
	carrierHandler := v1.NewCarrierHandler(carrierUC)

	// Calculation Audit Module (admin)
	calcUC := usecase.NewCalculationUsecase(calcRepo)
	adminCalcHandler := v1.NewAdminCalculationHandler(calcUC)

	// Public
	mux.HandleFunc("POST /api/v1/rates/resolve", rateHandler.Resolve)
	mux.HandleFunc("GET /api/v1/carriers", carrierHandler.ListCarriers)

	// Admin (Protected)
	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}
	mux.Handle("GET /api/v1/admin/calculations", adminMiddleware(adminCalcHandler.ListCalculations))
	mux.Handle("GET /api/v1/admin/calculations/{id}", adminMiddleware(adminCalcHandler.GetCalculation))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "db": "connected"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	// 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,            // requests per second
		100,           // burst
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()

	log.Info().Msg("Server exited properly")
}
