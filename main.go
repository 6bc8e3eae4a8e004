package main

import (
	"log"
	"time"

	"github.com/claimlens/claimlens-backend/config"
	"github.com/claimlens/claimlens-backend/handlers"
	"github.com/claimlens/claimlens-backend/jobs"
	"github.com/claimlens/claimlens-backend/providers"
	"github.com/claimlens/claimlens-backend/services"
	"github.com/claimlens/claimlens-backend/shared"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using info", cfg.LogLevel)
	}

	verifierConfig := cfg.GetVerifierConfig()

	// Shared transport for all evidence providers
	fetcher := shared.NewFetcher(verifierConfig.MaxRetries, verifierConfig.Backoff, verifierConfig.RequestTimeout)

	// Evidence providers; slice order fixes sources_checked and evidence order
	evidenceProviders := []providers.EvidenceProvider{
		providers.NewFactCheckProvider(cfg.FactCheckAPIKey, fetcher, verifierConfig.PolitenessDelay),
		providers.NewGNewsProvider(cfg.GNewsAPIKey, fetcher, verifierConfig.PolitenessDelay),
		providers.NewNewsAPIProvider(cfg.NewsAPIKey, fetcher, verifierConfig.PolitenessDelay),
	}

	// Core services
	utilityService := services.NewUtilityService()
	classifier := services.NewStubClassifier()
	cacheService := services.NewCacheService(verifierConfig.CacheTTL, verifierConfig.CacheMaxSize)
	verificationService := services.NewVerificationService(
		evidenceProviders,
		classifier,
		cacheService,
		utilityService,
		verifierConfig.FanoutTimeout,
	)

	logrus.Info("Claim verification services initialized:")
	logrus.Infof("  - %d evidence providers (retries: %d, backoff: %v, timeout: %v)",
		len(evidenceProviders), verifierConfig.MaxRetries, verifierConfig.Backoff, verifierConfig.RequestTimeout)
	logrus.Infof("  - Verdict cache (TTL: %v, max size: %d)", verifierConfig.CacheTTL, verifierConfig.CacheMaxSize)
	logrus.Infof("  - Fan-out deadline: %v", verifierConfig.FanoutTimeout)

	// Initialize background jobs
	cleanupJob := jobs.NewCacheCleanupJob(cacheService)

	// Initialize handlers
	verifyHandler := handlers.NewVerifyHandler(verificationService)
	cacheHandler := handlers.NewCacheHandler(cacheService, verificationService)
	statsHandler := handlers.NewStatsHandler(verificationService)

	// Start background jobs
	go func() {
		cleanupTicker := time.NewTicker(verifierConfig.CacheTTL)
		defer cleanupTicker.Stop()

		for range cleanupTicker.C {
			cleanupJob.Run()
		}
	}()

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	// Routes
	api := app.Group("/api/v1")

	// Verification Routes
	api.Post("/verify", verifyHandler.VerifyClaim)
	api.Post("/verify-page", verifyHandler.VerifyPage)

	// Cache Routes
	api.Get("/cache/stats", cacheHandler.GetCacheStats)
	api.Delete("/cache", cacheHandler.ClearCache)

	// Stats Routes
	api.Get("/stats", statsHandler.GetServiceStats)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
