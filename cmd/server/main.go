// Package main provides the API server entry point for the wallet persona service.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wallet-persona/internal/adapter"
	"github.com/wallet-persona/internal/api"
	"github.com/wallet-persona/internal/config"
	"github.com/wallet-persona/internal/logging"
	"github.com/wallet-persona/internal/persona"
	"github.com/wallet-persona/internal/service"
	"github.com/wallet-persona/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	logLevel := logging.ParseLogLevel(cfg.Logging.Level)
	logFormat := logging.ParseLogFormat(cfg.Logging.Format)
	logging.InitGlobalLogger(logLevel, logFormat)

	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Structured logging initialized")

	// Connect to Redis. The cache is optional: collaborator responses are
	// simply refetched when it is unavailable.
	var cacheService *storage.CacheService
	redisCache, err := storage.NewRedisCache(&cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, running without cache")
	} else {
		defer redisCache.Close()
		cacheService = storage.NewCacheService(redisCache)
		logger.Info("Redis cache connected")
	}

	// Initialize collaborator clients
	chainDataClient := adapter.NewChainDataClient(&cfg.Provider, logger)
	priceClient := adapter.NewPriceClient(&cfg.Pricing, cacheService, cfg.Cache.PriceTTL, logger)
	narrativeClient := adapter.NewNarrativeClient(&cfg.Narrative, cacheService, cfg.Cache.NarrativeTTL, logger)

	// A nil narrative client makes the assembler fall back to the default
	// analysis. Keep the interface value nil rather than a typed nil pointer.
	var narrativeGenerator persona.NarrativeGenerator
	if narrativeClient != nil {
		narrativeGenerator = narrativeClient
	} else {
		logger.Warn("Narrative collaborator not configured, personas will use the default analysis")
	}

	assembler := persona.NewAssembler(narrativeGenerator, logger)

	personaService := service.NewPersonaService(
		chainDataClient,
		priceClient,
		assembler,
		cacheService,
		cfg.Cache.PersonaTTL,
		logger,
	)

	// Create server configuration
	serverConfig := &api.ServerConfig{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	}

	server := api.NewServer(serverConfig, personaService, logger)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
