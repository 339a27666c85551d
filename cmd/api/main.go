package main

import (
	"context"
	"log"
	"time"

	"parcel-tracker/internal/core/cache"
	"parcel-tracker/internal/core/config"
	"parcel-tracker/internal/core/logger"
	"parcel-tracker/internal/core/proxy"
	"parcel-tracker/internal/core/server"
	trackingadapter "parcel-tracker/internal/features/tracking/adapters"
	trackinghandler "parcel-tracker/internal/features/tracking/handler"
	"parcel-tracker/internal/features/tracking/registry"
	trackingservice "parcel-tracker/internal/features/tracking/service"

	"go.uber.org/zap"
)

// @title Parcel Tracker API
// @version 1.0
// @description Unified tracking API over FedEx, UPS and Nova Poshta.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	proxySettings := proxy.Settings{
		Enabled:  cfg.Proxy.Enabled,
		Hostname: cfg.Proxy.Hostname,
		Port:     cfg.Proxy.Port,
		Username: cfg.Proxy.Username,
		Password: cfg.Proxy.Password,
	}

	// Register only the carriers whose credential set is complete.
	carrierRegistry := registry.New()
	if cfg.FedEx.Configured() {
		carrierRegistry.Register(trackingadapter.NewFedExAdapter(cfg.FedEx, proxySettings))
	}
	if cfg.UPS.Configured() {
		carrierRegistry.Register(trackingadapter.NewUPSAdapter(cfg.UPS, proxySettings))
	}
	if cfg.NovaPoshta.Configured() {
		carrierRegistry.Register(trackingadapter.NewNovaPoshtaAdapter(cfg.NovaPoshta, proxySettings))
	}
	l.Info("Carriers registered", zap.Any("carriers", carrierRegistry.List()))

	// Result cache is optional; the service runs without it.
	var resultCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.RedisURL)
		if err != nil {
			l.Fatal("Failed to create Redis cache", zap.Error(err))
		}
		defer redisCache.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			l.Fatal("Redis ping failed", zap.Error(err))
		}
		l.Info("Tracking result cache enabled", zap.Int("ttl_seconds", cfg.TrackingCacheTTL))
		resultCache = redisCache
	}

	trackingSvc := trackingservice.NewTrackingService(
		carrierRegistry,
		resultCache,
		time.Duration(cfg.TrackingCacheTTL)*time.Second,
	)
	trackingHdl := trackinghandler.NewTrackingHandler(trackingSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/track/:carrier/:trackingNumber", trackingHdl.Track)
	srv.App.Get("/carriers", trackingHdl.Carriers)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
