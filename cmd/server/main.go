package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/inventory/pkg/api"
	"github.com/example/inventory/pkg/config"
	"github.com/example/inventory/pkg/discovery"
	"github.com/example/inventory/pkg/repository"
)

func main() {
	// Load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting inventory service",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port))

	// MySQL store
	store, err := repository.NewStore(&cfg.MySQL)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}

	ctx := context.Background()

	// Redis cache
	cache := repository.NewRedisRepository(&cfg.Redis)
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("Redis connection failed, continuing without cache", zap.Error(err))
		cache = nil
	} else {
		logger.Info("Redis connected successfully")
	}

	// MongoDB audit log
	auditLog, err := repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil || auditLog.Ping(ctx) != nil {
		logger.Warn("MongoDB connection failed, continuing without audit log", zap.Error(err))
		auditLog = nil
	} else {
		logger.Info("MongoDB connected successfully")
	}

	// Register in etcd
	instance := &discovery.ServiceInstance{
		Name: cfg.Server.Name,
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}
	sd, err := discovery.NewServiceDiscovery(&cfg.Etcd)
	if err != nil {
		logger.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
		sd = nil
	} else if err := sd.Register(ctx, instance); err != nil {
		logger.Warn("Failed to register service", zap.Error(err))
	} else {
		logger.Info("Service registered in etcd",
			zap.String("name", cfg.Server.Name),
			zap.String("address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)))
	}

	// HTTP server
	server := api.NewServer(cfg, logger, store, cache, auditLog)
	server.SetupRoutes()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	if sd != nil {
		if err := sd.Deregister(ctx, instance); err != nil {
			logger.Error("Failed to deregister service", zap.Error(err))
		}
		sd.Close()
	}
	if cache != nil {
		cache.Close()
	}
	if auditLog != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		auditLog.Close(closeCtx)
	}

	logger.Info("Service stopped")
}
