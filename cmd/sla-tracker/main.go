// cmd/sla-tracker/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sla-tracker/internal/api"
	"sla-tracker/internal/cache"
	"sla-tracker/internal/common/config"
	"sla-tracker/internal/common/database"
	"sla-tracker/internal/common/logger"
	"sla-tracker/internal/export"
	"sla-tracker/internal/keyword"
	"sla-tracker/internal/license"
	"sla-tracker/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting sla-tracker", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	fetcher := license.NewFetcher(&license.Config{
		PendingURL: cfg.Upstream.PendingURL,
		ActiveURL:  cfg.Upstream.ActiveURL,
		Timeout:    config.GetDuration(cfg.Upstream.FetchTimeout),
	}, log)

	var upstream search.Fetcher = fetcher
	if cfg.Cache.Enabled {
		redisClient, redisErr := database.NewRedis(cfg.Cache.Redis)
		if redisErr == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
			redisErr = redisClient.Ping(pingCtx)
			pingCancel()
		}
		if redisErr != nil {
			log.WithError(redisErr).Warn("redis unavailable, running without fetch cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		} else {
			defer redisClient.Close()
			ttl := time.Duration(cfg.Cache.TTL) * time.Second
			upstream = cache.New(fetcher, redisClient, ttl, log)
			log.Info("fetch cache enabled", map[string]interface{}{
				"ttl": ttl.String(),
			})
		}
	}

	svc := search.NewService(upstream, keyword.NewMatcher(cfg.Keywords.Terms), log)

	var exporter api.Exporter
	if cfg.Export.Enabled {
		exporter = export.NewWriter(cfg.Export.Directory, log)
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewServer(cfg, svc, exporter, log),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	go func() {
		log.Info("http server listening", map[string]interface{}{
			"addr": server.Addr,
		})
		if serveErr := server.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			log.WithError(serveErr).Error("http server failed", nil)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutdown signal received", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed", nil)
	}

	log.Info("sla-tracker stopped", nil)
}
