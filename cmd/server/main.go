package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/api"
	"github.com/yourname/afresh/internal/auth"
	"github.com/yourname/afresh/internal/config"
	"github.com/yourname/afresh/internal/journey"
	"github.com/yourname/afresh/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := storage.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Errorf("failed to close storage: %v", err)
		}
	}()

	app := api.NewApplication(logger, repos, journey.HealthCatalog(), cfg.HistoryDays, cfg.Location())

	if cfg.Env != config.EnvDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestIDMiddleware(), api.AccessLogMiddleware(logger))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	api.RegisterRoutes(r, app, auth.AuthMiddleware(auth.NewProvider(cfg, logger), cfg))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		logger.Infof("Server running on %s (env=%s, storage=%s)", cfg.HTTPAddr, cfg.Env, cfg.DBType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
