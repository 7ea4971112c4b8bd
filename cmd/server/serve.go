package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hridaya423/newster/internal/adapter/rest"
	"github.com/hridaya423/newster/internal/di"
	"github.com/hridaya423/newster/internal/infra/config"
	"github.com/hridaya423/newster/internal/infra/logger"
	appotel "github.com/hridaya423/newster/internal/infra/otel"
)

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 1. Load config
	cfg, err := config.NewConfig()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		return err
	}

	// 2. Initialize OpenTelemetry
	otelCfg := appotel.ConfigFrom(cfg.OTel)
	otelShutdown, err := appotel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.WarnContext(ctx, "failed to initialize OpenTelemetry, continuing without telemetry", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// 3. Initialize logger
	log := logger.Init(logger.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: cfg.OTel.ServiceName,
		OTelEnabled: otelCfg.Enabled,
	})
	log.InfoContext(ctx, "configuration loaded",
		"port", cfg.Server.Port,
		"news_api_base_url", cfg.NewsAPI.BaseURL,
		"llm_base_url", cfg.LLM.BaseURL,
		"llm_model", cfg.LLM.Model,
		"otel_enabled", otelCfg.Enabled,
		"version", version,
	)

	// 4. Wire dependencies
	container := di.NewApplicationComponents(cfg, log)

	// 5. Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	rest.ApplyMiddleware(ctx, e, cfg)
	rest.RegisterRoutes(e, container.Handler, container.MetricsHandler)

	// 6. Serve until a signal arrives
	address := cfg.Server.Address()
	log.InfoContext(ctx, "starting newster server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server exited properly")
	return nil
}
