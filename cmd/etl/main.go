package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmaidana/surtidor-etl/internal/adapter/fetch"
	httpadapter "github.com/lmaidana/surtidor-etl/internal/adapter/http"
	"github.com/lmaidana/surtidor-etl/internal/adapter/report"
	"github.com/lmaidana/surtidor-etl/internal/config"
	"github.com/lmaidana/surtidor-etl/internal/observability"
	"github.com/lmaidana/surtidor-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	fetcher := fetch.New(cfg, logger)
	writer := report.NewWriter(cfg.ReportPath, logger)

	p := pipeline.New(fetcher, writer, cfg.Rules(), cfg.RefreshInterval, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.ReportPath, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the report so the first request is served from a fresh file.
	// A failed initial run is not fatal; requests retry the refresh and a
	// previously published report keeps being served meanwhile.
	if err := p.EnsureFresh(ctx); err != nil {
		logger.Error("initial report generation failed", "error", err)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
