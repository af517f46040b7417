package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/jobflow/internal/config"
	"github.com/honeycarbs/jobflow/internal/mcp"
	"github.com/honeycarbs/jobflow/internal/scheduler"
	"github.com/honeycarbs/jobflow/pkg/logging"
	"github.com/honeycarbs/jobflow/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res, cleanup, err := mcp.InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}

	alerts := scheduler.New(res.Alerts, cfg.AlertsSchedule, logger)
	if err := alerts.Start(ctx); err != nil {
		cleanup()
		logger.Error("failed to start alert scheduler", "err", err)
		os.Exit(1)
	}

	srv := mcp.NewServer(logger, cfg, res)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		srv,
		alerts,
		shutdown.StopFunc(func(context.Context) error {
			cancel()
			cleanup()
			return nil
		}),
	)

	logger.Info("MCP server initialized and starting",
		"addr", net.JoinHostPort(cfg.Host, cfg.Port),
		"sources", res.Orchestrator.SourceKeys(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
	} else {
		logger.Info("MCP server stopped")
	}
}
