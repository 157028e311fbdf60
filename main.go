package main

import (
	"context"
	"fmt"
	"os"

	appCatalog "github.com/Zhima-Mochi/minishop-cli/internal/application/catalog"
	appInventory "github.com/Zhima-Mochi/minishop-cli/internal/application/inventory"
	appOrder "github.com/Zhima-Mochi/minishop-cli/internal/application/order"
	"github.com/Zhima-Mochi/minishop-cli/internal/config"
	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/id"
	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
	"github.com/Zhima-Mochi/minishop-cli/internal/pkg/logging"
	"github.com/Zhima-Mochi/minishop-cli/internal/presentation/console"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	baseLogger, err := logging.NewLogger(logging.Options{
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = baseLogger.Sync() }()

	logger := zaplogger.New(baseLogger)
	registry := prometrics.New("minishop", "")
	tel := infraobs.New(oteltrace.New(cfg.ServiceName), logger, infraobs.StandardInstruments(registry))

	// Everything below is single-threaded; the bus dispatches inline.
	bus := outbox.NewBus(logger, tel)
	catalogRepo := memory.NewCatalogRepository()
	orderRepo := memory.NewOrderRepository()

	appInventory.NewStockMonitor(bus, cfg.LowStockThreshold, tel).Start()

	catalogService := appCatalog.NewService(catalogRepo, bus, tel)
	orderService := appOrder.NewService(orderRepo, catalogRepo, bus, tel)

	sessionID := id.NewUUIDGenerator().NewID()
	cli := console.New(os.Stdin, os.Stdout, catalogService, orderService, logger, sessionID)
	runErr := cli.Run(context.Background())

	if cfg.MetricsTextfile != "" {
		if err := prometrics.WriteTextfile(registry, cfg.MetricsTextfile); err != nil {
			logger.Error("metrics_textfile_failed",
				observability.F("path", cfg.MetricsTextfile),
				observability.F("error", err),
			)
		}
	}
	if runErr != nil {
		return fmt.Errorf("console session: %w", runErr)
	}
	return nil
}
