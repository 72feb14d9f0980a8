package main

import (
	"context"
	"log"
	"os"
	"syscall"

	"github.com/honeycarbs/lemonsqueezy-mcp/internal/config"
	"github.com/honeycarbs/lemonsqueezy-mcp/internal/mcp"
	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/lemonsqueezy"
	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/logging"
	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	code := 0
	if err := run(cfg, logger); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		code = 1
	} else {
		logger.Info("MCP server stopped")
	}

	_ = logger.Sync()
	os.Exit(code)
}

// run owns every resource so deferred cleanup runs on all exit paths
func run(cfg config.Config, logger *logging.Logger) error {
	if cfg.LemonSqueezy.APIKey == "" {
		logger.Warn("API key not set; upstream calls will be rejected", "env", lemonsqueezy.APIKeyEnv)
	}

	srv, cleanup, err := mcp.InitializeServer(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go shutdown.Graceful(
		ctx,
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		srv,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("MCP server initialized and starting", "transport", cfg.Transport)

	return srv.Run()
}
