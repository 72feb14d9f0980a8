package mcp

import (
	"github.com/honeycarbs/lemonsqueezy-mcp/internal/config"
	"github.com/honeycarbs/lemonsqueezy-mcp/internal/domain/audit"
	"github.com/honeycarbs/lemonsqueezy-mcp/internal/domain/dispatch"
	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/lemonsqueezy"
	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/logging"
)

// provideLemonSqueezyConfig extracts client config from main config
func provideLemonSqueezyConfig(cfg config.Config) lemonsqueezy.Config {
	return lemonsqueezy.Config{
		APIKey:  cfg.LemonSqueezy.APIKey,
		BaseURL: cfg.LemonSqueezy.BaseURL,
	}
}

// provideLemonSqueezyClient creates the process-wide client; the cleanup releases its connections
func provideLemonSqueezyClient(cfg lemonsqueezy.Config, logger *logging.Logger) (*lemonsqueezy.Client, func(), error) {
	client, err := lemonsqueezy.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Lemon Squeezy client initialized", "base_url", client.BaseURL())

	cleanup := func() {
		client.Close()
		logger.Info("Lemon Squeezy client closed")
	}
	return client, cleanup, nil
}

// provideAuditLog creates the process-lifetime audit log
func provideAuditLog() *audit.Log {
	return audit.NewLog()
}

// provideDispatchService wires the dispatcher with a scoped logger
func provideDispatchService(caller dispatch.Caller, recorder dispatch.Recorder, logger *logging.Logger) (dispatch.Service, error) {
	return dispatch.NewServiceWithDeps(caller, recorder, logger.Named("dispatch"))
}
