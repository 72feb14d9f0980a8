//go:build wireinject
// +build wireinject

package mcp

import (
	"github.com/google/wire"

	"github.com/honeycarbs/lemonsqueezy-mcp/internal/config"
	"github.com/honeycarbs/lemonsqueezy-mcp/internal/domain/audit"
	"github.com/honeycarbs/lemonsqueezy-mcp/internal/domain/dispatch"
	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/lemonsqueezy"
	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/logging"
)

// InitializeServer builds the Server with all dependencies wired up.
// The returned cleanup releases the upstream HTTP client.
func InitializeServer(cfg config.Config, logger *logging.Logger) (*Server, func(), error) {
	wire.Build(
		// Infrastructure - Lemon Squeezy
		provideLemonSqueezyConfig,
		provideLemonSqueezyClient,
		wire.Bind(new(dispatch.Caller), new(*lemonsqueezy.Client)),

		// Audit log
		provideAuditLog,
		wire.Bind(new(dispatch.Recorder), new(*audit.Log)),
		wire.Bind(new(AuditRenderer), new(*audit.Log)),

		// Services
		provideDispatchService,

		NewServer,
	)

	return nil, nil, nil
}
