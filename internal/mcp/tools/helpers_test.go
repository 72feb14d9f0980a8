package tools

import "github.com/honeycarbs/lemonsqueezy-mcp/pkg/logging"

func nopLogger() *logging.Logger {
	return logging.NewNop()
}
