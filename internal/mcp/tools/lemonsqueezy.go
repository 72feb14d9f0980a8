package tools

import (
	"context"
	"encoding/json"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/logging"
)

// Dispatcher executes a named tool against the upstream API
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error)
}

// WithLemonSqueezy registers every catalog tool, each delegating to d.
// Arguments are passed through untouched; the input schemas are advisory.
func WithLemonSqueezy(d Dispatcher, logger *logging.Logger) Option {
	if logger == nil {
		logger = logging.NewNop()
	}
	return func(reg *registry) error {
		if d == nil {
			return errors.New("tools: lemonsqueezy dispatcher is required")
		}
		for _, desc := range Catalog() {
			h := lemonSqueezyTool{name: desc.Name, dispatcher: d, logger: logger.With("tool", desc.Name)}
			if err := reg.add(desc.Tool(), h.handle); err != nil {
				return err
			}
		}
		return nil
	}
}

type lemonSqueezyTool struct {
	name       string
	dispatcher Dispatcher
	logger     *logging.Logger
}

func (t lemonSqueezyTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
	var args json.RawMessage
	if req != nil && req.Params != nil {
		args = req.Params.Arguments
	}

	out, err := t.dispatcher.Dispatch(ctx, t.name, args)
	if err != nil {
		t.logger.Warn("tool call failed", "err", err)
		return errorResult(t.name, err), nil
	}

	return jsonResult(out), nil
}
