package tools

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/lemonsqueezy-mcp/internal/domain/dispatch"
)

const methodCallTool = "tools/call"

// Option configures which tools are registered
type Option func(*registry) error

type registry struct {
	server *sdkmcp.Server
	names  map[string]struct{}
}

func (r *registry) add(tool *sdkmcp.Tool, h sdkmcp.ToolHandler) error {
	if tool == nil || tool.Name == "" {
		return errors.New("tools: tool without a name")
	}
	if _, dup := r.names[tool.Name]; dup {
		return fmt.Errorf("tools: duplicate tool %q", tool.Name)
	}
	r.names[tool.Name] = struct{}{}
	r.server.AddTool(tool, h)
	return nil
}

// Register applies the provided tool options. Calls naming a tool that was
// not registered are answered with an error result instead of a protocol error.
func Register(server *sdkmcp.Server, opts ...Option) error {
	reg := &registry{server: server, names: make(map[string]struct{})}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(reg); err != nil {
			return err
		}
	}

	server.AddReceivingMiddleware(reg.rejectUnknown)
	return nil
}

func (r *registry) rejectUnknown(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
	return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		if method != methodCallTool {
			return next(ctx, method, req)
		}

		call, ok := req.(*sdkmcp.CallToolRequest)
		if !ok || call.Params == nil {
			return next(ctx, method, req)
		}

		if _, known := r.names[call.Params.Name]; !known {
			return errorResult(call.Params.Name, fmt.Errorf("%w: %s", dispatch.ErrUnknownTool, call.Params.Name)), nil
		}
		return next(ctx, method, req)
	}
}
