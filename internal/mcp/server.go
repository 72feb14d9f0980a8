package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/lemonsqueezy-mcp/internal/config"
	"github.com/honeycarbs/lemonsqueezy-mcp/internal/domain/dispatch"
	"github.com/honeycarbs/lemonsqueezy-mcp/internal/mcp/tools"
	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/logging"
)

const (
	serverName    = "lemonsqueezy-mcp"
	serverVersion = "0.2.0"

	// serverInstructions is advertised to clients during initialize
	serverInstructions = "LemonSqueezy MCP server exposing LemonSqueezy API as MCP tools and an audit log as a resource."

	// StreamPath serves the streamable HTTP transport
	StreamPath = "/mcp/stream"
)

// Server wraps an MCP SDK server with a stdio or HTTP transport
type Server struct {
	logger *logging.Logger
	config config.Config

	mcp     *sdkmcp.Server
	srv     *http.Server
	started atomic.Bool

	runCtx context.Context
	stop   context.CancelFunc
}

// NewServer constructs the MCP server and registers tools and the audit resource
func NewServer(log *logging.Logger, cfg config.Config, svc dispatch.Service, auditLog AuditRenderer) (*Server, error) {
	impl := &sdkmcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}

	mcpServer := sdkmcp.NewServer(impl, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
	})

	if err := tools.Register(mcpServer, tools.WithLemonSqueezy(svc, log.Named("tools"))); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}
	registerAuditResource(mcpServer, auditLog)

	handler := sdkmcp.NewStreamableHTTPHandler(func(req *http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(StreamPath, handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	runCtx, stop := context.WithCancel(context.Background())

	return &Server{
		logger: log,
		config: cfg,
		mcp:    mcpServer,
		srv:    httpSrv,
		runCtx: runCtx,
		stop:   stop,
	}, nil
}

// Handler exposes the HTTP routes (stream endpoint and health check)
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves the configured transport and blocks until shutdown or client disconnect
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	if s.config.Transport == config.TransportHTTP {
		s.logger.Info("MCP HTTP server listening", "addr", s.srv.Addr, "path", StreamPath)

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	s.logger.Info("MCP stdio transport started")

	err := s.mcp.Run(s.runCtx, &sdkmcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Shutdown stops the stdio session and, for HTTP, drains the listener within ctx
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for MCP server", "transport", s.config.Transport)
	s.stop()

	if s.config.Transport != config.TransportHTTP {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("MCP HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("MCP HTTP server shutdown complete")
	return nil
}
