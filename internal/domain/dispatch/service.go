package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/lemonsqueezy-mcp/internal/domain/audit"
	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/lemonsqueezy"
	"github.com/honeycarbs/lemonsqueezy-mcp/pkg/logging"
)

// Caller performs one upstream request
type Caller interface {
	Do(ctx context.Context, r lemonsqueezy.Request) (json.RawMessage, error)
}

// Recorder stores successful invocations
type Recorder interface {
	Append(operation string, params json.RawMessage) audit.Entry
}

// Service turns a tool call into an upstream request
type Service interface {
	Dispatch(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	caller   Caller
	recorder Recorder
	logger   *logging.Logger
	routes   map[string]Route
}

// WithCaller sets the upstream caller
func WithCaller(c Caller) Option {
	return func(cfg *config) {
		cfg.caller = c
	}
}

// WithRecorder sets where successful calls are recorded
func WithRecorder(r Recorder) Option {
	return func(cfg *config) {
		cfg.recorder = r
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithRoutes replaces the built-in route table
func WithRoutes(routes map[string]Route) Option {
	return func(cfg *config) {
		cfg.routes = routes
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{routes: defaultRoutes}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.caller == nil {
		return nil, fmt.Errorf("dispatch.Service: caller is required")
	}
	if cfg.recorder == nil {
		return nil, fmt.Errorf("dispatch.Service: recorder is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	return &service{
		caller:   cfg.caller,
		recorder: cfg.recorder,
		logger:   cfg.logger,
		routes:   cfg.routes,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(caller Caller, recorder Recorder, logger *logging.Logger) (Service, error) {
	return NewService(WithCaller(caller), WithRecorder(recorder), WithLogger(logger))
}

type service struct {
	caller   Caller
	recorder Recorder
	logger   *logging.Logger
	routes   map[string]Route
}

// Dispatch validates arguments, issues the upstream call and records it on success
func (s *service) Dispatch(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	route, ok := s.routes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}

	parsed, err := decodeArguments(name, args)
	if err != nil {
		return nil, err
	}

	req, err := buildRequest(name, route, parsed)
	if err != nil {
		return nil, err
	}

	log := s.logger.With("tool", name, "call_id", uuid.NewString())
	log.Debug("calling upstream", "method", req.Method, "path", req.Path)

	start := time.Now()
	out, err := s.caller.Do(ctx, req)
	if err != nil {
		var apiErr *lemonsqueezy.APIError
		if errors.As(err, &apiErr) {
			log.Warn("upstream returned error", "status", apiErr.StatusCode, "elapsed", time.Since(start))
		} else {
			log.Warn("upstream call failed", "err", err, "elapsed", time.Since(start))
		}
		return nil, err
	}

	entry := s.recorder.Append(name, bytes.TrimSpace(args))
	log.Info("tool call succeeded", "audit_id", entry.ID, "elapsed", time.Since(start))

	return out, nil
}

func decodeArguments(tool string, raw json.RawMessage) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]json.RawMessage{}, nil
	}

	var args map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &args); err != nil {
		return nil, fmt.Errorf("%w: %s: arguments must be a JSON object: %v", ErrInvalidArgument, tool, err)
	}
	if args == nil {
		args = map[string]json.RawMessage{}
	}
	return args, nil
}

func buildRequest(tool string, route Route, args map[string]json.RawMessage) (lemonsqueezy.Request, error) {
	req := lemonsqueezy.Request{Method: route.Method}

	path, err := expandPath(tool, route.Path, args)
	if err != nil {
		return req, err
	}
	req.Path = path

	for key, arg := range route.Filters {
		v, ok, err := scalar(tool, arg, args[arg])
		if err != nil {
			return req, err
		}
		if !ok {
			continue
		}
		if req.Query == nil {
			req.Query = url.Values{}
		}
		req.Query.Set(key, v)
	}

	if route.Body != "" {
		body, ok := args[route.Body]
		if !ok || isNull(body) || isEmptyString(body) {
			return req, &MissingArgumentError{Tool: tool, Argument: route.Body}
		}
		if route.Envelope != "" {
			body = wrap(route.Envelope, body)
		}
		req.Body = body
	}

	return req, nil
}

// expandPath substitutes {arg} segments with path-escaped argument values
func expandPath(tool, tmpl string, args map[string]json.RawMessage) (string, error) {
	var b strings.Builder
	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("dispatch: malformed path template %q", tmpl)
		}
		end += open

		arg := rest[open+1 : end]
		v, ok, err := scalar(tool, arg, args[arg])
		if err != nil {
			return "", err
		}
		if !ok {
			return "", &MissingArgumentError{Tool: tool, Argument: arg}
		}

		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(v))
		rest = rest[end+1:]
	}
}

// scalar reads a string or number argument. Absent, null and "" report ok=false.
func scalar(tool, name string, raw json.RawMessage) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return "", false, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, fmt.Errorf("%w: %s: %s: %v", ErrInvalidArgument, tool, name, err)
		}
		return s, s != "", nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", false, fmt.Errorf("%w: %s: %s: %v", ErrInvalidArgument, tool, name, err)
		}
		return n.String(), true, nil
	default:
		return "", false, fmt.Errorf("%w: %s: %s must be a string or number", ErrInvalidArgument, tool, name)
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isEmptyString(raw json.RawMessage) bool {
	var s string
	return json.Unmarshal(raw, &s) == nil && s == ""
}

// wrap writes {"key":raw} keeping raw byte-for-byte
func wrap(key string, raw json.RawMessage) json.RawMessage {
	k, _ := json.Marshal(key)

	out := make([]byte, 0, len(raw)+len(k)+3)
	out = append(out, '{')
	out = append(out, k...)
	out = append(out, ':')
	out = append(out, raw...)
	out = append(out, '}')
	return out
}
