package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		" info ":  zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestLogger_KeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).Named("dispatch").With("tool", "get_user")

	l.Info("tool call succeeded", "audit_id", "abc")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		e := entries[0]
		assert.Equal(t, "dispatch", e.LoggerName)
		assert.Equal(t, "tool call succeeded", e.Message)
		assert.Equal(t, "get_user", e.ContextMap()["tool"])
		assert.Equal(t, "abc", e.ContextMap()["audit_id"])
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("discarded")
	assert.NoError(t, l.Sync())
}
