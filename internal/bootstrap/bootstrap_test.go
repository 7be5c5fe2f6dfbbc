package bootstrap

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	prev := zap.L()
	defer zap.ReplaceGlobals(prev)

	logger, err := NewLogger(true)
	require.NoError(t, err)
	assert.Same(t, logger, zap.L())
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(false)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestStdoutAuditLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	audit := NewStdoutAuditLogger(zap.New(core))
	audit.now = func() time.Time { return time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC) }

	ctx := contextutil.WithRequestID(context.Background(), "rid-9")
	audit.Log(ctx, AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"signal": "terminated"},
	})
	audit.Log(context.Background(), AuditLog{Action: "NOOP"})

	entries := logs.Filter(func(e observer.LoggedEntry) bool { return e.LoggerName == "audit" }).All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
	assert.Equal(t, "Server is shutting down", fields["message"])
	assert.Equal(t, "2024-06-30T23:00:00Z", fields["timestamp"])
	assert.Equal(t, "rid-9", fields["request_id"])
	assert.Contains(t, fields, "meta")

	fields = entries[1].ContextMap()
	assert.NotContains(t, fields, "request_id")
	assert.NotContains(t, fields, "meta")
}
