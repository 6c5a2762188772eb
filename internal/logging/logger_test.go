package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", false)
	require.Error(t, err)
}

func TestNewBuildsLogger(t *testing.T) {
	l, err := New("debug", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestWithCtxAddsCorrelationID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := middleware.WithCorrelationID(context.Background(), "cid-1")
	WithCtx(ctx, base).Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "cid-1", logs.All()[0].ContextMap()["correlation_id"])
}

func TestWithCtxNilLogger(t *testing.T) {
	assert.NotNil(t, WithCtx(context.Background(), nil))
	assert.NotNil(t, OrNop(nil))
}
