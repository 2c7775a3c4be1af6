package logger_test

import (
	"context"
	"testing"
	"userapi/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetFallsBackToDefault(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	l := logger.Get(context.Background())
	require.NotNil(t, l)
}

func TestWithLoggerRoundTrip(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	custom := zap.New(core)

	ctx := logger.WithLogger(context.Background(), custom)
	logger.Info(ctx, "hello", zap.String("k", "v"))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "hello", entries[0].Message)
	require.Equal(t, "v", entries[0].ContextMap()["k"])
}

func TestWithFieldsAccumulates(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))
	ctx = logger.WithFields(ctx, zap.String("request_id", "r-1"))

	logger.Warn(ctx, "slow query")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "r-1", entries[0].ContextMap()["request_id"])
}
