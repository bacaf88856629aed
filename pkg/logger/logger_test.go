package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "console")
	require.NoError(t, err)
	assert.NotNil(t, l.Logger)

	_, err = New("loud", "json")
	assert.Error(t, err)
}

func TestWithContextAddsRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	fields := withContext(ctx, []zap.Field{StringField("a", "b")})
	require.Len(t, fields, 2)
	assert.Equal(t, "run_id", fields[1].Key)
	assert.Equal(t, "run-1", fields[1].String)

	assert.Len(t, withContext(context.Background(), nil), 0)
}

func TestCallerPointsAtCallSite(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &Logger{Logger: zap.New(core, zap.AddCaller(), callerSkip)}

	l.Info("direct")
	l.Warn("direct warn")
	l.ErrorContext(WithRunID(context.Background(), "run-7"), "with context")

	entries := logs.All()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "logger_test.go", filepath.Base(e.Caller.File), e.Message)
	}
	assert.Equal(t, "run-7", entries[2].ContextMap()["run_id"])
}
