package logger

import (
	"context"
	"path/filepath"
	"testing"

	"go-order-desk/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerWithFile(t *testing.T) {
	cfg := config.FromEnv("order-desk")
	cfg.Log.Level = "debug"
	cfg.Log.File = filepath.Join(t.TempDir(), "desk.log")

	l, err := InitLogger(cfg)
	require.NoError(t, err)
	assert.Same(t, l, GetLogger())
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestContextLogger(t *testing.T) {
	l := zap.NewExample()
	ctx := WithContext(context.Background(), l)

	assert.Same(t, l, FromContext(ctx))
	assert.Same(t, GetLogger(), FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}
