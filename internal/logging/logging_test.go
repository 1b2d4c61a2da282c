package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeWritesJSONToFile(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { UseLogger(prev) })

	path := filepath.Join(t.TempDir(), "plans.log")
	require.NoError(t, Initialize(Config{Level: "debug", Format: "json", Output: path}))

	Debug("catalog loaded", zap.Int("plans", 3))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"catalog loaded"`), string(data))
	assert.True(t, strings.Contains(string(data), `"plans":3`), string(data))
}

func TestInitializeUnknownLevelFallsBackToInfo(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { UseLogger(prev) })

	require.NoError(t, Initialize(Config{Level: "loud", Format: "console", Output: "stderr"}))
	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestUseLogger(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { UseLogger(prev) })

	core, logs := observer.New(zapcore.WarnLevel)
	UseLogger(zap.New(core))

	Info("ignored")
	Warn("duplicate plan id", zap.String("plan_id", "pro"))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "pro", logs.All()[0].ContextMap()["plan_id"])
}
