package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNopLoggerIsUsable(t *testing.T) {
	l := NewNop().Component("test").With("k", "v")
	l.Info("hello", "n", 1)
	l.Error("failed", "err", assert.AnError)
}

func TestFromZapKeepsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := FromZap(zap.New(core)).Component("alerts")

	l.Debug("hidden")
	l.Warn("disabled", "err", assert.AnError)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "disabled", entries[0].Message)
	assert.Equal(t, "alerts", entries[0].ContextMap()["component"])
	assert.Equal(t, assert.AnError.Error(), entries[0].ContextMap()["err"])
}
