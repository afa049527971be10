package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := Logger
			t.Cleanup(func() {
				Logger = prev
				JSONOutput = false
			})

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			want := VerbosityToLevel(tt.verbosity)
			assert.True(t, Logger.Desugar().Core().Enabled(want))
			assert.False(t, Logger.Desugar().Core().Enabled(want-1))
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(9))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))

	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "All (-vvvv+)", LevelName(7))
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(0, OutputResults))
	assert.False(t, ShouldOutput(0, OutputReload))
	assert.True(t, ShouldOutput(1, OutputReload))
	assert.False(t, ShouldOutput(2, OutputRuleFiring))
	assert.True(t, ShouldOutput(3, OutputRuleFiring))
	assert.False(t, ShouldOutput(3, OutputCategory(99)))
	assert.Equal(t, "rule-firing", CategoryName(OutputRuleFiring))
	assert.Equal(t, "unknown", CategoryName(OutputCategory(99)))
}

func TestGlobalHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger
	Logger = zap.New(core).Sugar()
	t.Cleanup(func() { Logger = prev })

	Debugw("debug", FieldRule, "r")
	Infow("info", FieldCount, 3)
	Warnw("warn")
	Errorw("error", FieldError, "boom")
	ReloadInfow("reloaded", FieldRuleBase, "economy")

	entries := logs.All()
	require.Len(t, entries, 5)
	assert.Equal(t, "r", entries[0].ContextMap()[FieldRule])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "✿", entries[4].ContextMap()[FieldSymbol])
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample().Sugar()
	assert.Same(t, l, OrNop(l))

	// nil loggers stay silent through the helpers
	AddDBSymbol(nil).Infow("nothing")
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core).Sugar()

	ctx := WithEvaluationID(context.Background(), "e-1")
	ctx = WithRuleBase(ctx, "economy")
	ctx = WithComponent(ctx, "cli")

	FromContext(ctx, base).Infow("evaluated")
	FromContext(context.Background(), base).Infow("bare")

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "e-1", fields[FieldEvaluationID])
	assert.Equal(t, "economy", fields[FieldRuleBase])
	assert.Equal(t, "cli", fields[FieldComponent])
	assert.Empty(t, entries[1].ContextMap())
}

func TestSymbolWrappers(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core).Sugar()

	AddDBSymbol(base).Infow("saved")
	AddWatchSymbol(base).Infow("watching")
	AddRuleSymbol(base).Infow("compiled")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "⊔", entries[0].ContextMap()[FieldSymbol])
	assert.Equal(t, "꩜", entries[1].ContextMap()[FieldSymbol])
	assert.Equal(t, "⟶", entries[2].ContextMap()[FieldSymbol])
}
