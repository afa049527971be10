package logger

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	return regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(str, "")
}

func encode(t *testing.T, ent zapcore.Entry, fields ...zapcore.Field) string {
	t.Helper()
	buf, err := newMinimalEncoder().EncodeEntry(ent, fields)
	require.NoError(t, err)
	defer buf.Free()
	return stripANSI(buf.String())
}

// The console encoder must never silently drop fields.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2024, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: "rulebase.watch",
		Message:    "reloaded",
	}

	out := encode(t, entry,
		zap.String(FieldRuleBase, "economy"),
		zap.Int(FieldRules, 6),
		zap.Float64(FieldDegree, 0.75),
		zap.Bool("changed", true),
		zap.Strings("names", []string{"power", "weight"}),
		zap.Error(errors.New("boom")),
		zap.Error(nil),
		zap.Duration("took", 1500*time.Millisecond),
	)

	for _, want := range []string{
		"13:04:35",
		"rulebase.watch",
		"reloaded",
		"rulebase=economy",
		"rules=6",
		"degree=0.75",
		"changed=true",
		"names=[power weight]",
		"error=boom",
		"took=1.5s",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.NotContains(t, out, "INFO", "info entries are unlabelled")
}

func TestMinimalEncoderSymbolFirst(t *testing.T) {
	out := encode(t, zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "saved"},
		zap.String(FieldRuleBase, "economy"),
		zap.String(FieldSymbol, "⊔"),
	)
	assert.Contains(t, out, "saved  ⊔ rulebase=economy")
}

func TestMinimalEncoderLevels(t *testing.T) {
	warn := encode(t, zapcore.Entry{Level: zapcore.WarnLevel, Time: time.Now(), Message: "m"})
	assert.Contains(t, warn, "WARN")

	errOut := encode(t, zapcore.Entry{Level: zapcore.ErrorLevel, Time: time.Now(), Message: "m"})
	assert.Contains(t, errOut, "ERROR")

	debug := encode(t, zapcore.Entry{Level: zapcore.DebugLevel, Time: time.Now(), Message: "m"})
	assert.Contains(t, debug, "debug")
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("everforest") })

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", Theme())
	SetTheme("solarized")
	assert.Equal(t, "gruvbox", Theme(), "unknown themes are ignored")
}
