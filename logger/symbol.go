package logger

import (
	"go.uber.org/zap"

	"github.com/teranos/mamdani/sym"
)

// Symbol-aware logging helpers.
// These log with the glyph as a structured field, not in the message,
// so logs stay queryable by symbol.

// WithSymbol returns l with the given symbol as a field
func WithSymbol(l *zap.SugaredLogger, symbol string) *zap.SugaredLogger {
	return OrNop(l).With(FieldSymbol, symbol)
}

// AddDBSymbol wraps a logger with the DB symbol (⊔)
func AddDBSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return WithSymbol(l, sym.DB)
}

// AddWatchSymbol wraps a logger with the Watch symbol (꩜)
func AddWatchSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return WithSymbol(l, sym.Watch)
}

// AddRuleSymbol wraps a logger with the Rule symbol (⟶)
func AddRuleSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return WithSymbol(l, sym.Rule)
}

// ReloadInfow logs an info message on the global logger with the Reload symbol (✿)
func ReloadInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Reload}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}
