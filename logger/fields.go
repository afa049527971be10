package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Rule bases
	FieldRuleBase    = "rulebase"
	FieldRule        = "rule"
	FieldRuleIndex   = "rule_index"
	FieldRules       = "rules"
	FieldFingerprint = "fingerprint"
	FieldSchema      = "schema_version"

	// Inference
	FieldAttribute    = "attribute"
	FieldSet          = "set"
	FieldDegree       = "degree"
	FieldInputs       = "inputs"
	FieldEvaluator    = "evaluator"
	FieldEvaluationID = "evaluation_id"

	// Components
	FieldComponent = "component"
	FieldSymbol    = "symbol"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"
	FieldOp   = "op"
)

type contextKey string

const (
	evaluationIDKey contextKey = "logger_evaluation_id"
	ruleBaseKey     contextKey = "logger_rulebase"
	componentKey    contextKey = "logger_component"
)

// WithEvaluationID adds an evaluation ID to the context for logging
func WithEvaluationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, evaluationIDKey, id)
}

// WithRuleBase adds a rule base name to the context for logging
func WithRuleBase(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ruleBaseKey, name)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if id, ok := ctx.Value(evaluationIDKey).(string); ok && id != "" {
		fields = append(fields, FieldEvaluationID, id)
	}
	if name, ok := ctx.Value(ruleBaseKey).(string); ok && name != "" {
		fields = append(fields, FieldRuleBase, name)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// FromContext returns l with fields extracted from ctx
func FromContext(ctx context.Context, l *zap.SugaredLogger) *zap.SugaredLogger {
	l = OrNop(l)
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	w := rulebase.NewWatcher(path, debounce, logger.ComponentLogger("rulebase.watch"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
