package fis

import (
	"time"

	"go.uber.org/zap"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis/eval"
	"github.com/teranos/mamdani/fis/membership"
	"github.com/teranos/mamdani/fis/parser"
	"github.com/teranos/mamdani/fis/types"
	"github.com/teranos/mamdani/logger"
)

// Engine evaluates one compiled rule base against crisp inputs.
type Engine struct {
	store     *membership.Store
	rules     []types.CompiledRule
	evaluator eval.Evaluator
	logger    *zap.SugaredLogger
}

// Option configures an Engine
type Option func(*Engine)

// WithEvaluator selects the rule evaluator (default eval.Flat)
func WithEvaluator(ev eval.Evaluator) Option {
	return func(e *Engine) {
		if ev != nil {
			e.evaluator = ev
		}
	}
}

// WithLogger sets the engine's logger. nil keeps it silent.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Engine) {
		e.logger = logger.OrNop(l)
	}
}

// New compiles rules against store. It fails on the first rule that does
// not compile; the error is a *parser.CompilationError naming the rule.
func New(store *membership.Store, rules []string, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("membership store is required")
	}
	compiled, err := parser.CompileAll(store, rules)
	if err != nil {
		return nil, err
	}
	return newEngine(store, compiled, opts), nil
}

// NewCompiled builds an engine from rules compiled earlier (e.g. loaded
// from storage). Every rule is checked against the store's layout.
func NewCompiled(store *membership.Store, rules []types.CompiledRule, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("membership store is required")
	}
	for i, r := range rules {
		if _, err := parser.Decompile(store, r); err != nil {
			return nil, errors.Wrapf(err, "compiled rule %d %q", i, r.Source)
		}
	}
	compiled := make([]types.CompiledRule, len(rules))
	for i, r := range rules {
		compiled[i] = r.Clone()
	}
	return newEngine(store, compiled, opts), nil
}

func newEngine(store *membership.Store, rules []types.CompiledRule, opts []Option) *Engine {
	e := &Engine{
		store:     store,
		rules:     rules,
		evaluator: eval.Flat{},
		logger:    logger.OrNop(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Debugw("engine ready",
		logger.FieldRules, len(rules),
		logger.FieldEvaluator, e.evaluator.Name(),
		logger.FieldFingerprint, store.Fingerprint())
	return e
}

// Store returns the membership store
func (e *Engine) Store() *membership.Store {
	return e.store
}

// Rules returns a copy of the compiled rule base
func (e *Engine) Rules() []types.CompiledRule {
	out := make([]types.CompiledRule, len(e.rules))
	for i, r := range e.rules {
		out[i] = r.Clone()
	}
	return out
}

// Evaluator returns the configured evaluator
func (e *Engine) Evaluator() eval.Evaluator {
	return e.evaluator
}

// Compile compiles one rule against the engine's store. The engine's own
// rule base is not changed.
func (e *Engine) Compile(text string) (types.CompiledRule, error) {
	return parser.Compile(e.store, text)
}

// Fuzzify returns the degrees of x in every set of attribute attr
func (e *Engine) Fuzzify(attr int, x float64) ([]float64, error) {
	return e.store.Fuzzify(attr, x)
}

// Evaluate fires rules against fz and aggregates by output set
func (e *Engine) Evaluate(rules []types.CompiledRule, fz types.Fuzzified) (types.Aggregation, error) {
	agg, err := eval.Evaluate(e.evaluator, rules, fz)
	if err != nil {
		return nil, err
	}
	return e.label(agg), nil
}

// Infer fuzzifies one crisp value per input attribute and evaluates the
// engine's rule base.
func (e *Engine) Infer(crisp []float64) (types.Aggregation, error) {
	start := time.Now()
	fz, err := e.store.FuzzifyInput(crisp)
	if err != nil {
		return nil, err
	}
	agg, err := e.Evaluate(e.rules, fz)
	if err != nil {
		return nil, err
	}
	e.logger.Debugw("inferred",
		logger.FieldInputs, crisp,
		logger.FieldCount, len(agg),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return agg, nil
}

// label fills in output set names from the consequent attribute
func (e *Engine) label(agg types.Aggregation) types.Aggregation {
	out, err := e.store.Attribute(e.store.ConsequentIndex())
	if err != nil {
		return agg
	}
	for i := range agg {
		if s := agg[i].Set; s >= 0 && s < len(out.Sets) {
			agg[i].Name = out.Sets[s].Name
		}
	}
	return agg
}
