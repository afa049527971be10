// Package eval fires compiled rules against fuzzified inputs and
// aggregates the results.
//
// Two evaluators are provided. Flat is the reference left-to-right scan
// over the token stream. Tree parses the tokens into an expression tree
// first; it differs from Flat only in that a 'not' applies to exactly one
// term, whereas Flat keeps complementing every later term of the rule once
// a 'not' has been seen.
//
// Token streams that do not fit the fuzzified layout are programming
// errors (the store and the rules were built from different definitions).
// They are returned as assertion failures and must be propagated.
package eval

import (
	"strings"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis/types"
)

// Evaluator names accepted by ByName and the engine.evaluator config key
const (
	NameFlat = "flat"
	NameTree = "tree"
)

// Evaluator computes one rule's firing result for one fuzzified input
type Evaluator interface {
	Name() string
	Fire(rule types.CompiledRule, fz types.Fuzzified) (types.FiringResult, error)
}

// ByName returns the evaluator registered under name (case-insensitive).
// An empty name selects Flat.
func ByName(name string) (Evaluator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameFlat:
		return Flat{}, nil
	case NameTree:
		return Tree{}, nil
	default:
		return nil, errors.WithHintf(
			errors.Newf("unknown evaluator %q", name),
			"valid evaluators: %s, %s", NameFlat, NameTree)
	}
}

// Evaluate fires every rule and aggregates the results by consequent set.
func Evaluate(ev Evaluator, rules []types.CompiledRule, fz types.Fuzzified) (types.Aggregation, error) {
	results, err := FireAll(ev, rules, fz)
	if err != nil {
		return nil, err
	}
	return Aggregate(results), nil
}

// FireAll fires every rule in order. The first error aborts the run.
func FireAll(ev Evaluator, rules []types.CompiledRule, fz types.Fuzzified) ([]types.FiringResult, error) {
	results := make([]types.FiringResult, 0, len(rules))
	for i, rule := range rules {
		res, err := ev.Fire(rule, fz)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %d %q", i, rule.Source)
		}
		results = append(results, res)
	}
	return results, nil
}

// malformed reports a token stream the compiler cannot have produced
func malformed(format string, args ...interface{}) error {
	return errors.WithAssertionFailure(errors.Wrapf(errors.ErrMalformedRule, format, args...))
}

// degree looks up a fuzzified degree, failing on indices outside the layout
func degree(fz types.Fuzzified, attr, set types.Token) (float64, error) {
	d, ok := fz.Lookup(int(attr), int(set))
	if !ok {
		return 0, errors.NewIndexError("term (%d, %d) outside fuzzified layout of %d attributes", attr, set, len(fz))
	}
	return d, nil
}

// consequent returns the trailing pair, validated as non-negative
func consequent(rule types.CompiledRule) (attr, set types.Token, err error) {
	attr, set, ok := rule.Consequent()
	if !ok {
		return 0, 0, malformed("%d tokens cannot hold a consequent", len(rule.Tokens))
	}
	if attr < 0 || set < 0 {
		return 0, 0, malformed("consequent pair %s %s is not an index pair", attr, set)
	}
	return attr, set, nil
}
