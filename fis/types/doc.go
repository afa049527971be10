// Package types defines the values shared by the rule compiler, the
// evaluator and the engine: the token alphabet of compiled rules,
// fuzzified inputs, per-rule firing results and aggregated outputs.
package types
