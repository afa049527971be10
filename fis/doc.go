// Package fis is a Mamdani-style fuzzy inference engine.
//
// # Overview
//
// An Engine binds a membership store (attributes with triangular fuzzy
// sets), a compiled rule base and an evaluator. For each crisp input
// vector it fuzzifies the antecedent attributes, fires every rule and
// aggregates the firing strengths by maximum per output set:
//
//	store, err := membership.NewStore(power, weight, year, economy)
//	engine, err := fis.New(store, []string{
//	    "if weight is light and year is new then economy is high",
//	    "if power is high then economy is low",
//	})
//	agg, err := engine.Infer([]float64{126, 700, 2013})
//
// The result is the aggregated degree per output set. There is no
// defuzzification step.
//
// # Concurrency
//
// An Engine is immutable after New and safe for concurrent use. To change
// the rule base build a new Engine and publish it through a Holder.
//
// # Packages
//
//   - membership: attributes, fuzzy sets, fuzzification
//   - parser: rule text to token sequences
//   - eval: firing and aggregation
//   - rulebase: rule-base files and hot reload
//   - storage: SQLite persistence
package fis
