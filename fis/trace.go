package fis

import (
	"github.com/teranos/mamdani/fis/eval"
	"github.com/teranos/mamdani/fis/types"
	"github.com/teranos/mamdani/logger"
)

// InputTrace is one fuzzified input attribute
type InputTrace struct {
	Attribute string            `json:"attribute"`
	Value     float64           `json:"value"`
	Degrees   []types.SetDegree `json:"degrees"`
}

// RuleTrace is one rule's contribution
type RuleTrace struct {
	Index      int     `json:"index"`
	Rule       string  `json:"rule"`
	Tokens     []int   `json:"tokens"`
	Consequent string  `json:"consequent"` // Output set name
	Set        int     `json:"set"`
	Degree     float64 `json:"degree"`
}

// Trace records every step of one inference
type Trace struct {
	Evaluator string            `json:"evaluator"`
	Inputs    []InputTrace      `json:"inputs"`
	Rules     []RuleTrace       `json:"rules"`
	Output    types.Aggregation `json:"output"`
}

// Explain runs Infer and records the fuzzified inputs and each rule's
// firing result alongside the aggregation.
func (e *Engine) Explain(crisp []float64) (*Trace, error) {
	fz, err := e.store.FuzzifyInput(crisp)
	if err != nil {
		return nil, err
	}
	results, err := eval.FireAll(e.evaluator, e.rules, fz)
	if err != nil {
		return nil, err
	}

	tr := &Trace{
		Evaluator: e.evaluator.Name(),
		Inputs:    make([]InputTrace, len(crisp)),
		Rules:     make([]RuleTrace, len(results)),
		Output:    e.label(eval.Aggregate(results)),
	}

	for i, x := range crisp {
		attr, err := e.store.Attribute(i)
		if err != nil {
			return nil, err
		}
		degrees := make([]types.SetDegree, len(fz[i]))
		for j, d := range fz[i] {
			degrees[j] = types.SetDegree{Set: j, Name: attr.Sets[j].Name, Degree: d}
		}
		tr.Inputs[i] = InputTrace{Attribute: attr.Name, Value: x, Degrees: degrees}
	}

	out, err := e.store.Attribute(e.store.ConsequentIndex())
	if err != nil {
		return nil, err
	}
	for i, res := range results {
		rt := RuleTrace{
			Index:  i,
			Rule:   e.rules[i].Source,
			Tokens: e.rules[i].Ints(),
			Set:    res.Set,
			Degree: res.Degree,
		}
		if res.Set >= 0 && res.Set < len(out.Sets) {
			rt.Consequent = out.Sets[res.Set].Name
		}
		tr.Rules[i] = rt
		e.logger.Debugw("rule fired",
			logger.FieldRuleIndex, i,
			logger.FieldSet, rt.Consequent,
			logger.FieldDegree, res.Degree)
	}
	return tr, nil
}
