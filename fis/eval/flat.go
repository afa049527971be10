package eval

import (
	"github.com/teranos/mamdani/fis/types"
)

// Flat is the reference evaluator: a single left-to-right scan over the
// tokens followed by an operator reduction. Once a 'not' has been seen,
// every later term of the same rule is complemented as well.
type Flat struct{}

// Name implements Evaluator
func (Flat) Name() string { return NameFlat }

// item is one accumulator entry: a degree, or an AND/OR marker
type item struct {
	op    types.Token // 0 for a degree
	value float64
}

// Fire implements Evaluator
func (Flat) Fire(rule types.CompiledRule, fz types.Fuzzified) (types.FiringResult, error) {
	consAttr, consSet, err := consequent(rule)
	if err != nil {
		return types.FiringResult{}, err
	}

	var (
		acc     []item
		pending types.Token = -1 // -1: slot empty
		negate  bool
	)

	for i, tok := range rule.Tokens {
		if pending < 0 {
			switch {
			case tok.IsOperator():
				acc = append(acc, item{op: tok})
			case tok == consAttr:
				d, err := reduce(acc)
				if err != nil {
					return types.FiringResult{}, err
				}
				return types.FiringResult{Attribute: int(consAttr), Set: int(consSet), Degree: d}, nil
			case tok < 0:
				return types.FiringResult{}, malformed("%s at token %d where an attribute was expected", tok, i)
			default:
				pending = tok
			}
			continue
		}

		if tok == types.Not {
			negate = true
			continue
		}
		if tok < 0 {
			return types.FiringResult{}, malformed("%s at token %d where a set was expected", tok, i)
		}
		d, err := degree(fz, pending, tok)
		if err != nil {
			return types.FiringResult{}, err
		}
		if negate {
			d = 1 - d
		}
		acc = append(acc, item{value: d})
		pending = -1
	}

	return types.FiringResult{}, malformed("consequent attribute %d never reached", consAttr)
}

// reduce collapses the accumulator: each marker at i combines i-1 and i+1,
// a degree with no adjacent marker passes through, and the last value
// produced is the rule's degree.
func reduce(acc []item) (float64, error) {
	var (
		last     float64
		produced bool
	)
	isOp := func(i int) bool { return i >= 0 && i < len(acc) && acc[i].op != 0 }

	for i, it := range acc {
		if it.op != 0 {
			if i == 0 || i == len(acc)-1 || isOp(i-1) || isOp(i+1) {
				return 0, malformed("operator %s at accumulator position %d lacks two operands", it.op, i)
			}
			l, r := acc[i-1].value, acc[i+1].value
			if it.op == types.And {
				last = min(l, r)
			} else {
				last = max(l, r)
			}
			produced = true
			continue
		}
		if !isOp(i-1) && !isOp(i+1) {
			last = it.value
			produced = true
		}
	}

	if !produced {
		return 0, malformed("rule has no antecedent terms")
	}
	return last, nil
}
