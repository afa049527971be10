package eval

import (
	"fmt"

	"github.com/teranos/mamdani/fis/types"
)

// Node is an antecedent expression
type Node interface {
	Eval(fz types.Fuzzified) (float64, error)
	String() string
}

// Term is one (attribute, set) reference
type Term struct {
	Attr, Set types.Token
}

// Not complements exactly one term
type Not struct {
	X Node
}

// And is the minimum of two expressions
type And struct {
	L, R Node
}

// Or is the maximum of two expressions
type Or struct {
	L, R Node
}

func (t Term) Eval(fz types.Fuzzified) (float64, error) { return degree(fz, t.Attr, t.Set) }
func (t Term) String() string                           { return fmt.Sprintf("(%d %d)", t.Attr, t.Set) }

func (n Not) Eval(fz types.Fuzzified) (float64, error) {
	d, err := n.X.Eval(fz)
	return 1 - d, err
}
func (n Not) String() string { return "NOT " + n.X.String() }

func (n And) Eval(fz types.Fuzzified) (float64, error) {
	l, r, err := both(n.L, n.R, fz)
	return min(l, r), err
}
func (n And) String() string { return "(" + n.L.String() + " AND " + n.R.String() + ")" }

func (n Or) Eval(fz types.Fuzzified) (float64, error) {
	l, r, err := both(n.L, n.R, fz)
	return max(l, r), err
}
func (n Or) String() string { return "(" + n.L.String() + " OR " + n.R.String() + ")" }

func both(l, r Node, fz types.Fuzzified) (float64, float64, error) {
	lv, err := l.Eval(fz)
	if err != nil {
		return 0, 0, err
	}
	rv, err := r.Eval(fz)
	if err != nil {
		return 0, 0, err
	}
	return lv, rv, nil
}

// Parse builds the antecedent expression of a compiled rule.
// Operators associate to the left.
func Parse(rule types.CompiledRule) (Node, error) {
	if _, _, err := consequent(rule); err != nil {
		return nil, err
	}
	toks := rule.Tokens[:len(rule.Tokens)-2]

	pos := 0
	term := func() (Node, error) {
		if pos >= len(toks) || toks[pos] < 0 {
			return nil, malformed("expected an attribute at token %d", pos)
		}
		attr := toks[pos]
		pos++
		negated := pos < len(toks) && toks[pos] == types.Not
		if negated {
			pos++
		}
		if pos >= len(toks) || toks[pos] < 0 {
			return nil, malformed("expected a set at token %d", pos)
		}
		var n Node = Term{Attr: attr, Set: toks[pos]}
		pos++
		if negated {
			n = Not{X: n}
		}
		return n, nil
	}

	root, err := term()
	if err != nil {
		return nil, err
	}
	for pos < len(toks) {
		op := toks[pos]
		if !op.IsOperator() {
			return nil, malformed("expected AND or OR at token %d, got %s", pos, op)
		}
		pos++
		rhs, err := term()
		if err != nil {
			return nil, err
		}
		if op == types.And {
			root = And{L: root, R: rhs}
		} else {
			root = Or{L: root, R: rhs}
		}
	}
	return root, nil
}

// Tree evaluates rules through an explicit expression tree.
// 'not' applies to the single term it precedes.
type Tree struct{}

// Name implements Evaluator
func (Tree) Name() string { return NameTree }

// Fire implements Evaluator
func (Tree) Fire(rule types.CompiledRule, fz types.Fuzzified) (types.FiringResult, error) {
	root, err := Parse(rule)
	if err != nil {
		return types.FiringResult{}, err
	}
	d, err := root.Eval(fz)
	if err != nil {
		return types.FiringResult{}, err
	}
	attr, set, _ := rule.Consequent()
	return types.FiringResult{Attribute: int(attr), Set: int(set), Degree: d}, nil
}
