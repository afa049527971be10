// Package parser compiles rule text into flat token sequences.
//
// Grammar (keywords are case-insensitive, names match exactly):
//
//	rule := "if" term [("and" | "or") term] "then" ATTR "is" SET
//	term := ATTR "is" ["not"] SET
//
// "if", "is" and "then" are dropped from the output; "and", "or" and "not"
// become the sentinels types.And, types.Or and types.Not, interleaved with
// attribute/set index pairs in input order:
//
//	if weight is light and year is new then economy is high
//	=> [1 0 -2 2 2 3 0]
//
// Antecedents may only name input attributes and the consequent may only
// name the last declared attribute. At most one binary operator is accepted.
package parser

import (
	"fmt"
	"strings"

	"github.com/teranos/mamdani/fis/membership"
	"github.com/teranos/mamdani/fis/types"
	"github.com/teranos/mamdani/internal/util"
)

// Rule keywords
const (
	KeywordIf   = "if"
	KeywordIs   = "is"
	KeywordThen = "then"
	KeywordAnd  = "and"
	KeywordOr   = "or"
	KeywordNot  = "not"
)

// Keywords lists every reserved word of the rule grammar
var Keywords = []string{KeywordIf, KeywordIs, KeywordThen, KeywordAnd, KeywordOr, KeywordNot}

// IsKeyword reports whether w is a grammar keyword (case-insensitive)
func IsKeyword(w string) bool {
	lower := strings.ToLower(w)
	for _, k := range Keywords {
		if lower == k {
			return true
		}
	}
	return false
}

// Layout is the name->index lookup the compiler resolves against.
// *membership.Store implements it.
type Layout interface {
	AttributeIndex(name string) (int, bool)
	SetIndex(attr int, name string) (int, bool)
	Attribute(i int) (membership.Attribute, error)
	ConsequentIndex() int
	Names() []string
}

type compileState int

const (
	stateIf compileState = iota
	stateAttribute
	stateIs
	stateNegationOrSet
	stateNegatedSet
	stateConnector
	stateConsequentAttribute
	stateConsequentIs
	stateConsequentSet
	stateDone
)

// expected describes what each state is waiting for, for "rule ends early" errors
var expected = map[compileState]string{
	stateIf:                  "'if'",
	stateAttribute:           "an attribute name",
	stateIs:                  "'is'",
	stateNegationOrSet:       "a fuzzy set name",
	stateNegatedSet:          "a fuzzy set name",
	stateConnector:           "'and', 'or' or 'then'",
	stateConsequentAttribute: "the consequent attribute name",
	stateConsequentIs:        "'is'",
	stateConsequentSet:       "a fuzzy set name",
}

// compiler holds the state of one Compile call
type compiler struct {
	layout    Layout
	text      string
	words     []word
	state     compileState
	tokens    []types.Token
	attr      int // most recently resolved attribute
	operators int
}

// Compile turns one rule into its token sequence.
// Compiling the same text against the same layout always yields the same tokens.
func Compile(layout Layout, text string) (types.CompiledRule, error) {
	c := &compiler{
		layout: layout,
		text:   text,
		words:  splitWords(text),
	}
	if err := c.run(); err != nil {
		return types.CompiledRule{}, err
	}
	return types.CompiledRule{Source: text, Tokens: c.tokens}, nil
}

// CompileAll compiles every rule in order, failing on the first bad rule.
// The returned CompilationError carries the rule's index.
func CompileAll(layout Layout, texts []string) ([]types.CompiledRule, error) {
	rules := make([]types.CompiledRule, 0, len(texts))
	for i, text := range texts {
		rule, err := Compile(layout, text)
		if err != nil {
			if ce, ok := AsCompilationError(err); ok {
				ce.RuleIndex = i
			}
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (c *compiler) run() error {
	if len(c.words) == 0 {
		return c.fail(KindMalformed, "empty rule").
			WithSuggestion("rules look like: if <attribute> is <set> then <attribute> is <set>")
	}

	for i, w := range c.words {
		if err := c.step(i, w); err != nil {
			return err
		}
	}

	if c.state != stateDone {
		msg := fmt.Sprintf("rule ends early: expected %s", expected[c.state])
		if c.state == stateConnector {
			msg = "missing 'then'"
		}
		return c.fail(KindMalformed, msg)
	}
	return nil
}

func (c *compiler) step(i int, w word) error {
	switch c.state {
	case stateIf:
		if w.lower() != KeywordIf {
			return c.failAt(i, w, KindMalformed, fmt.Sprintf("rule must start with 'if', got %q", w.value))
		}
		c.state = stateAttribute

	case stateAttribute:
		attr, err := c.resolveAttribute(i, w)
		if err != nil {
			return err
		}
		if attr == c.layout.ConsequentIndex() {
			return c.failAt(i, w, KindMalformed, fmt.Sprintf("%q is the consequent attribute and cannot appear before 'then'", w.value))
		}
		c.emit(types.Token(attr))
		c.state = stateIs

	case stateIs, stateConsequentIs:
		if w.lower() != KeywordIs {
			return c.failAt(i, w, KindMalformed, fmt.Sprintf("expected 'is' after %q, got %q", c.words[i-1].value, w.value))
		}
		if c.state == stateIs {
			c.state = stateNegationOrSet
		} else {
			c.state = stateConsequentSet
		}

	case stateNegationOrSet:
		if w.lower() == KeywordNot {
			c.emit(types.Not)
			c.state = stateNegatedSet
			return nil
		}
		if err := c.resolveSet(i, w); err != nil {
			return err
		}
		c.state = stateConnector

	case stateNegatedSet:
		if w.lower() == KeywordNot {
			return c.failAt(i, w, KindMalformed, "'not' may appear only once per term")
		}
		if err := c.resolveSet(i, w); err != nil {
			return err
		}
		c.state = stateConnector

	case stateConnector:
		switch w.lower() {
		case KeywordAnd, KeywordOr:
			if c.operators > 0 {
				return c.failAt(i, w, KindMalformed, "only one 'and' or 'or' is supported per rule").
					WithSuggestion("split the rule into several rules with the same consequent")
			}
			c.operators++
			if w.lower() == KeywordAnd {
				c.emit(types.And)
			} else {
				c.emit(types.Or)
			}
			c.state = stateAttribute
		case KeywordThen:
			c.state = stateConsequentAttribute
		default:
			return c.failAt(i, w, KindMalformed, fmt.Sprintf("expected 'and', 'or' or 'then', got %q", w.value))
		}

	case stateConsequentAttribute:
		attr, err := c.resolveAttribute(i, w)
		if err != nil {
			return err
		}
		if attr != c.layout.ConsequentIndex() {
			names := c.layout.Names()
			return c.failAt(i, w, KindMalformed, fmt.Sprintf("%q is an input attribute; only %q can follow 'then'", w.value, names[len(names)-1]))
		}
		c.emit(types.Token(attr))
		c.state = stateConsequentIs

	case stateConsequentSet:
		if w.lower() == KeywordNot {
			return c.failAt(i, w, KindMalformed, "'not' is not allowed after 'then'")
		}
		if err := c.resolveSet(i, w); err != nil {
			return err
		}
		c.state = stateDone

	case stateDone:
		return c.failAt(i, w, KindMalformed, fmt.Sprintf("unexpected %q after the consequent", w.value))
	}
	return nil
}

func (c *compiler) emit(t types.Token) {
	c.tokens = append(c.tokens, t)
}

// resolveAttribute looks up w as an attribute name. Declared names win over keywords.
func (c *compiler) resolveAttribute(i int, w word) (int, error) {
	if attr, ok := c.layout.AttributeIndex(w.value); ok {
		c.attr = attr
		return attr, nil
	}
	if IsKeyword(w.value) {
		return 0, c.failAt(i, w, KindMalformed, fmt.Sprintf("expected an attribute name, got keyword %q", w.value))
	}

	err := c.failAt(i, w, KindUnknownAttribute, fmt.Sprintf("unknown attribute %q", w.value))
	names := c.layout.Names()
	for _, s := range util.Similar(w.value, names, 2) {
		err.WithSuggestion(fmt.Sprintf("did you mean %q?", s))
	}
	return 0, err.WithSuggestion("known attributes: " + strings.Join(names, ", "))
}

// resolveSet looks up w as a set of the most recent attribute and emits its index
func (c *compiler) resolveSet(i int, w word) error {
	if set, ok := c.layout.SetIndex(c.attr, w.value); ok {
		c.emit(types.Token(set))
		return nil
	}
	if IsKeyword(w.value) {
		return c.failAt(i, w, KindMalformed, fmt.Sprintf("expected a fuzzy set name, got keyword %q", w.value))
	}

	attr, err := c.layout.Attribute(c.attr)
	if err != nil {
		return err
	}
	names := attr.SetNames()
	cerr := c.failAt(i, w, KindUnknownSet, fmt.Sprintf("%q is not a set of %s", w.value, attr.Name))
	for _, s := range util.Similar(w.value, names, 2) {
		cerr.WithSuggestion(fmt.Sprintf("did you mean %q?", s))
	}
	return cerr.WithSuggestion(fmt.Sprintf("sets of %s: %s", attr.Name, strings.Join(names, ", ")))
}

func (c *compiler) fail(kind ErrorKind, msg string) *CompilationError {
	return NewCompilationError(kind, msg).
		WithRule(c.text, -1).
		withCount(len(c.words))
}

func (c *compiler) failAt(i int, w word, kind ErrorKind, msg string) *CompilationError {
	return NewCompilationError(kind, msg).
		WithRule(c.text, -1).
		WithWord(w, i, len(c.words))
}

func (e *CompilationError) withCount(n int) *CompilationError {
	e.TokenCount = n
	return e
}
