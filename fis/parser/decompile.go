package parser

import (
	"strings"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis/types"
)

// Decompile renders a compiled rule back into canonical rule text
// (lowercase keywords, single spaces). Compile(Decompile(r)) yields r's tokens.
// Token streams Compile would reject (the consequent attribute used as an
// antecedent, an input attribute after 'then') are malformed.
func Decompile(layout Layout, rule types.CompiledRule) (string, error) {
	toks := rule.Tokens
	consAttr, consSet, ok := rule.Consequent()
	if !ok {
		return "", errors.Wrapf(errors.ErrMalformedRule, "%d tokens cannot hold a consequent", len(toks))
	}

	parts := []string{KeywordIf}
	for i := 0; i < len(toks)-2; {
		switch t := toks[i]; t {
		case types.And:
			parts = append(parts, KeywordAnd)
			i++
		case types.Or:
			parts = append(parts, KeywordOr)
			i++
		default:
			if t < 0 {
				return "", errors.Wrapf(errors.ErrMalformedRule, "unexpected %s at token %d", t, i)
			}
			if int(t) == layout.ConsequentIndex() {
				return "", errors.Wrapf(errors.ErrMalformedRule, "consequent attribute %d at token %d appears before the consequent", t, i)
			}
			i++
			negated := false
			if i < len(toks)-2 && toks[i] == types.Not {
				negated = true
				i++
			}
			if i >= len(toks)-2 {
				return "", errors.Wrapf(errors.ErrMalformedRule, "attribute token %d has no set", i-1)
			}
			term, err := names(layout, t, toks[i])
			if err != nil {
				return "", err
			}
			parts = append(parts, term[0], KeywordIs)
			if negated {
				parts = append(parts, KeywordNot)
			}
			parts = append(parts, term[1])
			i++
		}
	}

	cons, err := names(layout, consAttr, consSet)
	if err != nil {
		return "", err
	}
	if int(consAttr) != layout.ConsequentIndex() {
		return "", errors.Wrapf(errors.ErrMalformedRule, "consequent names input attribute %s", cons[0])
	}
	parts = append(parts, KeywordThen, cons[0], KeywordIs, cons[1])
	return strings.Join(parts, " "), nil
}

// names resolves an (attribute, set) token pair to its names
func names(layout Layout, attr, set types.Token) ([2]string, error) {
	a, err := layout.Attribute(int(attr))
	if err != nil {
		return [2]string{}, err
	}
	if set < 0 || int(set) >= len(a.Sets) {
		return [2]string{}, errors.NewIndexError("set %d outside the %d sets of %s", set, len(a.Sets), a.Name)
	}
	return [2]string{a.Name, a.Sets[set].Name}, nil
}
