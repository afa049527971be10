package types

import (
	"strconv"
	"strings"
)

// Token is one element of a compiled rule. Non-negative tokens are
// attribute or fuzzy-set indices; negative tokens are operator sentinels.
type Token int

// Operator sentinels. NOT applies to the single term that follows it.
const (
	Not Token = -1 // complement: 1 - degree
	And Token = -2 // elementwise minimum
	Or  Token = -3 // elementwise maximum
)

// IsOperator reports whether t is AND or OR.
func (t Token) IsOperator() bool {
	return t == And || t == Or
}

// String renders sentinels by name and indices as numbers
func (t Token) String() string {
	switch t {
	case Not:
		return "NOT"
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return strconv.Itoa(int(t))
	}
}

// CompiledRule is the flat executable form of one rule string.
// The final two tokens are always the consequent (attribute, set) pair.
type CompiledRule struct {
	Source string  `json:"source"` // Rule text as written
	Tokens []Token `json:"tokens"` // Executable token sequence
}

// Consequent returns the trailing (attribute, set) pair.
// ok is false when the token stream is too short to hold one.
func (r CompiledRule) Consequent() (attr, set Token, ok bool) {
	n := len(r.Tokens)
	if n < 2 {
		return 0, 0, false
	}
	return r.Tokens[n-2], r.Tokens[n-1], true
}

// Ints returns the tokens as plain ints (storage and JSON output)
func (r CompiledRule) Ints() []int {
	out := make([]int, len(r.Tokens))
	for i, t := range r.Tokens {
		out[i] = int(t)
	}
	return out
}

// TokensFromInts is the inverse of Ints
func TokensFromInts(ints []int) []Token {
	out := make([]Token, len(ints))
	for i, v := range ints {
		out[i] = Token(v)
	}
	return out
}

// Clone returns a copy that shares no token storage with r
func (r CompiledRule) Clone() CompiledRule {
	return CompiledRule{Source: r.Source, Tokens: append([]Token(nil), r.Tokens...)}
}

// Equal reports whether two compiled rules carry the same tokens.
func (r CompiledRule) Equal(other CompiledRule) bool {
	if len(r.Tokens) != len(other.Tokens) {
		return false
	}
	for i := range r.Tokens {
		if r.Tokens[i] != other.Tokens[i] {
			return false
		}
	}
	return true
}

// String renders the token sequence, e.g. "[1 0 AND 2 2 3 0]"
func (r CompiledRule) String() string {
	parts := make([]string, len(r.Tokens))
	for i, t := range r.Tokens {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
