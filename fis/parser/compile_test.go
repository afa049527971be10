package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis/membership"
	"github.com/teranos/mamdani/fis/types"
)

func economy(t *testing.T) *membership.Store {
	t.Helper()
	return membership.NewEconomyFixture().Store()
}

func TestCompileReferenceRules(t *testing.T) {
	store := economy(t)

	tests := []struct {
		rule string
		want []types.Token
	}{
		{
			rule: "if weight is light and year is new then economy is high",
			want: []types.Token{1, 0, types.And, 2, 2, 3, 0},
		},
		{
			rule: "if power is low then economy is high",
			want: []types.Token{0, 0, 3, 0},
		},
		{
			rule: "if power is medium and weight is not heavy then economy is medium",
			want: []types.Token{0, 1, types.And, 1, types.Not, 2, 3, 1},
		},
		{
			rule: "if weight is heavy and year is not new then economy is low",
			want: []types.Token{1, 2, types.And, 2, types.Not, 2, 3, 2},
		},
		{
			rule: "if power is high or year is old then economy is low",
			want: []types.Token{0, 2, types.Or, 2, 0, 3, 2},
		},
		{
			rule: "IF Power is low THEN economy IS high",
			want: nil, // names are case-sensitive
		},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			got, err := Compile(store, tt.rule)
			if tt.want == nil {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got.Tokens); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.rule, got.Source)
		})
	}
}

func TestCompileKeywordsCaseInsensitive(t *testing.T) {
	store := economy(t)

	got, err := Compile(store, "IF power IS NOT low AND weight Is light Then economy is high")
	require.NoError(t, err)
	assert.Equal(t, []types.Token{0, types.Not, 0, types.And, 1, 0, 3, 0}, got.Tokens)
}

func TestCompileDeterministic(t *testing.T) {
	store := economy(t)
	rule := "if power is medium and year is normal then economy is medium"

	first, err := Compile(store, rule)
	require.NoError(t, err)
	second, err := Compile(store, rule)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Empty(t, cmp.Diff(first, second))
}

func TestCompileWhitespace(t *testing.T) {
	store := economy(t)

	got, err := Compile(store, "  if\tpower is low\n then   economy is high ")
	require.NoError(t, err)
	assert.Equal(t, []types.Token{0, 0, 3, 0}, got.Tokens)
}

func TestCompileUnknownAttribute(t *testing.T) {
	store := economy(t)

	_, err := Compile(store, "if bogus is x then economy is high")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownAttribute))
	assert.True(t, errors.IsCompilationError(err))

	ce, ok := AsCompilationError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnknownAttribute, ce.Kind)
	assert.Equal(t, "bogus", ce.Word)
	assert.Equal(t, 1, ce.Position)
	assert.Equal(t, 8, ce.TokenCount)
	assert.Equal(t, -1, ce.RuleIndex)
	require.NotNil(t, ce.Range)
	assert.Equal(t, 3, ce.Range.Start.Character)
	assert.Equal(t, 8, ce.Range.End.Character)
	assert.Contains(t, ce.Suggestions, "known attributes: power, weight, year, economy")
}

func TestCompileSuggestsSimilarNames(t *testing.T) {
	store := economy(t)

	_, err := Compile(store, "if wieght is light then economy is high")
	ce, ok := AsCompilationError(err)
	require.True(t, ok)
	assert.Contains(t, ce.Suggestions, `did you mean "weight"?`)

	_, err = Compile(store, "if weight is ligth then economy is high")
	ce, ok = AsCompilationError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnknownSet, ce.Kind)
	assert.True(t, errors.Is(err, errors.ErrUnknownSet))
	assert.Contains(t, ce.Suggestions, `did you mean "light"?`)
	assert.Contains(t, ce.Suggestions, "sets of weight: light, medium, heavy")
}

func TestCompileMalformed(t *testing.T) {
	store := economy(t)

	tests := []struct {
		name    string
		rule    string
		message string
	}{
		{name: "empty", rule: "   ", message: "empty rule"},
		{name: "missing if", rule: "power is low then economy is high", message: "must start with 'if'"},
		{name: "missing then", rule: "if power is low", message: "missing 'then'"},
		{name: "missing then before consequent", rule: "if power is low economy is high", message: "expected 'and', 'or' or 'then'"},
		{name: "missing is", rule: "if power low then economy is high", message: "expected 'is'"},
		{name: "missing consequent is", rule: "if power is low then economy high", message: "expected 'is'"},
		{name: "doubled not", rule: "if power is not not low then economy is high", message: "only once"},
		{name: "not in consequent", rule: "if power is low then economy is not high", message: "not allowed after 'then'"},
		{name: "trailing words", rule: "if power is low then economy is high please", message: "after the consequent"},
		{name: "truncated", rule: "if power is low then economy is", message: "expected a fuzzy set name"},
		{name: "input attribute as consequent", rule: "if power is low then weight is light", message: "only \"economy\" can follow 'then'"},
		{name: "consequent attribute as antecedent", rule: "if economy is high then economy is low", message: "cannot appear before 'then'"},
		{name: "keyword as attribute", rule: "if and is low then economy is high", message: "got keyword"},
		{name: "keyword as set", rule: "if power is then economy is high", message: "got keyword"},
		{name: "chain", rule: "if power is low and weight is light or year is new then economy is high", message: "only one 'and' or 'or'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(store, tt.rule)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMalformedRule), "got %v", err)

			ce, ok := AsCompilationError(err)
			require.True(t, ok)
			assert.Equal(t, KindMalformed, ce.Kind)
			assert.Contains(t, ce.Message, tt.message)
		})
	}
}

func TestCompileChainSuggestsSplit(t *testing.T) {
	_, err := Compile(economy(t), "if power is low or weight is light or year is new then economy is high")
	ce, ok := AsCompilationError(err)
	require.True(t, ok)
	assert.Equal(t, "or", ce.Word)
	assert.Contains(t, ce.Suggestions[0], "split the rule")
}

func TestCompileAll(t *testing.T) {
	store := economy(t)
	fx := membership.NewEconomyFixture()

	rules, err := CompileAll(store, fx.Rules)
	require.NoError(t, err)
	require.Len(t, rules, len(fx.Rules))
	for i, r := range rules {
		attr, _, ok := r.Consequent()
		require.True(t, ok)
		assert.Equal(t, types.Token(3), attr, "rule %d", i)
	}

	bad := append(append([]string{}, fx.Rules[:2]...), "if power is huge then economy is high")
	_, err = CompileAll(store, bad)
	require.Error(t, err)
	ce, ok := AsCompilationError(err)
	require.True(t, ok)
	assert.Equal(t, 2, ce.RuleIndex)
	assert.Contains(t, err.Error(), "rule 2:")
	assert.Contains(t, err.Error(), `"huge" is not a set of power`)
}
