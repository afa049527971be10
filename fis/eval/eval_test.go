package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis/membership"
	"github.com/teranos/mamdani/fis/parser"
	"github.com/teranos/mamdani/fis/types"
)

// abc is a three-attribute layout: inputs a and b, output c
func abc(t *testing.T) *membership.Store {
	t.Helper()
	set := func(name string) membership.FuzzySet {
		return membership.FuzzySet{Name: name, Shape: membership.Tri(0, 5, 10)}
	}
	s, err := membership.NewStore(
		membership.Attribute{Name: "a", Sets: []membership.FuzzySet{set("p")}},
		membership.Attribute{Name: "b", Sets: []membership.FuzzySet{set("q")}},
		membership.Attribute{Name: "c", Sets: []membership.FuzzySet{set("r"), set("s")}},
	)
	require.NoError(t, err)
	return s
}

func compile(t *testing.T, s *membership.Store, text string) types.CompiledRule {
	t.Helper()
	r, err := parser.Compile(s, text)
	require.NoError(t, err)
	return r
}

var evaluators = []Evaluator{Flat{}, Tree{}}

func TestOperatorSemantics(t *testing.T) {
	s := abc(t)
	fz := types.Fuzzified{{0.3}, {0.8}}

	tests := []struct {
		rule string
		want float64
	}{
		{rule: "if a is p and b is q then c is r", want: 0.3},
		{rule: "if a is p or b is q then c is r", want: 0.8},
		{rule: "if a is not p then c is r", want: 0.7},
		{rule: "if a is p then c is r", want: 0.3},
		{rule: "if a is p or b is not q then c is s", want: 0.3},
	}

	for _, ev := range evaluators {
		for _, tt := range tests {
			t.Run(ev.Name()+"/"+tt.rule, func(t *testing.T) {
				res, err := ev.Fire(compile(t, s, tt.rule), fz)
				require.NoError(t, err)
				assert.InDelta(t, tt.want, res.Degree, 1e-12)
				assert.Equal(t, 2, res.Attribute)
			})
		}
	}
}

func TestNegationPersistsInFlat(t *testing.T) {
	s := abc(t)
	fz := types.Fuzzified{{0.3}, {0.8}}
	rule := compile(t, s, "if a is not p and b is q then c is r")

	flat, err := Flat{}.Fire(rule, fz)
	require.NoError(t, err)
	// b is complemented too: min(0.7, 0.2)
	assert.InDelta(t, 0.2, flat.Degree, 1e-12)

	tree, err := Tree{}.Fire(rule, fz)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, tree.Degree, 1e-12)
}

func TestEvaluatorsAgreeWithoutEarlierNegation(t *testing.T) {
	s := membership.NewEconomyFixture().Store()
	fx := membership.NewEconomyFixture()
	rules, err := parser.CompileAll(s, fx.Rules)
	require.NoError(t, err)

	for _, in := range fx.Inputs {
		fz, err := s.FuzzifyInput(in)
		require.NoError(t, err)

		for i, r := range rules {
			f, err := Flat{}.Fire(r, fz)
			require.NoError(t, err)
			tr, err := Tree{}.Fire(r, fz)
			require.NoError(t, err)
			// the reference rules only negate their last term
			assert.InDelta(t, f.Degree, tr.Degree, 1e-12, "rule %d input %v", i, in)
		}
	}
}

func TestFireIndexErrors(t *testing.T) {
	fz := types.Fuzzified{{0.3}, {0.8}}

	tests := []struct {
		name   string
		tokens []types.Token
		is     error
	}{
		{name: "attribute outside layout", tokens: []types.Token{5, 0, 2, 0}, is: errors.ErrIndexOutOfRange},
		{name: "set outside layout", tokens: []types.Token{0, 4, 2, 0}, is: errors.ErrIndexOutOfRange},
		{name: "no consequent", tokens: []types.Token{0}, is: errors.ErrMalformedRule},
		{name: "dangling operator", tokens: []types.Token{0, 0, types.And, 2, 0}, is: errors.ErrMalformedRule},
		{name: "no antecedent", tokens: []types.Token{2, 0}, is: errors.ErrMalformedRule},
	}

	for _, ev := range evaluators {
		for _, tt := range tests {
			t.Run(ev.Name()+"/"+tt.name, func(t *testing.T) {
				_, err := ev.Fire(types.CompiledRule{Tokens: tt.tokens}, fz)
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
				assert.True(t, errors.HasAssertionFailure(err))
			})
		}
	}
}

func TestReduce(t *testing.T) {
	v := func(x float64) item { return item{value: x} }
	and := item{op: types.And}
	or := item{op: types.Or}

	got, err := reduce([]item{v(0.4)})
	require.NoError(t, err)
	assert.Equal(t, 0.4, got)

	got, err = reduce([]item{v(0.4), and, v(0.9)})
	require.NoError(t, err)
	assert.Equal(t, 0.4, got)

	// chains are rejected by the compiler; the reduction keeps the last value produced
	got, err = reduce([]item{v(0.1), and, v(0.5), or, v(0.2)})
	require.NoError(t, err)
	assert.Equal(t, 0.5, got)

	_, err = reduce(nil)
	assert.True(t, errors.Is(err, errors.ErrMalformedRule))
	_, err = reduce([]item{and, v(0.1)})
	assert.True(t, errors.Is(err, errors.ErrMalformedRule))
}

func TestParseTree(t *testing.T) {
	s := abc(t)

	root, err := Parse(compile(t, s, "if a is not p or b is q then c is s"))
	require.NoError(t, err)
	assert.Equal(t, "(NOT (0 0) OR (1 0))", root.String())

	chain, err := Parse(types.CompiledRule{Tokens: []types.Token{0, 0, types.And, 1, 0, types.Or, 0, 0, 2, 0}})
	require.NoError(t, err)
	assert.Equal(t, "(((0 0) AND (1 0)) OR (0 0))", chain.String())
}

func TestByName(t *testing.T) {
	ev, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, NameFlat, ev.Name())

	ev, err = ByName("Tree")
	require.NoError(t, err)
	assert.Equal(t, NameTree, ev.Name())

	_, err = ByName("fuzzy")
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "flat, tree")
}

func TestEvaluateWrapsRuleContext(t *testing.T) {
	rules := []types.CompiledRule{{Source: "broken", Tokens: []types.Token{9, 0, 2, 0}}}

	_, err := Evaluate(Flat{}, rules, types.Fuzzified{{0.3}, {0.8}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `rule 0 "broken"`)
	assert.True(t, errors.Is(err, errors.ErrIndexOutOfRange))
	assert.True(t, errors.HasAssertionFailure(err))
}
