package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mamdani/errors"
)

func TestNewStoreValidation(t *testing.T) {
	good := FuzzySet{Name: "p", Shape: Tri(0, 5, 10)}

	tests := []struct {
		name  string
		attrs []Attribute
		is    error
	}{
		{name: "no attributes", attrs: nil, is: errors.ErrInvalidInput},
		{name: "empty name", attrs: []Attribute{{Name: "", Sets: []FuzzySet{good}}}, is: errors.ErrInvalidInput},
		{name: "whitespace in name", attrs: []Attribute{{Name: "top speed", Sets: []FuzzySet{good}}}, is: errors.ErrInvalidInput},
		{name: "duplicate attribute", attrs: []Attribute{{Name: "a", Sets: []FuzzySet{good}}, {Name: "a", Sets: []FuzzySet{good}}}, is: errors.ErrInvalidInput},
		{name: "no sets", attrs: []Attribute{{Name: "a"}}, is: errors.ErrInvalidInput},
		{name: "duplicate set", attrs: []Attribute{{Name: "a", Sets: []FuzzySet{good, good}}}, is: errors.ErrInvalidInput},
		{name: "degenerate shape", attrs: []Attribute{{Name: "a", Sets: []FuzzySet{{Name: "p", Shape: Tri(1, 1, 1)}}}}, is: errors.ErrDegenerateShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStore(tt.attrs...)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, tt.is), "got %v", err)
		})
	}
}

func TestStoreLookups(t *testing.T) {
	s := NewEconomyFixture().Store()

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 3, s.ConsequentIndex())
	assert.Equal(t, 3, s.Antecedents())
	assert.Equal(t, []string{"power", "weight", "year", "economy"}, s.Names())

	i, ok := s.AttributeIndex("year")
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = s.AttributeIndex("Year")
	assert.False(t, ok, "names match exactly")

	j, ok := s.SetIndex(1, "heavy")
	require.True(t, ok)
	assert.Equal(t, 2, j)

	_, ok = s.SetIndex(1, "new")
	assert.False(t, ok)
	_, ok = s.SetIndex(9, "new")
	assert.False(t, ok)

	a, err := s.Attribute(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "medium", "low"}, a.SetNames())

	_, err = s.Attribute(4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIndexOutOfRange))
}

func TestStoreIsolatedFromCaller(t *testing.T) {
	attrs := []Attribute{{Name: "a", Sets: []FuzzySet{{Name: "p", Shape: Tri(0, 5, 10)}}}}
	s, err := NewStore(attrs...)
	require.NoError(t, err)

	attrs[0].Sets[0].Name = "changed"
	got, err := s.Attribute(0)
	require.NoError(t, err)
	assert.Equal(t, "p", got.Sets[0].Name)
}

func TestFuzzify(t *testing.T) {
	s := NewEconomyFixture().Store()

	degrees, err := s.Fuzzify(0, 275)
	require.NoError(t, err)
	require.Len(t, degrees, 3)
	assert.InDelta(t, 0.0, degrees[0], 1e-12)
	assert.InDelta(t, 1.0, degrees[1], 1e-12)
	assert.InDelta(t, 0.0, degrees[2], 1e-12)

	_, err = s.Fuzzify(-1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIndexOutOfRange))
	assert.True(t, errors.HasAssertionFailure(err))
}

func TestFuzzifyInput(t *testing.T) {
	s := NewEconomyFixture().Store()

	fz, err := s.FuzzifyInput([]float64{126, 700, 2013})
	require.NoError(t, err)
	require.Len(t, fz, 3)
	assert.InDelta(t, 1.0, fz[1][0], 1e-12, "weight 700 is the peak of light")

	for _, degrees := range fz {
		for _, d := range degrees {
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, 1.0)
		}
	}

	_, err = s.FuzzifyInput([]float64{126, 700})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Contains(t, errors.FlattenHints(err), "power, weight, year")
}

func TestFingerprint(t *testing.T) {
	f := NewEconomyFixture()
	a := f.Store()
	b := f.Store()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)

	// Shapes do not affect the layout
	f.Attributes[0].Sets[0].Shape = Tri(0, 1, 2)
	assert.Equal(t, a.Fingerprint(), f.Store().Fingerprint())

	// Reordering sets does
	f.Attributes[0].Sets[0], f.Attributes[0].Sets[1] = f.Attributes[0].Sets[1], f.Attributes[0].Sets[0]
	assert.NotEqual(t, a.Fingerprint(), f.Store().Fingerprint())
}
