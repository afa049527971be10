package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"weight", "weight", 0},
		{"wieght", "weight", 2},
		{"heavy", "heavyy", 1},
		{"power", "tower", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EditDistance(tt.a, tt.b), "%q/%q", tt.a, tt.b)
		assert.Equal(t, tt.want, EditDistance(tt.b, tt.a), "symmetry %q/%q", tt.b, tt.a)
	}
}

func TestSimilar(t *testing.T) {
	names := []string{"power", "weight", "year", "economy"}

	assert.Equal(t, []string{"weight"}, Similar("wieght", names, 2))
	assert.Equal(t, []string{"year"}, Similar("years", names, 0))
	assert.Empty(t, Similar("bogus", names, 1))
	assert.Empty(t, Similar("power", names, 2), "exact matches are not suggestions")
}
