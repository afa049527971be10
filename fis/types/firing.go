package types

// Fuzzified holds the membership degrees of one crisp input vector,
// indexed by antecedent attribute and then by fuzzy-set order.
// It is built fresh for every evaluation and never mutated afterwards.
type Fuzzified [][]float64

// Lookup returns the degree for (attribute, set).
// ok is false when either index falls outside the fuzzified layout.
func (f Fuzzified) Lookup(attr, set int) (degree float64, ok bool) {
	if attr < 0 || attr >= len(f) {
		return 0, false
	}
	sets := f[attr]
	if set < 0 || set >= len(sets) {
		return 0, false
	}
	return sets[set], true
}

// FiringResult is one rule's output for one input vector
type FiringResult struct {
	Attribute int     `json:"attribute"` // Consequent attribute index
	Set       int     `json:"set"`       // Consequent fuzzy-set index
	Degree    float64 `json:"degree"`    // Firing strength in [0,1]
}

// SetDegree is one entry of an aggregated output
type SetDegree struct {
	Set    int     `json:"set"`
	Name   string  `json:"name,omitempty"` // Filled in by callers that know the layout
	Degree float64 `json:"degree"`
}

// Aggregation is the aggregated membership-degree vector over output sets,
// ordered by ascending set index. Only sets concluded by at least one rule appear.
type Aggregation []SetDegree

// Map returns the aggregation as set index -> degree
func (a Aggregation) Map() map[int]float64 {
	m := make(map[int]float64, len(a))
	for _, sd := range a {
		m[sd.Set] = sd.Degree
	}
	return m
}

// Degree returns the aggregated degree for set, and whether any rule concluded it
func (a Aggregation) Degree(set int) (float64, bool) {
	for _, sd := range a {
		if sd.Set == set {
			return sd.Degree, true
		}
	}
	return 0, false
}
