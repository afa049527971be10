package eval

import (
	"sort"

	"github.com/teranos/mamdani/fis/types"
)

// Aggregate combines firing results by consequent set index, keeping the
// maximum degree per set, in ascending set order.
//
// The key is the set index alone. That is only sound because every rule
// concludes the same (last declared) attribute, which the compiler enforces.
func Aggregate(results []types.FiringResult) types.Aggregation {
	best := make(map[int]float64, len(results))
	for _, r := range results {
		if d, seen := best[r.Set]; !seen || r.Degree > d {
			best[r.Set] = r.Degree
		}
	}

	out := make(types.Aggregation, 0, len(best))
	for set, d := range best {
		out = append(out, types.SetDegree{Set: set, Degree: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Set < out[j].Set })
	return out
}
