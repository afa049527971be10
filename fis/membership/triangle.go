package membership

import (
	"math"

	"github.com/teranos/mamdani/errors"
)

// Triangle is a triangular membership function with breakpoints Lo <= Mid <= Hi.
// Lo == Mid or Mid == Hi gives a right triangle whose peak sits on the vertical edge.
type Triangle struct {
	Lo  float64 `json:"lo" yaml:"lo" toml:"lo"`
	Mid float64 `json:"mid" yaml:"mid" toml:"mid"`
	Hi  float64 `json:"hi" yaml:"hi" toml:"hi"`
}

// Tri is shorthand for Triangle{lo, mid, hi}.
func Tri(lo, mid, hi float64) Triangle {
	return Triangle{Lo: lo, Mid: mid, Hi: hi}
}

// Degree returns the membership degree of x, always in [0,1].
func (t Triangle) Degree(x float64) float64 {
	if math.IsNaN(x) || x < t.Lo || x > t.Hi {
		return 0
	}
	if x <= t.Mid {
		if t.Mid == t.Lo {
			// x == Lo == Mid here
			return 1
		}
		return (x - t.Lo) / (t.Mid - t.Lo)
	}
	if t.Hi == t.Mid {
		return 1
	}
	return (t.Hi - x) / (t.Hi - t.Mid)
}

// Validate rejects non-finite, unordered or zero-width triangles.
func (t Triangle) Validate() error {
	for _, v := range [...]float64{t.Lo, t.Mid, t.Hi} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(errors.ErrDegenerateShape, "breakpoints [%g %g %g] must be finite", t.Lo, t.Mid, t.Hi)
		}
	}
	if t.Lo > t.Mid || t.Mid > t.Hi {
		return errors.WithHint(
			errors.Wrapf(errors.ErrDegenerateShape, "breakpoints [%g %g %g] are not ordered", t.Lo, t.Mid, t.Hi),
			"breakpoints must satisfy lo <= mid <= hi")
	}
	if t.Lo == t.Hi {
		return errors.WithHint(
			errors.Wrapf(errors.ErrDegenerateShape, "breakpoints [%g %g %g] have zero width", t.Lo, t.Mid, t.Hi),
			"widen the triangle so that lo < hi")
	}
	return nil
}
