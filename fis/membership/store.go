// Package membership holds attribute and fuzzy-set definitions and turns
// crisp values into membership degrees.
//
// A Store is immutable after NewStore. Attribute and set order is the
// index layout used by compiled rules: attribute i, set j in a token stream
// always means Attribute(i).Sets[j]. The last declared attribute is the
// consequent (output) attribute; the others are antecedents and each takes
// one crisp input value.
package membership

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis/types"
)

// FuzzySet is a named triangular membership function
type FuzzySet struct {
	Name  string   `json:"name"`
	Shape Triangle `json:"shape"`
}

// Attribute is a named, ordered collection of fuzzy sets
type Attribute struct {
	Name string     `json:"name"`
	Sets []FuzzySet `json:"sets"`
}

// SetNames returns the attribute's set names in declaration order
func (a Attribute) SetNames() []string {
	names := make([]string, len(a.Sets))
	for i, s := range a.Sets {
		names[i] = s.Name
	}
	return names
}

// Store is the immutable lookup table from names to indices and from
// crisp values to membership degrees.
type Store struct {
	attrs     []Attribute
	attrIndex map[string]int
	setIndex  []map[string]int
	print     string
}

// NewStore validates attrs and builds the lookup tables.
// The attributes are copied; later changes to the arguments do not affect the store.
func NewStore(attrs ...Attribute) (*Store, error) {
	if len(attrs) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "at least one attribute is required")
	}

	s := &Store{
		attrs:     make([]Attribute, len(attrs)),
		attrIndex: make(map[string]int, len(attrs)),
		setIndex:  make([]map[string]int, len(attrs)),
	}

	for i, a := range attrs {
		if strings.TrimSpace(a.Name) == "" {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "attribute %d has an empty name", i)
		}
		if strings.ContainsAny(a.Name, " \t\r\n") {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "attribute name %q contains whitespace", a.Name)
		}
		if _, dup := s.attrIndex[a.Name]; dup {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "attribute %q declared twice", a.Name)
		}
		if len(a.Sets) == 0 {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "attribute %q has no fuzzy sets", a.Name)
		}

		sets := make([]FuzzySet, len(a.Sets))
		index := make(map[string]int, len(a.Sets))
		for j, fs := range a.Sets {
			if strings.TrimSpace(fs.Name) == "" {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "set %d of attribute %q has an empty name", j, a.Name)
			}
			if strings.ContainsAny(fs.Name, " \t\r\n") {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "set name %q of attribute %q contains whitespace", fs.Name, a.Name)
			}
			if _, dup := index[fs.Name]; dup {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "set %q declared twice in attribute %q", fs.Name, a.Name)
			}
			if err := fs.Shape.Validate(); err != nil {
				return nil, errors.Wrapf(err, "%s/%s", a.Name, fs.Name)
			}
			sets[j] = fs
			index[fs.Name] = j
		}

		s.attrs[i] = Attribute{Name: a.Name, Sets: sets}
		s.attrIndex[a.Name] = i
		s.setIndex[i] = index
	}

	s.print = fingerprint(s.attrs)
	return s, nil
}

// Len returns the number of declared attributes
func (s *Store) Len() int {
	return len(s.attrs)
}

// ConsequentIndex returns the index of the output attribute (the last one declared)
func (s *Store) ConsequentIndex() int {
	return len(s.attrs) - 1
}

// Antecedents returns the number of input attributes
func (s *Store) Antecedents() int {
	return len(s.attrs) - 1
}

// AttributeIndex resolves an attribute name. Names match exactly.
func (s *Store) AttributeIndex(name string) (int, bool) {
	i, ok := s.attrIndex[name]
	return i, ok
}

// SetIndex resolves a set name within attribute attr
func (s *Store) SetIndex(attr int, name string) (int, bool) {
	if attr < 0 || attr >= len(s.setIndex) {
		return 0, false
	}
	j, ok := s.setIndex[attr][name]
	return j, ok
}

// Attribute returns the definition at index i.
func (s *Store) Attribute(i int) (Attribute, error) {
	if i < 0 || i >= len(s.attrs) {
		return Attribute{}, errors.NewIndexError("attribute %d outside layout of %d attributes", i, len(s.attrs))
	}
	return s.attrs[i], nil
}

// Names returns the attribute names in declaration order
func (s *Store) Names() []string {
	names := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		names[i] = a.Name
	}
	return names
}

// Attributes returns a copy of all definitions in declaration order
func (s *Store) Attributes() []Attribute {
	out := make([]Attribute, len(s.attrs))
	for i, a := range s.attrs {
		out[i] = Attribute{Name: a.Name, Sets: append([]FuzzySet(nil), a.Sets...)}
	}
	return out
}

// Fuzzify returns the degrees of x in each set of attribute attr, in set order.
func (s *Store) Fuzzify(attr int, x float64) ([]float64, error) {
	if attr < 0 || attr >= len(s.attrs) {
		return nil, errors.NewIndexError("attribute %d outside layout of %d attributes", attr, len(s.attrs))
	}
	sets := s.attrs[attr].Sets
	degrees := make([]float64, len(sets))
	for j, fs := range sets {
		degrees[j] = fs.Shape.Degree(x)
	}
	return degrees, nil
}

// FuzzifyInput fuzzifies one crisp value per antecedent attribute, in
// declaration order. The consequent attribute takes no input.
func (s *Store) FuzzifyInput(crisp []float64) (types.Fuzzified, error) {
	if len(crisp) != s.Antecedents() {
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidInput, "got %d values for %d input attributes", len(crisp), s.Antecedents()),
			"supply values for %s", strings.Join(s.Names()[:s.Antecedents()], ", "))
	}
	fz := make(types.Fuzzified, len(crisp))
	for i, x := range crisp {
		degrees, err := s.Fuzzify(i, x)
		if err != nil {
			return nil, err
		}
		fz[i] = degrees
	}
	return fz, nil
}

// Fingerprint identifies the index layout (attribute and set names, in order).
// Two stores with the same fingerprint compile any rule to the same tokens.
func (s *Store) Fingerprint() string {
	return s.print
}

func fingerprint(attrs []Attribute) string {
	h := sha256.New()
	for _, a := range attrs {
		h.Write([]byte(a.Name))
		h.Write([]byte{0})
		for _, fs := range a.Sets {
			h.Write([]byte(fs.Name))
			h.Write([]byte{1})
		}
		h.Write([]byte{2})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
