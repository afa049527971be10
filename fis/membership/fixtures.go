package membership

// Fixture is a complete rule base used by tests and the bundled example:
// car fuel economy from engine power, weight and model year.
type Fixture struct {
	Attributes []Attribute
	Rules      []string
	Inputs     [][]float64
}

// NewEconomyFixture returns the power/weight/year -> economy rule base
func NewEconomyFixture() *Fixture {
	return &Fixture{
		Attributes: []Attribute{
			{Name: "power", Sets: []FuzzySet{
				{Name: "low", Shape: Tri(-175, 50, 185)},
				{Name: "medium", Shape: Tri(125, 275, 425)},
				{Name: "high", Shape: Tri(350, 500, 725)},
			}},
			{Name: "weight", Sets: []FuzzySet{
				{Name: "light", Shape: Tri(-300, 700, 1300)},
				{Name: "medium", Shape: Tri(1100, 1700, 2200)},
				{Name: "heavy", Shape: Tri(2000, 2700, 3700)},
			}},
			{Name: "year", Sets: []FuzzySet{
				{Name: "old", Shape: Tri(1945, 1970, 1985)},
				{Name: "normal", Shape: Tri(1980, 1995, 2010)},
				{Name: "new", Shape: Tri(2005, 2020, 2045)},
			}},
			{Name: "economy", Sets: []FuzzySet{
				{Name: "high", Shape: Tri(-8, 3, 8.704)},
				{Name: "medium", Shape: Tri(6.259, 12, 18)},
				{Name: "low", Shape: Tri(16, 25, 36)},
			}},
		},
		Rules: []string{
			"if weight is light and year is new then economy is high",
			"if power is low then economy is high",
			"if power is medium and weight is not heavy then economy is medium",
			"if power is medium and year is normal then economy is medium",
			"if weight is heavy and year is not new then economy is low",
			"if power is high then economy is low",
		},
		Inputs: [][]float64{
			{275, 1700, 1995},
			{100, 1200, 2018},
			{350, 2200, 1981},
			{126, 700, 2013},
		},
	}
}

// Store builds the fixture's membership store. The fixture is known-valid.
func (f *Fixture) Store() *Store {
	s, err := NewStore(f.Attributes...)
	if err != nil {
		panic(err)
	}
	return s
}
