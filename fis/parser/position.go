package parser

// Position is a location in rule text.
// Uses LSP conventions: 1-based line numbers, 0-based character offsets
type Position struct {
	Line      int `json:"line"`      // 1-based line number
	Character int `json:"character"` // 0-based character offset within line
	Offset    int `json:"offset"`    // 0-based byte offset in entire source
}

// Range is the span of one word in rule text
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// PositionTracker maintains line/column/offset state during tokenization
type PositionTracker struct {
	line      int
	character int
	offset    int
}

// NewPositionTracker creates a tracker at the beginning of the source
func NewPositionTracker() *PositionTracker {
	return &PositionTracker{line: 1}
}

// Advance updates position after consuming text
func (pt *PositionTracker) Advance(text string) {
	for _, ch := range text {
		if ch == '\n' {
			pt.line++
			pt.character = 0
		} else {
			pt.character++
		}
		pt.offset += len(string(ch))
	}
}

// Mark returns the current position
func (pt *PositionTracker) Mark() Position {
	return Position{Line: pt.line, Character: pt.character, Offset: pt.offset}
}
