package parser

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/mamdani/errors"
)

// ErrorContext indicates where a compilation error will be displayed
type ErrorContext string

const (
	// ErrorContextTerminal renders errors with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain renders errors without ANSI codes (logs, JSON output)
	ErrorContextPlain ErrorContext = "plain"
)

// ErrorKind categorizes compilation errors for programmatic handling
type ErrorKind string

const (
	KindUnknownAttribute ErrorKind = "unknown_attribute" // Word is not a declared attribute
	KindUnknownSet       ErrorKind = "unknown_set"       // Word is not a set of the preceding attribute
	KindMalformed        ErrorKind = "malformed"         // Rule text violates the grammar
)

// sentinel maps a kind onto the error it unwraps to
func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnknownAttribute:
		return errors.ErrUnknownAttribute
	case KindUnknownSet:
		return errors.ErrUnknownSet
	default:
		return errors.ErrMalformedRule
	}
}

// CompilationError reports why a rule could not be compiled.
// It names the offending rule and word, and unwraps to one of
// errors.ErrUnknownAttribute, errors.ErrUnknownSet or errors.ErrMalformedRule.
type CompilationError struct {
	Kind        ErrorKind // Error category
	Message     string    // Human-readable message
	Rule        string    // Rule text being compiled
	RuleIndex   int       // Position within the rule base, -1 when compiled alone
	Word        string    // Offending word, empty when the rule ended early
	Position    int       // Word position where error occurred, -1 if none
	TokenCount  int       // Total words in the rule
	Range       *Range    // Source range of the offending word (optional)
	Suggestions []string  // Possible fixes
}

// NewCompilationError creates a CompilationError with the given kind and message
func NewCompilationError(kind ErrorKind, message string) *CompilationError {
	return &CompilationError{
		Kind:      kind,
		Message:   message,
		RuleIndex: -1,
		Position:  -1,
	}
}

// Error implements error using the plain format
func (e *CompilationError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// Unwrap for errors.Is/As compatibility
func (e *CompilationError) Unwrap() error {
	return e.Kind.sentinel()
}

// FormatError generates a context-appropriate error message
func (e *CompilationError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlainError()
	}
	return e.formatTerminalError()
}

func (e *CompilationError) formatPlainError() string {
	var b strings.Builder
	if e.RuleIndex >= 0 {
		fmt.Fprintf(&b, "rule %d: ", e.RuleIndex)
	}
	b.WriteString(e.Message)
	if e.Position >= 0 && e.TokenCount > 0 {
		fmt.Fprintf(&b, " (at word %d/%d)", e.Position+1, e.TokenCount)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, ". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

func (e *CompilationError) formatTerminalError() string {
	var b strings.Builder
	if e.RuleIndex >= 0 {
		b.WriteString(pterm.Gray(fmt.Sprintf("rule %d: ", e.RuleIndex)))
	}
	b.WriteString(pterm.Red(e.Message))

	if e.Rule != "" {
		fmt.Fprintf(&b, "\n\n  %s\n", e.Rule)
		if e.Range != nil && e.Range.Start.Line == 1 {
			width := e.Range.End.Character - e.Range.Start.Character
			fmt.Fprintf(&b, "  %s%s", strings.Repeat(" ", e.Range.Start.Character), pterm.Yellow(strings.Repeat("^", max(width, 1))))
		}
	}

	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, "\n\n%s", pterm.Green("Suggestions:"))
		for _, suggestion := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", suggestion)
		}
	}
	return b.String()
}

// WithRule records the rule text and its index in the rule base
func (e *CompilationError) WithRule(text string, index int) *CompilationError {
	e.Rule = text
	e.RuleIndex = index
	return e
}

// WithWord records the offending word and where it sits in the rule
func (e *CompilationError) WithWord(w word, pos, total int) *CompilationError {
	e.Word = w.value
	e.Position = pos
	e.TokenCount = total
	r := w.rng
	e.Range = &r
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *CompilationError) WithSuggestion(suggestion string) *CompilationError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// AsCompilationError extracts a *CompilationError from err's chain
func AsCompilationError(err error) (*CompilationError, bool) {
	var ce *CompilationError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
