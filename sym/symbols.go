// Package sym defines the glyphs used in mamdani CLI output and as the
// "symbol" field of structured logs. Glyphs are stable across commands.
package sym

// Command glyphs.
const (
	Rule      = "⟶" // compile: rule text to tokens
	Fuzzify   = "≈" // fuzzify: crisp value to membership degrees
	Aggregate = "⋁" // eval: fire rules and aggregate by maximum
	Watch     = "꩜" // watch: re-evaluate on rule-base changes
	DB        = "⊔" // db: persisted rule bases and evaluation history
	AM        = "≡" // am: configuration
)

// Operator glyphs, used when rendering expression trees.
const (
	Not = "¬"
	And = "∧"
	Or  = "∨"
)

// System markers.
const (
	Reload = "✿" // rule base reloaded
	Stop   = "❀" // watcher stopped
)

// SymbolToCommand maps glyph strings to their command equivalents.
var SymbolToCommand = map[string]string{
	Rule:      "compile",
	Fuzzify:   "fuzzify",
	Aggregate: "eval",
	Watch:     "watch",
	DB:        "db",
	AM:        "am",
}

// CommandToSymbol maps commands to their glyphs.
var CommandToSymbol = map[string]string{
	"compile": Rule,
	"fuzzify": Fuzzify,
	"eval":    Aggregate,
	"watch":   Watch,
	"db":      DB,
	"am":      AM,
}

// CommandDescriptions are one-line explanations used in help output.
var CommandDescriptions = map[string]string{
	"compile": "Compile rules to token sequences",
	"fuzzify": "Membership degrees of a crisp value",
	"eval":    "Fire the rule base and aggregate by maximum",
	"watch":   "Re-evaluate whenever the rule base changes",
	"db":      "Stored rule bases and evaluation history",
	"am":      "Effective configuration",
}

// Operator returns the glyph for an operator keyword ("not", "and", "or").
func Operator(keyword string) string {
	switch keyword {
	case "not":
		return Not
	case "and":
		return And
	case "or":
		return Or
	}
	return ""
}

// Short prefixes a command's help text with its glyph.
func Short(command string) string {
	return CommandToSymbol[command] + " " + CommandDescriptions[command]
}
