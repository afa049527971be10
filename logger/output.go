package logger

// OutputCategory defines a category of output that can be enabled/disabled.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Aggregations, token listings, tables
	OutputErrors                        // Errors with hints

	// Level 1 (-v)
	OutputReload   // Rule base reloaded by the watcher
	OutputRecorded // Evaluation stored, rule base saved

	// Level 2 (-vv)
	OutputFuzzified // Fuzzified input vectors
	OutputTiming    // Evaluation timing
	OutputConfig    // Config values loaded

	// Level 3 (-vvv)
	OutputRuleFiring // Per-rule firing results
	OutputSQLQueries // Individual SQL statements

	// Level 4 (-vvvv)
	OutputTokens // Compiled token sequences
)

var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputReload:     VerbosityInfo,
	OutputRecorded:   VerbosityInfo,
	OutputFuzzified:  VerbosityDebug,
	OutputTiming:     VerbosityDebug,
	OutputConfig:     VerbosityDebug,
	OutputRuleFiring: VerbosityTrace,
	OutputSQLQueries: VerbosityTrace,
	OutputTokens:     VerbosityAll,
}

var categoryNames = map[OutputCategory]string{
	OutputResults:    "results",
	OutputErrors:     "errors",
	OutputReload:     "reload",
	OutputRecorded:   "recorded",
	OutputFuzzified:  "fuzzified",
	OutputTiming:     "timing",
	OutputConfig:     "config",
	OutputRuleFiring: "rule-firing",
	OutputSQLQueries: "sql",
	OutputTokens:     "tokens",
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
