package am

import (
	"slices"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis/eval"
)

var themes = []string{"everforest", "gruvbox"}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Empty evaluator means flat
	if c.Engine.Evaluator != "" {
		if _, err := eval.ByName(c.Engine.Evaluator); err != nil {
			return errors.Wrap(err, "engine.evaluator")
		}
	}

	// Debounce: 0 = default, negative = invalid
	if c.RuleBase.WatchDebounceMS < 0 {
		return errors.Newf("rulebase.watch_debounce_ms must be >= 0, got %d", c.RuleBase.WatchDebounceMS)
	}

	if c.Log.Theme != "" && !slices.Contains(themes, c.Log.Theme) {
		return errors.WithHintf(
			errors.Newf("log.theme %q is not a known theme", c.Log.Theme),
			"valid themes: everforest, gruvbox")
	}

	return nil
}
