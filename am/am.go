// Package am loads mamdani's configuration ("am" is what the tool is).
//
// Values merge from, lowest to highest precedence: built-in defaults,
// /etc/mamdani/am.toml, ~/.mamdani/am.toml, the nearest am.toml found
// walking up from the working directory, and MAMDANI_* environment
// variables (MAMDANI_ENGINE_EVALUATOR=tree sets engine.evaluator).
package am

// Config represents the mamdani configuration
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine" toml:"engine" yaml:"engine" json:"engine"`
	RuleBase RuleBaseConfig `mapstructure:"rulebase" toml:"rulebase" yaml:"rulebase" json:"rulebase"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" yaml:"database" json:"database"`
	Log      LogConfig      `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// EngineConfig configures inference
type EngineConfig struct {
	Evaluator string `mapstructure:"evaluator" toml:"evaluator" yaml:"evaluator" json:"evaluator"` // flat (default) or tree
}

// RuleBaseConfig configures where rule bases come from
type RuleBaseConfig struct {
	Path            string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`                           // Default rule-base file for commands given none
	WatchDebounceMS int    `mapstructure:"watch_debounce_ms" toml:"watch_debounce_ms" yaml:"watch_debounce_ms" json:"watch_debounce_ms"` // Coalescing window for `mamdani watch`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path              string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`
	RecordEvaluations bool   `mapstructure:"record_evaluations" toml:"record_evaluations" yaml:"record_evaluations" json:"record_evaluations"` // Default for `eval --record`
}

// LogConfig configures console logging
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Theme string `mapstructure:"theme" toml:"theme" yaml:"theme" json:"theme"` // everforest or gruvbox
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "MAMDANI"
