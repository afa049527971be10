package am

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Default values
const (
	DefaultEvaluator       = "flat"
	DefaultRuleBasePath    = "rulebase.yaml"
	DefaultWatchDebounceMS = 500
	DefaultDatabasePath    = "mamdani.db"
	DefaultLogTheme        = "everforest"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("engine.evaluator", DefaultEvaluator)

	v.SetDefault("rulebase.path", DefaultRuleBasePath)
	v.SetDefault("rulebase.watch_debounce_ms", DefaultWatchDebounceMS)

	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("database.record_evaluations", false)

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", DefaultLogTheme)
}

// BindEnvVars binds the keys users most often override to their environment variables
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("engine.evaluator", EnvPrefix+"_ENGINE_EVALUATOR")
	v.BindEnv("rulebase.path", EnvPrefix+"_RULEBASE_PATH")
	v.BindEnv("database.path", EnvPrefix+"_DATABASE_PATH")
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return DefaultDatabasePath
	}
	return c.Database.Path
}

// GetLogTheme returns the log theme (default: everforest)
func (c *Config) GetLogTheme() string {
	if c.Log.Theme == "" {
		return DefaultLogTheme
	}
	return c.Log.Theme
}

// WatchDebounce returns the watch debounce as a duration
func (c *Config) WatchDebounce() time.Duration {
	if c.RuleBase.WatchDebounceMS <= 0 {
		return DefaultWatchDebounceMS * time.Millisecond
	}
	return time.Duration(c.RuleBase.WatchDebounceMS) * time.Millisecond
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Engine: {Evaluator: %s}, RuleBase: %s, Database: %s}",
		c.Engine.Evaluator, c.RuleBase.Path, c.Database.Path)
}
