package am

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), DefaultDirPermissions))
	require.NoError(t, os.WriteFile(path, []byte(content), DefaultFilePermissions))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "flat", cfg.Engine.Evaluator)
	assert.Equal(t, "rulebase.yaml", cfg.RuleBase.Path)
	assert.Equal(t, 500, cfg.RuleBase.WatchDebounceMS)
	assert.Equal(t, "mamdani.db", cfg.Database.Path)
	assert.False(t, cfg.Database.RecordEvaluations)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, "everforest", cfg.Log.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestMergeConfigFiles(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	dir := t.TempDir()
	system := writeConfig(t, dir, "etc/am.toml", `
[engine]
evaluator = "tree"

[database]
path = "/var/lib/mamdani.db"
`)
	user := writeConfig(t, dir, "home/am.toml", `
[rulebase]
path = "cars.yaml"
watch_debounce_ms = 100
`)
	project := writeConfig(t, dir, "project/am.toml", `
[engine]
evaluator = "flat"

[log]
theme = "gruvbox"
`)

	v := newViper()
	mergeConfigFiles(v, []layer{
		{SourceSystem, system},
		{SourceUser, user},
		{SourceUser, filepath.Join(dir, "missing.toml")},
		{SourceProject, project},
	})

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "flat", cfg.Engine.Evaluator, "project overrides system")
	assert.Equal(t, "/var/lib/mamdani.db", cfg.Database.Path)
	assert.Equal(t, "cars.yaml", cfg.RuleBase.Path)
	assert.Equal(t, 100*time.Millisecond, cfg.WatchDebounce())
	assert.Equal(t, "gruvbox", cfg.GetLogTheme())
	assert.False(t, cfg.Database.RecordEvaluations, "unset keys keep defaults")

	assert.Equal(t, SourceInfo{Source: SourceProject, Path: project}, ConfigSources["engine.evaluator"])
	assert.Equal(t, SourceSystem, ConfigSources["database.path"].Source)
	assert.Equal(t, SourceUser, ConfigSources["rulebase.watch_debounce_ms"].Source)
}

func TestEnvironmentOverridesFiles(t *testing.T) {
	t.Cleanup(Reset)
	Reset()
	t.Setenv("MAMDANI_ENGINE_EVALUATOR", "tree")
	t.Setenv("MAMDANI_LOG_JSON", "true")

	project := writeConfig(t, t.TempDir(), "am.toml", "[engine]\nevaluator = \"flat\"\n")

	v := newViper()
	mergeConfigFiles(v, []layer{{SourceProject, project}})

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, "tree", cfg.Engine.Evaluator)
	assert.True(t, cfg.Log.JSON)

	settings := map[string]SettingInfo{}
	for _, s := range settingsWithSources(v, ConfigSources) {
		settings[s.Key] = s
	}
	assert.Equal(t, SourceEnvironment, settings["engine.evaluator"].Source)
	assert.Equal(t, "MAMDANI_ENGINE_EVALUATOR", settings["engine.evaluator"].SourcePath)
	assert.Equal(t, SourceDefault, settings["database.path"].Source)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "zero config is valid", config: Config{}},
		{name: "tree evaluator", config: Config{Engine: EngineConfig{Evaluator: "tree"}}},
		{name: "unknown evaluator", config: Config{Engine: EngineConfig{Evaluator: "sugeno"}}, wantErr: "engine.evaluator"},
		{name: "zero debounce uses default", config: Config{RuleBase: RuleBaseConfig{WatchDebounceMS: 0}}},
		{name: "negative debounce", config: Config{RuleBase: RuleBaseConfig{WatchDebounceMS: -1}}, wantErr: "watch_debounce_ms"},
		{name: "unknown theme", config: Config{Log: LogConfig{Theme: "solarized"}}, wantErr: "log.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	path := writeConfig(t, dir, "am.toml", "[database]\nrecord_evaluations = true\n")
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Database.RecordEvaluations)
	assert.Equal(t, DefaultEvaluator, cfg.Engine.Evaluator)

	bad := writeConfig(t, dir, "bad.toml", "[engine]\nevaluator = \"sugeno\"\n")
	_, err = LoadFromFile(bad)
	assert.Error(t, err)

	_, err = LoadFromFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "am.toml")

	cfg := &Config{
		Engine:   EngineConfig{Evaluator: "tree"},
		RuleBase: RuleBaseConfig{Path: "cars.toml", WatchDebounceMS: 250},
		Database: DatabaseConfig{Path: "x.db", RecordEvaluations: true},
		Log:      LogConfig{Theme: "gruvbox"},
	}
	require.NoError(t, cfg.WriteFile(path))

	back, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)

	// Second and third writes rotate backups
	cfg.Engine.Evaluator = "flat"
	require.NoError(t, cfg.WriteFile(path))
	require.NoError(t, cfg.WriteFile(path))

	assert.FileExists(t, path+".back1")
	assert.FileExists(t, path+".back2")
	assert.NoFileExists(t, path+".back3")

	first, err := LoadFromFile(path + ".back2")
	require.NoError(t, err)
	assert.Equal(t, "tree", first.Engine.Evaluator)
}

func TestMarshal(t *testing.T) {
	cfg := &Config{Engine: EngineConfig{Evaluator: "flat"}}
	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "[engine]")
	assert.Contains(t, string(data), "evaluator")
	assert.Contains(t, cfg.String(), "Evaluator: flat")
}
