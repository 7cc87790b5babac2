package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beetlebugorg/airspace/pkg/airspace"
)

// inTempDir runs the test from an empty directory so no airspace.yaml is
// picked up by accident.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.InDelta(t, 5.0, cfg.Parse.ArcStepDegrees, 0.001)
	assert.True(t, cfg.Load.Parallel)
	assert.Equal(t, runtime.NumCPU(), cfg.Load.Workers)
	assert.Equal(t, airspace.DefaultLabelWidth, cfg.Label.Width)
	assert.Equal(t, 0, cfg.Label.Budget)
	assert.False(t, cfg.Label.Radio)
	assert.Equal(t, airspace.DefaultSelectCacheSize, cfg.Select.CacheSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := inTempDir(t)

	yaml := `
log:
  level: debug
  format: console
parse:
  arc_step_degrees: 2.5
load:
  parallel: false
label:
  width: 16
  radio: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "airspace.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.InDelta(t, 2.5, cfg.Parse.ArcStepDegrees, 0.001)
	assert.False(t, cfg.Load.Parallel)
	assert.Equal(t, 16, cfg.Label.Width)
	assert.True(t, cfg.Label.Radio)
	// Defaults still apply for unset values
	assert.Equal(t, airspace.DefaultSelectCacheSize, cfg.Select.CacheSize)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := inTempDir(t)

	yaml := `
log:
  level: debug
label:
  width: 16
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "airspace.yaml"), []byte(yaml), 0644))

	t.Setenv("AIRSPACE_LOG_LEVEL", "warn")
	t.Setenv("AIRSPACE_LABEL_WIDTH", "30")
	t.Setenv("AIRSPACE_SELECT_CACHE_SIZE", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Label.Width)
	assert.Equal(t, 8, cfg.Select.CacheSize)
}

func TestLoadBadFile(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "airspace.yaml"), []byte("log: [unclosed\n"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Parse: ParseConfig{ArcStepDegrees: 5},
			Load:  LoadConfig{Workers: 2},
			Label: LabelConfig{Width: 24},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero arc step", func(c *Config) { c.Parse.ArcStepDegrees = 0 }, "parse.arc_step_degrees"},
		{"huge arc step", func(c *Config) { c.Parse.ArcStepDegrees = 120 }, "parse.arc_step_degrees"},
		{"tiny arc step", func(c *Config) { c.Parse.ArcStepDegrees = 0.001 }, "parse.arc_step_degrees"},
		{"negative workers", func(c *Config) { c.Load.Workers = -1 }, "load.workers"},
		{"negative width", func(c *Config) { c.Label.Width = -1 }, "label.width"},
		{"negative budget", func(c *Config) { c.Label.Budget = -10 }, "label.budget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := &Config{Load: LoadConfig{Workers: -1}, Label: LabelConfig{Budget: -1}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse.arc_step_degrees")
	assert.Contains(t, err.Error(), "load.workers")
	assert.Contains(t, err.Error(), "label.budget")
}

func TestOptions(t *testing.T) {
	cfg := &Config{
		Parse:  ParseConfig{ArcStepDegrees: 3},
		Load:   LoadConfig{Parallel: true, Workers: 4},
		Label:  LabelConfig{Width: 20, Budget: 300, Radio: true},
		Select: SelectConfig{CacheSize: 16},
	}

	load := cfg.LoadOptions()
	assert.InDelta(t, 3.0, load.ArcStep, 0.001)
	assert.True(t, load.Parallel)
	assert.Equal(t, 4, load.Workers)

	store := cfg.StoreOptions()
	assert.Equal(t, load, store.Load)
	assert.Equal(t, 16, store.CacheSize)
	assert.NotNil(t, store.Logger)

	assert.Equal(t, airspace.LabelOptions{Width: 20, Budget: 300, Radio: true}, cfg.LabelOptions())
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
