package config

import (
	"runtime"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/beetlebugorg/airspace/pkg/airspace"
)

// Config holds the full application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Parse  ParseConfig  `yaml:"parse" mapstructure:"parse"`
	Load   LoadConfig   `yaml:"load" mapstructure:"load"`
	Label  LabelConfig  `yaml:"label" mapstructure:"label"`
	Select SelectConfig `yaml:"select" mapstructure:"select"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ParseConfig configures the format parsers.
type ParseConfig struct {
	ArcStepDegrees float64 `yaml:"arc_step_degrees" mapstructure:"arc_step_degrees"`
}

// LoadConfig configures catalog loading.
type LoadConfig struct {
	Parallel bool `yaml:"parallel" mapstructure:"parallel"`
	Workers  int  `yaml:"workers" mapstructure:"workers"`
}

// LabelConfig configures label text.
type LabelConfig struct {
	Width  int  `yaml:"width" mapstructure:"width"`
	Budget int  `yaml:"budget" mapstructure:"budget"`
	Radio  bool `yaml:"radio" mapstructure:"radio"`
}

// SelectConfig configures the selection cache.
type SelectConfig struct {
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"`
}

// Load reads configuration from airspace.yaml in the working directory, if
// present, and AIRSPACE_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("airspace")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AIRSPACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("parse.arc_step_degrees", 5.0)
	v.SetDefault("load.parallel", true)
	v.SetDefault("load.workers", runtime.NumCPU())
	v.SetDefault("label.width", airspace.DefaultLabelWidth)
	v.SetDefault("label.budget", 0)
	v.SetDefault("label.radio", false)
	v.SetDefault("select.cache_size", airspace.DefaultSelectCacheSize)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var problems []string

	if !(c.Parse.ArcStepDegrees >= 0.1 && c.Parse.ArcStepDegrees <= 90) {
		problems = append(problems, "parse.arc_step_degrees must be in [0.1, 90]")
	}
	if c.Load.Workers < 0 {
		problems = append(problems, "load.workers must not be negative")
	}
	if c.Label.Width < 0 {
		problems = append(problems, "label.width must not be negative")
	}
	if c.Label.Budget < 0 {
		problems = append(problems, "label.budget must not be negative")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// LoadOptions converts the parse and load sections.
func (c *Config) LoadOptions() airspace.LoadOptions {
	return airspace.LoadOptions{
		ArcStep:  c.Parse.ArcStepDegrees,
		Parallel: c.Load.Parallel,
		Workers:  c.Load.Workers,
	}
}

// StoreOptions converts the configuration for a session store.
func (c *Config) StoreOptions() airspace.StoreOptions {
	return airspace.StoreOptions{
		Load:      c.LoadOptions(),
		CacheSize: c.Select.CacheSize,
		Logger:    zap.L(),
	}
}

// LabelOptions converts the label section.
func (c *Config) LabelOptions() airspace.LabelOptions {
	return airspace.LabelOptions{
		Width:  c.Label.Width,
		Budget: c.Label.Budget,
		Radio:  c.Label.Radio,
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
