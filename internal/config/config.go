// Package config loads CLI configuration from an optional YAML file and
// TASKFORM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-taskform/internal/logging"
	"github.com/goliatone/go-taskform/pkg/catalog"
	"github.com/goliatone/go-taskform/pkg/session"
	"github.com/goliatone/go-taskform/pkg/submit"
	"github.com/goliatone/go-taskform/pkg/theme"
)

// EnvPrefix is prepended to every environment override, e.g.
// TASKFORM_SUBMIT_DELAY=250ms.
const EnvPrefix = "TASKFORM"

// Config represents the application configuration.
type Config struct {
	Submit  SubmitConfig  `mapstructure:"submit"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
}

// SubmitConfig holds the simulated submission delays.
type SubmitConfig struct {
	Delay        time.Duration `mapstructure:"delay"`
	SuccessReset time.Duration `mapstructure:"success_reset"`
}

// ThemeConfig selects the preview theme.
type ThemeConfig struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

// CatalogConfig points at an alternate metadata catalog directory. Empty
// means the embedded catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("submit.delay", submit.DefaultDelay.String())
	v.SetDefault("submit.success_reset", session.DefaultSuccessReset.String())

	v.SetDefault("theme.name", theme.DefaultName)
	v.SetDefault("theme.variant", theme.VariantLight)

	v.SetDefault("catalog.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatJSON)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Submit.Delay < 0 {
		return fmt.Errorf("submit delay must not be negative: %s", c.Submit.Delay)
	}
	if c.Submit.SuccessReset < 0 {
		return fmt.Errorf("success reset must not be negative: %s", c.Submit.SuccessReset)
	}
	if strings.TrimSpace(c.Theme.Name) == "" {
		return errors.New("theme name is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// LoadCatalog returns the embedded catalog or the one found under
// Catalog.Path.
func (c *Config) LoadCatalog() (*catalog.Catalog, error) {
	if c.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFS(os.DirFS(c.Catalog.Path))
	if err != nil {
		return nil, fmt.Errorf("config: load catalog %s: %w", c.Catalog.Path, err)
	}
	return cat, nil
}

// SessionOptions translates the submit settings into controller options.
func (c *Config) SessionOptions(logger *zap.Logger) []session.Option {
	if logger == nil {
		logger = zap.NewNop()
	}
	return []session.Option{
		session.WithSubmitter(submit.NewSimulated(
			submit.WithDelay(c.Submit.Delay),
			submit.WithLogger(logger.Named("submit")),
		)),
		session.WithSuccessReset(c.Submit.SuccessReset),
		session.WithLogger(logger.Named("session")),
	}
}

// InitLogger initializes the logger based on configuration.
func (c *Config) InitLogger(verbose bool) (*zap.Logger, error) {
	level := c.Log.Level
	if verbose {
		level = "debug"
	}
	return logging.New(level, c.Log.Format)
}
