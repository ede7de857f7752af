package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keeps runtime settings.
type Config struct {
	// DBPath is the SQLite file; empty means the XDG data directory.
	DBPath string `mapstructure:"db_path"`
	// BreakdownDelay is how long the simulated suggestion service takes.
	BreakdownDelay time.Duration `mapstructure:"breakdown_delay"`
	// TemplateDelay is the pause before a custom template is applied.
	TemplateDelay time.Duration `mapstructure:"template_delay"`
	// DebugLog is a file to write logs to; empty disables logging.
	DebugLog string `mapstructure:"debug_log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BreakdownDelay: 1500 * time.Millisecond,
		TemplateDelay:  800 * time.Millisecond,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tasksplit/config.yaml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tasksplit", "config.yaml")
}

// Load reads path (DefaultPath when empty) and TASKSPLIT_* environment
// overrides on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("tasksplit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("breakdown_delay", cfg.BreakdownDelay)
	v.SetDefault("template_delay", cfg.TemplateDelay)
	v.SetDefault("debug_log", cfg.DebugLog)

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if cfg.BreakdownDelay < 0 || cfg.TemplateDelay < 0 {
		return cfg, fmt.Errorf("delays must not be negative")
	}
	return cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
