package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const maxWalkDepth = 25

var configNames = []string{"gosequel.yaml", "gosequel.yml"}

// Config is the effective CLI configuration.
type Config struct {
	Dialect          string         `mapstructure:"dialect" json:"dialect"`
	QuoteIdentifiers *bool          `mapstructure:"quote_identifiers" json:"quote_identifiers,omitempty"`
	Database         DatabaseConfig `mapstructure:"database" json:"database"`
	Log              LogConfig      `mapstructure:"log" json:"log"`
}

// DatabaseConfig holds connection settings for run, count and tables.
type DatabaseConfig struct {
	URL string `mapstructure:"url" json:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

// LoadConfig merges defaults, the config file and GOSEQUEL_* environment
// variables, in increasing precedence. It returns the config and the file
// it was read from (empty when none was found).
func LoadConfig(explicitPath string) (*Config, string, error) {
	v := viper.New()

	v.SetDefault("dialect", "generic")
	v.SetDefault("database.url", "")
	v.SetDefault("log.level", "warn")

	v.SetEnvPrefix("GOSEQUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about.
	_ = v.BindEnv("quote_identifiers")

	path, err := findConfigFile(explicitPath)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, path, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, path, fmt.Errorf("unmarshaling config: %w", err)
	}
	if v.IsSet("quote_identifiers") {
		q := v.GetBool("quote_identifiers")
		cfg.QuoteIdentifiers = &q
	}
	return &cfg, path, nil
}

// findConfigFile validates an explicit path, or walks up from the working
// directory looking for gosequel.yaml until a .git boundary.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}
	return walkForConfig(cwd), nil
}

func walkForConfig(dir string) string {
	for range maxWalkDepth {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// LogLevel parses log.level; unknown values fall back to warn.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
