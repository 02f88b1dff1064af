// Package config loads the settings of the eml command from an optional YAML
// file and EML_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read by Load. For
// example, EML_PARSE_MAX_DEPTH overrides parse.max_depth.
const EnvPrefix = "EML"

// Config holds all command configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Parse  ParseConfig  `mapstructure:"parse"`
	Output OutputConfig `mapstructure:"output"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
	MaxFiles  int    `mapstructure:"max_files"`
}

// ParseConfig holds the limits passed to the message parser.
type ParseConfig struct {
	MaxDepth      int `mapstructure:"max_depth"`
	MaxLineLength int `mapstructure:"max_line_length"`
}

// OutputConfig selects how documents are written.
type OutputConfig struct {
	// Format is json or yaml.
	Format string `mapstructure:"format"`
}

var defaults = map[string]any{
	"log.level":             "warn",
	"log.file":              "",
	"log.max_size_mb":       10,
	"log.max_files":         3,
	"parse.max_depth":       64,
	"parse.max_line_length": 1 << 20,
	"output.format":         "json",
}

// Load reads configuration from the YAML file at path. When path is empty,
// a file named eml.yaml is looked for in the working directory and it is not
// an error if there is none. Environment variables override file values and
// the file overrides the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("eml")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.Output.Format {
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("output.format must be json or yaml, not %q", cfg.Output.Format)
	}

	return &cfg, nil
}
