// Package config provides Viper-based hierarchical configuration management:
// defaults, then an optional YAML file, then FIN_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	Extract struct {
		// AmountStrategy picks the numeric token in text-fallback lines:
		// "last" (default, skips past running balances) or "first".
		AmountStrategy string `mapstructure:"amount_strategy" yaml:"amount_strategy"`
		// MaxPages bounds how many statement pages are parsed per document.
		// Zero means unbounded.
		MaxPages int `mapstructure:"max_pages" yaml:"max_pages"`
		// MaxTextLength caps candidate narration text. Zero uses the
		// built-in limit.
		MaxTextLength int `mapstructure:"max_text_length" yaml:"max_text_length"`
	} `mapstructure:"extract" yaml:"extract"`

	Vocab struct {
		// File is an optional YAML vocabulary override; empty uses built-ins.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"vocab" yaml:"vocab"`

	Store struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"store" yaml:"store"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.fintastic-extract")
	v.AddConfigPath(".fintastic-extract")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FIN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("extract.amount_strategy", "last")
	v.SetDefault("extract.max_pages", 0)
	v.SetDefault("extract.max_text_length", 0)

	v.SetDefault("vocab.file", "")

	v.SetDefault("store.path", "transactions.db")
}

func validateConfig(config *Config) error {
	switch strings.ToLower(config.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("unsupported log level %q", config.Log.Level)
	}

	switch config.Extract.AmountStrategy {
	case "first", "last":
	default:
		return fmt.Errorf("extract.amount_strategy must be \"first\" or \"last\", got %q", config.Extract.AmountStrategy)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", config.CSV.Delimiter)
	}

	if config.Extract.MaxPages < 0 {
		return fmt.Errorf("extract.max_pages must not be negative")
	}

	if config.Extract.MaxTextLength < 0 {
		return fmt.Errorf("extract.max_text_length must not be negative")
	}

	return nil
}
