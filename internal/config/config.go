// Package config loads the application configuration from an optional
// YAML file, environment variables and built-in defaults, in that
// ascending order of precedence for env over file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/vkiss/memoriter/internal/docimport"
	"github.com/vkiss/memoriter/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	DBPath    string            `mapstructure:"db_path"`
	LogLevel  string            `mapstructure:"log_level"`
	ChunkSize int               `mapstructure:"chunk_size"`
	QuizSize  int               `mapstructure:"quiz_size"`
	LLM       llm.Config        `mapstructure:"llm"`
	Gateway   llm.GatewayConfig `mapstructure:"gateway"`
	Import    docimport.Config  `mapstructure:"import"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "info",
		ChunkSize: 2000,
		QuizSize:  10,
		LLM:       llm.DefaultConfig(),
		Gateway:   llm.DefaultGatewayConfig(),
		Import:    docimport.DefaultConfig(),
	}
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing file is fine; defaults and environment
// variables still apply.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("MEMORITER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := defaultConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	cfg := Default()
	if err := v.ReadInConfig(); err != nil {
		// An absent file is fine only when no explicit path was given.
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if path != "" || !missing {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.LLM.ApplyEnv()
	return cfg, nil
}

// defaultConfigDir resolves $XDG_CONFIG_HOME/memoriter or its home
// directory fallback.
func defaultConfigDir() (string, error) {
	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		return filepath.Join(c, "memoriter"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "memoriter"), nil
}
