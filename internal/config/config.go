package config

import (
	"fmt"
	"time"

	"retirement-planner/internal/planner"
)

// Config is the main application configuration struct.
type Config struct {
	App         AppConfig           `mapstructure:"app"`
	Server      ServerConfig        `mapstructure:"server"`
	Logging     LoggingConfig       `mapstructure:"logging"`
	Assumptions planner.Assumptions `mapstructure:"assumptions"`
	Profiles    ProfilesConfig      `mapstructure:"profiles"`
	Flow        FlowConfig          `mapstructure:"flow"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port               string        `mapstructure:"port"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	MaxRequestBodySize int           `mapstructure:"max_request_body_size"`
}

// Addr is the listen address for fasthttp.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ProfilesConfig points at an optional YAML file of named assumption sets.
type ProfilesConfig struct {
	Path    string `mapstructure:"path"`
	Default string `mapstructure:"default"`
}

// FlowConfig tunes the interactive flow. LoadingDelay simulates analysis
// time on the loading screen.
type FlowConfig struct {
	LoadingDelay time.Duration `mapstructure:"loading_delay"`
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if cfg.Server.MaxRequestBodySize <= 0 {
		return fmt.Errorf("server.max_request_body_size must be positive")
	}
	if cfg.Profiles.Default == "" {
		return fmt.Errorf("profiles.default is required")
	}
	if cfg.Flow.LoadingDelay < 0 {
		return fmt.Errorf("flow.loading_delay must not be negative")
	}
	if err := cfg.Assumptions.Validate(); err != nil {
		return fmt.Errorf("assumptions: %w", err)
	}
	return nil
}
