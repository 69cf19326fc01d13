package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"retirement-planner/internal/planner"
)

const envPrefix = "PLANNER"

func setDefaults(v *viper.Viper) {
	d := planner.DefaultAssumptions()

	v.SetDefault("app.name", "retirement-planner")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "5s")
	v.SetDefault("server.max_request_body_size", 64*1024)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("assumptions.life_expectancy", d.LifeExpectancy)
	v.SetDefault("assumptions.discount_rate", d.DiscountRate)
	v.SetDefault("assumptions.accumulation_rate", d.AccumulationRate)
	v.SetDefault("assumptions.escalation_rate", d.EscalationRate)
	v.SetDefault("assumptions.max_investment_return", d.MaxInvestmentReturn)
	v.SetDefault("assumptions.max_retirement_age", d.MaxRetirementAge)
	v.SetDefault("assumptions.base_year", 0)

	v.SetDefault("profiles.path", "")
	v.SetDefault("profiles.default", "default")

	v.SetDefault("flow.loading_delay", "0s")
}

// Load reads configuration from path, or from config.yaml in ./configs or
// the working directory when path is empty. A config.<environment>.yaml next
// to it is merged on top, then PLANNER_* environment variables win. PORT is
// honored for the listen port when PLANNER_SERVER_PORT is unset.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading base config: %w", err)
			}
		}

		env := v.GetString("app.environment")
		v.SetConfigName("config." + env)
		_ = v.MergeInConfig()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv(envPrefix+"_SERVER_PORT") == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.Server.Port = port
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}
