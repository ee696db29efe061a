// Package config loads application configuration from config.yaml and
// COMPETE_-prefixed environment variables, and owns global logger setup.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Places   PlacesConfig   `yaml:"places" mapstructure:"places"`
	Insights InsightsConfig `yaml:"insights" mapstructure:"insights"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the competitor store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// PlacesConfig holds Places API credentials and rate limits.
type PlacesConfig struct {
	Key          string  `yaml:"key" mapstructure:"key"`
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateBurst    int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// InsightsConfig configures report construction.
type InsightsConfig struct {
	RadiusMeters float64 `yaml:"radius_meters" mapstructure:"radius_meters"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPETE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.sqlite_path", "compete.db")
	v.SetDefault("places.base_url", "https://places.googleapis.com/v1")
	v.SetDefault("places.rate_limit_rps", 10.0)
	v.SetDefault("places.rate_burst", 10)
	v.SetDefault("insights.radius_meters", 3000.0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// Validate checks the fields the given mode depends on. Modes: "report"
// builds insights reports (needs a Places key and a store), "serve" runs the
// HTTP API, "store" only touches the database.
func (c *Config) Validate(mode string) error {
	var problems []string

	storeOK := func() {
		switch c.Store.Driver {
		case "postgres":
			if c.Store.DatabaseURL == "" {
				problems = append(problems, "store.database_url is required for the postgres driver")
			}
		case "sqlite":
			if c.Store.SQLitePath == "" {
				problems = append(problems, "store.sqlite_path is required for the sqlite driver")
			}
		default:
			problems = append(problems, "store.driver must be postgres or sqlite")
		}
	}

	switch mode {
	case "report":
		storeOK()
		if c.Places.Key == "" {
			problems = append(problems, "places.key is required")
		}
		if c.Insights.RadiusMeters <= 0 {
			problems = append(problems, "insights.radius_meters must be > 0")
		}
	case "serve":
		storeOK()
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "store":
		storeOK()
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
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
