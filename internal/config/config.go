package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Scorer ScorerConfig `yaml:"scorer" mapstructure:"scorer"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Viral  ViralConfig  `yaml:"viral" mapstructure:"viral"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the reference data file. An empty path selects the
// embedded dataset.
type DataConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// EngineConfig tunes the ROI calculation.
type EngineConfig struct {
	BaselineAnnualWage  float64 `yaml:"baseline_annual_wage" mapstructure:"baseline_annual_wage"`
	LocationAdjustsCost bool    `yaml:"location_adjusts_cost" mapstructure:"location_adjusts_cost"`
}

// BandConfig is one row of the verdict band table.
type BandConfig struct {
	Min   int    `yaml:"min" mapstructure:"min"`
	Band  string `yaml:"band" mapstructure:"band"`
	Label string `yaml:"label" mapstructure:"label"`
}

// ScorerConfig configures the composite verdict. Empty Bands selects the
// built-in band table.
type ScorerConfig struct {
	AutomationWeight float64      `yaml:"automation_weight" mapstructure:"automation_weight"`
	Bands            []BandConfig `yaml:"bands" mapstructure:"bands"`
}

// StoreConfig configures the scenario database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	Burst          int      `yaml:"burst" mapstructure:"burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// ViralConfig configures the curated comparison run.
type ViralConfig struct {
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	Location    string `yaml:"location" mapstructure:"location"`
	SchoolTier  string `yaml:"school_tier" mapstructure:"school_tier"`
	Living      string `yaml:"living" mapstructure:"living"`
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
	v.SetEnvPrefix("ROI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.path", "")
	v.SetDefault("engine.baseline_annual_wage", 30000)
	v.SetDefault("engine.location_adjusts_cost", false)
	v.SetDefault("scorer.automation_weight", 0.5)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "roi.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.burst", 40)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("viral.concurrency", 4)
	v.SetDefault("viral.location", "national")
	v.SetDefault("viral.school_tier", "average")
	v.SetDefault("viral.living", "roommates")
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

// Validate checks the fields a command mode depends on. Modes are
// "calculate", "scenario" and "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Engine.BaselineAnnualWage <= 0 {
		errs = append(errs, "engine.baseline_annual_wage must be > 0")
	}
	if c.Scorer.AutomationWeight < 0 || c.Scorer.AutomationWeight > 1 {
		errs = append(errs, "scorer.automation_weight must be between 0 and 1")
	}

	switch mode {
	case "calculate":
	case "scenario":
		errs = append(errs, c.validateStore()...)
	case "serve":
		errs = append(errs, c.validateStore()...)
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.RateLimit < 0 {
			errs = append(errs, "server.rate_limit must be >= 0")
		}
		if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
			errs = append(errs, "server.burst must be >= 1 when rate limiting")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Viral.Concurrency < 1 || c.Viral.Concurrency > 32 {
		errs = append(errs, fmt.Sprintf("viral.concurrency must be between 1 and 32, got %d", c.Viral.Concurrency))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateStore() []string {
	var errs []string
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be sqlite or postgres, got %q", c.Store.Driver))
	}
	if c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required")
	}
	return errs
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
