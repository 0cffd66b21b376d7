package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Google GoogleConfig `yaml:"google" mapstructure:"google"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Table  TableConfig  `yaml:"table" mapstructure:"table"`
	Geo    GeoConfig    `yaml:"geo" mapstructure:"geo"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds the places provider settings. APIKey is the one
// required secret; it is checked once at command start.
type GoogleConfig struct {
	APIKey    string  `yaml:"api_key" mapstructure:"api_key"`
	ProxyURL  string  `yaml:"proxy_url" mapstructure:"proxy_url"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ServerConfig configures the relay server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// SearchConfig configures search orchestration.
type SearchConfig struct {
	DetailConcurrency int `yaml:"detail_concurrency" mapstructure:"detail_concurrency"`
}

// TableConfig configures the lead table behavior.
type TableConfig struct {
	// EditPolicy is "last_wins" (an open edit is silently dropped when a new
	// one starts) or "reject_dirty" (the new edit is refused).
	EditPolicy string `yaml:"edit_policy" mapstructure:"edit_policy"`
	// Locale is the BCP 47 tag used for string collation when sorting.
	Locale string `yaml:"locale" mapstructure:"locale"`
}

// GeoConfig configures the geolocation source.
type GeoConfig struct {
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, config file, and environment.
func Load() (*Config, error) {
	// Optional .env in cwd; absence is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADMAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Keys must be registered for env-only values to survive
	// Unmarshal, so the secrets default to empty here.
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.proxy_url", "")
	v.SetDefault("google.rate_limit", 10.0)
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("search.detail_concurrency", 5)
	v.SetDefault("table.edit_policy", "last_wins")
	v.SetDefault("table.locale", "en")
	v.SetDefault("geo.endpoint", "http://ip-api.com/json")
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

// Redacted returns a copy safe for printing: secrets are masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.Google.APIKey != "" {
		out.Google.APIKey = "********"
	}
	return out
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
