package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Yandex  YandexConfig  `yaml:"yandex" mapstructure:"yandex"`
	Scrape  ScrapeConfig  `yaml:"scrape" mapstructure:"scrape"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Breaker BreakerConfig `yaml:"breaker" mapstructure:"breaker"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// YandexConfig configures the search API and the listing pages.
type YandexConfig struct {
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	APIBaseURL        string  `yaml:"api_base_url" mapstructure:"api_base_url"`
	MapsBaseURL       string  `yaml:"maps_base_url" mapstructure:"maps_base_url"`
	Lang              string  `yaml:"lang" mapstructure:"lang"`
	APITimeoutSecs    int     `yaml:"api_timeout_secs" mapstructure:"api_timeout_secs"`
	PageTimeoutSecs   int     `yaml:"page_timeout_secs" mapstructure:"page_timeout_secs"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	AcceptLanguage    string  `yaml:"accept_language" mapstructure:"accept_language"`
}

// ScrapeConfig tunes extraction.
type ScrapeConfig struct {
	MaxPhotos    int    `yaml:"max_photos" mapstructure:"max_photos"`
	RulesFile    string `yaml:"rules_file" mapstructure:"rules_file"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// CacheConfig configures the result cache and its backend.
type CacheConfig struct {
	Driver       string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL  string `yaml:"database_url" mapstructure:"database_url"`
	MainTTLMins  int    `yaml:"main_ttl_mins" mapstructure:"main_ttl_mins"`
	PageTTLMins  int    `yaml:"page_ttl_mins" mapstructure:"page_ttl_mins"`
	MaxEntries   int    `yaml:"max_entries" mapstructure:"max_entries"`
	ClearMaxPage int    `yaml:"clear_max_page" mapstructure:"clear_max_page"`
}

// MainTTL is how long a main record is served from cache.
func (c CacheConfig) MainTTL() time.Duration {
	return time.Duration(c.MainTTLMins) * time.Minute
}

// PageTTL is how long an incremental reviews page is served from cache.
func (c CacheConfig) PageTTL() time.Duration {
	return time.Duration(c.PageTTLMins) * time.Minute
}

// BreakerConfig configures the circuit breakers around upstream calls.
type BreakerConfig struct {
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// BatchConfig bounds cache warming.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REVIEWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("yandex.api_key", "")
	v.SetDefault("yandex.api_base_url", "https://search-maps.yandex.ru/v1/")
	v.SetDefault("yandex.maps_base_url", "https://yandex.ru/maps")
	v.SetDefault("yandex.lang", "ru_RU")
	v.SetDefault("yandex.api_timeout_secs", 5)
	v.SetDefault("yandex.page_timeout_secs", 15)
	v.SetDefault("yandex.requests_per_second", 1.0)
	v.SetDefault("yandex.burst", 2)
	v.SetDefault("yandex.user_agent", "")
	v.SetDefault("yandex.accept_language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")
	v.SetDefault("scrape.max_photos", 12)
	v.SetDefault("scrape.rules_file", "")
	v.SetDefault("scrape.max_body_bytes", 8<<20)
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.database_url", "")
	v.SetDefault("cache.main_ttl_mins", 360)
	v.SetDefault("cache.page_ttl_mins", 60)
	v.SetDefault("cache.max_entries", 1000)
	v.SetDefault("cache.clear_max_page", 20)
	v.SetDefault("breaker.failure_threshold", 5)
	v.SetDefault("breaker.reset_timeout_secs", 60)
	v.SetDefault("batch.max_concurrent", 2)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
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

// Validate checks values that would otherwise fail late. mode is the command
// being run; "serve" also checks the listen port.
func (c *Config) Validate(mode string) error {
	switch c.Cache.Driver {
	case "memory", "sqlite":
	case "postgres":
		if c.Cache.DatabaseURL == "" {
			return eris.New("config: cache.database_url is required for the postgres driver")
		}
	default:
		return eris.Errorf("config: unknown cache driver %q", c.Cache.Driver)
	}
	if c.Cache.MainTTLMins <= 0 || c.Cache.PageTTLMins <= 0 {
		return eris.New("config: cache ttls must be positive")
	}
	if c.Scrape.MaxPhotos < 0 {
		return eris.New("config: scrape.max_photos must not be negative")
	}
	if mode == "serve" && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return eris.Errorf("config: server.port %d is out of range", c.Server.Port)
	}
	return nil
}

// InitLogger configures the global zap logger.
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
