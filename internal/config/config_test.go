package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chdirTemp moves into an empty temp dir so no config.yaml or .env is found.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Yandex.APIKey)
	assert.Equal(t, "https://search-maps.yandex.ru/v1/", cfg.Yandex.APIBaseURL)
	assert.Equal(t, "https://yandex.ru/maps", cfg.Yandex.MapsBaseURL)
	assert.Equal(t, "ru_RU", cfg.Yandex.Lang)
	assert.Equal(t, 5, cfg.Yandex.APITimeoutSecs)
	assert.Equal(t, 15, cfg.Yandex.PageTimeoutSecs)
	assert.Equal(t, 12, cfg.Scrape.MaxPhotos)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 6*time.Hour, cfg.Cache.MainTTL())
	assert.Equal(t, time.Hour, cfg.Cache.PageTTL())
	assert.Equal(t, 20, cfg.Cache.ClearMaxPage)
	assert.Equal(t, 5, cfg.Breaker.FailureThreshold)
	assert.Equal(t, 2, cfg.Batch.MaxConcurrent)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate("serve"))
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
cache:
  driver: sqlite
  database_url: reviews.db
  main_ttl_mins: 30
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Cache.Driver)
	assert.Equal(t, "reviews.db", cfg.Cache.DatabaseURL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.MainTTL())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values
	assert.Equal(t, 60, cfg.Cache.PageTTLMins)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
cache:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("REVIEWS_CACHE_DRIVER", "memory")
	t.Setenv("REVIEWS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("REVIEWS_SERVER_PORT", "3000")
	t.Setenv("REVIEWS_YANDEX_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Yandex.APIKey)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REVIEWS_YANDEX_LANG=en_US\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("REVIEWS_YANDEX_LANG") }) //nolint:errcheck

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "en_US", cfg.Yandex.Lang)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("cache: [unclosed"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Cache.Driver = "memory"
	cfg.Cache.MainTTLMins = 360
	cfg.Cache.PageTTLMins = 60
	cfg.Scrape.MaxPhotos = 12
	cfg.Server.Port = 8080
	return cfg
}

func TestValidate_Postgres(t *testing.T) {
	cfg := validDefaults()
	cfg.Cache.Driver = "postgres"

	err := cfg.Validate("fetch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database_url")

	cfg.Cache.DatabaseURL = "postgres://localhost/reviews"
	assert.NoError(t, cfg.Validate("fetch"))
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Cache.Driver = "redis"

	err := cfg.Validate("fetch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestValidate_TTL(t *testing.T) {
	cfg := validDefaults()
	cfg.Cache.PageTTLMins = 0
	assert.Error(t, cfg.Validate("fetch"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	assert.NoError(t, cfg.Validate("fetch"))
	assert.Error(t, cfg.Validate("serve"))
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
