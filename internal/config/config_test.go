package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp-backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Empty(t, cfg.DBDSN)

	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedHeaders)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, 1800, cfg.CORS.MaxAge)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("HTTP_WRITE_TIMEOUT", "45")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://chat.example.com, https://admin.example.com")
	t.Setenv("CORS_ALLOWED_METHODS", "get,post")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "false")
	t.Setenv("CORS_MAX_AGE", "60")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 45*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, []string{"https://chat.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "POST"}, cfg.CORS.AllowedMethods)
	assert.False(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, 60, cfg.CORS.MaxAge)
	assert.False(t, cfg.CORS.AllowsAnyOrigin())
}

func TestLoadCORSFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cors.yaml")
	body := "allowed_origins:\n  - https://chat.example.com\nallowed_methods: [get, options]\nexposed_headers: [X-Request-ID]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("CORS_CONFIG_FILE", path)
	t.Setenv("CORS_MAX_AGE", "10")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://chat.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"X-Request-ID"}, cfg.CORS.ExposedHeaders)
	// untouched keys keep defaults, env still wins over the file
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedHeaders)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, 10, cfg.CORS.MaxAge)
}

func TestLoadCORSFileErrors(t *testing.T) {
	_, err := config.LoadCORSFile(filepath.Join(t.TempDir(), "missing.yaml"), config.DefaultCORS())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read cors config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("allowed_origins: {nope"), 0o600))
	_, err = config.LoadCORSFile(bad, config.DefaultCORS())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse cors config")
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"port":        func(c *config.Config) { c.AppPort = "http" },
		"log level":   func(c *config.Config) { c.LogLevel = "loud" },
		"log format":  func(c *config.Config) { c.LogFormat = "xml" },
		"no origins":  func(c *config.Config) { c.CORS.AllowedOrigins = nil },
		"no methods":  func(c *config.Config) { c.CORS.AllowedMethods = []string{} },
		"lower verb":  func(c *config.Config) { c.CORS.AllowedMethods = []string{"get"} },
		"max age":     func(c *config.Config) { c.CORS.MaxAge = -1 },
		"read timout": func(c *config.Config) { c.HTTP.ReadTimeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Load()
			require.NoError(t, err)
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWarnOnWildcardWithCredentials(t *testing.T) {
	logger, hook := test.NewNullLogger()

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Warn(logger)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	hook.Reset()
	cfg.CORS.AllowCredentials = false
	cfg.Warn(logger)
	assert.Empty(t, hook.Entries)
}
