// internal/config/config.go
// Loads configuration from environment variables (and an optional CORS YAML file).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// BuildVersion is set through ldflags.
var BuildVersion = "dev"

type Config struct {
	AppName   string `validate:"required"`
	AppEnv    string `validate:"required"`
	AppPort   string `validate:"required,numeric"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	HTTP struct {
		ReadTimeout     time.Duration `validate:"gt=0"`
		WriteTimeout    time.Duration `validate:"gt=0"`
		IdleTimeout     time.Duration `validate:"gt=0"`
		ShutdownTimeout time.Duration `validate:"gt=0"`
	}

	// DBDSN is optional; when empty the readiness probe skips the database.
	DBDSN string

	CORS CORSConfig
}

// CORSConfig is the cross-origin policy applied to every request.
// It is built once at startup and never mutated afterwards.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins" validate:"min=1,dive,required"`
	AllowedMethods   []string `yaml:"allowed_methods" validate:"min=1,dive,required,uppercase"`
	AllowedHeaders   []string `yaml:"allowed_headers" validate:"omitempty,dive,required"`
	ExposedHeaders   []string `yaml:"exposed_headers" validate:"omitempty,dive,required"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age" validate:"gte=0"`
}

// DefaultCORS mirrors the policy the frontend was built against: every origin,
// method set GET/POST/PUT/DELETE/OPTIONS, every header, credentials allowed.
func DefaultCORS() CORSConfig {
	return CORSConfig{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           1800,
	}
}

// AllowsAnyOrigin reports whether the origin list contains the wildcard.
func (c CORSConfig) AllowsAnyOrigin() bool {
	return contains(c.AllowedOrigins, "*")
}

// AllowsAnyHeader reports whether the header list contains the wildcard.
func (c CORSConfig) AllowsAnyHeader() bool {
	return contains(c.AllowedHeaders, "*")
}

// Load builds a Config from defaults, the optional CORS file and the environment,
// in that order of precedence (environment wins).
func Load() (*Config, error) {
	c := &Config{}
	c.AppName = getEnv("APP_NAME", "chatapp-backend")
	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppPort = getEnv("APP_PORT", "8080")
	c.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	c.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "json"))

	c.HTTP.ReadTimeout = getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	c.HTTP.WriteTimeout = getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	c.HTTP.IdleTimeout = getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)
	c.HTTP.ShutdownTimeout = getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)

	c.DBDSN = getEnv("DB_DSN", "")

	c.CORS = DefaultCORS()
	if path := getEnv("CORS_CONFIG_FILE", ""); path != "" {
		fromFile, err := LoadCORSFile(path, c.CORS)
		if err != nil {
			return nil, err
		}
		c.CORS = fromFile
	}
	c.CORS.AllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.CORS.AllowedMethods = upper(getEnvList("CORS_ALLOWED_METHODS", c.CORS.AllowedMethods))
	c.CORS.AllowedHeaders = getEnvList("CORS_ALLOWED_HEADERS", c.CORS.AllowedHeaders)
	c.CORS.ExposedHeaders = getEnvList("CORS_EXPOSED_HEADERS", c.CORS.ExposedHeaders)
	c.CORS.AllowCredentials = getEnvBool("CORS_ALLOW_CREDENTIALS", c.CORS.AllowCredentials)
	c.CORS.MaxAge = getEnvInt("CORS_MAX_AGE", c.CORS.MaxAge)

	return c, nil
}

// LoadCORSFile reads a YAML policy file. Keys missing from the file keep the
// values from base.
func LoadCORSFile(path string, base CORSConfig) (CORSConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "read cors config %s", path)
	}
	out := base
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return base, errors.Wrapf(err, "parse cors config %s", path)
	}
	out.AllowedMethods = upper(out.AllowedMethods)
	return out, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// Warn logs settings that are accepted but likely wrong.
func (c *Config) Warn(log logrus.FieldLogger) {
	if c.CORS.AllowsAnyOrigin() && c.CORS.AllowCredentials {
		// Browsers refuse credentialed responses carrying a wildcard origin.
		log.WithFields(logrus.Fields{
			"allowed_origins":   c.CORS.AllowedOrigins,
			"allow_credentials": c.CORS.AllowCredentials,
		}).Warn("cors: wildcard origin combined with credentials; browsers will reject credentialed requests")
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("15s") or plain seconds ("15").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if s, err := strconv.Atoi(v); err == nil {
		return time.Duration(s) * time.Second
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func upper(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
