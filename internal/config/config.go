package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Dataset source schemes accepted in DATASET_URL.
const (
	SchemeFile     = "file"
	SchemeS3       = "s3"
	SchemePostgres = "postgres"
)

type Config struct {
	Port            string        `mapstructure:"PORT"`
	Env             string        `mapstructure:"ENV"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	DatasetURL      string        `mapstructure:"DATASET_URL"`
	S3Region        string        `mapstructure:"S3_REGION"`
	S3Endpoint      string        `mapstructure:"S3_ENDPOINT"`
	S3PathStyle     bool          `mapstructure:"S3_PATH_STYLE"`
	S3AccessKeyID   string        `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretKey     string        `mapstructure:"S3_SECRET_ACCESS_KEY"`
	DBMaxConns      int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32         `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`
	MetricsEnabled  bool          `mapstructure:"METRICS_ENABLED"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATASET_URL", "data/patients.json")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PATH_STYLE", false)
	v.SetDefault("DB_MAX_CONNS", 4)
	v.SetDefault("DB_MIN_CONNS", 0)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "DATASET_URL",
		"S3_REGION", "S3_ENDPOINT", "S3_PATH_STYLE",
		"S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
		"DB_MAX_CONNS", "DB_MIN_CONNS", "CORS_ORIGINS",
		"METRICS_ENABLED", "SHUTDOWN_TIMEOUT",
	} {
		_ = v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(strings.Join(cfg.CORSOrigins, ","))

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// DatasetScheme classifies DATASET_URL. Bare paths are files.
func (c *Config) DatasetScheme() string {
	u := c.DatasetURL
	switch {
	case strings.HasPrefix(u, "s3://"):
		return SchemeS3
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return SchemePostgres
	case strings.HasPrefix(u, "file://"):
		return SchemeFile
	case strings.Contains(u, "://"):
		return u[:strings.Index(u, "://")]
	}
	return SchemeFile
}

// Validate checks that the configuration is usable before the server starts.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.DatasetURL == "" {
		return fmt.Errorf("DATASET_URL is required")
	}
	switch scheme := c.DatasetScheme(); scheme {
	case SchemeFile, SchemeS3, SchemePostgres:
	default:
		return fmt.Errorf("DATASET_URL scheme %q is not supported (use a file path, file://, s3:// or postgres://)", scheme)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
