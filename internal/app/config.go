package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/kaizen-academy/kaizen-admin/internal/platform/cache"
)

// Config holds runtime configuration for the dashboard.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	APIBaseURL string        `envconfig:"API_BASE_URL" required:"true"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	ReportsSource            string        `envconfig:"REPORTS_SOURCE" default:"live"`
	ReportsFixtureCategories []string      `envconfig:"REPORTS_FIXTURE_CATEGORIES" default:"master,course,coach,branch,financial"`
	ReportsCacheTTL          time.Duration `envconfig:"REPORTS_CACHE_TTL" default:"5m"`

	JobsEnabled       bool   `envconfig:"JOBS_ENABLED" default:"false"`
	ServiceEmail      string `envconfig:"SERVICE_EMAIL"`
	ServicePassword   string `envconfig:"SERVICE_PASSWORD"`
	WorkerConcurrency int    `envconfig:"WORKER_CONCURRENCY" default:"5"`
	WorkerMetricsAddr string `envconfig:"WORKER_METRICS_ADDR" default:":9091"`
}

// LoadConfig reads configuration from environment variables. Outside production an
// optional .env file in the working directory is loaded first; real environment
// variables always win.
func LoadConfig() (*Config, error) {
	if !strings.EqualFold(strings.TrimSpace(envOrEmpty("APP_ENV")), "production") {
		_ = godotenv.Load()
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		return errors.New("session secret must be provided")
	}
	if c.CSRFSecret == "" {
		return errors.New("csrf secret must be provided")
	}
	base, err := url.Parse(c.APIBaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL)
	}
	switch c.ReportsSource {
	case "live", "fixture":
	default:
		return fmt.Errorf("REPORTS_SOURCE must be live or fixture, got %q", c.ReportsSource)
	}
	if c.JobsEnabled && (c.ServiceEmail == "" || c.ServicePassword == "") {
		return errors.New("SERVICE_EMAIL and SERVICE_PASSWORD are required when jobs are enabled")
	}
	return nil
}

// Redis returns the connection settings shared by sessions, cache and jobs.
func (c *Config) Redis() cache.Options {
	return cache.Options{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
