package config

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// Config contains runtime settings for the MCP server
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080

	Fetch struct {
		Timeout         time.Duration
		AdapterTimeout  time.Duration
		Workers         int
		CacheTTL        time.Duration
		CacheMaxEntries int
		Coalesce        bool
	}

	Adzuna struct {
		Enabled        bool
		AppID          string
		AppKey         string
		Country        string
		ResultsPerPage int
	}

	Remotive struct {
		Enabled bool
		BaseURL string
	}

	Naukri struct {
		Enabled          bool
		BaseURL          string
		UserAgent        string
		CacheTTL         time.Duration
		MaxResults       int
		MinDelay         time.Duration
		BootstrapTimeout time.Duration
	}

	Neo4j struct {
		URI      string
		Username string
		Password string
	}

	RedisURL    string
	DatabaseURL string

	RabbitMQ struct {
		URL        string
		Exchange   string
		QueueName  string
		RoutingKey string
	}

	SheetsCredentialsPath string

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}

	Twilio struct {
		AccountSID string
		AuthToken  string
		FromNumber string
	}

	AlertsSchedule string
}

// Load populates config from an optional .env file and environment variables
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}

	cfg := Config{}
	cfg.LogLevel = e.str("LOG_LEVEL", "info")
	cfg.Host = e.str("MCP_HOST", "0.0.0.0")
	cfg.Port = e.str("PORT", "8080")

	cfg.Fetch.Timeout = e.duration("FETCH_TIMEOUT", 20*time.Second)
	cfg.Fetch.AdapterTimeout = e.duration("ADAPTER_TIMEOUT", 15*time.Second)
	cfg.Fetch.Workers = e.integer("FETCH_WORKERS", 4)
	cfg.Fetch.CacheTTL = e.duration("POOL_CACHE_TTL", 10*time.Minute)
	cfg.Fetch.CacheMaxEntries = e.integer("POOL_CACHE_MAX_ENTRIES", 1000)
	cfg.Fetch.Coalesce = e.boolean("POOL_CACHE_COALESCE", false)

	cfg.Adzuna.Enabled = e.boolean("ADZUNA_ENABLED", true)
	cfg.Adzuna.AppID = e.str("ADZUNA_APP_ID", "")
	cfg.Adzuna.AppKey = e.str("ADZUNA_APP_KEY", "")
	cfg.Adzuna.Country = e.str("ADZUNA_COUNTRY", "in")
	cfg.Adzuna.ResultsPerPage = e.integer("ADZUNA_RESULTS_PER_PAGE", 20)

	cfg.Remotive.Enabled = e.boolean("REMOTIVE_ENABLED", true)
	cfg.Remotive.BaseURL = e.str("REMOTIVE_BASE_URL", "")

	cfg.Naukri.Enabled = e.boolean("NAUKRI_ENABLED", true)
	cfg.Naukri.BaseURL = e.str("NAUKRI_BASE_URL", "")
	cfg.Naukri.UserAgent = e.str("NAUKRI_USER_AGENT", "")
	cfg.Naukri.CacheTTL = e.duration("NAUKRI_CACHE_TTL", 15*time.Minute)
	cfg.Naukri.MaxResults = e.integer("NAUKRI_MAX_RESULTS", 50)
	cfg.Naukri.MinDelay = e.duration("NAUKRI_MIN_DELAY", 300*time.Millisecond)
	cfg.Naukri.BootstrapTimeout = e.duration("NAUKRI_BOOTSTRAP_TIMEOUT", 5*time.Second)

	cfg.Neo4j.URI = e.str("NEO4J_URI", "")
	cfg.Neo4j.Username = e.str("NEO4J_USERNAME", "")
	cfg.Neo4j.Password = e.str("NEO4J_PASSWORD", "")

	cfg.RedisURL = e.str("REDIS_URL", "")
	cfg.DatabaseURL = e.str("DATABASE_URL", "")

	cfg.RabbitMQ.URL = e.str("RABBITMQ_URL", "")
	cfg.RabbitMQ.Exchange = e.str("RABBITMQ_EXCHANGE", "jobflow")
	cfg.RabbitMQ.QueueName = e.str("RABBITMQ_QUEUE", "jobflow.alerts")
	cfg.RabbitMQ.RoutingKey = e.str("RABBITMQ_ROUTING_KEY", "alerts")

	cfg.SheetsCredentialsPath = e.str("GOOGLE_SHEETS_CREDENTIALS_PATH", "")

	cfg.SMTP.Host = e.str("SMTP_HOST", "")
	cfg.SMTP.Port = e.integer("SMTP_PORT", 587)
	cfg.SMTP.Username = e.str("SMTP_USERNAME", "")
	cfg.SMTP.Password = e.str("SMTP_PASSWORD", "")
	cfg.SMTP.From = e.str("SMTP_FROM", "")

	cfg.Twilio.AccountSID = e.str("TWILIO_ACCOUNT_SID", "")
	cfg.Twilio.AuthToken = e.str("TWILIO_AUTH_TOKEN", "")
	cfg.Twilio.FromNumber = e.str("TWILIO_FROM_NUMBER", "")

	cfg.AlertsSchedule = e.str("ALERTS_SCHEDULE", "@every 30m")

	if cfg.Neo4j.URI != "" {
		if cfg.Neo4j.Username == "" {
			e.missing = append(e.missing, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			e.missing = append(e.missing, "NEO4J_PASSWORD")
		}
	}

	if len(e.missing) > 0 {
		e.invalid = append(e.invalid, fmt.Sprintf("missing required environment variables: %s", strings.Join(e.missing, ", ")))
	}
	if len(e.invalid) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(e.invalid, "; "))
	}

	return cfg, nil
}

// env reads typed values and collects every problem instead of stopping at the first
type env struct {
	lookup  func(string) (string, bool)
	missing []string
	invalid []string
}

func (e *env) raw(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) str(key, def string) string {
	if v, ok := e.raw(key); ok {
		return v
	}
	return def
}

func (e *env) integer(key string, def int) int {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		e.invalid = append(e.invalid, fmt.Sprintf("%s: %q is not a non-negative integer", key, v))
		return def
	}
	return n
}

func (e *env) boolean(key string, def bool) bool {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.invalid = append(e.invalid, fmt.Sprintf("%s: %q is not a boolean", key, v))
		return def
	}
	return b
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.invalid = append(e.invalid, fmt.Sprintf("%s: %q is not a positive duration", key, v))
		return def
	}
	return d
}
