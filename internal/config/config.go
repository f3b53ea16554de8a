// Package config loads server settings: built-in defaults, then an
// optional YAML file, then BOOKTRACKER_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "BOOKTRACKER_"

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Addr           string        `yaml:"addr" koanf:"addr"`
	APIBaseURL     string        `yaml:"api_base_url" koanf:"api_base_url"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout" koanf:"fetch_timeout"`
	APIRPS         int           `yaml:"api_rps" koanf:"api_rps"`
	APIMaxRetries  int           `yaml:"api_max_retries" koanf:"api_max_retries"`
	SessionStore   string        `yaml:"session_store" koanf:"session_store"`
	DBDSN          string        `yaml:"db_dsn" koanf:"db_dsn"`
	SQLitePath     string        `yaml:"sqlite_path" koanf:"sqlite_path"`
	DBTimeout      time.Duration `yaml:"db_timeout" koanf:"db_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps" koanf:"rate_limit_rps"`
	RateLimitBurst int           `yaml:"rate_limit_burst" koanf:"rate_limit_burst"`
	ShellIdleTTL   time.Duration `yaml:"shell_idle_ttl" koanf:"shell_idle_ttl"`
	MaxShells      int           `yaml:"max_shells" koanf:"max_shells"`
	SessionTTL     time.Duration `yaml:"session_ttl" koanf:"session_ttl"`
	SecureCookies  bool          `yaml:"secure_cookies" koanf:"secure_cookies"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" koanf:"max_body_bytes"`
}

func Default() *Config {
	return &Config{
		Addr:           ":8080",
		APIBaseURL:     "http://localhost:8080/api",
		FetchTimeout:   5 * time.Second,
		APIRPS:         20,
		APIMaxRetries:  2,
		SessionStore:   StoreMemory,
		SQLitePath:     "booktracker.db",
		DBTimeout:      2 * time.Second,
		RateLimitRPS:   10,
		RateLimitBurst: 30,
		ShellIdleTTL:   30 * time.Minute,
		MaxShells:      10000,
		SessionTTL:     30 * 24 * time.Hour,
		MaxBodyBytes:   1 << 20,
	}
}

// LoadEnvFiles reads .env and .env.local. Variables already set in the
// process environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds the configuration. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.AllowedOrigins = splitOrigins(cfg.AllowedOrigins)
	return cfg, nil
}

// splitOrigins accepts both a YAML list and a comma separated env value.
func splitOrigins(in []string) []string {
	var out []string
	for _, v := range in {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

var validStores = map[string]bool{
	StoreMemory:   true,
	StoreSQLite:   true,
	StorePostgres: true,
}

func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api_base_url is required"))
	} else if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid api_base_url %q", c.APIBaseURL))
	}
	if !validStores[c.SessionStore] {
		errs = append(errs, fmt.Errorf("invalid session_store %q: must be one of memory, sqlite, postgres", c.SessionStore))
	}
	if c.SessionStore == StorePostgres && c.DBDSN == "" {
		errs = append(errs, errors.New("db_dsn is required for the postgres session store"))
	}
	if c.SessionStore == StoreSQLite && c.SQLitePath == "" {
		errs = append(errs, errors.New("sqlite_path is required for the sqlite session store"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch_timeout must be positive"))
	}
	if c.DBTimeout <= 0 {
		errs = append(errs, errors.New("db_timeout must be positive"))
	}
	if c.ShellIdleTTL <= 0 || c.SessionTTL <= 0 {
		errs = append(errs, errors.New("shell_idle_ttl and session_ttl must be positive"))
	}
	if c.MaxShells < 0 {
		errs = append(errs, errors.New("max_shells must be non-negative"))
	}
	if c.APIRPS < 0 || c.APIMaxRetries < 0 {
		errs = append(errs, errors.New("api_rps and api_max_retries must be non-negative"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("rate_limit_rps and rate_limit_burst must be positive"))
	}
	return errors.Join(errs...)
}

// RedactDSN hides the credentials of a connection string for logs.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
