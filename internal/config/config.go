// Package config loads and validates runtime configuration from a YAML file
// and environment variables. Fail-fast: an invalid configuration aborts the
// process before any network or store access.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultUserAgent    = "TenderNotifier/1.0 (+https://github.com/jonesrussell/gotender)"
	defaultStorePath    = "seen_tenders.json"
	defaultSMTPPort     = 587
)

// Source types selecting the extraction strategy.
const (
	SourceTypeAnchor = "anchor"
	SourceTypeTable  = "table"
)

// Store backends.
const (
	StoreBackendFile   = "file"
	StoreBackendSQLite = "sqlite"
)

type Config struct {
	Debug    bool         `mapstructure:"debug"`
	Source   SourceConfig `mapstructure:"source"`
	Keywords []string     `mapstructure:"keywords"`
	Store    StoreConfig  `mapstructure:"store"`
	Notify   NotifyConfig `mapstructure:"notify"`
}

// SourceConfig describes the listing page to inspect.
type SourceConfig struct {
	URL       string        `mapstructure:"url"`
	Type      string        `mapstructure:"type"` // anchor | table
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// StoreConfig describes where seen entries are persisted.
type StoreConfig struct {
	Backend string `mapstructure:"backend"` // file | sqlite
	Path    string `mapstructure:"path"`
}

// NotifyConfig describes notification delivery.
type NotifyConfig struct {
	DryRun     bool       `mapstructure:"dry_run"` // substitute delivery with a logged no-op success
	Retries    int        `mapstructure:"retries"` // extra delivery attempts per item before giving up
	Recipients []string   `mapstructure:"recipients"`
	SMTP       SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Configured reports whether enough SMTP settings are present to attempt
// delivery. An unconfigured transport yields delivery failure, not a crash.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.User != "" && s.Password != "" && s.From != ""
}

func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return errors.New("source.url is required")
	}
	if c.Source.Type != SourceTypeAnchor && c.Source.Type != SourceTypeTable {
		return fmt.Errorf("source.type must be %q or %q, got %q", SourceTypeAnchor, SourceTypeTable, c.Source.Type)
	}
	if c.Source.Timeout <= 0 {
		return errors.New("source.timeout must be positive")
	}
	if c.Store.Backend != StoreBackendFile && c.Store.Backend != StoreBackendSQLite {
		return fmt.Errorf("store.backend must be %q or %q, got %q", StoreBackendFile, StoreBackendSQLite, c.Store.Backend)
	}
	if c.Store.Path == "" {
		return errors.New("store.path is required")
	}
	if c.Notify.Retries < 0 {
		return errors.New("notify.retries must not be negative")
	}
	return nil
}

// Load reads configuration from the given YAML file (optional) and the
// environment, applies defaults, and validates the result. A .env file in
// the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		_ = v.ReadInConfig() // config file is optional
	}

	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Keywords = normalizeList(cfg.Keywords)
	cfg.Notify.Recipients = normalizeList(cfg.Notify.Recipients)

	// Fall back to mailing the SMTP user when no recipients are configured.
	if len(cfg.Notify.Recipients) == 0 && cfg.Notify.SMTP.User != "" {
		cfg.Notify.Recipients = []string{cfg.Notify.SMTP.User}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("source.type", SourceTypeAnchor)
	v.SetDefault("source.timeout", defaultFetchTimeout)
	v.SetDefault("source.user_agent", defaultUserAgent)
	v.SetDefault("store.backend", StoreBackendFile)
	v.SetDefault("store.path", defaultStorePath)
	v.SetDefault("notify.dry_run", false)
	v.SetDefault("notify.retries", 0)
	v.SetDefault("notify.smtp.port", defaultSMTPPort)
}

// bindEnv wires explicit environment variables so that `SOURCE_URL=…` and
// friends work without a config file.
func bindEnv(v *viper.Viper) {
	keys := []string{
		"debug",
		"source.url", "source.type", "source.timeout", "source.user_agent",
		"keywords",
		"store.backend", "store.path",
		"notify.dry_run", "notify.retries", "notify.recipients",
		"notify.smtp.host", "notify.smtp.port", "notify.smtp.user",
		"notify.smtp.password", "notify.smtp.from",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// normalizeList lower-trims entries and expands comma-separated values, so
// both YAML lists and `KEYWORDS="etender, eauction"` style env vars work.
func normalizeList(in []string) []string {
	var out []string
	for _, raw := range in {
		for _, part := range strings.Split(raw, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
