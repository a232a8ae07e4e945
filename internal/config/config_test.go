package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
source:
  url: "https://tenders.example.org/listing/"
keywords:
  - etender
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Source.Type != SourceTypeAnchor {
		t.Errorf("Source.Type = %q, want %q", cfg.Source.Type, SourceTypeAnchor)
	}
	if cfg.Source.Timeout != 15*time.Second {
		t.Errorf("Source.Timeout = %v, want 15s", cfg.Source.Timeout)
	}
	if cfg.Store.Backend != StoreBackendFile {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, StoreBackendFile)
	}
	if cfg.Store.Path == "" {
		t.Error("Store.Path is empty, want default")
	}
	if cfg.Notify.SMTP.Port != 587 {
		t.Errorf("Notify.SMTP.Port = %d, want 587", cfg.Notify.SMTP.Port)
	}
}

func TestLoad_CommaSeparatedKeywords(t *testing.T) {
	path := writeConfig(t, `
source:
  url: "https://tenders.example.org/listing/"
keywords:
  - "etender, eauction , "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if len(cfg.Keywords) != 2 {
		t.Fatalf("Keywords = %v, want 2 entries", cfg.Keywords)
	}
	if cfg.Keywords[0] != "etender" || cfg.Keywords[1] != "eauction" {
		t.Errorf("Keywords = %v, want [etender eauction]", cfg.Keywords)
	}
}

func TestLoad_RecipientsDefaultToSMTPUser(t *testing.T) {
	path := writeConfig(t, `
source:
  url: "https://tenders.example.org/listing/"
notify:
  smtp:
    user: "alerts@example.org"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if len(cfg.Notify.Recipients) != 1 || cfg.Notify.Recipients[0] != "alerts@example.org" {
		t.Errorf("Notify.Recipients = %v, want [alerts@example.org]", cfg.Notify.Recipients)
	}
}

func TestLoad_MissingSourceURLFails(t *testing.T) {
	path := writeConfig(t, `
keywords:
  - etender
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() = nil error, want validation failure for missing source.url")
	}
}

func TestValidate_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "bad source type",
			cfg: Config{
				Source: SourceConfig{URL: "https://x", Type: "rss", Timeout: time.Second},
				Store:  StoreConfig{Backend: StoreBackendFile, Path: "seen.json"},
			},
		},
		{
			name: "bad store backend",
			cfg: Config{
				Source: SourceConfig{URL: "https://x", Type: SourceTypeAnchor, Timeout: time.Second},
				Store:  StoreConfig{Backend: "redis", Path: "seen.json"},
			},
		},
		{
			name: "negative retries",
			cfg: Config{
				Source: SourceConfig{URL: "https://x", Type: SourceTypeAnchor, Timeout: time.Second},
				Store:  StoreConfig{Backend: StoreBackendFile, Path: "seen.json"},
				Notify: NotifyConfig{Retries: -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestSMTPConfig_Configured(t *testing.T) {
	full := SMTPConfig{Host: "smtp.example.org", User: "u", Password: "p", From: "u@example.org"}
	if !full.Configured() {
		t.Error("Configured() = false for complete settings")
	}

	if (SMTPConfig{Host: "smtp.example.org"}).Configured() {
		t.Error("Configured() = true with missing credentials")
	}
}
