package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"inkwell/internal/platform/config"
)

func TestFlagTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir, "http://flag.example")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.BaseURL != "http://flag.example" {
		t.Fatalf("flag should win, got %s", cfg.BaseURL)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "http://file.example")
	t.Setenv("INKWELL_API_URL", "http://env.example")
	cfg, err := config.New(dir, "")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.BaseURL != "http://env.example" {
		t.Fatalf("env should override file, got %s", cfg.BaseURL)
	}
}

func TestFileFallbackAndDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("INKWELL_API_URL", "")
	writeConfigFile(t, dir, "http://file.example/")
	cfg, err := config.New(dir, "")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.BaseURL != "http://file.example" {
		t.Fatalf("file url should apply without trailing slash, got %s", cfg.BaseURL)
	}

	empty := t.TempDir()
	cfg, err = config.New(empty, "")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.BaseURL != config.DefaultBaseURL {
		t.Fatalf("expected default base url, got %s", cfg.BaseURL)
	}
}

func TestRejectsNonHTTPBaseURL(t *testing.T) {
	if _, err := config.New(t.TempDir(), "ftp://files.example"); err == nil {
		t.Fatalf("non-http base url should fail")
	}
}

func TestStatePaths(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir, "http://x.example")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.CredentialPath() != filepath.Join(dir, "credential.json") {
		t.Fatalf("unexpected credential path: %s", cfg.CredentialPath())
	}
	if cfg.CacheDBPath() != filepath.Join(dir, "inkwell.db") {
		t.Fatalf("unexpected cache db path: %s", cfg.CacheDBPath())
	}
}

func writeConfigFile(t *testing.T, dir, url string) {
	t.Helper()
	payload := []byte("api_url: " + url + "\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), payload, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
}
