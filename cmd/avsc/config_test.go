package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reoring/avsc"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "avsc.yaml", `
language: ja
format: json
ignore:
  - use-of-*
  - "*-namespace"
failOnIssues: true
duplicateKeys: error
maxDepth: 32
`)
	cfg := defaultConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Language != "ja" || cfg.Format != "json" || !cfg.FailOnIssues || cfg.MaxDepth != 32 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	opt := cfg.parseOpt()
	if opt.Strictness.OnDuplicateKey != avsc.Error {
		t.Fatalf("duplicate policy = %v", opt.Strictness.OnDuplicateKey)
	}
	if !cfg.ignored("use-of-full-name") || !cfg.ignored("ignored-namespace") || cfg.ignored("duplicate-alias") {
		t.Fatalf("ignore patterns not applied: %v", cfg.Ignore)
	}
}

func TestConfigLoadJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "avsc.json", `{"duplicateKeys":"ignore","maxBytes":1024,"decodeDefaults":true}`)
	cfg := defaultConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	opt := cfg.parseOpt()
	if opt.Strictness.OnDuplicateKey != avsc.Ignore || opt.MaxBytes != 1024 || !opt.DecodeDeferredDefaults {
		t.Fatalf("unexpected options: %+v", opt)
	}
	// untouched values keep their defaults
	if cfg.Format != "text" || cfg.Language != "en" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestConfigLoadErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfig()
	if err := cfg.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	bad := writeFile(t, dir, "bad.json", `{"format":`)
	if err := cfg.LoadFile(bad); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config)
		ok     bool
	}{
		{"defaults", func(*config) {}, true},
		{"bad format", func(c *config) { c.Format = "xml" }, false},
		{"bad language", func(c *config) { c.Language = "fr" }, false},
		{"bad duplicate policy", func(c *config) { c.DuplicateKeys = "panic" }, false},
		{"negative depth", func(c *config) { c.MaxDepth = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if (err == nil) != tt.ok {
				t.Fatalf("validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern, s string
		want       bool
	}{
		{"bad-literal", "bad-literal", true},
		{"bad-*", "bad-default", true},
		{"*-literal", "bad-uuid-literal", true},
		{"bad-*", "duplicate-key", false},
		{"bad-literal", "bad-literals", false},
	}
	for _, tt := range tests {
		if got := matchGlob(tt.pattern, tt.s); got != tt.want {
			t.Errorf("matchGlob(%q, %q) = %v, want %v", tt.pattern, tt.s, got, tt.want)
		}
	}
}
