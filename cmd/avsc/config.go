package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/avsc"
)

// config is the CLI configuration. Command-line flags override file values.
type config struct {
	Language       string   `yaml:"language" json:"language"`
	Format         string   `yaml:"format" json:"format"`
	Ignore         []string `yaml:"ignore" json:"ignore"`
	FailOnIssues   bool     `yaml:"failOnIssues" json:"failOnIssues"`
	DuplicateKeys  string   `yaml:"duplicateKeys" json:"duplicateKeys"`
	MaxDepth       int      `yaml:"maxDepth" json:"maxDepth"`
	MaxBytes       int64    `yaml:"maxBytes" json:"maxBytes"`
	DecodeDefaults bool     `yaml:"decodeDefaults" json:"decodeDefaults"`
	YAML           bool     `yaml:"yaml" json:"yaml"`
}

func defaultConfig() *config {
	return &config{
		Language:      "en",
		Format:        "text",
		DuplicateKeys: "warn",
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var loaded config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := gojson.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// YAML is a superset of JSON for config purposes
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("unable to parse config as YAML or JSON: %w", err)
		}
	}
	c.merge(&loaded)
	return nil
}

// merge overlays the non-zero values of loaded.
func (c *config) merge(loaded *config) {
	if loaded.Language != "" {
		c.Language = loaded.Language
	}
	if loaded.Format != "" {
		c.Format = loaded.Format
	}
	if loaded.DuplicateKeys != "" {
		c.DuplicateKeys = loaded.DuplicateKeys
	}
	if loaded.MaxDepth != 0 {
		c.MaxDepth = loaded.MaxDepth
	}
	if loaded.MaxBytes != 0 {
		c.MaxBytes = loaded.MaxBytes
	}
	c.Ignore = append(c.Ignore, loaded.Ignore...)
	c.FailOnIssues = c.FailOnIssues || loaded.FailOnIssues
	c.DecodeDefaults = c.DecodeDefaults || loaded.DecodeDefaults
	c.YAML = c.YAML || loaded.YAML
}

func (c *config) validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format %q (want text or json)", c.Format)
	}
	switch c.Language {
	case "en", "ja":
	default:
		return fmt.Errorf("unknown language %q (want en or ja)", c.Language)
	}
	if _, err := c.duplicateSeverity(); err != nil {
		return err
	}
	if c.MaxDepth < 0 || c.MaxBytes < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	return nil
}

func (c *config) duplicateSeverity() (avsc.Severity, error) {
	switch c.DuplicateKeys {
	case "ignore":
		return avsc.Ignore, nil
	case "warn", "":
		return avsc.Warn, nil
	case "error":
		return avsc.Error, nil
	}
	return avsc.Ignore, fmt.Errorf("unknown duplicateKeys policy %q (want ignore, warn or error)", c.DuplicateKeys)
}

func (c *config) parseOpt() avsc.ParseOpt {
	sev, _ := c.duplicateSeverity()
	return avsc.ParseOpt{
		Strictness:             avsc.Strictness{OnDuplicateKey: sev},
		MaxDepth:               c.MaxDepth,
		MaxBytes:               c.MaxBytes,
		DecodeDeferredDefaults: c.DecodeDefaults,
	}
}

// ignored reports whether code matches one of the ignore patterns.
func (c *config) ignored(code string) bool {
	for _, p := range c.Ignore {
		if matchGlob(p, code) {
			return true
		}
	}
	return false
}

// matchGlob performs simple glob matching with a leading or trailing * wildcard.
func matchGlob(pattern, s string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(s, suffix)
	}
	return pattern == s
}
