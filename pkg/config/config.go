// Package config loads scalpel configuration from TOML, YAML, or JSON
// files, layered over defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bgaffney/scalpel/pkg/models"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for scalpel.
type Config struct {
	// Thresholds for smell detection
	Thresholds models.Thresholds `koanf:"thresholds"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Output settings
	Output OutputConfig `koanf:"output"`

	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
	Gitignore  bool     `koanf:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, markdown, json, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// AnalysisConfig controls analyzer behavior.
type AnalysisConfig struct {
	Workers  int  `koanf:"workers"` // 0 means 2x NumCPU
	Progress bool `koanf:"progress"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: models.DefaultThresholds(),
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*_test.go",
				"*.test.ts",
				"*.test.tsx",
				"*.spec.ts",
				"*.min.js",
			},
			Extensions: []string{
				".d.ts",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				"dist",
				"build",
				"__pycache__",
				".venv",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
		Analysis: AnalysisConfig{
			Workers:  0,
			Progress: true,
		},
	}
}

// Load loads configuration from a file, parser picked by extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries standard config locations and falls back to
// defaults when none parse.
func LoadOrDefault() *Config {
	names := []string{
		"scalpel.toml",
		"scalpel.yaml",
		"scalpel.yml",
		"scalpel.json",
		".scalpel.toml",
		".scalpel.yaml",
		".scalpel.yml",
		".scalpel.json",
	}

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	sep := string(filepath.Separator)
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, sep+dir+sep) || strings.HasPrefix(path, dir+sep) {
			return true
		}
	}

	base := filepath.Base(path)
	for _, ext := range c.Exclude.Extensions {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}

	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
