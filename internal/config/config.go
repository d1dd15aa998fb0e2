package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config lists the stops and lines to show, as read from a config file
type Config struct {
	IDs   []string `json:"ids" yaml:"ids"`
	Lines []string `json:"lines" yaml:"lines"`
}

// Load reads a config file. Files ending in .yaml or .yml are read as YAML,
// everything else as JSON. Missing keys are treated as empty lists.
func Load(path string) (*Config, error) {
	// #nosec G304 -- path is supplied by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Merge combines the ids and lines given on the command line with the config.
// Command line entries come first and are kept as given; config entries are
// appended only if not already present. A nil config returns the command line
// entries unchanged.
func Merge(ids, lines []string, cfg *Config) Config {
	merged := Config{
		IDs:   append([]string{}, ids...),
		Lines: append([]string{}, lines...),
	}
	if cfg == nil {
		return merged
	}

	merged.IDs = union(merged.IDs, cfg.IDs)
	merged.Lines = union(merged.Lines, cfg.Lines)
	return merged
}

func union(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			seen[s] = true
			base = append(base, s)
		}
	}
	return base
}
