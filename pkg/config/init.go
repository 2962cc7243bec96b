package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml"
)

// WriteDefault writes the default configuration as TOML at path. Refuses
// to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	cfg := DefaultConfig()
	tree, err := toml.TreeFromMap(map[string]interface{}{
		"thresholds": map[string]interface{}{
			"max_cyclomatic": int64(cfg.Thresholds.MaxCyclomatic),
			"max_cognitive":  int64(cfg.Thresholds.MaxCognitive),
			"max_nesting":    int64(cfg.Thresholds.MaxNesting),
			"max_lines":      int64(cfg.Thresholds.MaxLines),
			"max_params":     int64(cfg.Thresholds.MaxParams),
		},
		"exclude": map[string]interface{}{
			"patterns":   cfg.Exclude.Patterns,
			"extensions": cfg.Exclude.Extensions,
			"dirs":       cfg.Exclude.Dirs,
			"gitignore":  cfg.Exclude.Gitignore,
		},
		"output": map[string]interface{}{
			"format":  cfg.Output.Format,
			"color":   cfg.Output.Color,
			"verbose": cfg.Output.Verbose,
		},
		"analysis": map[string]interface{}{
			"workers":  int64(cfg.Analysis.Workers),
			"progress": cfg.Analysis.Progress,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build config tree: %w", err)
	}

	out, err := tree.ToTomlString()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	return os.WriteFile(path, []byte(out), 0o644)
}
