package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config sources reported by LoadTractor.
const (
	SourceCustom   = "custom"
	SourceUser     = "user"
	SourceLocal    = "local"
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// LoadTractor loads the tractor game configuration and reports where it came from.
// Search order: customPath -> ~/.plow/configs/tractor.yaml -> ./configs/tractor.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadTractor(customPath string) (TractorConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TractorConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTractor(data)
		if err != nil {
			return TractorConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return TractorConfig{}, "", fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tractor.yaml"); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, SourceUser, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", "tractor.yaml")); ok {
		return cfg, SourceLocal, nil
	}

	// Use embedded default YAML
	if cfg, err := parseTractor(defaultTractorYAML); err == nil && cfg.Validate() == nil {
		return cfg, SourceEmbedded, nil
	}
	return DefaultTractorConfig(), SourceBuiltin, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (TractorConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TractorConfig{}, false
	}
	cfg, err := parseTractor(data)
	if err != nil || cfg.Validate() != nil {
		return TractorConfig{}, false
	}
	return cfg, true
}

// parseTractor decodes YAML on top of the built-in defaults.
func parseTractor(data []byte) (TractorConfig, error) {
	cfg := DefaultTractorConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TractorConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".plow", "configs", filename)
}
