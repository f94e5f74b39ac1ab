package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "match3.yaml"

// LoadMatch3 loads the match-3 configuration.
// Search order: customPath -> ~/.puzzlebit/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
//
// A custom path that cannot be read or parsed is an error. A broken file in
// one of the default locations is skipped.
func LoadMatch3(customPath string) (Match3Config, error) {
	if customPath != "" {
		cfg, err := readMatch3(customPath)
		if err != nil {
			return Match3Config{}, err
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		if cfg, err := readMatch3(path); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil
	}
	return cfg, nil
}

// readMatch3 reads and parses one config file.
func readMatch3(path string) (Match3Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Match3Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := parseMatch3(data)
	if err != nil {
		return Match3Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// parseMatch3 decodes YAML on top of the hardcoded defaults, so a partial
// file only overrides what it names, then validates the result.
func parseMatch3(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Match3Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Match3Config{}, err
	}
	return cfg, nil
}

// searchPaths lists the default config locations, user directory first.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".puzzlebit", "configs", ConfigFile))
	}
	return append(paths, filepath.Join("configs", ConfigFile))
}
