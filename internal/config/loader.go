package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name looked up in every search directory.
const configFile = "ski.yaml"

// LoadSki loads the ski configuration.
// Search order: customPath -> ~/.ski-arcade/configs/ski.yaml -> ./configs/ski.yaml -> embedded default.
// Only an explicit customPath can produce an error; unreadable or invalid
// files on the search path are skipped.
func LoadSki(customPath string) (SkiConfig, error) {
	if customPath != "" {
		cfg, err := readSkiFile(customPath)
		if err != nil {
			return DefaultSkiConfig(), err
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		if cfg, err := readSkiFile(path); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSki(defaultSkiYAML)
	if err != nil {
		return DefaultSkiConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readSkiFile reads, parses and validates a config file.
func readSkiFile(path string) (SkiConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SkiConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := parseSki(data)
	if err != nil {
		return SkiConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// parseSki overlays a YAML document on the defaults so partial files only
// override what they name.
func parseSki(data []byte) (SkiConfig, error) {
	cfg := DefaultSkiConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SkiConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SkiConfig{}, err
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(configFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", configFile))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ski-arcade", "configs", filename)
}

// ApplySkiPreset modifies the config based on a difficulty preset.
func ApplySkiPreset(cfg *SkiConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Population.Trees = cfg.Population.Trees * 2 / 3
		cfg.Difficulty.Progression.MaxAt *= 2
	case DifficultyHard:
		cfg.Population.Trees = cfg.Population.Trees * 3 / 2
		cfg.Difficulty.Progression.MaxAt /= 2
	}
}
