package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFlappy loads the game configuration.
// Search order: customPath -> ~/.jetflap/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently when absent or broken.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()

	if customPath != "" {
		if err := decodeFile(customPath, &cfg); err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{userConfigPath("flappy.yaml"), filepath.Join("configs", "flappy.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		candidate := DefaultFlappyConfig()
		if err := decodeFile(path, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	embedded := DefaultFlappyConfig()
	if err := yaml.Unmarshal(defaultFlappyYAML, &embedded); err != nil {
		return DefaultFlappyConfig(), nil
	}
	return embedded, nil
}

// decodeFile reads YAML from path over the values already in out, so keys
// missing from the file keep their defaults.
func decodeFile(path string, out *FlappyConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jetflap", "configs", filename)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		if cfg.Difficulty.Progression.Type == "" {
			cfg.Difficulty.Progression.Type = "score"
		}
	}
}
