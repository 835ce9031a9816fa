package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvFrameLimit   = "BOMBER_FRAME_LIMIT"
	EnvFieldSize    = "BOMBER_FIELD_SIZE"
	EnvCanvasSize   = "BOMBER_CANVAS_SIZE"
	EnvSpriteWidth  = "BOMBER_SPRITE_WIDTH"
	EnvSpriteHeight = "BOMBER_SPRITE_HEIGHT"
	EnvBombCooldown = "BOMBER_BOMB_COOLDOWN_MS"
)

// LoadBomber loads the bomber configuration.
// Search order: customPath -> ~/.bomber/configs/bomber.yaml -> ./configs/bomber.yaml -> embedded default.
// Values missing from a file keep their defaults.
func LoadBomber(customPath string) (BomberConfig, error) {
	cfg := DefaultBomberConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bomber.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := DefaultBomberConfig()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "bomber.yaml")); err == nil {
		candidate := DefaultBomberConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBomberYAML, &cfg); err != nil {
		return DefaultBomberConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file into the process environment.
// An empty path means ./.env, which is optional. Variables already set win.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from BOMBER_* environment variables.
func ApplyEnv(cfg *BomberConfig) error {
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *BomberConfig, lookup func(string) (string, bool)) error {
	targets := []struct {
		key string
		dst *int
	}{
		{EnvFrameLimit, &cfg.Animation.FrameLimit},
		{EnvFieldSize, &cfg.Field.FieldSize},
		{EnvCanvasSize, &cfg.Field.CanvasSize},
		{EnvSpriteWidth, &cfg.Sprite.Width},
		{EnvSpriteHeight, &cfg.Sprite.Height},
		{EnvBombCooldown, &cfg.Bomb.CooldownMS},
	}

	for _, t := range targets {
		raw, ok := lookup(t.key)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s: invalid integer %q: %w", t.key, raw, err)
		}
		*t.dst = v
	}
	return nil
}

// Prepare runs the full startup sequence: dotenv, file lookup, environment
// overlay and invariant checks. The returned config is safe to derive
// Constants from.
func Prepare(customPath, envFile string) (BomberConfig, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return BomberConfig{}, err
	}

	cfg, err := LoadBomber(customPath)
	if err != nil {
		return BomberConfig{}, err
	}

	if err := ApplyEnv(&cfg); err != nil {
		return BomberConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return BomberConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bomber", "configs", filename)
}
