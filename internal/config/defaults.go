package config

import (
	_ "embed"
)

//go:embed defaults/bomber.yaml
var defaultBomberYAML []byte

// DefaultBomberConfig returns the default bomber configuration.
func DefaultBomberConfig() BomberConfig {
	return BomberConfig{
		Animation: AnimationConfig{
			FrameLimit:   8,
			SpriteFrames: 4,
		},
		Field: FieldConfig{
			FieldSize:  50,
			CanvasSize: 1000,
			StepSize:   10,
		},
		Sprite: SpriteConfig{
			Width:  32,
			Height: 32,
		},
		Bomb: BombConfig{
			CooldownMS:  1000,
			Radius:      3,
			FuseSeconds: 3,
		},
		Surfaces: SurfacesConfig{
			Stats:       "stats",
			Matchfield:  "matchfield",
			ReadyButton: "readyButton",
		},
	}
}

// DefaultConstants returns the constant set of the default configuration.
func DefaultConstants() Constants {
	return DefaultBomberConfig().Constants()
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBomberYAML
}
