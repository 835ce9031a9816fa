// Package config provides YAML-based tuning for the bomber client: animation
// pacing, field and canvas geometry, sprite geometry, bomb cooldown and the
// identifiers of the surfaces the host document must expose.
package config

import (
	"errors"
	"fmt"
	"time"
)

// BomberConfig contains all configuration for the bomber client.
type BomberConfig struct {
	Animation AnimationConfig `yaml:"animation"`
	Field     FieldConfig     `yaml:"field"`
	Sprite    SpriteConfig    `yaml:"sprite"`
	Bomb      BombConfig      `yaml:"bomb"`
	Surfaces  SurfacesConfig  `yaml:"surfaces"`
}

// AnimationConfig defines how player sprites are paced.
type AnimationConfig struct {
	// FrameLimit is the number of messages between two sprite frame advances.
	FrameLimit int `yaml:"frame_limit"`
	// SpriteFrames is the number of frames in a player sprite strip.
	SpriteFrames int `yaml:"sprite_frames"`
}

// FieldConfig defines the world and render geometry.
type FieldConfig struct {
	FieldSize  int `yaml:"field_size"`  // Logical grid dimension in cells
	CanvasSize int `yaml:"canvas_size"` // Render surface dimension in pixels
	StepSize   int `yaml:"step_size"`   // Pixels moved per movement message
}

// SpriteConfig defines the player sprite dimensions in pixels.
type SpriteConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BombConfig defines bomb placement parameters.
type BombConfig struct {
	CooldownMS  int `yaml:"cooldown_ms"` // Minimum gap between two placements
	Radius      int `yaml:"radius"`      // Blast radius in cells
	FuseSeconds int `yaml:"fuse_seconds"`
}

// SurfacesConfig names the elements the host document must expose.
type SurfacesConfig struct {
	Stats       string `yaml:"stats"`
	Matchfield  string `yaml:"matchfield"`
	ReadyButton string `yaml:"ready_button"`
}

// Constants is the read-only tuning set handed to every collaborator.
// It is a plain value: copies never observe later changes.
type Constants struct {
	FrameLimit      int
	SpriteFrames    int
	FieldSize       int
	CanvasSize      int
	StepSize        int
	SpriteWidth     int
	SpriteHeight    int
	BombCooldownMS  int
	BombRadius      int
	BombFuseSeconds int
}

// Constants returns the immutable constant set described by the config.
func (c BomberConfig) Constants() Constants {
	return Constants{
		FrameLimit:      c.Animation.FrameLimit,
		SpriteFrames:    c.Animation.SpriteFrames,
		FieldSize:       c.Field.FieldSize,
		CanvasSize:      c.Field.CanvasSize,
		StepSize:        c.Field.StepSize,
		SpriteWidth:     c.Sprite.Width,
		SpriteHeight:    c.Sprite.Height,
		BombCooldownMS:  c.Bomb.CooldownMS,
		BombRadius:      c.Bomb.Radius,
		BombFuseSeconds: c.Bomb.FuseSeconds,
	}
}

// CellSize returns the pixel size of one grid cell on the canvas.
func (c Constants) CellSize() int {
	if c.FieldSize <= 0 {
		return 0
	}
	return c.CanvasSize / c.FieldSize
}

// BombCooldown returns the placement cooldown as a duration.
func (c Constants) BombCooldown() time.Duration {
	return time.Duration(c.BombCooldownMS) * time.Millisecond
}

// BombFuse returns the time between placement and detonation.
func (c Constants) BombFuse() time.Duration {
	return time.Duration(c.BombFuseSeconds) * time.Second
}

// Validate checks the invariants every consumer relies on.
// All violations are reported together.
func (c BomberConfig) Validate() error {
	var errs []error

	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("config: %s must be > 0, got %d", name, v))
		}
	}

	positive("animation.frame_limit", c.Animation.FrameLimit)
	positive("animation.sprite_frames", c.Animation.SpriteFrames)
	positive("field.field_size", c.Field.FieldSize)
	positive("field.canvas_size", c.Field.CanvasSize)
	positive("field.step_size", c.Field.StepSize)
	positive("sprite.width", c.Sprite.Width)
	positive("sprite.height", c.Sprite.Height)

	if c.Field.FieldSize > 0 && c.Field.CanvasSize > 0 {
		if c.Field.CanvasSize%c.Field.FieldSize != 0 {
			errs = append(errs, fmt.Errorf("config: field.canvas_size %d is not divisible by field.field_size %d",
				c.Field.CanvasSize, c.Field.FieldSize))
		}
		if c.Field.CanvasSize < c.Field.FieldSize {
			errs = append(errs, fmt.Errorf("config: field.canvas_size %d is smaller than field.field_size %d",
				c.Field.CanvasSize, c.Field.FieldSize))
		}
	}

	if c.Bomb.CooldownMS < 0 {
		errs = append(errs, fmt.Errorf("config: bomb.cooldown_ms must be >= 0, got %d", c.Bomb.CooldownMS))
	}
	if c.Bomb.Radius < 0 {
		errs = append(errs, fmt.Errorf("config: bomb.radius must be >= 0, got %d", c.Bomb.Radius))
	}
	if c.Bomb.FuseSeconds < 0 {
		errs = append(errs, fmt.Errorf("config: bomb.fuse_seconds must be >= 0, got %d", c.Bomb.FuseSeconds))
	}

	for name, id := range map[string]string{
		"surfaces.stats":        c.Surfaces.Stats,
		"surfaces.matchfield":   c.Surfaces.Matchfield,
		"surfaces.ready_button": c.Surfaces.ReadyButton,
	} {
		if id == "" {
			errs = append(errs, fmt.Errorf("config: %s must not be empty", name))
		}
	}

	return errors.Join(errs...)
}
