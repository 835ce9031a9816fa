// Package game holds the client-side player state that consumes the bomber
// constants: position and grid cell tracking, bomb placement cooldown,
// animation frame pacing, readiness and the roster of connected players.
// Networking, rendering, wall collision and explosions live elsewhere.
package game

import (
	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Geometry converts between canvas pixels and grid cells.
type Geometry struct {
	fieldSize  int
	canvasSize int
	cellSize   int
	spriteW    int
	spriteH    int
}

// NewGeometry derives the geometry from validated constants.
func NewGeometry(c config.Constants) Geometry {
	return Geometry{
		fieldSize:  c.FieldSize,
		canvasSize: c.CanvasSize,
		cellSize:   c.CellSize(),
		spriteW:    c.SpriteWidth,
		spriteH:    c.SpriteHeight,
	}
}

// CellSize returns the pixel size of one cell.
func (g Geometry) CellSize() int {
	return g.cellSize
}

// FieldSize returns the number of cells per side.
func (g Geometry) FieldSize() int {
	return g.fieldSize
}

// Bounds returns the world rectangle in pixels.
func (g Geometry) Bounds() core.Rect {
	return core.NewRect(0, 0, g.canvasSize, g.canvasSize)
}

// CellOf returns the cell containing pixel (x, y), clamped to the field.
func (g Geometry) CellOf(x, y int) (int, int) {
	if g.cellSize <= 0 {
		return 0, 0
	}
	last := g.fieldSize - 1
	return core.Clamp(x/g.cellSize, 0, last), core.Clamp(y/g.cellSize, 0, last)
}

// CellRect returns the pixel rectangle of a cell.
func (g Geometry) CellRect(cx, cy int) core.Rect {
	return core.NewRect(cx*g.cellSize, cy*g.cellSize, g.cellSize, g.cellSize)
}

// SpriteRect returns where a player sprite at pixel (x, y) is drawn.
// The sprite is scaled to fit one cell, keeping its aspect ratio, and is
// centred on the cell the player occupies.
func (g Geometry) SpriteRect(x, y int) core.Rect {
	w, h := g.SpriteSize()
	cell := g.CellRect(g.CellOf(x, y))
	return core.NewRect(cell.X+(cell.W-w)/2, cell.Y+(cell.H-h)/2, w, h)
}

// SpriteSize returns the on-canvas sprite size in pixels.
func (g Geometry) SpriteSize() (int, int) {
	if g.spriteW <= 0 || g.spriteH <= 0 {
		return 0, 0
	}
	if g.spriteW >= g.spriteH {
		return g.cellSize, g.cellSize * g.spriteH / g.spriteW
	}
	return g.cellSize * g.spriteW / g.spriteH, g.cellSize
}
