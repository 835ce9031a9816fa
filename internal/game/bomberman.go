package game

import (
	"strconv"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Direction is a movement direction on the field.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// DirectionFor maps a movement action to a direction.
func DirectionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionMoveUp:
		return DirUp, true
	case core.ActionMoveDown:
		return DirDown, true
	case core.ActionMoveLeft:
		return DirLeft, true
	case core.ActionMoveRight:
		return DirRight, true
	}
	return 0, false
}

// Delta returns the unit vector of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Bomberman is a player character. Exported fields are what the roster
// snapshot carries to clients.
type Bomberman struct {
	UserID     uint64
	Name       string
	PositionX  int
	PositionY  int
	BombRadius int

	oldPositionX int
	oldPositionY int
}

// NewBomberman places a new character at the given pixel position.
func NewBomberman(userID uint64, x, y int, name string, bombRadius int) *Bomberman {
	return &Bomberman{
		UserID:       userID,
		Name:         name,
		PositionX:    x,
		PositionY:    y,
		BombRadius:   bombRadius,
		oldPositionX: x,
		oldPositionY: y,
	}
}

func (b *Bomberman) String() string {
	return "Bomberman: {" + strconv.FormatUint(b.UserID, 10) + " | " + b.Name + " | " +
		strconv.Itoa(b.PositionX) + " | " + strconv.Itoa(b.PositionY) + "}"
}

// Move steps the character in a direction. A step that would leave the
// world bounds is refused and the position stays put.
func (b *Bomberman) Move(d Direction, step int, bounds core.Rect) bool {
	dx, dy := d.Delta()
	nx, ny := b.PositionX+dx*step, b.PositionY+dy*step

	b.oldPositionX, b.oldPositionY = b.PositionX, b.PositionY
	if !bounds.Contains(nx, ny) {
		return false
	}
	b.PositionX, b.PositionY = nx, ny
	return true
}

// PreviousPosition returns the position before the last move attempt.
func (b *Bomberman) PreviousPosition() (int, int) {
	return b.oldPositionX, b.oldPositionY
}

// CellChanged reports whether the last move crossed a cell border.
func (b *Bomberman) CellChanged(g Geometry) bool {
	ox, oy := g.CellOf(b.oldPositionX, b.oldPositionY)
	nx, ny := g.CellOf(b.PositionX, b.PositionY)
	return ox != nx || oy != ny
}
