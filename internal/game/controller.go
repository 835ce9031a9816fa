package game

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Outcome describes what one message did to a session.
type Outcome struct {
	Action        core.Action
	Moved         bool
	CellChanged   bool
	Placed        bool
	Bomb          Bomb
	Err           error         // *CooldownError when a placement was refused
	Wait          time.Duration // Remaining cooldown when refused
	FrameAdvanced bool
	Frame         int
	Ready         bool
}

// Rejected reports whether a placement was refused by the cooldown.
func (o Outcome) Rejected() bool {
	return errors.Is(o.Err, ErrCooldown)
}

// Controller applies player messages to sessions using one set of constants.
type Controller struct {
	consts config.Constants
	geom   Geometry
}

// NewController creates a controller for the given constants.
func NewController(c config.Constants) *Controller {
	return &Controller{
		consts: c,
		geom:   NewGeometry(c),
	}
}

// Constants returns the constants the controller was built with.
func (c *Controller) Constants() config.Constants {
	return c.consts
}

// Geometry returns the derived field geometry.
func (c *Controller) Geometry() Geometry {
	return c.geom
}

// Handle applies one message. Every message counts towards the animation
// pace, whether or not it changed anything.
func (c *Controller) Handle(s *Session, a core.Action, now time.Time) Outcome {
	out := Outcome{Action: a, Ready: s.Ready.Ready()}
	if a == core.ActionNone || a == core.ActionQuit {
		out.Frame = s.Pacer.Frame()
		return out
	}

	switch {
	case a.IsMove():
		dir, _ := DirectionFor(a)
		out.Moved = s.Bomber.Move(dir, c.consts.StepSize, c.geom.Bounds())
		out.CellChanged = out.Moved && s.Bomber.CellChanged(c.geom)

	case a == core.ActionPlaceBomb:
		if err := s.Gate.TryPlace(now); err != nil {
			out.Err = err
			var ce *CooldownError
			if errors.As(err, &ce) {
				out.Wait = ce.Remaining
			}
			break
		}
		cx, cy := c.geom.CellOf(s.Bomber.PositionX, s.Bomber.PositionY)
		out.Bomb = Bomb{
			CellX:       cx,
			CellY:       cy,
			Radius:      s.Bomber.BombRadius,
			PlacedAt:    now,
			DetonatesAt: now.Add(c.consts.BombFuse()),
		}
		out.Placed = true
		s.addBomb(out.Bomb)

	case a == core.ActionReady:
		out.Ready = s.Ready.Toggle(now)
	}

	out.FrameAdvanced = s.Pacer.Observe()
	out.Frame = s.Pacer.Frame()
	return out
}
