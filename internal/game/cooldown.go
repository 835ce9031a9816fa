package game

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrCooldown is wrapped by CooldownError.
var ErrCooldown = errors.New("bomb placement on cooldown")

// CooldownError rejects a placement that arrived too early.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%v: %v remaining", ErrCooldown, e.Remaining)
}

func (e *CooldownError) Unwrap() error {
	return ErrCooldown
}

// PlacementGate enforces the minimum interval between two accepted bomb
// placements by the same player. Client input and server-driven calls may
// race; the gate admits exactly one placement per window.
type PlacementGate struct {
	mu       sync.Mutex
	cooldown time.Duration
	last     time.Time
	placed   bool
	accepted int
	rejected int
}

// NewPlacementGate creates a gate. Negative cooldowns are treated as zero.
func NewPlacementGate(cooldown time.Duration) *PlacementGate {
	return &PlacementGate{cooldown: max(cooldown, 0)}
}

// TryPlace records a placement at now, or returns a *CooldownError when the
// previous accepted placement is less than the cooldown ago. Rejections do
// not extend the window.
func (g *PlacementGate) TryPlace(now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if rem := g.remainingLocked(now); rem > 0 {
		g.rejected++
		return &CooldownError{Remaining: rem}
	}

	g.last = now
	g.placed = true
	g.accepted++
	return nil
}

// Remaining returns how long until the next placement is accepted.
func (g *PlacementGate) Remaining(now time.Time) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remainingLocked(now)
}

func (g *PlacementGate) remainingLocked(now time.Time) time.Duration {
	if !g.placed {
		return 0
	}
	elapsed := now.Sub(g.last)
	if elapsed >= g.cooldown {
		return 0
	}
	return g.cooldown - elapsed
}

// LastPlaced returns the time of the last accepted placement.
func (g *PlacementGate) LastPlaced() (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last, g.placed
}

// Counts returns accepted and rejected placement totals.
func (g *PlacementGate) Counts() (accepted, rejected int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.accepted, g.rejected
}
