package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-bomber/internal/config"
)

// User identifies the person behind a session.
type User struct {
	UserID uint64
	Name   string
}

func (u User) String() string {
	return fmt.Sprintf("User: {%d | %s}", u.UserID, u.Name)
}

// Bomb is an accepted placement waiting for its fuse.
type Bomb struct {
	CellX       int
	CellY       int
	Radius      int
	PlacedAt    time.Time
	DetonatesAt time.Time
}

// Session wraps a connected user with their character and per-player state.
// A session is driven by a single goroutine; only Gate is safe to share.
type Session struct {
	ID                string
	User              User
	Bomber            *Bomberman
	Gate              *PlacementGate
	Pacer             *FramePacer
	Ready             ReadyState
	ConnectionStarted time.Time

	bombs []Bomb
}

// NewSession creates a session whose character spawns at (x, y).
func NewSession(user User, c config.Constants, x, y int, now time.Time) *Session {
	return &Session{
		ID:                uuid.NewString(),
		User:              user,
		Bomber:            NewBomberman(user.UserID, x, y, user.Name, c.BombRadius),
		Gate:              NewPlacementGate(c.BombCooldown()),
		Pacer:             NewFramePacer(c.FrameLimit, c.SpriteFrames),
		ConnectionStarted: now,
	}
}

func (s *Session) String() string {
	return "Session: { " + s.ID + " | " + s.User.String() + " | " + s.Bomber.String() + " | " +
		s.ConnectionStarted.Format(time.RFC3339) + " }"
}

// ActiveBombs returns bombs whose fuse has not run out at now and forgets
// the others.
func (s *Session) ActiveBombs(now time.Time) []Bomb {
	kept := s.bombs[:0]
	for _, b := range s.bombs {
		if now.Before(b.DetonatesAt) {
			kept = append(kept, b)
		}
	}
	s.bombs = kept
	out := make([]Bomb, len(kept))
	copy(out, kept)
	return out
}

func (s *Session) addBomb(b Bomb) {
	s.bombs = append(s.bombs, b)
}

// SpawnPoint returns the pixel position of the n-th spawn corner, cycling
// through the four corners of the field.
func SpawnPoint(g Geometry, n int) (int, int) {
	far := g.Bounds().W - g.CellSize()
	corners := [4][2]int{
		{0, 0},
		{far, far},
		{far, 0},
		{0, far},
	}
	c := corners[((n%4)+4)%4]
	return c[0], c[1]
}
