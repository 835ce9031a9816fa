package game

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, id uint64, x, y int) *Session {
	t.Helper()
	return NewSession(User{UserID: id, Name: "p" + string(rune('0'+id%10))}, config.DefaultConstants(), x, y, t0)
}

func TestGeometry(t *testing.T) {
	g := NewGeometry(config.DefaultConstants())

	if g.CellSize() != 20 {
		t.Errorf("CellSize() = %d, expected 20", g.CellSize())
	}
	if g.FieldSize() != 50 {
		t.Errorf("FieldSize() = %d, expected 50", g.FieldSize())
	}
	if b := g.Bounds(); b.W != 1000 || b.H != 1000 {
		t.Errorf("Bounds() = %+v", b)
	}

	tests := []struct {
		x, y   int
		cx, cy int
	}{
		{0, 0, 0, 0},
		{19, 19, 0, 0},
		{20, 39, 1, 1},
		{999, 500, 49, 25},
		{5000, -10, 49, 0},
	}
	for _, tc := range tests {
		cx, cy := g.CellOf(tc.x, tc.y)
		if cx != tc.cx || cy != tc.cy {
			t.Errorf("CellOf(%d, %d) = (%d, %d), expected (%d, %d)", tc.x, tc.y, cx, cy, tc.cx, tc.cy)
		}
	}
}

func TestSpriteRect(t *testing.T) {
	g := NewGeometry(config.DefaultConstants())

	r := g.SpriteRect(45, 65) // cell (2, 3)
	if r.X != 40 || r.Y != 60 || r.W != 20 || r.H != 20 {
		t.Errorf("SpriteRect() = %+v, expected {40 60 20 20}", r)
	}

	c := config.DefaultConstants()
	c.SpriteWidth, c.SpriteHeight = 32, 16
	wide := NewGeometry(c)
	w, h := wide.SpriteSize()
	if w != 20 || h != 10 {
		t.Errorf("wide SpriteSize() = %dx%d, expected 20x10", w, h)
	}
	r = wide.SpriteRect(0, 0)
	if r.Y != 5 {
		t.Errorf("wide sprite should be centred vertically, Y = %d", r.Y)
	}
}

func TestBombermanMove(t *testing.T) {
	g := NewGeometry(config.DefaultConstants())
	b := NewBomberman(1, 0, 0, "alice", 3)

	if b.Move(DirUp, 10, g.Bounds()) {
		t.Error("moving up from the top edge should be refused")
	}
	if b.PositionY != 0 {
		t.Errorf("refused move changed Y to %d", b.PositionY)
	}

	if !b.Move(DirRight, 10, g.Bounds()) {
		t.Fatal("moving right should succeed")
	}
	if b.PositionX != 10 || b.PositionY != 0 {
		t.Errorf("position = (%d, %d), expected (10, 0)", b.PositionX, b.PositionY)
	}
	if b.CellChanged(g) {
		t.Error("10px move inside a 20px cell should not change cell")
	}

	b.Move(DirRight, 10, g.Bounds())
	if !b.CellChanged(g) {
		t.Error("crossing x=20 should change cell")
	}
	ox, oy := b.PreviousPosition()
	if ox != 10 || oy != 0 {
		t.Errorf("PreviousPosition() = (%d, %d), expected (10, 0)", ox, oy)
	}

	edge := NewBomberman(2, 990, 990, "bob", 3)
	if edge.Move(DirDown, 10, g.Bounds()) {
		t.Error("moving past the bottom edge should be refused")
	}
}

func TestBombermanString(t *testing.T) {
	b := NewBomberman(7, 30, 40, "carol", 3)
	s := b.String()
	for _, want := range []string{"7", "carol", "30", "40"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestPlacementGateCooldown(t *testing.T) {
	g := NewPlacementGate(time.Second)

	if err := g.TryPlace(t0); err != nil {
		t.Fatalf("first placement should be accepted: %v", err)
	}

	err := g.TryPlace(t0.Add(999 * time.Millisecond))
	if !errors.Is(err, ErrCooldown) {
		t.Fatalf("placement before 1000ms should be rejected, got %v", err)
	}
	var ce *CooldownError
	if !errors.As(err, &ce) || ce.Remaining != time.Millisecond {
		t.Errorf("remaining = %v, expected 1ms", ce)
	}

	// Rejections do not extend the window
	if err := g.TryPlace(t0.Add(time.Second)); err != nil {
		t.Errorf("placement at exactly 1000ms should be accepted: %v", err)
	}

	accepted, rejected := g.Counts()
	if accepted != 2 || rejected != 1 {
		t.Errorf("Counts() = (%d, %d), expected (2, 1)", accepted, rejected)
	}

	last, ok := g.LastPlaced()
	if !ok || !last.Equal(t0.Add(time.Second)) {
		t.Errorf("LastPlaced() = %v, %v", last, ok)
	}
}

func TestPlacementGateZeroCooldown(t *testing.T) {
	g := NewPlacementGate(0)
	for i := 0; i < 3; i++ {
		if err := g.TryPlace(t0); err != nil {
			t.Fatalf("zero cooldown should accept every placement: %v", err)
		}
	}

	neg := NewPlacementGate(-time.Second)
	if neg.Remaining(t0) != 0 {
		t.Error("negative cooldown should behave as zero")
	}
}

func TestPlacementGateRemaining(t *testing.T) {
	g := NewPlacementGate(time.Second)
	if g.Remaining(t0) != 0 {
		t.Error("no placement yet: nothing remaining")
	}
	_ = g.TryPlace(t0)
	if got := g.Remaining(t0.Add(400 * time.Millisecond)); got != 600*time.Millisecond {
		t.Errorf("Remaining() = %v, expected 600ms", got)
	}
}

func TestPlacementGateConcurrent(t *testing.T) {
	g := NewPlacementGate(time.Second)

	const workers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			if g.TryPlace(t0.Add(time.Duration(i) * time.Millisecond)) == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if ok != 1 {
		t.Errorf("%d placements accepted inside one window, expected 1", ok)
	}
}

func TestFramePacer(t *testing.T) {
	p := NewFramePacer(8, 4)

	for i := 1; i <= 7; i++ {
		if p.Observe() {
			t.Fatalf("frame advanced after %d messages", i)
		}
	}
	if !p.Observe() {
		t.Fatal("frame should advance on the 8th message")
	}
	if p.Frame() != 1 {
		t.Errorf("Frame() = %d, expected 1", p.Frame())
	}

	for i := 0; i < 8*3; i++ {
		p.Observe()
	}
	if p.Frame() != 0 {
		t.Errorf("frame should wrap over 4 frames, got %d", p.Frame())
	}
	if p.Messages() != 32 || p.Advances() != 4 {
		t.Errorf("Messages() = %d, Advances() = %d", p.Messages(), p.Advances())
	}

	p.Reset()
	if p.Frame() != 0 || p.Messages() != 0 {
		t.Error("Reset() should clear the pacer")
	}
}

func TestFramePacerAtMostOncePerLimit(t *testing.T) {
	p := NewFramePacer(8, 4)
	advances := 0
	for i := 0; i < 100; i++ {
		if p.Observe() {
			advances++
		}
	}
	if advances != 100/8 {
		t.Errorf("advances = %d, expected %d", advances, 100/8)
	}

	clamped := NewFramePacer(0, 0)
	if !clamped.Observe() {
		t.Error("limit below 1 should advance on every message")
	}
}

func TestReadyState(t *testing.T) {
	var r ReadyState
	if r.Ready() {
		t.Error("zero ReadyState should not be ready")
	}
	if !r.Toggle(t0) || !r.Since().Equal(t0) {
		t.Error("first toggle should make the player ready")
	}
	if r.Toggle(t0.Add(time.Second)) || !r.Since().IsZero() {
		t.Error("second toggle should clear readiness")
	}
}

func TestControllerMoveAndPace(t *testing.T) {
	c := NewController(config.DefaultConstants())
	s := newTestSession(t, 1, 0, 0)

	var out Outcome
	for i := 0; i < 8; i++ {
		out = c.Handle(s, core.ActionMoveRight, t0)
	}
	if s.Bomber.PositionX != 80 {
		t.Errorf("PositionX = %d, expected 80", s.Bomber.PositionX)
	}
	if !out.FrameAdvanced || out.Frame != 1 {
		t.Errorf("8th message should advance the frame, got %+v", out)
	}

	out = c.Handle(s, core.ActionMoveLeft, t0)
	if !out.Moved || !out.CellChanged {
		t.Errorf("moving from x=80 to x=70 should cross a cell, got %+v", out)
	}

	out = c.Handle(s, core.ActionNone, t0)
	if out.FrameAdvanced || s.Pacer.Messages() != 9 {
		t.Error("ActionNone should not count as a message")
	}
}

func TestControllerBombCooldown(t *testing.T) {
	c := NewController(config.DefaultConstants())
	s := newTestSession(t, 1, 45, 65)

	out := c.Handle(s, core.ActionPlaceBomb, t0)
	if !out.Placed {
		t.Fatalf("first bomb should be placed: %+v", out)
	}
	if out.Bomb.CellX != 2 || out.Bomb.CellY != 3 || out.Bomb.Radius != 3 {
		t.Errorf("Bomb = %+v", out.Bomb)
	}
	if !out.Bomb.DetonatesAt.Equal(t0.Add(3 * time.Second)) {
		t.Errorf("DetonatesAt = %v", out.Bomb.DetonatesAt)
	}

	out = c.Handle(s, core.ActionPlaceBomb, t0.Add(500*time.Millisecond))
	if out.Placed || !out.Rejected() {
		t.Fatalf("second bomb within 1000ms should be rejected: %+v", out)
	}
	if out.Wait != 500*time.Millisecond {
		t.Errorf("Wait = %v, expected 500ms", out.Wait)
	}

	out = c.Handle(s, core.ActionPlaceBomb, t0.Add(1500*time.Millisecond))
	if !out.Placed {
		t.Errorf("bomb after cooldown should be placed: %+v", out)
	}

	if n := len(s.ActiveBombs(t0.Add(2 * time.Second))); n != 2 {
		t.Errorf("ActiveBombs at 2s = %d, expected 2", n)
	}
	if n := len(s.ActiveBombs(t0.Add(3 * time.Second))); n != 1 {
		t.Errorf("ActiveBombs at 3s = %d, expected 1", n)
	}
}

func TestControllerReady(t *testing.T) {
	c := NewController(config.DefaultConstants())
	s := newTestSession(t, 1, 0, 0)

	if out := c.Handle(s, core.ActionReady, t0); !out.Ready {
		t.Error("ready action should set ready")
	}
	if !s.Ready.Ready() {
		t.Error("session should be ready")
	}
	if out := c.Handle(s, core.ActionReady, t0); out.Ready {
		t.Error("second ready action should clear ready")
	}
}

func TestSpawnPoint(t *testing.T) {
	g := NewGeometry(config.DefaultConstants())

	x, y := SpawnPoint(g, 0)
	if x != 0 || y != 0 {
		t.Errorf("spawn 0 = (%d, %d)", x, y)
	}
	x, y = SpawnPoint(g, 1)
	if x != 980 || y != 980 {
		t.Errorf("spawn 1 = (%d, %d), expected (980, 980)", x, y)
	}
	x2, y2 := SpawnPoint(g, 5)
	if x2 != x || y2 != y {
		t.Error("spawn points should cycle every 4")
	}
	if !g.Bounds().Contains(SpawnPoint(g, 2)) {
		t.Error("spawn points must be inside the field")
	}
}

func TestSessionString(t *testing.T) {
	s := newTestSession(t, 3, 0, 0)
	if s.ID == "" {
		t.Fatal("session id should be generated")
	}
	if !strings.Contains(s.String(), s.ID) {
		t.Errorf("String() = %q should contain the id", s.String())
	}

	other := newTestSession(t, 4, 0, 0)
	if other.ID == s.ID {
		t.Error("session ids should be unique")
	}
}

func TestRosterOrdering(t *testing.T) {
	r := NewRoster()
	for _, id := range []uint64{42, 7, 19} {
		if err := r.Add(newTestSession(t, id, 0, 0)); err != nil {
			t.Fatalf("Add(%d) failed: %v", id, err)
		}
	}

	if err := r.Add(newTestSession(t, 7, 0, 0)); !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("duplicate add should fail with ErrDuplicateUser, got %v", err)
	}

	sessions := r.Sessions()
	if len(sessions) != 3 {
		t.Fatalf("Sessions() len = %d", len(sessions))
	}
	for i, want := range []uint64{7, 19, 42} {
		if sessions[i].User.UserID != want {
			t.Errorf("Sessions()[%d] = %d, expected %d", i, sessions[i].User.UserID, want)
		}
	}

	r.Remove(19)
	if r.Len() != 2 {
		t.Errorf("Len() = %d after remove, expected 2", r.Len())
	}
	if _, ok := r.Get(19); ok {
		t.Error("removed session should not be found")
	}
	if !strings.HasPrefix(r.String(), "Active Connections:") {
		t.Errorf("String() = %q", r.String())
	}
}

func TestRosterSnapshot(t *testing.T) {
	r := NewRoster()
	_ = r.Add(newTestSession(t, 2, 20, 40))
	_ = r.Add(newTestSession(t, 1, 60, 80))

	data, err := r.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("snapshot has %d entries, expected 2", len(decoded))
	}
	if decoded[0]["UserID"] != float64(1) || decoded[0]["PositionX"] != float64(60) {
		t.Errorf("first entry = %v, expected user 1 at x=60", decoded[0])
	}
	if _, leaked := decoded[0]["oldPositionX"]; leaked {
		t.Error("unexported fields must not be encoded")
	}

	empty, err := NewRoster().Snapshot()
	if err != nil || string(empty) != "[]" {
		t.Errorf("empty snapshot = %q, %v", empty, err)
	}
}

func TestRosterConcurrent(t *testing.T) {
	r := NewRoster()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			_ = r.Add(NewSession(User{UserID: id}, config.DefaultConstants(), 0, 0, t0))
			_ = r.Sessions()
		}(uint64(i))
	}
	wg.Wait()

	if r.Len() != 50 {
		t.Errorf("Len() = %d, expected 50", r.Len())
	}
}
