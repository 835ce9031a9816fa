package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/game"
	"github.com/vovakirdan/tui-bomber/internal/storage"
	"github.com/vovakirdan/tui-bomber/internal/surface"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLobby(t *testing.T) (LobbyModel, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	m, err := NewLobbyModel(LobbyOptions{
		Constants: config.DefaultConstants(),
		IDs:       surface.DefaultIDs(),
		User:      game.User{UserID: 1, Name: "alice"},
		Width:     80,
		Height:    24,
		Now:       clock.now,
	})
	if err != nil {
		t.Fatalf("NewLobbyModel() failed: %v", err)
	}
	return m, clock
}

func press(m LobbyModel, msg tea.KeyMsg) LobbyModel {
	next, _ := m.Update(msg)
	return next.(LobbyModel)
}

func TestTerminalDocumentResolves(t *testing.T) {
	doc := NewTerminalDocument(surface.DefaultIDs(), 40, 10)

	h, err := surface.Resolve(doc, surface.DefaultIDs())
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	screen, ok := h.Context.(*core.Screen)
	if !ok {
		t.Fatalf("matchfield context is %T, expected *core.Screen", h.Context)
	}
	if screen.Width() != 40 || screen.Height() != 10 {
		t.Errorf("screen = %dx%d, expected 40x10", screen.Width(), screen.Height())
	}
	if h.Ready.Text() != "Ready" {
		t.Errorf("ready button text = %q", h.Ready.Text())
	}
}

func TestLobbyMissingSurface(t *testing.T) {
	doc := surface.NewDocument()
	doc.Append(nil, "div", "stats")
	doc.AppendCanvas(nil, "matchfield", 10, 10)

	_, err := newLobbyModel(doc, LobbyOptions{
		Constants: config.DefaultConstants(),
		IDs:       surface.DefaultIDs(),
	})
	var hre *surface.HandleResolutionError
	if !errors.As(err, &hre) {
		t.Fatalf("expected HandleResolutionError, got %v", err)
	}
	if hre.ID != "readyButton" {
		t.Errorf("missing id = %q, expected readyButton", hre.ID)
	}
}

func TestLobbyLabels(t *testing.T) {
	m, _ := newTestLobby(t)

	labels := m.Handles().Stats.Children()
	if len(labels) != 3 {
		t.Fatalf("stats has %d children, expected 3 labels", len(labels))
	}
	if labels[0].Text() != "Name: alice" || labels[1].Text() != "X: 0" || labels[2].Text() != "Y: 0" {
		t.Errorf("labels = %q %q %q", labels[0].Text(), labels[1].Text(), labels[2].Text())
	}

	m = press(m, runeKey('d'))
	m = press(m, runeKey('s'))
	if labels[1].Text() != "X: 10" || labels[2].Text() != "Y: 10" {
		t.Errorf("labels after move = %q %q", labels[1].Text(), labels[2].Text())
	}
}

func TestLobbyBombCooldown(t *testing.T) {
	m, clock := newTestLobby(t)
	space := tea.KeyMsg{Type: tea.KeySpace}

	m = press(m, space)
	if !strings.HasPrefix(m.Status(), "Bomb placed") {
		t.Errorf("status = %q, expected placement", m.Status())
	}

	clock.advance(400 * time.Millisecond)
	m = press(m, space)
	if !strings.Contains(m.Status(), "600ms") {
		t.Errorf("status = %q, expected 600ms cooldown", m.Status())
	}

	clock.advance(600 * time.Millisecond)
	m = press(m, space)
	accepted, rejected := m.Session().Gate.Counts()
	if accepted != 2 || rejected != 1 {
		t.Errorf("Counts() = (%d, %d), expected (2, 1)", accepted, rejected)
	}
}

func TestLobbyReadyButton(t *testing.T) {
	m, _ := newTestLobby(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Session().Ready.Ready() {
		t.Fatal("enter should activate the ready control")
	}

	// Activating the control directly is equivalent to the key
	m.Handles().Ready.Activate()
	if m.Session().Ready.Ready() {
		t.Error("second activation should clear readiness")
	}
	if m.Session().Pacer.Messages() != 2 {
		t.Errorf("Messages() = %d, expected 2", m.Session().Pacer.Messages())
	}
}

func TestLobbyDrawsPlayer(t *testing.T) {
	m, _ := newTestLobby(t)

	view := m.screen.String()
	if !strings.ContainsRune(view, playerFrames[0]) {
		t.Error("matchfield should show the player sprite")
	}
	if m.screen.Get(0, 0) != '┌' {
		t.Error("matchfield should be framed")
	}
	if !strings.Contains(m.View(), "Name: alice") {
		t.Error("view should include the stats labels")
	}
}

func TestLobbyQuit(t *testing.T) {
	m, _ := newTestLobby(t)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(LobbyModel).Quitting() {
		t.Error("model should be quitting")
	}
	if m.Session().Pacer.Messages() != 0 {
		t.Error("quit must not count as a message")
	}
}

func TestLobbyResize(t *testing.T) {
	m, _ := newTestLobby(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(LobbyModel)
	w, h := fieldSize(120, 40)
	if m.screen.Width() != w || m.screen.Height() != h {
		t.Errorf("screen = %dx%d, expected %dx%d", m.screen.Width(), m.screen.Height(), w, h)
	}
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultLobbyKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runeKey('w'), core.ActionMoveUp},
		{runeKey('a'), core.ActionMoveLeft},
		{runeKey('s'), core.ActionMoveDown},
		{runeKey('d'), core.ActionMoveRight},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionMoveUp},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionPlaceBomb},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionReady},
		{runeKey('q'), core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(5, 3)
	s.DrawBox(core.NewRect(0, 0, 5, 3))
	s.Set(2, 1, bombRune)

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 2 {
		t.Errorf("RenderScreen() should produce 3 lines, got %q", out)
	}
	if !strings.ContainsRune(out, bombRune) || !strings.ContainsRune(out, '┌') {
		t.Errorf("RenderScreen() lost content: %q", out)
	}
}

type fakeSource struct {
	records []storage.SessionRecord
	err     error
}

func (f fakeSource) RecentSessions(limit int) ([]storage.SessionRecord, error) {
	return f.records, f.err
}

func TestHistoryModel(t *testing.T) {
	end := time.Date(2024, 5, 1, 12, 1, 30, 0, time.UTC)
	src := fakeSource{records: []storage.SessionRecord{{
		SessionID:     "a",
		Name:          "alice",
		StartedAt:     end.Add(-90 * time.Second),
		EndedAt:       end,
		FinalX:        20,
		FinalY:        40,
		BombsPlaced:   2,
		BombsRejected: 1,
		Messages:      12,
	}}}

	m := NewHistoryModel(src, 10, 100, 30)
	rows := HistoryRows(m.records)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, expected 1", len(rows))
	}
	if rows[0][1] != "alice" || rows[0][2] != "1m30s" || rows[0][3] != "20,40" || rows[0][4] != "2/3" {
		t.Errorf("row = %v", rows[0])
	}

	empty := NewHistoryModel(fakeSource{}, 10, 100, 30)
	if !strings.Contains(empty.View(), "No sessions recorded yet") {
		t.Error("empty history should say so")
	}

	failing := NewHistoryModel(fakeSource{err: errors.New("boom")}, 10, 100, 30)
	if !strings.Contains(failing.View(), "boom") {
		t.Error("load error should be shown")
	}
}
