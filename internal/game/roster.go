package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrDuplicateUser is returned when a user id already has a session.
var ErrDuplicateUser = errors.New("game: user already in roster")

// Roster tracks active sessions ordered by user id.
// Thread-safe for concurrent access.
type Roster struct {
	mu       sync.RWMutex
	sessions map[uint64]*Session
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		sessions: make(map[uint64]*Session),
	}
}

// Add registers a session.
func (r *Roster) Add(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.User.UserID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateUser, s.User.UserID)
	}
	r.sessions[s.User.UserID] = s
	return nil
}

// Remove drops the session of a user.
func (r *Roster) Remove(userID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// Get retrieves a session by user id.
func (r *Roster) Get(userID uint64) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// Len returns the number of sessions.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sessions returns all sessions sorted by user id.
func (r *Roster) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].User.UserID < out[j].User.UserID
	})
	return out
}

// Snapshot encodes every character, ordered by user id, as the JSON array
// pushed to clients on each update.
func (r *Roster) Snapshot() ([]byte, error) {
	sessions := r.Sessions()
	bombers := make([]Bomberman, len(sessions))
	for i, s := range sessions {
		bombers[i] = *s.Bomber
	}

	data, err := json.MarshalIndent(bombers, "", " ")
	if err != nil {
		return nil, fmt.Errorf("game: cannot encode roster snapshot: %w", err)
	}
	return data, nil
}

// String lists every active session, one per line.
func (r *Roster) String() string {
	var sb strings.Builder
	sb.WriteString("Active Connections:")
	for _, s := range r.Sessions() {
		sb.WriteString("\n")
		sb.WriteString(s.String())
	}
	return sb.String()
}
