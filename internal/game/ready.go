package game

import "time"

// ReadyState is the state behind the ready-to-play control.
type ReadyState struct {
	ready bool
	since time.Time
}

// Toggle flips readiness and returns the new state.
func (r *ReadyState) Toggle(now time.Time) bool {
	r.ready = !r.ready
	if r.ready {
		r.since = now
	} else {
		r.since = time.Time{}
	}
	return r.ready
}

// Ready reports whether the player is ready.
func (r ReadyState) Ready() bool {
	return r.ready
}

// Since returns when the player became ready; zero when not ready.
func (r ReadyState) Since() time.Time {
	return r.since
}
