package game

// FramePacer advances a player's sprite frame once every limit messages,
// which animates movement at a pace tied to traffic rather than wall time.
type FramePacer struct {
	limit    int
	frames   int
	count    int
	frame    int
	messages int
	advances int
}

// NewFramePacer creates a pacer. limit and frames below 1 are raised to 1.
func NewFramePacer(limit, frames int) *FramePacer {
	return &FramePacer{
		limit:  max(limit, 1),
		frames: max(frames, 1),
	}
}

// Observe counts one message and reports whether the frame advanced.
func (p *FramePacer) Observe() bool {
	p.messages++
	p.count++
	if p.count < p.limit {
		return false
	}
	p.count = 0
	p.frame = (p.frame + 1) % p.frames
	p.advances++
	return true
}

// Frame returns the current sprite frame index.
func (p *FramePacer) Frame() int {
	return p.frame
}

// Messages returns the number of observed messages.
func (p *FramePacer) Messages() int {
	return p.messages
}

// Advances returns how many times the frame has advanced.
func (p *FramePacer) Advances() int {
	return p.advances
}

// Reset returns the pacer to frame 0 with no pending messages.
func (p *FramePacer) Reset() {
	p.count, p.frame, p.messages, p.advances = 0, 0, 0, 0
}
