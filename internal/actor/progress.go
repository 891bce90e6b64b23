package actor

import "sync/atomic"

// Progress is a one-bit heartbeat shared between an actor and its
// supervisor. The actor records progress before and after every potentially
// suspending operation; the supervisor periodically polls and resets it,
// killing any actor found not to have moved since the previous poll.
type Progress struct {
	moved atomic.Bool
}

// NewProgress returns a Progress with no recorded movement yet.
func NewProgress() *Progress {
	return &Progress{}
}

// Record marks that the actor has made forward progress since the last
// poll.
func (p *Progress) Record() {
	p.moved.Store(true)
}

// PollAndReset returns whether progress was recorded since the previous
// call, then clears the flag. Intended to be called by a supervisor only.
func (p *Progress) PollAndReset() bool {
	return p.moved.Swap(false)
}
