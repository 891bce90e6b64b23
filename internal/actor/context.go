package actor

import (
	"context"
	"sync/atomic"
)

// ActorState is the lifecycle state of a running actor.
type ActorState int32

const (
	StateRunning ActorState = iota
	StatePaused
	StateTerminated
)

func (s ActorState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Context is passed to an actor's handler on every invocation. It owns a
// clone of the actor's own mailbox (so a handler can re-enter, e.g. the
// scheduler sending itself a Timeout), the shared kill switch, the actor's
// Progress, and its current lifecycle state.
//
// Per the design note on self-referential contexts: this mailbox clone is a
// real, counted reference. It must be closed exactly once, by the loop on
// exit, or IsLastMailbox will never observe true for external holders.
type Context[M Message] struct {
	name       string
	self       Mailbox[M]
	killSwitch *KillSwitch
	progress   *Progress
	state      atomic.Int32

	ctx    context.Context
	cancel context.CancelFunc
}

func newContext[M Message](
	name string, self Mailbox[M], killSwitch *KillSwitch, progress *Progress,
) *Context[M] {

	ctx, cancel := context.WithCancel(context.Background())
	c := &Context[M]{
		name:       name,
		self:       self,
		killSwitch: killSwitch,
		progress:   progress,
		ctx:        ctx,
		cancel:     cancel,
	}
	c.state.Store(int32(StateRunning))

	go func() {
		select {
		case <-killSwitch.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	return c
}

// Name returns the actor's display name.
func (c *Context[M]) Name() string { return c.name }

// Mailbox returns a clone of this actor's own mailbox. Handlers may use it
// to send themselves messages (e.g. for periodic re-scheduling). The clone
// must be closed by whoever receives it if held beyond the handler call.
func (c *Context[M]) Mailbox() Mailbox[M] { return c.self.Clone() }

// KillSwitch returns the kill switch shared by this actor's group.
func (c *Context[M]) KillSwitch() *KillSwitch { return c.killSwitch }

// Progress returns this actor's heartbeat flag.
func (c *Context[M]) Progress() *Progress { return c.progress }

// State returns the actor's current lifecycle state.
func (c *Context[M]) State() ActorState {
	return ActorState(c.state.Load())
}

func (c *Context[M]) setState(s ActorState) {
	c.state.Store(int32(s))
}

// Pause transitions the actor to Paused.
func (c *Context[M]) Pause() { c.setState(StatePaused) }

// Resume transitions the actor to Running.
func (c *Context[M]) Resume() { c.setState(StateRunning) }

// Terminate transitions the actor to Terminated and cancels its derived
// context.Context, waking anything selecting on it.
func (c *Context[M]) Terminate() {
	c.setState(StateTerminated)
	c.cancel()
}

// Done returns a context.Context that is cancelled when this actor
// terminates or its kill switch trips, whichever happens first. Handlers
// that perform cancellable work (e.g. sends to peers) should derive their
// own per-call context from this one.
func (c *Context[M]) Done() context.Context { return c.ctx }

// close releases the context's own mailbox reference. Called exactly once,
// by the loop, on every exit path.
func (c *Context[M]) close() {
	c.self.Close()
}
