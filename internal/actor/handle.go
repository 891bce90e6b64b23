package actor

import "context"

// Handle is the outside-the-actor controller returned at spawn time. It
// never sends ordinary messages itself (that is Mailbox's job); it drives
// the command channel and reads the observable-state watch.
//
// Handle deliberately does not hold a long-lived Mailbox clone: each
// operation below clones the actor's own mailbox for just long enough to
// enqueue one command, then closes that clone. A persistent Handle-owned
// reference would make IsLastMailbox never observe "last" while a Handle is
// alive, which would break natural termination on mailbox drop (see
// context.go's self-referential design note).
type Handle[M Message, S any] struct {
	ctx   *Context[M]
	watch *Watch[S]

	finishedCh chan struct{}
	result     Termination
}

func newHandle[M Message, S any](ctx *Context[M], watch *Watch[S]) *Handle[M, S] {
	return &Handle[M, S]{
		ctx:        ctx,
		watch:      watch,
		finishedCh: make(chan struct{}),
	}
}

// Observe sends Observe on the command channel and awaits its ack,
// returning the just-published snapshot.
func (h *Handle[M, S]) Observe(ctx context.Context) S {
	cmd, ack := ObserveCmd()

	mb := h.ctx.Mailbox()
	ok := mb.SendCommand(ctx, cmd)
	mb.Close()

	if ok {
		select {
		case <-ack:
		case <-ctx.Done():
		case <-h.finishedCh:
		}
	}
	return h.watch.Latest()
}

// ProcessPendingAndObserve enqueues an Observe marker on the message
// channel, so it is ordered strictly after any message sent before it by
// the same caller, and awaits it. This is the canonical way to flush an
// actor in tests.
func (h *Handle[M, S]) ProcessPendingAndObserve(ctx context.Context) S {
	mb := h.ctx.Mailbox()
	ack, ok := mb.sendObserveMarker(ctx)
	mb.Close()

	if ok {
		select {
		case <-ack:
		case <-ctx.Done():
		case <-h.finishedCh:
		}
	}
	return h.watch.Latest()
}

// Pause sends Pause on the command channel. Returns false if the actor has
// already terminated.
func (h *Handle[M, S]) Pause(ctx context.Context) bool {
	mb := h.ctx.Mailbox()
	defer mb.Close()
	return mb.SendCommand(ctx, PauseCmd())
}

// Resume sends Resume on the command channel. Returns false if the actor
// has already terminated.
func (h *Handle[M, S]) Resume(ctx context.Context) bool {
	mb := h.ctx.Mailbox()
	defer mb.Close()
	return mb.SendCommand(ctx, ResumeCmd())
}

// Stop sends Stop, awaits its ack (if the actor was still alive to receive
// it), then awaits natural exit and returns the final termination.
func (h *Handle[M, S]) Stop(ctx context.Context) Termination {
	cmd, ack := StopCmd()

	mb := h.ctx.Mailbox()
	ok := mb.SendCommand(ctx, cmd)
	mb.Close()

	if ok {
		select {
		case <-ack:
		case <-ctx.Done():
		case <-h.finishedCh:
		}
	}
	return h.Finish(ctx)
}

// Finish blocks until the actor exits naturally, returning the final
// ActorTermination. If ctx is cancelled first, it returns whatever
// termination has been recorded so far (the zero Termination if the actor
// has not yet finished).
func (h *Handle[M, S]) Finish(ctx context.Context) Termination {
	select {
	case <-h.finishedCh:
	case <-ctx.Done():
	}
	return h.result
}

// State returns the actor's last-observed lifecycle state.
func (h *Handle[M, S]) State() ActorState {
	return h.ctx.State()
}

// progressForSupervisor exposes this actor's Progress so a Supervisor can
// register it. Unexported: only a Universe in the same package wires this
// up, not arbitrary callers.
func (h *Handle[M, S]) progressForSupervisor() *Progress {
	return h.ctx.Progress()
}
