package actor

import "github.com/lightningnetwork/lnd/fn/v2"

// Actor is the capability surface a concrete actor implements. M is the
// message type it receives; S is its observable-state snapshot type.
//
// The cooperative and blocking execution flavors are structurally
// identical at this interface: whether an Actor runs cooperatively
// (Spawn) or on a dedicated worker (SpawnBlocking) is a property of how it
// is spawned, not of its type. Cooperative implementations must never
// block an OS thread inside Receive; blocking implementations may.
type Actor[M Message, S any] interface {
	// Name is this actor's display name, used in logs and tracing.
	Name() string

	// Receive processes one message. Returning an error wrapping
	// ErrSendFailed terminates the actor with DownstreamClosed; any
	// other error terminates it with Failure.
	Receive(ctx *Context[M], msg M) error

	// ObservableState synthesises a snapshot of the actor's state on
	// demand. Called once at spawn for the initial snapshot, on every
	// Observe, and exactly once more at termination.
	ObservableState() S
}

// DefaultMessageProvider is implemented by actors that want a synthetic
// "idle tick" message injected whenever the reception heartbeat elapses
// with no real message pending and the actor is not paused.
type DefaultMessageProvider[M Message] interface {
	DefaultMessage() fn.Option[M]
}

// Finalizer is implemented by actors with cleanup to run exactly once, on
// every exit path (including failure), after the loop exits but before the
// final observable-state publish. An error returned here is logged and
// discarded; it never changes the termination already decided.
type Finalizer[M Message] interface {
	Finalize(termination Termination, ctx *Context[M]) error
}
