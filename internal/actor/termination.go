package actor

import "fmt"

// TerminationKind tags the reason an actor's loop exited.
type TerminationKind int

const (
	// Terminated means all senders closed (or no default message is
	// available to keep the actor alive) and the actor ended naturally.
	Terminated TerminationKind = iota

	// OnDemand means an explicit Stop command was received.
	OnDemand

	// DownstreamClosed means a handler tried to send to a peer mailbox
	// whose receiver is gone. Treated as a failure.
	DownstreamClosed

	// KillSwitch means the actor's group was killed. Not itself a
	// failure, and does not retroactively change whatever failure may
	// have tripped the switch.
	KillSwitch

	// Failure means the handler returned an error that isn't classified
	// as ErrSendFailed.
	Failure
)

func (k TerminationKind) String() string {
	switch k {
	case Terminated:
		return "Terminated"
	case OnDemand:
		return "OnDemand"
	case DownstreamClosed:
		return "DownstreamClosed"
	case KillSwitch:
		return "KillSwitch"
	case Failure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// Termination is the tagged outcome of an actor's run.
type Termination struct {
	Kind TerminationKind

	// Err carries the original error for Failure (and, for logging
	// purposes only, DownstreamClosed).
	Err error
}

// IsFailure reports whether this termination should trip the kill switch.
func (t Termination) IsFailure() bool {
	return t.Kind == Failure || t.Kind == DownstreamClosed
}

func (t Termination) String() string {
	if t.Err != nil {
		return fmt.Sprintf("%s: %v", t.Kind, t.Err)
	}
	return t.Kind.String()
}

// ErrSendFailed is wrapped by handlers when a nested send to a peer mailbox
// fails. The loop classifies errors matching errors.Is(err, ErrSendFailed)
// as DownstreamClosed; anything else becomes Failure.
var ErrSendFailed = fmt.Errorf("send to downstream mailbox failed")

// ErrMailboxClosed names the closed-mailbox condition. Nothing in this
// package returns it: Mailbox sends report a closed mailbox by returning
// false.
var ErrMailboxClosed = fmt.Errorf("mailbox closed")
