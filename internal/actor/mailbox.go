package actor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Capacity selects the buffering strategy for a mailbox's message channel.
// The command channel is never subject to Capacity; it is always sized
// generously enough that senders never block on it (see
// unboundedBufferSize).
type Capacity struct {
	bounded bool
	size    int
}

// Bounded selects a message channel that holds at most n messages before
// senders experience backpressure.
func Bounded(n int) Capacity {
	if n <= 0 {
		n = 1
	}
	return Capacity{bounded: true, size: n}
}

// Unbounded selects a message channel sized generously enough that, in
// practice, senders never block on it. Go channels have no native unbounded
// variant; a very large fixed buffer is the idiomatic stand-in (the teacher
// package's own ChannelMailbox takes the same approach of a single
// fixed-size buffered channel per mailbox).
func Unbounded() Capacity {
	return Capacity{bounded: false}
}

func (c Capacity) bufferSize() int {
	if c.bounded {
		return c.size
	}
	return unboundedBufferSize
}

// unboundedBufferSize is the buffer used for Unbounded message channels and
// for every command channel, regardless of the mailbox's chosen Capacity.
const unboundedBufferSize = 1 << 16

// CommandKind enumerates the priority control-plane messages a mailbox
// carries alongside ordinary messages.
type CommandKind int

const (
	CmdPause CommandKind = iota
	CmdResume
	CmdStop
	CmdObserve
)

func (k CommandKind) String() string {
	switch k {
	case CmdPause:
		return "Pause"
	case CmdResume:
		return "Resume"
	case CmdStop:
		return "Stop"
	case CmdObserve:
		return "Observe"
	default:
		return "Unknown"
	}
}

// Command is the out-of-band control plane. Stop and Observe carry a
// one-shot acknowledgement sink, closed by the actor loop once the command
// has been acted upon.
type Command struct {
	Kind CommandKind
	ack  chan struct{}
}

// PauseCmd builds a Pause command.
func PauseCmd() Command { return Command{Kind: CmdPause} }

// ResumeCmd builds a Resume command.
func ResumeCmd() Command { return Command{Kind: CmdResume} }

// StopCmd builds a Stop command and returns the channel that is closed once
// the actor has acted on it.
func StopCmd() (Command, <-chan struct{}) {
	ack := make(chan struct{})
	return Command{Kind: CmdStop, ack: ack}, ack
}

// ObserveCmd builds an Observe command and returns the channel that is
// closed once the snapshot has been published.
func ObserveCmd() (Command, <-chan struct{}) {
	ack := make(chan struct{})
	return Command{Kind: CmdObserve, ack: ack}, ack
}

// Fulfil closes the command's acknowledgement sink, if any. Safe to call on
// commands without an ack (Pause/Resume); it is then a no-op.
func (c Command) Fulfil() {
	if c.ack != nil {
		close(c.ack)
	}
}

// mailboxItem is what actually flows down a mailbox's message channel. A
// plain message has observeAck == nil. An "ambient" Observe marker injected
// via ProcessPendingAndObserve carries observeAck instead, so that it rides
// the same FIFO channel as ordinary messages and is therefore strictly
// ordered after everything sent before it, then lifted to a Command once
// dequeued by the Inbox.
type mailboxItem[M Message] struct {
	msg        M
	observeAck chan struct{}
}

func (it mailboxItem[M]) isObserveMarker() bool { return it.observeAck != nil }

// mailboxInner is the shared state behind every clone of a Mailbox. Mailbox
// values behave like reference-counted handles onto one mailboxInner: Go has
// no destructors, so reference counting is explicit, via Clone and Close,
// rather than implicit via Arc::strong_count as in the original.
type mailboxInner[M Message] struct {
	id   uuid.UUID
	name string

	messages chan mailboxItem[M]
	commands chan Command

	refCount atomic.Int64

	mu        sync.RWMutex
	closed    atomic.Bool
	closeOnce sync.Once
}

// Mailbox is the sender-side, shared-ownership endpoint of a mailbox pair.
type Mailbox[M Message] struct {
	inner *mailboxInner[M]
}

// Inbox is the receiver-side, uniquely-owned endpoint of a mailbox pair. It
// is moved into the actor's loop.
//
// backlog is a FIFO of items already dequeued from the message channel but
// not yet delivered to the actor. It serves two purposes: (1) the
// select-tie-break stash — a message that lost a same-instant race against a
// command is pushed back here so the next Recv call sees it first — and (2)
// the pause backlog — while Paused, ordinary messages pulled off the channel
// while searching for a buried ambient Observe marker are buffered here
// rather than dropped, and are replayed in order once Running again.
type Inbox[M Message] struct {
	mailbox Mailbox[M]
	backlog []mailboxItem[M]
}

// CreateMailbox constructs a new mailbox pair. The returned Mailbox carries
// exactly one reference; callers that hand out more references must Clone
// it, and every clone (including this first one) must eventually be closed
// via Mailbox.Close for IsLastMailbox to ever become true.
func CreateMailbox[M Message](name string, capacity Capacity) (Mailbox[M], *Inbox[M]) {
	inner := &mailboxInner[M]{
		id:       uuid.New(),
		name:     name,
		messages: make(chan mailboxItem[M], capacity.bufferSize()),
		commands: make(chan Command, unboundedBufferSize),
	}
	inner.refCount.Store(1)

	mb := Mailbox[M]{inner: inner}
	return mb, &Inbox[M]{mailbox: mb}
}

// ID returns the mailbox's unique, 128-bit random identity.
func (m Mailbox[M]) ID() uuid.UUID { return m.inner.id }

// Name returns the actor name this mailbox was created for.
func (m Mailbox[M]) Name() string { return m.inner.name }

// Clone returns a new reference to the same underlying mailbox, incrementing
// its reference count. The returned value must itself eventually be closed.
func (m Mailbox[M]) Clone() Mailbox[M] {
	m.inner.refCount.Add(1)
	return Mailbox[M]{inner: m.inner}
}

// Close drops this reference to the mailbox. Once the reference count
// reaches zero, the underlying channels are closed so that a blocked Inbox
// reception observes a Disconnect.
func (m Mailbox[M]) Close() {
	if m.inner.refCount.Add(-1) != 0 {
		return
	}
	m.inner.closeOnce.Do(func() {
		m.inner.mu.Lock()
		defer m.inner.mu.Unlock()

		m.inner.closed.Store(true)
		close(m.inner.messages)
		close(m.inner.commands)
	})
}

// IsLastMailbox reports whether this is the only remaining reference to the
// underlying mailbox. The actor loop uses this to decide, on an idle
// timeout with no default message, whether to terminate naturally.
func (m Mailbox[M]) IsLastMailbox() bool {
	return m.inner.refCount.Load() == 1
}

// Send enqueues msg on the message channel, suspending (without blocking an
// OS thread any more than an ordinary channel send does) until the send
// completes or ctx is cancelled. It returns false at once if the mailbox is
// already closed; a send already waiting on a full channel is not woken by
// Close, which waits for that send to finish.
func (m Mailbox[M]) Send(ctx context.Context, msg M) bool {
	return m.sendItem(ctx, mailboxItem[M]{msg: msg})
}

// SendBlocking enqueues msg, blocking the calling goroutine until the send
// completes. It returns false at once if the mailbox is already closed. Intended for blocking-flavor callers
// that have no context to honor.
func (m Mailbox[M]) SendBlocking(msg M) bool {
	return m.sendItem(context.Background(), mailboxItem[M]{msg: msg})
}

func (m Mailbox[M]) sendItem(ctx context.Context, item mailboxItem[M]) bool {
	if ctx.Err() != nil {
		return false
	}

	m.inner.mu.RLock()
	defer m.inner.mu.RUnlock()

	if m.inner.closed.Load() {
		return false
	}

	select {
	case m.inner.messages <- item:
		return true
	case <-ctx.Done():
		return false
	}
}

// sendObserveMarker enqueues an ambient Observe marker on the message
// channel, so it is ordered strictly after any message sent before it from
// the same caller.
func (m Mailbox[M]) sendObserveMarker(ctx context.Context) (<-chan struct{}, bool) {
	ack := make(chan struct{})
	ok := m.sendItem(ctx, mailboxItem[M]{observeAck: ack})
	if !ok {
		return nil, false
	}
	return ack, true
}

// SendCommand enqueues cmd on the (always effectively unbounded) command
// channel.
func (m Mailbox[M]) SendCommand(ctx context.Context, cmd Command) bool {
	if ctx.Err() != nil {
		return false
	}

	m.inner.mu.RLock()
	defer m.inner.mu.RUnlock()

	if m.inner.closed.Load() {
		return false
	}

	select {
	case m.inner.commands <- cmd:
		return true
	case <-ctx.Done():
		return false
	}
}

// SendCommandBlocking is the non-cancellable variant of SendCommand.
func (m Mailbox[M]) SendCommandBlocking(cmd Command) bool {
	return m.SendCommand(context.Background(), cmd)
}

// ReceptionKind tags what an Inbox reception produced.
type ReceptionKind int

const (
	ReceptionMessage ReceptionKind = iota
	ReceptionCommand
	ReceptionDisconnect
	ReceptionNone
)

// Reception is the outcome of one call to Inbox.Recv.
type Reception[M Message] struct {
	Kind    ReceptionKind
	Message M
	Command Command
}

// tryCommand performs a non-blocking check for a pending command. Commands
// always have priority, so every reception path consults this first.
func (ib *Inbox[M]) tryCommand() (Reception[M], bool) {
	select {
	case cmd, ok := <-ib.mailbox.inner.commands:
		if !ok {
			return Reception[M]{Kind: ReceptionDisconnect}, true
		}
		return Reception[M]{Kind: ReceptionCommand, Command: cmd}, true
	default:
		return Reception[M]{}, false
	}
}

func itemToReception[M Message](item mailboxItem[M]) Reception[M] {
	if item.isObserveMarker() {
		return Reception[M]{
			Kind:    ReceptionCommand,
			Command: Command{Kind: CmdObserve, ack: item.observeAck},
		}
	}
	return Reception[M]{Kind: ReceptionMessage, Message: item.msg}
}

// Recv is the shared reception primitive used by both the cooperative and
// the blocking loop (they differ only in which goroutine pool calls it).
// messagesEnabled must be false while the actor is Paused. defaultMsg, when
// Some, is injected in place of None once the heartbeat interval elapses
// with messagesEnabled true.
func (ib *Inbox[M]) Recv(
	ctx context.Context, messagesEnabled bool, defaultMsg fn.Option[M],
	heartbeat time.Duration,
) Reception[M] {
	// Step 1: commands always win, unconditionally.
	if r, ok := ib.tryCommand(); ok {
		return r
	}

	if !messagesEnabled {
		return ib.recvPaused(ctx, heartbeat)
	}

	// A message (or ambient Observe marker) held from a previous call:
	// either stashed because a command raced in right after it was
	// dequeued, or buffered while the actor was paused.
	if len(ib.backlog) > 0 {
		item := ib.popBacklog()
		if r, ok := ib.tryCommand(); ok {
			ib.pushBacklogFront(item)
			return r
		}
		return itemToReception(item)
	}

	select {
	case cmd, ok := <-ib.mailbox.inner.commands:
		if !ok {
			return Reception[M]{Kind: ReceptionDisconnect}
		}
		return Reception[M]{Kind: ReceptionCommand, Command: cmd}

	case item, ok := <-ib.mailbox.inner.messages:
		if !ok {
			// The message side is closed; give a last-instant
			// command its due priority before reporting
			// disconnect.
			if r, ok2 := ib.tryCommand(); ok2 {
				return r
			}
			return Reception[M]{Kind: ReceptionDisconnect}
		}

		// Select does not guarantee which ready case wins, so a
		// command that became ready in the same instant as this
		// message must still be returned first. Stash the message
		// for the very next call in that case.
		if r, ok2 := ib.tryCommand(); ok2 {
			ib.pushBacklogFront(item)
			return r
		}
		return itemToReception(item)

	case <-time.After(heartbeat):
		if defaultMsg.IsSome() {
			var zero M
			return Reception[M]{
				Kind:    ReceptionMessage,
				Message: defaultMsg.UnwrapOr(zero),
			}
		}
		return Reception[M]{Kind: ReceptionNone}

	case <-ctx.Done():
		return Reception[M]{Kind: ReceptionNone}
	}
}

// recvPaused implements reception while Paused. Ordinary messages must not
// be delivered, but an ambient Observe marker rides the same message
// channel and must still surface promptly (that is what lets
// ProcessPendingAndObserve work while paused): drain whatever is
// immediately queued, buffering ordinary messages into the backlog for
// later replay, until either an Observe marker turns up or the channel has
// nothing left to offer right now.
func (ib *Inbox[M]) recvPaused(ctx context.Context, heartbeat time.Duration) Reception[M] {
	for {
		select {
		case item, ok := <-ib.mailbox.inner.messages:
			if !ok {
				if r, ok2 := ib.tryCommand(); ok2 {
					return r
				}
				return Reception[M]{Kind: ReceptionDisconnect}
			}
			if item.isObserveMarker() {
				if r, ok2 := ib.tryCommand(); ok2 {
					ib.pushBacklogFront(item)
					return r
				}
				return itemToReception(item)
			}
			ib.backlog = append(ib.backlog, item)
			continue
		default:
		}
		break
	}

	select {
	case cmd, ok := <-ib.mailbox.inner.commands:
		if !ok {
			return Reception[M]{Kind: ReceptionDisconnect}
		}
		return Reception[M]{Kind: ReceptionCommand, Command: cmd}
	case <-time.After(heartbeat):
		return Reception[M]{Kind: ReceptionNone}
	case <-ctx.Done():
		return Reception[M]{Kind: ReceptionNone}
	}
}

func (ib *Inbox[M]) popBacklog() mailboxItem[M] {
	item := ib.backlog[0]
	ib.backlog = ib.backlog[1:]
	return item
}

func (ib *Inbox[M]) pushBacklogFront(item mailboxItem[M]) {
	ib.backlog = append([]mailboxItem[M]{item}, ib.backlog...)
}

// IsLastMailbox delegates to the Inbox's own mailbox reference so loop code
// can check it without holding a separate Mailbox value.
func (ib *Inbox[M]) IsLastMailbox() bool {
	return ib.mailbox.IsLastMailbox()
}
