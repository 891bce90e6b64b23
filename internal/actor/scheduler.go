package actor

import (
	"container/heap"
	"fmt"
	"time"
)

// schedulerMsgKind enumerates the Scheduler's own message vocabulary.
type schedulerMsgKind int

const (
	msgScheduleEvent schedulerMsgKind = iota
	msgTimeout
	msgSimulateAdvanceTime
)

// SchedulerMessage is the Scheduler actor's message type: schedule a future
// callback, the scheduler's own internal wake, or (test-only) advance
// virtual time.
type SchedulerMessage struct {
	BaseMessage

	kind     schedulerMsgKind
	delay    time.Duration
	callback func()
	delta    time.Duration
}

func (m SchedulerMessage) MessageType() string {
	switch m.kind {
	case msgScheduleEvent:
		return "ScheduleEvent"
	case msgTimeout:
		return "Timeout"
	case msgSimulateAdvanceTime:
		return "SimulateAdvanceTime"
	default:
		return "Unknown"
	}
}

// ScheduleEvent requests that callback run once delay has elapsed
// (real time, or virtual time if advanced via SimulateAdvanceTime).
// callback must be short; heavy work is a contract violation and must be
// offloaded by the callback itself (e.g. to a blocking actor).
func ScheduleEvent(delay time.Duration, callback func()) SchedulerMessage {
	return SchedulerMessage{
		kind: msgScheduleEvent, delay: delay, callback: callback,
	}
}

// SimulateAdvanceTime advances the scheduler's virtual clock by delta and
// then behaves exactly as a real timer wake would. Test-only.
func SimulateAdvanceTime(delta time.Duration) SchedulerMessage {
	return SchedulerMessage{kind: msgSimulateAdvanceTime, delta: delta}
}

func timeoutMessage() SchedulerMessage {
	return SchedulerMessage{kind: msgTimeout}
}

// SchedulerState is the Scheduler's observable-state snapshot.
type SchedulerState struct {
	NumPendingEvents int
	TotalNumEvents   int
}

// timeoutEvent is ordered lexicographically by (deadline, sequence); the
// sequence is a monotonically increasing counter that breaks ties
// deterministically so that two events with the same deadline fire in
// submission order.
type timeoutEvent struct {
	deadline time.Time
	sequence uint64
	callback func()
}

// eventHeap is a container/heap.Interface min-heap over timeoutEvent,
// ordered by (deadline, sequence).
type eventHeap []*timeoutEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].sequence < h[j].sequence
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*timeoutEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	evt := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return evt
}

// Scheduler is a priority queue of future callbacks keyed by
// (deadline, sequence), itself run as a cooperative actor. All of its
// fields are mutated only from inside Receive, which the runtime guarantees
// runs on a single goroutine at a time, so no internal locking is needed
// (the same "single logical task" property every cooperative actor gets).
type Scheduler struct {
	name string

	sequence        uint64
	simulatedOffset time.Duration
	heap            eventHeap
	totalEvents     int

	timer        *time.Timer
	timerMailbox Mailbox[SchedulerMessage]
}

// NewScheduler constructs a Scheduler with the given display name.
func NewScheduler(name string) *Scheduler {
	return &Scheduler{name: name}
}

// SpawnScheduler spawns a fresh Scheduler as a cooperative actor.
func SpawnScheduler(
	killSwitch *KillSwitch, heartbeat time.Duration,
) (Mailbox[SchedulerMessage], *Handle[SchedulerMessage, SchedulerState]) {

	return Spawn[SchedulerMessage, SchedulerState](
		killSwitch, NewScheduler("scheduler"), Unbounded(), heartbeat,
	)
}

func (s *Scheduler) Name() string { return s.name }

func (s *Scheduler) ObservableState() SchedulerState {
	return SchedulerState{
		NumPendingEvents: s.heap.Len(),
		TotalNumEvents:   s.totalEvents,
	}
}

// now is real time shifted by the accumulated simulated offset. The offset
// is zero in production, so now reduces to the wall clock.
func (s *Scheduler) now() time.Time {
	return time.Now().Add(s.simulatedOffset)
}

func (s *Scheduler) Receive(ctx *Context[SchedulerMessage], msg SchedulerMessage) error {
	switch msg.kind {
	case msgScheduleEvent:
		s.schedule(ctx, msg.delay, msg.callback)

	case msgTimeout:
		s.processTimeout(ctx)

	case msgSimulateAdvanceTime:
		s.simulatedOffset += msg.delta
		s.processTimeout(ctx)
	}
	return nil
}

func (s *Scheduler) schedule(
	ctx *Context[SchedulerMessage], delay time.Duration, callback func(),
) {
	deadline := s.now().Add(delay)

	hadHead := s.heap.Len() > 0
	var headDeadline time.Time
	if hadHead {
		headDeadline = s.heap[0].deadline
	}

	evt := &timeoutEvent{
		deadline: deadline, sequence: s.sequence, callback: callback,
	}
	s.sequence++

	heap.Push(&s.heap, evt)
	s.totalEvents++

	// Re-arm iff the new deadline is strictly earlier than the current
	// head (resolves the scheduler's re-arm open question with "<").
	if !hadHead || deadline.Before(headDeadline) {
		s.rearm(ctx)
	}
}

// processTimeout repeatedly pops every entry whose deadline has arrived
// (deadline <= now, the inclusive resolution of the scheduler's other open
// question) and runs its callback inline, then re-arms for the new head if
// any events remain, or cancels the outstanding wake if none do.
func (s *Scheduler) processTimeout(ctx *Context[SchedulerMessage]) {
	now := s.now()

	for s.heap.Len() > 0 && !s.heap[0].deadline.After(now) {
		evt := heap.Pop(&s.heap).(*timeoutEvent)
		s.invoke(ctx, evt)
	}

	s.rearm(ctx)
}

func (s *Scheduler) invoke(ctx *Context[SchedulerMessage], evt *timeoutEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorS(ctx.Done(), "scheduler callback panicked",
				fmt.Errorf("%v", r), "scheduler", s.name)
		}
	}()
	evt.callback()
}

// rearm cancels any outstanding real-timer wake and starts a new one for
// the current heap head, maintaining the invariant that at most one
// real-timer wake is ever in flight.
func (s *Scheduler) rearm(ctx *Context[SchedulerMessage]) {
	if s.timer != nil {
		if s.timer.Stop() {
			// The wake never ran, so its mailbox clone is still open.
			s.timerMailbox.Close()
		}
		s.timer = nil
	}
	if s.heap.Len() == 0 {
		return
	}

	delay := s.heap[0].deadline.Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	mb := ctx.Mailbox()
	s.timerMailbox = mb
	s.timer = time.AfterFunc(delay, func() {
		defer mb.Close()
		mb.SendBlocking(timeoutMessage())
	})
}
