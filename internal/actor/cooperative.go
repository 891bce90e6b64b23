package actor

import "time"

// Spawn runs behavior cooperatively: its loop goroutine is a single logical
// task on Go's own scheduler, the direct analogue of a task on a shared
// asynchronous executor. Receive must never block an OS thread.
func Spawn[M Message, S any](
	killSwitch *KillSwitch, behavior Actor[M, S], capacity Capacity,
	heartbeat time.Duration,
) (Mailbox[M], *Handle[M, S]) {

	mailbox, inbox := CreateMailbox[M](behavior.Name(), capacity)
	self := mailbox.Clone()

	actorCtx := newContext(behavior.Name(), self, killSwitch, NewProgress())
	watch := NewWatch(behavior.ObservableState())
	handle := newHandle(actorCtx, watch)

	log.DebugS(actorCtx.Done(), "spawning cooperative actor",
		"actor", behavior.Name())

	go func() {
		term := runLoop(actorCtx, inbox, behavior, watch, heartbeat)
		handle.result = finishActor(actorCtx, behavior, watch, term)
		close(handle.finishedCh)
	}()

	return mailbox, handle
}
