package actor

import (
	"runtime"
	"time"
)

// SpawnBlocking runs behavior on a dedicated worker drawn from a bounded
// blocking pool, the analogue of tokio::task::spawn_blocking. Unlike
// Spawn's cooperative flavor, Receive here may block an OS thread: CPU-heavy
// work or synchronous I/O.
func SpawnBlocking[M Message, S any](
	killSwitch *KillSwitch, behavior Actor[M, S], capacity Capacity,
	heartbeat time.Duration,
) (Mailbox[M], *Handle[M, S]) {

	mailbox, inbox := CreateMailbox[M](behavior.Name(), capacity)
	self := mailbox.Clone()

	actorCtx := newContext(behavior.Name(), self, killSwitch, NewProgress())
	watch := NewWatch(behavior.ObservableState())
	handle := newHandle(actorCtx, watch)

	log.DebugS(actorCtx.Done(), "spawning blocking actor",
		"actor", behavior.Name())

	go func() {
		blockingPool.acquire()
		defer blockingPool.release()

		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		term := runLoop(actorCtx, inbox, behavior, watch, heartbeat)
		handle.result = finishActor(actorCtx, behavior, watch, term)
		close(handle.finishedCh)
	}()

	return mailbox, handle
}
