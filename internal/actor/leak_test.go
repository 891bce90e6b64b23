package actor_test

import (
	"context"
	"testing"
	"time"

	"github.com/r-zenine/quickwit/internal/actor"
	"go.uber.org/goleak"
)

// A Universe's goroutines (supervisor poll loop, scheduler loop, every
// spawned actor loop, the context-cancellation forwarder each one starts)
// must all exit once Shutdown has returned and the spawned actor has
// finished; none of it is allowed to leak past the caller's own test.
func TestUniverse_ShutdownLeavesNoGoroutinesBehind(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreCurrent(),
	)

	u := actor.NewUniverse(actor.UniverseConfig{DefaultHeartbeat: 5 * time.Millisecond})

	mailbox, handle := actor.SpawnIn[incMsg, int](u, &countingBehavior{name: "leak-check"})
	ctx := context.Background()
	mailbox.Send(ctx, incMsg{})
	handle.ProcessPendingAndObserve(ctx)

	u.Shutdown(ctx)
	handle.Finish(ctx)
	mailbox.Close()
}

// A single cooperative actor that terminates naturally (last mailbox
// dropped) must not leave its loop goroutine or context-watcher goroutine
// running.
func TestSpawn_NaturalTerminationLeavesNoGoroutinesBehind(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	mailbox, handle := actor.Spawn[incMsg, int](
		ks, &countingBehavior{name: "leak-check-natural"}, actor.Unbounded(),
		5*time.Millisecond,
	)
	mailbox.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	handle.Finish(ctx)
}

// A blocking actor stopped on demand must release its worker-pool
// semaphore slot and unlock its OS thread without leaking a goroutine.
func TestSpawnBlocking_StopLeavesNoGoroutinesBehind(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	mailbox, handle := actor.SpawnBlocking[incMsg, int](
		ks, &countingBehavior{name: "leak-check-blocking"}, actor.Unbounded(),
		5*time.Millisecond,
	)
	defer mailbox.Close()

	ctx := context.Background()
	handle.Stop(ctx)
}
