package actor_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/stretchr/testify/require"
)

// Scenario B: SimpleScheduler.
func TestScheduler_Scenario_SimpleScheduler(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	mailbox, handle := actor.SpawnScheduler(ks, 10*time.Millisecond)
	defer mailbox.Close()
	ctx := context.Background()

	var cb1, cb2 atomic.Bool
	mailbox.Send(ctx, actor.ScheduleEvent(2*time.Millisecond, func() { cb1.Store(true) }))
	mailbox.Send(ctx, actor.ScheduleEvent(20*time.Second, func() { cb2.Store(true) }))

	state := handle.ProcessPendingAndObserve(ctx)
	require.Equal(t, 2, state.TotalNumEvents)
	require.Equal(t, 2, state.NumPendingEvents)
	require.False(t, cb1.Load())
	require.False(t, cb2.Load())

	time.Sleep(10 * time.Millisecond)
	state = handle.Observe(ctx)
	require.Equal(t, 2, state.TotalNumEvents)
	require.Equal(t, 1, state.NumPendingEvents)
	require.True(t, cb1.Load())
	require.False(t, cb2.Load())

	mailbox.Send(ctx, actor.SimulateAdvanceTime(10*time.Second))
	state = handle.ProcessPendingAndObserve(ctx)
	require.False(t, cb2.Load(), "10s elapsed of a 20s delay must not fire cb2")
	require.Equal(t, 1, state.NumPendingEvents)

	mailbox.Send(ctx, actor.SimulateAdvanceTime(10*time.Second))
	state = handle.ProcessPendingAndObserve(ctx)
	require.Equal(t, 2, state.TotalNumEvents)
	require.Equal(t, 0, state.NumPendingEvents)
	require.True(t, cb2.Load())

	handle.Stop(ctx)
}

// Scenario C: VirtualTime.
func TestScheduler_Scenario_VirtualTime(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	mailbox, handle := actor.SpawnScheduler(ks, 10*time.Millisecond)
	defer mailbox.Close()
	ctx := context.Background()

	var fired atomic.Bool
	mailbox.Send(ctx, actor.ScheduleEvent(30*time.Second, func() { fired.Store(true) }))
	handle.ProcessPendingAndObserve(ctx)

	time.Sleep(1 * time.Second)
	require.False(t, fired.Load())

	mailbox.Send(ctx, actor.SimulateAdvanceTime(31*time.Second))
	state := handle.ProcessPendingAndObserve(ctx)
	require.Equal(t, 1, state.TotalNumEvents)
	require.Equal(t, 0, state.NumPendingEvents)
	require.True(t, fired.Load())

	handle.Stop(ctx)
}

// Property 4: scheduler determinism — two callbacks with the same deadline
// fire in submission order.
func TestScheduler_TieBreakIsSubmissionOrder(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	mailbox, handle := actor.SpawnScheduler(ks, 5*time.Millisecond)
	defer mailbox.Close()
	ctx := context.Background()

	var order []int
	record := func(n int) func() { return func() { order = append(order, n) } }

	// Zero delay for all three, submitted 1 then 2 then 3. Each deadline is
	// now()+0 at submission, so they are equal or only nanoseconds apart.
	mailbox.Send(ctx, actor.ScheduleEvent(0, record(1)))
	mailbox.Send(ctx, actor.ScheduleEvent(0, record(2)))
	mailbox.Send(ctx, actor.ScheduleEvent(0, record(3)))

	require.Eventually(t, func() bool {
		state := handle.ProcessPendingAndObserve(ctx)
		return state.NumPendingEvents == 0
	}, time.Second, time.Millisecond)

	require.Equal(t, []int{1, 2, 3}, order)
	handle.Stop(ctx)
}

// Property 5: virtual time monotonicity — callbacks with deadline <= now+delta
// all fire after one SimulateAdvanceTime(delta).
func TestScheduler_AdvanceTimeFiresAllDueCallbacks(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	mailbox, handle := actor.SpawnScheduler(ks, 5*time.Millisecond)
	defer mailbox.Close()
	ctx := context.Background()

	const n = 20
	var fireCount atomic.Int64
	for i := 0; i < n; i++ {
		mailbox.Send(ctx, actor.ScheduleEvent(
			time.Duration(i)*time.Second, func() { fireCount.Add(1) },
		))
	}
	handle.ProcessPendingAndObserve(ctx)

	mailbox.Send(ctx, actor.SimulateAdvanceTime(time.Duration(n)*time.Second))
	state := handle.ProcessPendingAndObserve(ctx)

	require.Equal(t, int64(n), fireCount.Load())
	require.Equal(t, 0, state.NumPendingEvents)

	handle.Stop(ctx)
}

// Scheduler callback contract: a panicking callback must be absorbed and
// must not poison the scheduler for subsequent events.
func TestScheduler_PanickingCallbackDoesNotPoisonScheduler(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	mailbox, handle := actor.SpawnScheduler(ks, 5*time.Millisecond)
	defer mailbox.Close()
	ctx := context.Background()

	var after atomic.Bool
	mailbox.Send(ctx, actor.ScheduleEvent(0, func() { panic("boom") }))
	mailbox.Send(ctx, actor.ScheduleEvent(0, func() { after.Store(true) }))

	require.Eventually(t, func() bool {
		return after.Load()
	}, time.Second, time.Millisecond)

	require.Equal(t, actor.StateRunning, handle.State())
	handle.Stop(ctx)
}
