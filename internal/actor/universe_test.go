package actor_test

import (
	"context"
	"testing"
	"time"

	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/stretchr/testify/require"
)

func TestUniverse_SpawnAndShutdownCascades(t *testing.T) {
	t.Parallel()

	u := actor.NewUniverse(actor.UniverseConfig{DefaultHeartbeat: 10 * time.Millisecond})

	mailbox, handle := actor.SpawnIn[incMsg, int](u, &countingBehavior{name: "counter"})
	defer mailbox.Close()

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		mailbox.Send(ctx, incMsg{})
	}
	require.Equal(t, 4, handle.ProcessPendingAndObserve(ctx))

	u.Shutdown(ctx)

	finishCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	term := handle.Finish(finishCtx)
	require.Equal(t, actor.KillSwitch, term.Kind)
}

func TestUniverse_Schedule(t *testing.T) {
	t.Parallel()

	u := actor.NewUniverse(actor.UniverseConfig{DefaultHeartbeat: 10 * time.Millisecond})
	defer u.Shutdown(context.Background())

	ctx := context.Background()
	fired := make(chan struct{})
	require.True(t, u.Schedule(ctx, 2*time.Millisecond, func() { close(fired) }))

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduled callback never fired")
	}
}
