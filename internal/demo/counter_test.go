package demo_test

import (
	"context"
	"testing"
	"time"

	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/r-zenine/quickwit/internal/demo"
	"github.com/stretchr/testify/require"
)

type recordedSnapshot struct {
	actorName   string
	stateJSON   string
	termination string
}

type fakeRecorder struct {
	recorded []recordedSnapshot
}

func (f *fakeRecorder) RecordFinalState(actorName, stateJSON, termination string) {
	f.recorded = append(f.recorded, recordedSnapshot{actorName, stateJSON, termination})
}

func TestCounter_AccumulatesAndRecordsOnStop(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	rec := &fakeRecorder{}
	mailbox, handle := actor.Spawn[demo.IncrementMsg, demo.CounterState](
		ks, demo.NewCounter("counter", rec), actor.Unbounded(), 10*time.Millisecond,
	)
	defer mailbox.Close()

	ctx := context.Background()
	mailbox.Send(ctx, demo.IncrementMsg{Delta: 2})
	mailbox.Send(ctx, demo.IncrementMsg{Delta: 5})

	state := handle.ProcessPendingAndObserve(ctx)
	require.Equal(t, 7, state.Total)

	handle.Stop(ctx)
	term := handle.Finish(ctx)
	require.Equal(t, actor.OnDemand, term.Kind)

	require.Len(t, rec.recorded, 1)
	require.Equal(t, "counter", rec.recorded[0].actorName)
	require.Equal(t, `{"total":7}`, rec.recorded[0].stateJSON)
	require.Equal(t, "OnDemand", rec.recorded[0].termination)
}

func TestCounter_NilRecorderIsANoOp(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	mailbox, handle := actor.Spawn[demo.IncrementMsg, demo.CounterState](
		ks, demo.NewCounter("counter", nil), actor.Unbounded(), 10*time.Millisecond,
	)
	defer mailbox.Close()

	ctx := context.Background()
	mailbox.Send(ctx, demo.IncrementMsg{Delta: 1})
	handle.ProcessPendingAndObserve(ctx)
	handle.Stop(ctx)
	term := handle.Finish(ctx)
	require.Equal(t, actor.OnDemand, term.Kind)
}
