package demo_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/r-zenine/quickwit/internal/demo"
	"github.com/stretchr/testify/require"
)

func TestHasher_DigestsAndRecordsOnStop(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	rec := &fakeRecorder{}
	mailbox, handle := actor.SpawnBlocking[demo.HashMsg, demo.HasherState](
		ks, demo.NewHasher("hasher", rec), actor.Unbounded(), 10*time.Millisecond,
	)
	defer mailbox.Close()

	ctx := context.Background()
	mailbox.Send(ctx, demo.HashMsg{Payload: []byte("hello")})

	state := handle.ProcessPendingAndObserve(ctx)
	sum := sha256.Sum256([]byte("hello"))
	want := hex.EncodeToString(sum[:])

	require.Equal(t, 1, state.Digests)
	require.Equal(t, want, state.LastHash)

	handle.Stop(ctx)
	term := handle.Finish(ctx)
	require.Equal(t, actor.OnDemand, term.Kind)

	require.Len(t, rec.recorded, 1)
	require.Equal(t, "hasher", rec.recorded[0].actorName)
}
