package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/r-zenine/quickwit/internal/demo"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Spawn the demo counter and hasher actors and observe their state",
	Long: `run spins up a Universe, spawns a cooperative counter actor and a
blocking hasher actor, sends each a few messages, then reports their
final observable state and records it to the snapshot store.`,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	snapStore, err := getSnapshotStore()
	if err != nil {
		return err
	}
	defer snapStore.Close()

	recorder := &storeRecorder{store: snapStore}

	universe := actor.NewUniverse(actor.UniverseConfig{
		DefaultHeartbeat: 50 * time.Millisecond,
	})
	defer universe.Shutdown(ctx)

	counterMailbox, counterHandle := actor.SpawnIn[demo.IncrementMsg, demo.CounterState](
		universe, demo.NewCounter("counter", recorder),
	)
	defer counterMailbox.Close()

	hasherMailbox, hasherHandle := actor.SpawnBlockingIn[demo.HashMsg, demo.HasherState](
		universe, demo.NewHasher("hasher", recorder),
	)
	defer hasherMailbox.Close()

	for i := 1; i <= 3; i++ {
		counterMailbox.Send(ctx, demo.IncrementMsg{Delta: i})
	}
	for _, payload := range []string{"alpha", "beta", "gamma"} {
		hasherMailbox.Send(ctx, demo.HashMsg{Payload: []byte(payload)})
	}

	counterState := counterHandle.ProcessPendingAndObserve(ctx)
	hasherState := hasherHandle.ProcessPendingAndObserve(ctx)

	counterHandle.Stop(ctx)
	hasherHandle.Stop(ctx)
	counterHandle.Finish(ctx)
	hasherHandle.Finish(ctx)

	switch outputFormat {
	case "json":
		return outputJSON(map[string]any{
			"counter": counterState,
			"hasher":  hasherState,
		})
	default:
		fmt.Printf("counter: total=%d\n", counterState.Total)
		fmt.Printf("hasher:  digests=%d last_hash=%s\n",
			hasherState.Digests, hasherState.LastHash)
		return nil
	}
}
