package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/r-zenine/quickwit/internal/demo"
	"github.com/r-zenine/quickwit/internal/store"
)

// getSnapshotStore opens the snapshot store at dbPath, or an in-memory
// database if dbPath is unset.
func getSnapshotStore() (*store.SnapshotStore, error) {
	s, err := store.NewSnapshotStore(store.Config{DatabaseFileName: dbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	return s, nil
}

// storeRecorder adapts a *store.SnapshotStore, whose RecordSnapshot method
// takes a context and returns an error, to the fire-and-forget
// demo.SnapshotRecorder interface a demo actor's Finalize hook calls with
// no way to propagate an error.
type storeRecorder struct {
	store *store.SnapshotStore
}

func (r *storeRecorder) RecordFinalState(actorName, stateJSON, termination string) {
	err := r.store.RecordSnapshot(
		context.Background(), actorName, stateJSON, termination,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record snapshot for %q: %v\n",
			actorName, err)
	}
}

var _ demo.SnapshotRecorder = (*storeRecorder)(nil)

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
