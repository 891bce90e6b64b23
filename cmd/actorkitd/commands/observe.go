package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var observeActorName string

var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Print the last recorded snapshot for a demo actor",
	Long: `observe reads the snapshot store and prints the most recent
ObservableState recorded for --actor, as written by that actor's
Finalize hook the last time "actorkitd run" terminated it.`,
	RunE: runObserve,
}

func init() {
	observeCmd.Flags().StringVar(
		&observeActorName, "actor", "counter",
		"name of the actor to look up (counter or hasher)",
	)
}

func runObserve(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	snapStore, err := getSnapshotStore()
	if err != nil {
		return err
	}
	defer snapStore.Close()

	snap, ok, err := snapStore.LatestSnapshot(ctx, observeActorName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no snapshot recorded for actor %q", observeActorName)
	}

	if outputFormat == "json" {
		return outputJSON(snap)
	}

	fmt.Printf("actor:       %s\n", snap.ActorName)
	fmt.Printf("state:       %s\n", snap.StateJSON)
	fmt.Printf("termination: %s\n", snap.Termination)
	fmt.Printf("recorded_at: %s\n", snap.RecordedAt)

	return nil
}
