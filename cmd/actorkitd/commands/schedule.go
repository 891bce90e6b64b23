package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/spf13/cobra"
)

var scheduleDelay time.Duration

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a one-shot callback on the Universe's scheduler and wait for it",
	Long: `schedule demonstrates the virtual-time scheduler actor: it arms a
real-timer-backed callback for --delay in the future, then blocks until
the callback fires or the wait times out.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().DurationVar(
		&scheduleDelay, "delay", 500*time.Millisecond,
		"delay before the callback fires",
	)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	universe := actor.NewUniverse(actor.UniverseConfig{
		DefaultHeartbeat: 50 * time.Millisecond,
	})
	defer universe.Shutdown(ctx)

	fired := make(chan time.Time, 1)
	submittedAt := time.Now()

	ok := universe.Schedule(ctx, scheduleDelay, func() {
		fired <- time.Now()
	})
	if !ok {
		return fmt.Errorf("failed to submit scheduled callback")
	}

	select {
	case firedAt := <-fired:
		elapsed := firedAt.Sub(submittedAt)
		if outputFormat == "json" {
			return outputJSON(map[string]any{
				"requested_delay": scheduleDelay.String(),
				"elapsed":         elapsed.String(),
			})
		}
		fmt.Printf("callback fired after %s (requested %s)\n",
			elapsed, scheduleDelay)
		return nil

	case <-time.After(scheduleDelay + 5*time.Second):
		return fmt.Errorf("callback never fired within the wait budget")
	}
}
