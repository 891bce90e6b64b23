// Package commands implements the actorkitd CLI: a small demo binary that
// wires a Universe, a couple of demo actors, and the snapshot store
// together. None of this is part of the actor runtime's own scope; it is
// an external seam the same way cmd/substrate sits above the teacher's mail
// service.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// dbPath is the path to the snapshot store's SQLite database.
	dbPath string

	// outputFormat controls output format (text, json).
	outputFormat string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "actorkitd",
	Short: "actorkitd demos the actor runtime end to end",
	Long: `actorkitd spins up a Universe, spawns a cooperative counter actor
and a blocking hasher actor, and records their final observable state
to a small SQLite snapshot store.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&dbPath, "db", "",
		"path to the snapshot store database (default: in-memory)",
	)
	rootCmd.PersistentFlags().StringVar(
		&outputFormat, "format", "text",
		"output format: text, json",
	)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(observeCmd)
}
