package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog/v2"
	"github.com/r-zenine/quickwit/cmd/actorkitd/commands"
	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/r-zenine/quickwit/internal/store"
)

func main() {
	consoleHandler := btclog.NewDefaultHandler(os.Stderr)
	logger := btclog.NewSLogger(consoleHandler)

	actor.UseLogger(logger.WithPrefix("ACTR"))
	store.UseLogger(logger.WithPrefix("STOR"))

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
