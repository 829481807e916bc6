// Package cli wires the ghostlap commands: simulate a run, inspect and
// replay stored ghosts, list best times, and serve the inspection API.
package cli

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root ghostlap command.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "ghostlap",
		Short: "Record, store and replay racing ghosts",
		Long: `Ghostlap records a run's trajectory at a fixed sampling interval and
replays it later as a translucent ghost on the same procedurally
generated track. This tool simulates runs, inspects stored records,
replays them in the terminal, and serves them for a browser viewer.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log storage activity")

	newLogger := func() *logrus.Logger {
		log := logrus.New()
		if !verbose {
			log.SetOutput(io.Discard)
		}
		return log
	}

	root.AddCommand(
		newSimulateCmd(newLogger),
		newInspectCmd(newLogger),
		newReplayCmd(newLogger),
		newBestsCmd(newLogger),
		newClearCmd(newLogger),
		newServeCmd(),
	)

	return root
}
