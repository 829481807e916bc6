package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mfriis/ghostlap/internal/ghost"
)

func newReplayCmd(newLogger func() *logrus.Logger) *cobra.Command {
	var (
		seed     int64
		mode     string
		tier     string
		file     string
		speed    float64
		interval float64
		tui      bool
		opts     = defaultStorageOptions()
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a stored ghost record",
		Long: `Replays a ghost record through the same interpolating playback the game
uses. By default each interpolated pose is printed as a line; with --tui
the run is animated in the terminal at --speed times real time.`,
		Example: `  ghostlap replay --seed 42 --tier turbo
  ghostlap replay --file ghost.json --tui --speed 2
  ghostlap replay --seed 42 --tier turbo --tui`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec *ghost.Record

			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading file: %w", err)
				}
				rec, err = ghost.UnmarshalRecord(data)
				if err != nil {
					return fmt.Errorf("parsing record: %w", err)
				}
			} else {
				kv, err := opts.open()
				if err != nil {
					return err
				}
				defer kv.Close()

				key := ghost.Key{Seed: seed, Mode: mode, Tier: tier}
				rec = ghost.NewStore(kv, newLogger()).Load(cmd.Context(), key)
				if rec == nil {
					return fmt.Errorf("no ghost recorded for %s", key)
				}
			}

			if speed <= 0 {
				return fmt.Errorf("speed must be positive, got %v", speed)
			}

			if tui {
				return runTUI(rec, interval, speed, seed)
			}
			return printReplay(cmd, rec, interval)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "track seed")
	cmd.Flags().StringVar(&mode, "mode", "race", "game mode")
	cmd.Flags().StringVar(&tier, "tier", "turbo", "difficulty tier")
	cmd.Flags().StringVar(&file, "file", "", "read the record from a JSON file instead of storage")
	cmd.Flags().Float64Var(&speed, "speed", 1, "playback speed multiplier (TUI mode)")
	cmd.Flags().Float64Var(&interval, "interval", ghost.DefaultInterval, "sampling interval the record was made with")
	cmd.Flags().BoolVar(&tui, "tui", false, "animate the replay in the terminal")
	opts.addFlags(cmd)
	return cmd
}

// printReplay steps the playback half an interval at a time and prints each
// interpolated pose. It runs instantly; --speed only matters for the TUI.
func printReplay(cmd *cobra.Command, rec *ghost.Record, interval float64) error {
	p := ghost.NewPlayback(rec.Frames, "", interval)
	step := p.Interval() / 2

	fmt.Fprintf(cmd.OutOrStdout(), "%8s %10s %10s %9s %6s %6s\n",
		"t", "x", "y", "rot", "speed", "alpha")
	for !p.Finished() {
		p.Update(step)
		fmt.Fprintf(cmd.OutOrStdout(), "%7.2fs %10.2f %10.2f %8.4f %6.2f %6.2f\n",
			p.Elapsed, p.X, p.Y, p.Rotation, p.Speed, p.Opacity)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "replay finished after %.2fs\n", p.Elapsed)
	return nil
}
