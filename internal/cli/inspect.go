package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mfriis/ghostlap/internal/ghost"
)

func newInspectCmd(newLogger func() *logrus.Logger) *cobra.Command {
	var (
		seed   int64
		mode   string
		tier   string
		file   string
		export string
		opts   = defaultStorageOptions()
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a summary of a stored ghost record",
		Example: `  ghostlap inspect --seed 42 --tier turbo
  ghostlap inspect --file ghost.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec *ghost.Record
			var source string

			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading file: %w", err)
				}
				rec, err = ghost.UnmarshalRecord(data)
				if err != nil {
					return fmt.Errorf("parsing record: %w", err)
				}
				source = file
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
				source = key.String()
			}

			fmt.Printf("Ghost record %s (version %d)\n", source, rec.Version)
			fmt.Printf("  Recorded:  %s\n", rec.RecordedAt.Format(time.RFC3339))
			fmt.Printf("  Samples:   %d (%.1fs of replay)\n", rec.SampleCount(), rec.Duration(0).Seconds())
			fmt.Printf("  Total:     %dms\n", rec.TotalTimeMs)
			fmt.Printf("  Best lap:  %dms\n", rec.BestLapMs)
			fmt.Printf("  Laps:      %d\n", len(rec.LapTimes))
			for i, lt := range rec.LapTimes {
				fmt.Printf("    lap %d: %dms\n", i+1, lt)
			}
			if export != "" {
				if err := exportRecord(export, rec); err != nil {
					return err
				}
				fmt.Printf("Exported to %s\n", export)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "track seed")
	cmd.Flags().StringVar(&mode, "mode", "race", "game mode")
	cmd.Flags().StringVar(&tier, "tier", "turbo", "difficulty tier")
	cmd.Flags().StringVar(&file, "file", "", "read the record from a JSON file instead of storage")
	cmd.Flags().StringVar(&export, "export", "", "also write the record to a JSON file")
	opts.addFlags(cmd)
	return cmd
}

// exportRecord writes a record as indented JSON, shared by commands that
// dump records to disk.
func exportRecord(path string, rec *ghost.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}
