package cli

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mfriis/ghostlap/internal/ghost"
)

func newBestsCmd(newLogger func() *logrus.Logger) *cobra.Command {
	opts := defaultStorageOptions()

	cmd := &cobra.Command{
		Use:     "bests",
		Short:   "List stored ghosts and their times",
		Example: `  ghostlap bests --storage sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := opts.open()
			if err != nil {
				return err
			}
			defer kv.Close()

			store := ghost.NewStore(kv, newLogger())
			keys, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Println("no ghosts recorded")
				return nil
			}

			sort.Slice(keys, func(i, j int) bool {
				if keys[i].Seed != keys[j].Seed {
					return keys[i].Seed < keys[j].Seed
				}
				if keys[i].Mode != keys[j].Mode {
					return keys[i].Mode < keys[j].Mode
				}
				return keys[i].Tier < keys[j].Tier
			})

			fmt.Printf("%-8s %-12s %-8s %10s %10s %6s\n", "seed", "mode", "tier", "total", "best lap", "laps")
			for _, k := range keys {
				rec := store.Load(cmd.Context(), k)
				if rec == nil {
					continue
				}
				fmt.Printf("%-8d %-12s %-8s %9dms %9dms %6d\n",
					k.Seed, k.Mode, k.Tier, rec.TotalTimeMs, rec.BestLapMs, len(rec.LapTimes))
			}
			return nil
		},
	}

	opts.addFlags(cmd)
	return cmd
}
