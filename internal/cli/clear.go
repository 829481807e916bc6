package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mfriis/ghostlap/internal/ghost"
)

func newClearCmd(newLogger func() *logrus.Logger) *cobra.Command {
	var yes bool
	opts := defaultStorageOptions()

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored ghost record",
		Long: `Removes every key in the ghost namespace from the selected backend.
Data outside the namespace is left untouched.`,
		Example: `  ghostlap clear --yes --storage file --file-dir ghosts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}

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
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("cleared %d ghost record(s)\n", len(keys))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	opts.addFlags(cmd)
	return cmd
}
