package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mfriis/ghostlap/internal/config"
	"github.com/mfriis/ghostlap/internal/ghost"
	"github.com/mfriis/ghostlap/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		opts       = defaultStorageOptions()
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored ghosts for local inspection",
		Long: `Runs the inspection server: a JSON API over the stored ghost records and
a websocket endpoint that streams interpolated playback poses for a
browser viewer.`,
		Example: `  ghostlap serve
  ghostlap serve --addr :9000 --storage sqlite
  ghostlap serve --config ghostlap.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.LoadFile(configPath)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("storage") {
				cfg.Storage.Backend = opts.backend
			}
			opts.backend = cfg.Storage.Backend

			kv, err := opts.open()
			if err != nil {
				return err
			}
			defer kv.Close()

			log := logrus.New()
			store := ghost.NewStore(kv, log)
			srv := server.New(cfg.Server.Addr, store, cfg.Ghost.SampleInterval, log)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sig:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "JSON config file")
	opts.addFlags(cmd)
	return cmd
}
