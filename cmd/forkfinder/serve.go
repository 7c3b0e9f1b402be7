// cmd/forkfinder/serve.go
package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"forkfinder/internal/api"
	"forkfinder/internal/session"
)

const shutdownGracePeriod = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a ForkFinder session over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("LISTEN_ADDR", cmd.Flags().Lookup("listen")); err != nil {
				return err
			}

			a, err := newApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			s := session.New(a.finder, a.logger)
			srv := &http.Server{
				Addr:    a.cfg.ListenAddr,
				Handler: api.NewRouter(s, a.finder, a.logger),
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("HTTP server listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			a.logger.Info("Shutdown signal received. Exiting.")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().String("listen", ":8080", "address to listen on (overrides LISTEN_ADDR)")
	return cmd
}
