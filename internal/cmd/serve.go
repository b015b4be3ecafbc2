package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nutri-dash/internal/render"
	"nutri-dash/internal/server"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Load the dataset once and serve the dashboard page, the JSON API, SVG
charts and the /mcp tool endpoint. The process refuses to start when the
dataset cannot be loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ds, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			srv, err := server.NewDashboardServer(&server.Config{
				Host:    cfg.Server.Host,
				Port:    cfg.Server.Port,
				Render:  render.Size{Width: cfg.Render.Width, Height: cfg.Render.Height},
				Verbose: opts.verbose,
			}, ds)
			if err != nil {
				return err
			}

			// Setup graceful shutdown
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Starting nutrition dashboard on %s", cfg.Server.Addr())
				if err := srv.Start(ctx); err != nil {
					errCh <- err
				}
			}()

			select {
			case <-sigCh:
				log.Println("Received shutdown signal")
			case err := <-errCh:
				return err
			}

			log.Println("Shutting down...")
			cancel()
			return srv.Stop()
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host address (overrides server.host)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port for HTTP transport (overrides server.port)")

	return cmd
}
