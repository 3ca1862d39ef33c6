package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/studentdash/internal/charts"
	"github.com/KaramelBytes/studentdash/internal/dashboard"
	"github.com/KaramelBytes/studentdash/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	Long: `Serve the dashboard page and its JSON API. The data source is loaded in the
background; the page renders with an empty set until loading finishes, and
stays empty if loading fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		addr := c.ListenAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		chartOpt := charts.DefaultOptions()
		if c.AssetsHost != "" {
			chartOpt.AssetsHost = c.AssetsHost
		}
		d := dashboard.New(dashboard.Options{
			Title:  c.Title,
			Source: c.DataSource,
			Parse:  parseOptions(),
			Charts: chartOpt,
		})

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		d.LoadAsync(ctx)
		h := server.NewRouter(d, server.Options{
			CORSOrigins: c.CORSOrigins,
			CSVPath:     c.PublicCSVPath,
			Timeout:     30 * time.Second,
		})
		debugf("serving %s on %s", c.DataSource, addr)
		return server.Serve(ctx, addr, h)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config listen_addr)")
}
