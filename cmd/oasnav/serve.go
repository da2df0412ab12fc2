package main

import (
	"github.com/spf13/cobra"

	"github.com/vitalvas/oasnav/config"
	"github.com/vitalvas/oasnav/server"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sidebar and reference pages over HTTP",
	Long: `Start the oasnav HTTP server.

The server provides:
  - /healthz      - health check
  - /sidebar.json - sidebar groups as JSON
  - /sidebar.yaml - sidebar groups as YAML
  - /metrics      - Prometheus metrics
  - /<href>       - the reference page of every sidebar link

With --watch (the default) the configuration file is watched and the site
is rebuilt on change. A failed rebuild keeps the previous site.

Examples:
  oasnav serve                        # listen on server.addr (default :8080)
  oasnav serve --addr 127.0.0.1:3000  # custom address
  oasnav serve --watch=false          # no hot reload`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		m, logger, closer, err := loadConfig(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closer.Close()

		cfg := m.Get()
		serverCfg := cfg.Server
		if serveAddr != "" {
			serverCfg.Addr = serveAddr
		}

		site, err := server.BuildSite(ctx, cfg.Sidebars)
		if err != nil {
			logger.Error("initial build failed", "error", err)
			return err
		}
		logger.Info("site built", "schemas", len(site.Groups), "pages", site.Len())

		srv := server.New(serverCfg, site, logger)

		if serveWatch {
			m.OnChange(func(next *config.Config) {
				logger.Info("configuration changed", "file", m.ConfigFile())
				_ = srv.Reload(ctx, next.Sidebars)
			})
			m.OnError(func(err error) {
				logger.Error("configuration reload failed, keeping previous site", "error", err)
			})
			m.Watch()
		}

		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "rebuild the site when the configuration changes")
}
