package cmd

import (
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/iocache"
	"github.com/huangsam/impact/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// serveCmd exposes the store over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve contributor tables, impact charts and author details over HTTP",
	Long: `Start the impact HTTP API backed by the local store.

Routes:
  GET /contributors/repo/:repo        one table page (?page=, ?branch=)
  GET /impact/repo/:repo              chart data of every author
  GET /impact/repo/:repo/chart.svg    rendered chart (also chart.png)
  GET /author/:id?repo=               detail record of one author
  GET /metrics                        Prometheus metrics

The server stops on SIGINT or SIGTERM after draining in-flight requests.

Examples:
  # Serve on the default address
  impact serve

  # Serve a MySQL store on port 9000
  IMPACT_STORE_BACKEND=mysql IMPACT_STORE_DB_CONNECT="..." impact serve --addr :9000`,
	Args:    cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, args, setupOptions{repoOptional: true, needStore: true})
	},
	Run: func(_ *cobra.Command, _ []string) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		srv := server.NewServer(cfg, iocache.Manager.GetContributorStore(), logger.Named("server"), reg)
		logger.Infow("starting server", "addr", cfg.Addr, "backend", cfg.StoreBackend)
		if err := srv.Serve(rootCtx); err != nil {
			contract.LogFatal("Server stopped", err)
		}
		logger.Infow("server stopped")
	},
}
