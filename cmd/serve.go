package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/homeload/api/plans"
	"github.com/kilianp07/homeload/core/planstore"
	"github.com/kilianp07/homeload/infra/metrics"
)

const defaultMetricsAddr = ":2112"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose Prometheus metrics and the plan history until interrupted",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := planstore.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("plan store: %w", err)
	}
	defer closeWithLog("plan store", store)

	addr := cfg.Metrics.PrometheusAddr
	if addr == "" {
		addr = defaultMetricsAddr
	}
	route := metrics.Route{Pattern: plans.Path, Handler: plans.NewHandler(store, cfg.API.Token)}
	if err := metrics.StartPromServer(ctx, addr, route); err != nil {
		return fmt.Errorf("prom server: %w", err)
	}
	return nil
}
