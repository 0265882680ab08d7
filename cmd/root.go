package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/homeload/config"
	coremon "github.com/kilianp07/homeload/core/monitoring"
	"github.com/kilianp07/homeload/infra/logger"
	"github.com/kilianp07/homeload/infra/monitoring"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "homeload",
	Short:             "Prioritized slot allocation for home energy resources",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { coremon.Flush(2 * time.Second) },
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// setup loads the configuration and initializes logging and monitoring. A
// missing default config file falls back to built-in defaults.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgPath)
	switch {
	case err == nil:
		cfg = loaded
	case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config"):
		cfg = config.Default()
	default:
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Configure(cfg.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)
	return nil
}

func closeWithLog(name string, c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		if _, ferr := fmt.Fprintf(os.Stderr, "error while closing %s: %v\n", name, err); ferr != nil {
			fmt.Println("failed to write to stderr:", ferr)
		}
	}
}
