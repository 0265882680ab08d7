package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/homeload/app"
	"github.com/kilianp07/homeload/core/model"
	"github.com/kilianp07/homeload/core/planstore"
	"github.com/kilianp07/homeload/pkg/export"
	"github.com/kilianp07/homeload/pkg/input"
	"github.com/kilianp07/homeload/pkg/report"
)

var (
	resourcesPath string
	slotsPath     string
	seriesPath    string
	interval      time.Duration
	outFormat     string
	outPath       string
	summary       bool
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Compute an allocation plan",
}

var allocateSequentialCmd = &cobra.Command{
	Use:   "sequential",
	Short: "Give whole slots to resources in priority order",
	RunE:  runAllocateSequential,
}

var allocateParallelCmd = &cobra.Command{
	Use:   "parallel",
	Short: "Share slot capacity between resources in priority order",
	RunE:  runAllocateParallel,
}

var allocateRollingCmd = &cobra.Command{
	Use:   "rolling",
	Short: "Pick the cheapest contiguous window of a series for each resource",
	RunE:  runAllocateRolling,
}

func init() {
	pf := allocateCmd.PersistentFlags()
	pf.StringVarP(&resourcesPath, "resources", "r", "", "resource definitions (.yaml, .yml or .json)")
	pf.StringVarP(&outFormat, "format", "f", "json", "output format: json or csv")
	pf.StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	pf.BoolVar(&summary, "summary", false, "print a usage summary to stderr")
	_ = allocateCmd.MarkPersistentFlagRequired("resources")

	for _, c := range []*cobra.Command{allocateSequentialCmd, allocateParallelCmd} {
		c.Flags().StringVarP(&slotsPath, "slots", "s", "", "slot capacities CSV (label,capacity)")
		_ = c.MarkFlagRequired("slots")
	}
	allocateRollingCmd.Flags().StringVar(&seriesPath, "series", "", "time series CSV (RFC 3339 time,value)")
	allocateRollingCmd.Flags().DurationVar(&interval, "interval", 0, "series sampling interval (default from config)")
	_ = allocateRollingCmd.MarkFlagRequired("series")

	allocateCmd.AddCommand(allocateSequentialCmd, allocateParallelCmd, allocateRollingCmd)
	rootCmd.AddCommand(allocateCmd)
}

func runAllocateSequential(cmd *cobra.Command, _ []string) error {
	resources, slots, err := loadDiscrete()
	if err != nil {
		return err
	}
	return withPlanner(cmd, func(ctx context.Context, p *app.Planner) (planstore.PlanRecord, error) {
		return p.RunSequential(ctx, resources, slots)
	})
}

func runAllocateParallel(cmd *cobra.Command, _ []string) error {
	resources, slots, err := loadDiscrete()
	if err != nil {
		return err
	}
	return withPlanner(cmd, func(ctx context.Context, p *app.Planner) (planstore.PlanRecord, error) {
		plan, pending, err := p.RunParallel(ctx, resources, slots)
		for _, r := range pending {
			fmt.Fprintf(cmd.ErrOrStderr(), "pending: %s needs %d more hour(s)\n", r.Name, r.Hours)
		}
		return plan, err
	})
}

func runAllocateRolling(cmd *cobra.Command, _ []string) error {
	resources, err := input.LoadResources(resourcesPath)
	if err != nil {
		return fmt.Errorf("load resources: %w", err)
	}
	series, err := readFile(seriesPath, input.ReadSeries)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	step := interval
	if step == 0 {
		step = cfg.Allocator.Interval()
	}
	if summary {
		if mean, err := report.SeriesMean(series); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "series mean: %.4f over %d samples\n", mean, len(series))
		}
	}
	return withPlanner(cmd, func(ctx context.Context, p *app.Planner) (planstore.PlanRecord, error) {
		return p.RunRolling(ctx, resources, series, step)
	})
}

func loadDiscrete() ([]model.Resource, []model.Slot, error) {
	resources, err := input.LoadResources(resourcesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load resources: %w", err)
	}
	slots, err := readFile(slotsPath, input.ReadSlots)
	if err != nil {
		return nil, nil, fmt.Errorf("load slots: %w", err)
	}
	return resources, slots, nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer closeWithLog(path, f)
	return read(f)
}

// withPlanner builds the planner from the loaded configuration, runs one
// allocation and writes the records.
func withPlanner(cmd *cobra.Command, run func(context.Context, *app.Planner) (planstore.PlanRecord, error)) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	planner, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer closeWithLog("planner", planner)

	plan, err := run(ctx, planner)
	if err != nil {
		return fmt.Errorf("allocate: %w", err)
	}

	w := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer closeWithLog(outPath, f)
		w = f
	}
	if err := export.Write(w, outFormat, plan.Records); err != nil {
		return err
	}
	if summary {
		printSlotUsage(cmd.ErrOrStderr(), plan.Records)
	}
	return nil
}

func printSlotUsage(w io.Writer, records []model.Allocation) {
	for _, s := range report.SlotUsage(records) {
		fmt.Fprintf(w, "%s\tused %.3f\tunused %.3f\t%s\n", s.Slot, s.Used, s.Unused, strings.Join(s.Resources, ","))
	}
}
