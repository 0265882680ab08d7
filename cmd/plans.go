package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/homeload/core/planstore"
)

var (
	plansStrategy string
	plansResource string
	plansSince    time.Duration
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Plan history commands",
}

var plansLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored plans",
	RunE:  runPlansLs,
}

func init() {
	plansLsCmd.Flags().StringVar(&plansStrategy, "strategy", "", "only plans of this strategy")
	plansLsCmd.Flags().StringVar(&plansResource, "resource", "", "only plans assigning this resource")
	plansLsCmd.Flags().DurationVar(&plansSince, "since", 0, "only plans newer than this age")
	plansCmd.AddCommand(plansLsCmd)
	rootCmd.AddCommand(plansCmd)
}

func runPlansLs(cmd *cobra.Command, _ []string) error {
	store, err := planstore.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("plan store: %w", err)
	}
	defer closeWithLog("plan store", store)

	q := planstore.PlanQuery{Strategy: plansStrategy, Resource: plansResource}
	if plansSince > 0 {
		q.Start = time.Now().Add(-plansSince)
	}
	plans, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	for _, p := range plans {
		assigned := 0
		for _, r := range p.Records {
			if !r.IsPlaceholder() {
				assigned++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d/%d\n",
			p.ID, p.Timestamp.Format(time.RFC3339), p.Strategy, assigned, len(p.Records))
	}
	return nil
}
