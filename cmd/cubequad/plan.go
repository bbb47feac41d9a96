// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cube-quadruplets/internal/search"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run or inspect range-search plan files",
	Long: `A plan file is YAML holding a grid and range configuration. After a run
it also holds the results and a summary, so the sweep can be shown again
without searching.`,
}

var planRunCmd = &cobra.Command{
	Use:   "run <plan.yaml>",
	Short: "Run the sweep described by a plan file and write results back",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := plan.Run(ctx, logger); err != nil {
			return err
		}
		if err := search.WritePlanFile(args[0], plan); err != nil {
			return err
		}
		search.FormatRange(*plan.Result, os.Stdout)
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan.yaml>",
	Short: "Show the stored results of a plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := search.ReadPlanFile(args[0])
		if err != nil {
			return err
		}
		g := plan.Grid
		fmt.Printf("grid: a %d..%d, n %d..%d\n", g.AStart, g.AEnd, g.NStart, g.NEnd)
		if plan.Result == nil {
			fmt.Println("not run yet; use 'cubequad plan run'")
			return nil
		}
		if plan.Summary != nil {
			fmt.Printf("ran %s, took %s\n\n", plan.Summary.Timestamp.Format("2006-01-02 15:04:05"), plan.Summary.Elapsed)
		}
		search.FormatRange(*plan.Result, os.Stdout)
		return nil
	},
}

// loadPlan reads a plan file and fills any range setting it leaves unset
// from the merged configuration.
func loadPlan(path string) (*search.PlanFile, error) {
	plan, err := search.ReadPlanFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	plan.Config = plan.Config.WithDefaults(cfg.Range)
	return plan, nil
}

func init() {
	planCmd.AddCommand(planRunCmd)
	planCmd.AddCommand(planShowCmd)

	rootCmd.AddCommand(planCmd)
}
