// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cube-quadruplets/internal/catalog"
	"github.com/pdiddy/cube-quadruplets/internal/search"
)

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Sweep a grid of (a, n) combinations",
	Long: `Range runs the single-point search for every (a, n) in the inclusive grid
[--a-start, --a-end] × [--n-start, --n-end], in row-major order. Reversed
bounds are swapped.

With --focus (the default) only primitive solutions are kept from the
sweep; their scaled families inside the grid are added afterwards. Without
it every solution found is kept and families only fill in what the sweep
missed.

Interrupting the command (Ctrl-C) or exceeding --timeout aborts the sweep.
Use --plan to write the parameters and results to a YAML plan file.`,
	Args: cobra.NoArgs,
	RunE: runRange,
}

func runRange(cmd *cobra.Command, args []string) error {
	grid, err := gridFromFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	plan := &search.PlanFile{Grid: grid, Config: cfg.Range}
	if err := plan.Run(ctx, logger); err != nil {
		return err
	}
	res := *plan.Result

	if path, _ := cmd.Flags().GetString("plan"); path != "" {
		if err := search.WritePlanFile(path, plan); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Plan written to %s (%s)\n", path, plan.Summary.Elapsed.Round(time.Millisecond))
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveRun(cfg.Catalog, func(s *catalog.Store) (catalog.Run, error) {
			return s.SaveRange(context.Background(), grid, cfg.Range, res)
		}); err != nil {
			return err
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(res, os.Stdout)
	}
	search.FormatRange(res, os.Stdout)
	return nil
}

func gridFromFlags(cmd *cobra.Command) (search.Grid, error) {
	var vals [4]int64
	for i, name := range []string{"a-start", "a-end", "n-start", "n-end"} {
		v, err := cmd.Flags().GetInt64(name)
		if err != nil {
			return search.Grid{}, err
		}
		vals[i] = v
	}
	grid := search.Grid{AStart: vals[0], AEnd: vals[1], NStart: vals[2], NEnd: vals[3]}
	if err := grid.Validate(); err != nil {
		return search.Grid{}, err
	}
	return grid, nil
}

func init() {
	rangeCmd.Flags().Int64("a-start", 1, "first value of a")
	rangeCmd.Flags().Int64("a-end", 10, "last value of a")
	rangeCmd.Flags().Int64("n-start", 1, "first value of n")
	rangeCmd.Flags().Int64("n-end", 5, "last value of n")
	rangeCmd.Flags().Int("max-iterations", 5000, "maximum number of b values per combination")
	rangeCmd.Flags().Int("max-factor", 3, "largest scaling factor for families")
	rangeCmd.Flags().Bool("focus", true, "keep primitives from the sweep and add families afterwards")
	rangeCmd.Flags().Int("workers", 1, "number of combinations searched concurrently")
	rangeCmd.Flags().Duration("timeout", 0, "abort the sweep after this long (0 = no limit)")
	rangeCmd.Flags().String("plan", "", "write parameters and results to this plan file")
	rangeCmd.Flags().Bool("json", false, "output the result as JSON")
	rangeCmd.Flags().Bool("save", false, "record the run in the catalog")

	_ = viper.BindPFlag("range.max_iterations_per_combo", rangeCmd.Flags().Lookup("max-iterations"))
	_ = viper.BindPFlag("range.max_factor", rangeCmd.Flags().Lookup("max-factor"))
	_ = viper.BindPFlag("range.focus_on_primitives", rangeCmd.Flags().Lookup("focus"))
	_ = viper.BindPFlag("range.workers", rangeCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("range.timeout", rangeCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(rangeCmd)
}
