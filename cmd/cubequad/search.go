// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/cube-quadruplets/internal/catalog"
	"github.com/pdiddy/cube-quadruplets/internal/search"
	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <a> <n>",
	Short: "Search a single (a, n) point for quadruplets",
	Long: `Search fixes d = a + n and tries every b from a−1 down to 1, accepting
c when b³ + c³ = d³ − a³ exactly and a > b > c > 0.

The search stops after --max-iterations values of b; a capped search says
so and may be incomplete. With --families each primitive found is also
scaled by 2..--max-factor.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	vals, err := parseInts(args)
	if err != nil {
		return err
	}
	a, n := vals[0], vals[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	families, _ := cmd.Flags().GetBool("families")

	var res types.PointResult
	if families {
		res, err = search.SearchWithFamilies(a, n, cfg.Search.MaxIterations, int64(cfg.Search.MaxFactor))
	} else {
		res, err = search.Search(a, n, cfg.Search.MaxIterations)
	}
	if err != nil {
		return err
	}
	logger.Info("search finished",
		zap.Int64("a", a), zap.Int64("n", n),
		zap.Int("quadruplets", len(res.Quadruplets)),
		zap.Int("iterations", res.IterationsUsed),
		zap.Bool("cap_hit", res.CapHit))

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveRun(cfg.Catalog, func(s *catalog.Store) (catalog.Run, error) {
			maxFactor := int64(0)
			if families {
				maxFactor = int64(cfg.Search.MaxFactor)
			}
			return s.SavePoint(context.Background(), res, cfg.Search.MaxIterations, maxFactor)
		}); err != nil {
			return err
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(res, os.Stdout)
	}
	search.FormatPoint(res, os.Stdout)
	return nil
}

// parseInts converts positional arguments to integers.
func parseInts(args []string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, s := range args {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", search.ErrInvalidParameter, s)
		}
		out[i] = v
	}
	return out, nil
}

// saveRun opens the catalog, records a run with save, and reports its ID
// on stderr.
func saveRun(cfg types.CatalogConfig, save func(*catalog.Store) (catalog.Run, error)) error {
	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := save(store)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	logger.Debug("run saved", zap.String("id", run.ID), zap.String("dir", store.Dir()))
	fmt.Fprintf(os.Stderr, "Saved run %s\n", run.ID)
	return nil
}

func init() {
	searchCmd.Flags().Int("max-iterations", 10000, "maximum number of b values to try")
	searchCmd.Flags().Int("max-factor", 5, "largest scaling factor for families")
	searchCmd.Flags().Bool("families", false, "expand each primitive found into its scaled family")
	searchCmd.Flags().Bool("json", false, "output the result as JSON")
	searchCmd.Flags().Bool("save", false, "record the run in the catalog")

	_ = viper.BindPFlag("search.max_iterations", searchCmd.Flags().Lookup("max-iterations"))
	_ = viper.BindPFlag("search.max_factor", searchCmd.Flags().Lookup("max-factor"))

	rootCmd.AddCommand(searchCmd)
}
