// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cube-quadruplets/internal/catalog"
	"github.com/pdiddy/cube-quadruplets/internal/search"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse and export saved search runs",
	Long: `Catalog manages the SQLite database of runs recorded with --save.
Each run has an ID, its parameters, and its quadruplets in discovery order.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(context.Background(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		fmt.Printf("%-36s  %-5s  %-20s  %-28s  %5s  %5s  %s\n",
			"ID", "Kind", "Created", "Parameters", "Found", "Prim.", "Capped")
		fmt.Println(strings.Repeat("-", 120))
		for _, r := range runs {
			fmt.Printf("%-36s  %-5s  %-20s  %-28s  %5d  %5d  %v\n",
				r.ID, r.Kind, r.CreatedAt.Format(time.DateTime), describeParams(r), r.Quadruplets, r.Primitives, r.Truncated)
		}
		return nil
	},
}

func describeParams(r catalog.Run) string {
	p := r.Params
	if r.Kind == catalog.KindRange && p.Grid != nil {
		return fmt.Sprintf("a %d..%d, n %d..%d", p.Grid.AStart, p.Grid.AEnd, p.Grid.NStart, p.Grid.NEnd)
	}
	return fmt.Sprintf("a=%d, n=%d", p.A, p.N)
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a saved run and its quadruplets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		run, qs, err := store.LoadRun(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return catalog.Write(os.Stdout, catalog.FormatJSON, &run, qs)
		}
		fmt.Printf("run %s (%s, %s)\n", run.ID, run.Kind, describeParams(run))
		fmt.Printf("created %s\n", run.CreatedAt.Format(time.RFC3339))
		if run.Truncated {
			fmt.Println("stopped at the iteration cap; results may be incomplete")
		}
		fmt.Println()
		search.FormatTable(qs, os.Stdout)
		return nil
	},
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Export a run, or every distinct quadruplet, as YAML, JSON or CSV",
	Long: `Export writes one row per quadruplet with its gap, common factor, type,
primitive form, cubes, and equation check, plus a summary. Without a run ID
every distinct quadruplet in the catalog is exported. Files go to
<catalog-dir>/exports/ unless --stdout is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("format")
		format, err := catalog.ParseFormat(name)
		if err != nil {
			return err
		}
		id := ""
		if len(args) == 1 {
			id = args[0]
		}

		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
			ctx := context.Background()
			if id == "" {
				qs, err := store.Distinct(ctx)
				if err != nil {
					return err
				}
				return catalog.Write(os.Stdout, format, nil, qs)
			}
			run, qs, err := store.LoadRun(ctx, id)
			if err != nil {
				return err
			}
			return catalog.Write(os.Stdout, format, &run, qs)
		}

		path, err := store.ExportRun(context.Background(), id, format)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

// --- delete subcommand ---

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.DeleteRun(context.Background(), args[0])
	},
}

func openCatalog() (*catalog.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(cfg.Catalog)
}

func init() {
	catalogListCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	catalogShowCmd.Flags().Bool("json", false, "output the run as JSON with derived rows")
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml, json or csv")
	catalogExportCmd.Flags().Bool("stdout", false, "write to stdout instead of the exports directory")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogDeleteCmd)

	rootCmd.AddCommand(catalogCmd)
}
