// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cube-quadruplets/internal/arith"
	"github.com/pdiddy/cube-quadruplets/internal/search"
	"github.com/pdiddy/cube-quadruplets/internal/verify"
	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

// --- verify subcommand ---

var verifyCmd = &cobra.Command{
	Use:   "verify <a> <b> <c> <d>",
	Short: "Check a literal quadruplet against the equation and ordering",
	Long: `Verify computes a³, b³, c³ and d³ exactly and reports whether
d³ − a³ = b³ + c³ together with each ordering check d > a, a > b, b > c
and c > 0. The command fails when any check does not hold.`,
	Args: cobra.ExactArgs(4),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	vals, err := parseInts(args)
	if err != nil {
		return err
	}
	v := verify.Values(vals[0], vals[1], vals[2], vals[3])

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := search.FormatJSON(v, os.Stdout); err != nil {
			return err
		}
	} else {
		search.FormatVerification(v, os.Stdout)
	}
	if !v.Valid() {
		return fmt.Errorf("%s is not a valid quadruplet", v.Quadruplet)
	}
	return nil
}

// --- primitive subcommand ---

var primitiveCmd = &cobra.Command{
	Use:   "primitive <a> <b> <c> <d>",
	Short: "Reduce a quadruplet to its primitive form",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		vals, err := parseInts(args)
		if err != nil {
			return err
		}
		for _, v := range vals {
			if v <= 0 {
				return fmt.Errorf("%w: components must be positive, got %d", search.ErrInvalidParameter, v)
			}
		}
		pf := arith.PrimitiveForm(types.Quadruplet{A: vals[0], B: vals[1], C: vals[2], D: vals[3]})

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return search.FormatJSON(pf, os.Stdout)
		}
		fmt.Printf("primitive form: %s\n", pf.Primitive)
		fmt.Printf("common factor:  %d\n", pf.Factor)
		return nil
	},
}

// --- known subcommand ---

// probes are (a, n) points whose search outcome is reported by the known
// command alongside the literal cases.
var probes = [][2]int64{{5, 1}, {6, 3}, {3, 3}, {15, 18}, {10, 2}}

var knownCmd = &cobra.Command{
	Use:   "known",
	Short: "Verify reference quadruplets and probe reference (a, n) points",
	RunE: func(cmd *cobra.Command, args []string) error {
		reports := verify.Known()
		for _, r := range reports {
			status := "valid"
			if !r.Report.Valid() {
				status = "invalid"
			}
			fmt.Printf("%-24s %-8s %s\n", r.Case.Quadruplet, status, r.Case.Note)
		}

		fmt.Println()
		fmt.Printf("%-10s  %-10s  %s\n", "(a, n)", "Iterations", "Quadruplets")
		fmt.Println(strings.Repeat("-", 60))
		maxIter := viper.GetInt("search.max_iterations")
		for _, p := range probes {
			res, err := search.Search(p[0], p[1], maxIter)
			if err != nil {
				return err
			}
			found := "none"
			if len(res.Quadruplets) > 0 {
				parts := make([]string, len(res.Quadruplets))
				for i, q := range res.Quadruplets {
					parts[i] = q.String()
				}
				found = strings.Join(parts, " ")
			}
			fmt.Printf("%-10s  %-10d  %s\n", fmt.Sprintf("(%d, %d)", p[0], p[1]), res.IterationsUsed, found)
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().Bool("json", false, "output the report as JSON")
	primitiveCmd.Flags().Bool("json", false, "output the primitive form as JSON")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(primitiveCmd)
	rootCmd.AddCommand(knownCmd)
}
