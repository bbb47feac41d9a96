// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cubequad CLI, which searches for
// positive integers with a³ + b³ + c³ = d³ and d > a > b > c > 0.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE; commands use it for diagnostics
// while result tables go to stdout.
var logger = zap.NewNop()

// rootCmd is the base command for the cubequad CLI.
var rootCmd = &cobra.Command{
	Use:   "cubequad",
	Short: "Search for cube quadruplets a³ + b³ + c³ = d³",
	Long: `cubequad searches for quadruplets of positive integers (a, b, c, d) with
a³ + b³ + c³ = d³ and d > a > b > c > 0, parameterized by the anchor a and
the gap n = d − a.

Use search for a single (a, n) point, range for a grid sweep, verify to
check a literal quadruplet, and catalog to browse saved runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cubequad.yaml or ~/.config/cubequad/cubequad.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress and debug detail to stderr")
	rootCmd.PersistentFlags().String("catalog-dir", "catalog", "directory holding the catalog database and exports")
	_ = viper.BindPFlag("catalog.dir", rootCmd.PersistentFlags().Lookup("catalog-dir"))
}

func setDefaults() {
	viper.SetDefault("search.max_iterations", 10000)
	viper.SetDefault("search.max_factor", 5)
	viper.SetDefault("range.max_iterations_per_combo", 5000)
	viper.SetDefault("range.max_factor", 3)
	viper.SetDefault("range.focus_on_primitives", true)
	viper.SetDefault("range.workers", 1)
	viper.SetDefault("range.progress_every", 10)
	viper.SetDefault("range.timeout", "0s")
	viper.SetDefault("catalog.dir", "catalog")
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cubequad")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cubequad"))
		}
	}

	viper.SetEnvPrefix("CUBEQUAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Reading config file:", err)
	}
}

// loadConfig returns the merged flag, environment, file, and default
// settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
