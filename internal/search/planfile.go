// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cube-quadruplets/pkg/types"
)

// PlanFile is the on-disk representation of a range search and, once run,
// its results. A saved plan can be re-run or reloaded without searching.
type PlanFile struct {
	Grid    Grid               `yaml:"grid"`
	Config  types.RangeConfig  `yaml:"config"`
	Result  *types.RangeResult `yaml:"result,omitempty"`
	Summary *PlanSummary       `yaml:"summary,omitempty"`
}

// PlanSummary records when and how long a plan ran.
type PlanSummary struct {
	Timestamp time.Time     `yaml:"timestamp"`
	Elapsed   time.Duration `yaml:"elapsed"`
	Truncated bool          `yaml:"truncated"`
}

// ReadPlanFile loads a plan from disk.
func ReadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	var pf PlanFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &pf, nil
}

// WritePlanFile saves a plan, with results if present, to disk.
func WritePlanFile(path string, pf *PlanFile) error {
	data, err := yaml.Marshal(pf)
	if err != nil {
		return fmt.Errorf("marshaling plan file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Run executes the plan's range search and stores the result and summary
// on the plan.
func (pf *PlanFile) Run(ctx context.Context, logger *zap.Logger) error {
	start := time.Now()
	res, err := SearchRange(ctx, pf.Grid, pf.Config, logger)
	if err != nil {
		return err
	}
	pf.Result = &res
	pf.Summary = &PlanSummary{
		Timestamp: start.UTC(),
		Elapsed:   time.Since(start),
		Truncated: res.Truncated(),
	}
	return nil
}
