// Package optimizer runs the crossover-target directives declared on
// scenarios.
package optimizer

import (
	"context"
	"fmt"
	"sync"

	"github.com/iwvelando/mortgage-engine/internal/config"
	"github.com/iwvelando/mortgage-engine/internal/engine"
	"github.com/iwvelando/mortgage-engine/internal/scenario"
	"github.com/iwvelando/mortgage-engine/pkg/optimization"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner searches the optimal monthly extra payment for every active
// scenario that declares an optimizer target.
type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
}

type target struct {
	scenarioName string
	targetMonth  int
	engineConfig engine.Config
}

// Result summarizes optimizer outcomes keyed by scenario name.
type Result struct {
	Summaries map[string]optimization.Summary
}

// Empty indicates whether any optimizer outcomes were produced.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches optimizer summaries to the provided scenario results.
func (r Result) Apply(results []scenario.Result) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range results {
		summary, ok := r.Summaries[results[i].Name]
		if !ok {
			continue
		}
		results[i].Optimization = &summary
	}
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// Run executes all optimizer directives concurrently.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	targets, err := r.collectTargets()
	if err != nil {
		return nil, err
	}

	summaries := make(map[string]optimization.Summary, len(targets))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		t := t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summary := engine.New(r.logger, t.engineConfig).OptimalMonthlyExtra(t.targetMonth)
			summary.Scope = "scenario"
			summary.TargetName = t.scenarioName

			mu.Lock()
			summaries[t.scenarioName] = summary
			mu.Unlock()

			r.logger.Info("optimizer found monthly extra payment",
				zap.String("op", "optimizer.Run"),
				zap.String("scenario", t.scenarioName),
				zap.Int("targetMonth", t.targetMonth),
				zap.Float64("value", summary.Value),
				zap.String("display", summary.ValueDisplay),
				zap.Int("iterations", summary.Iterations),
				zap.Bool("converged", summary.Converged),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{Summaries: summaries}, nil
}

func (r *Runner) collectTargets() ([]target, error) {
	var targets []target

	for _, s := range r.conf.ActiveScenarios() {
		if s.Optimizer == nil {
			continue
		}
		if err := s.Optimizer.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		cfg, err := r.conf.EngineConfig(s)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target{
			scenarioName: s.Name,
			targetMonth:  s.Optimizer.TargetMonth,
			engineConfig: cfg,
		})
	}

	return targets, nil
}
