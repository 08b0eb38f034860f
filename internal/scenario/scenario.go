// Package scenario runs every active scenario of a configuration through the
// engine and collects the results in declaration order.
package scenario

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/iwvelando/mortgage-engine/internal/config"
	"github.com/iwvelando/mortgage-engine/internal/engine"
	"github.com/iwvelando/mortgage-engine/pkg/optimization"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result holds everything computed for one scenario.
type Result struct {
	Name         string                `json:"name"`
	Config       engine.Config         `json:"config"`
	Simulation   engine.Result         `json:"simulation"`
	Comparison   *engine.Comparison    `json:"comparison,omitempty"`
	Optimization *optimization.Summary `json:"optimization,omitempty"`
}

// ProgressFunc is called once per finished scenario. Calls are serialized.
type ProgressFunc func(done, total int)

// Run simulates the active scenarios of conf concurrently.
func Run(ctx context.Context, logger *zap.Logger, conf *config.Configuration, progress ProgressFunc) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	for _, s := range conf.Scenarios {
		if !s.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", s.Name),
				zap.String("op", "scenario.Run"),
			)
		}
	}

	active := conf.ActiveScenarios()
	results := make([]Result, len(active))

	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range active {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := runOne(ctx, logger, conf, s)
			if err != nil {
				return err
			}
			results[i] = result

			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(active))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func runOne(ctx context.Context, logger *zap.Logger, conf *config.Configuration, s config.Scenario) (Result, error) {
	cfg, err := conf.EngineConfig(s)
	if err != nil {
		return Result{}, err
	}

	e := engine.New(logger.With(zap.String("scenario", s.Name)), cfg)
	result := Result{
		Name:       s.Name,
		Config:     e.Config(),
		Simulation: e.Calculate(),
	}

	if s.Compare {
		comparison, err := engine.Compare(ctx, logger, result.Config)
		if err != nil {
			return Result{}, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		result.Comparison = &comparison
	}

	logger.Debug("scenario simulated",
		zap.String("op", "scenario.Run"),
		zap.String("scenario", s.Name),
		zap.Int("months", len(result.Simulation.Schedule)),
	)

	return result, nil
}
