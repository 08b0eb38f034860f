package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/iwvelando/mortgage-engine/internal/config"
	"github.com/iwvelando/mortgage-engine/internal/engine"
	"github.com/iwvelando/mortgage-engine/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	start := time.Now()
	conf := loadExample(t)
	loadTime := time.Since(start)

	start = time.Now()
	results := runExample(t, conf)
	runTime := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Simulate and optimize: %v", runTime)

	assert.Less(t, loadTime+runTime, 10*time.Second)
	assert.Len(t, results, 3)
}

// TestDataConsistency validates that multiple runs produce identical results
func TestDataConsistency(t *testing.T) {
	var first []scenario.Result

	for run := 0; run < 3; run++ {
		results := runExample(t, loadExample(t))
		if run == 0 {
			first = results
			continue
		}

		require.Len(t, results, len(first), "run %d", run)
		for i := range results {
			assert.Equal(t, first[i].Name, results[i].Name, "run %d", run)
			assert.Equal(t, first[i].Simulation, results[i].Simulation, "run %d scenario %s", run, results[i].Name)
			assert.Equal(t, first[i].Optimization, results[i].Optimization, "run %d scenario %s", run, results[i].Name)
		}
	}
}

// TestManyScenarios runs a wide configuration through the concurrent runner.
func TestManyScenarios(t *testing.T) {
	conf := loadExample(t)
	base := conf.Scenarios[1]

	conf.Scenarios = nil
	for i := 1; i <= 40; i++ {
		s := base
		s.Name = fmt.Sprintf("Bonus at month %02d", i)
		s.Prepayments = []config.Prepayment{{Month: i, Amount: float64(1000 * i)}}
		conf.Scenarios = append(conf.Scenarios, s)
	}

	results, err := scenario.Run(context.Background(), zap.NewNop(), conf, nil)
	require.NoError(t, err)
	require.Len(t, results, 40)
	for i, r := range results {
		assert.Equal(t, conf.Scenarios[i].Name, r.Name)
		require.NotNil(t, r.Comparison)
	}
}

func benchmarkConfig() engine.Config {
	return engine.Config{
		Price:             300000,
		DownPayment:       60000,
		AnnualRate:        8.5,
		TermYears:         20,
		DesgravamenRate:   0.049,
		FireInsuranceRate: 0.029,
		StartDate:         time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

func BenchmarkCalculate(b *testing.B) {
	e := engine.New(zap.NewNop(), benchmarkConfig())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = e.Calculate()
	}
}

func BenchmarkOptimalMonthlyExtra(b *testing.B) {
	e := engine.New(zap.NewNop(), benchmarkConfig())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = e.OptimalMonthlyExtra(24)
	}
}
