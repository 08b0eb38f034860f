package optimizer

import (
	"context"
	"testing"

	"github.com/iwvelando/mortgage-engine/internal/config"
	"github.com/iwvelando/mortgage-engine/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfiguration() *config.Configuration {
	return &config.Configuration{
		Common: config.Common{
			Loan: config.Loan{
				Price:             300000,
				DownPayment:       60000,
				AnnualRate:        8.5,
				TermYears:         20,
				DesgravamenRate:   0.049,
				FireInsuranceRate: 0.029,
				StartDate:         "2025-01-15",
			},
		},
		Scenarios: []config.Scenario{
			{Name: "Plain", Active: true},
			{Name: "Two years", Active: true, Optimizer: &config.OptimizerConfig{TargetMonth: 24}},
			{Name: "Already there", Active: true, Optimizer: &config.OptimizerConfig{TargetMonth: 200}},
			{Name: "Inactive", Active: false, Optimizer: &config.OptimizerConfig{TargetMonth: 12}},
		},
	}
}

func TestRunnerFindsMonthlyExtra(t *testing.T) {
	runner, err := NewRunner(zap.NewNop(), testConfiguration())
	require.NoError(t, err)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.False(t, result.Empty())
	require.Len(t, result.Summaries, 2)

	twoYears := result.Summaries["Two years"]
	assert.Equal(t, "scenario", twoYears.Scope)
	assert.Equal(t, "Two years", twoYears.TargetName)
	assert.Equal(t, 24, twoYears.TargetMonth)
	assert.True(t, twoYears.Converged)
	assert.InDelta(t, 815.11, twoYears.Value, 0.02)

	already := result.Summaries["Already there"]
	assert.Zero(t, already.Value)
	assert.True(t, already.Converged)

	_, ok := result.Summaries["Inactive"]
	assert.False(t, ok)
}

func TestRunnerValidation(t *testing.T) {
	_, err := NewRunner(nil, nil)
	assert.Error(t, err)

	conf := testConfiguration()
	conf.Scenarios[1].Optimizer.TargetMonth = 0
	runner, err := NewRunner(nil, conf)
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Two years")
	}
}

func TestResultApply(t *testing.T) {
	runner, err := NewRunner(zap.NewNop(), testConfiguration())
	require.NoError(t, err)
	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	results := []scenario.Result{{Name: "Plain"}, {Name: "Two years"}}
	result.Apply(results)

	assert.Nil(t, results[0].Optimization)
	require.NotNil(t, results[1].Optimization)
	assert.Equal(t, 24, results[1].Optimization.TargetMonth)

	Result{}.Apply(results)
	assert.NotNil(t, results[1].Optimization)
}
