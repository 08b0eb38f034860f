package scenario

import (
	"context"
	"testing"

	"github.com/iwvelando/mortgage-engine/internal/config"
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
			{Name: "Baseline", Active: true},
			{Name: "Skipped", Active: false},
			{
				Name:     "Bonus",
				Active:   true,
				Compare:  true,
				Strategy: "reduce_term",
				Prepayments: []config.Prepayment{
					{Month: 12, Amount: 20000},
				},
			},
			{
				Name:                "Attack",
				Active:              true,
				IntelligentStrategy: true,
				Prepayments: []config.Prepayment{
					{Month: 1, Amount: 2000, Frequency: "recurring", Interval: 1},
				},
			},
		},
	}
}

func TestRunKeepsDeclarationOrder(t *testing.T) {
	var calls []int
	results, err := Run(context.Background(), zap.NewNop(), testConfiguration(), func(done, total int) {
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "Baseline", results[0].Name)
	assert.Equal(t, "Bonus", results[1].Name)
	assert.Equal(t, "Attack", results[2].Name)
	assert.Equal(t, []int{1, 2, 3}, calls)

	assert.Len(t, results[0].Simulation.Schedule, 240)
	assert.Nil(t, results[0].Comparison)

	assert.Len(t, results[1].Simulation.Schedule, 203)
	require.NotNil(t, results[1].Comparison)
	assert.Equal(t, 240, results[1].Comparison.ReducePayment.Months)

	assert.Len(t, results[2].Simulation.Schedule, 133)
	assert.True(t, results[2].Config.IntelligentStrategy)
}

func TestRunConversionError(t *testing.T) {
	conf := testConfiguration()
	conf.Scenarios[2].Strategy = "sideways"

	_, err := Run(context.Background(), nil, conf, nil)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Bonus")
	}
}

func TestRunNilConfiguration(t *testing.T) {
	_, err := Run(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, zap.NewNop(), testConfiguration(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
