package config

import (
	"testing"
	"time"

	"github.com/iwvelando/mortgage-engine/internal/engine"
	"github.com/iwvelando/mortgage-engine/pkg/loans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func testConfiguration() *Configuration {
	return &Configuration{
		Common: Common{
			Loan: Loan{
				Price:             300000,
				DownPayment:       60000,
				AnnualRate:        8.5,
				TCEA:              10.2,
				TermYears:         20,
				DesgravamenRate:   0.049,
				FireInsuranceRate: 0.029,
				StartDate:         "2025-01-15",
			},
		},
		Rates: RateSettings{Mode: RateModeTEA},
	}
}

func TestEngineConfig(t *testing.T) {
	conf := testConfiguration()
	scenario := Scenario{
		Name:                "Plan",
		Active:              true,
		Strategy:            "Reduce_Payment",
		IntelligentStrategy: true,
		Prepayments: []Prepayment{
			{Month: 12, Amount: 20000},
			{Month: 1, Amount: 500, Frequency: "RECURRING", Interval: 1},
		},
		Refinancing: []Refinancing{{Month: 25, NewRate: 6, ClosingCosts: 1500}},
	}

	cfg, err := conf.EngineConfig(scenario)
	require.NoError(t, err)

	assert.Equal(t, engine.ReducePayment, cfg.Strategy)
	assert.Equal(t, 8.5, cfg.AnnualRate)
	assert.Equal(t, 0.049, cfg.DesgravamenRate)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local), cfg.StartDate)
	assert.True(t, cfg.IntelligentStrategy)
	assert.Equal(t, []loans.Prepayment{
		{Month: 12, Amount: 20000, Frequency: loans.FrequencyUnique},
		{Month: 1, Amount: 500, Frequency: loans.FrequencyRecurring, Interval: 1},
	}, cfg.Prepayments)
	require.Len(t, cfg.RefinancingEvents, 1)
	// IDs are assigned at load time, not per conversion.
	assert.Empty(t, cfg.RefinancingEvents[0].ID)
	assert.Equal(t, 1500.0, cfg.RefinancingEvents[0].ClosingCosts)
}

func TestEngineConfigTCEAMode(t *testing.T) {
	conf := testConfiguration()
	conf.Rates.Mode = RateModeTCEA

	cfg, err := conf.EngineConfig(Scenario{Name: "TCEA"})
	require.NoError(t, err)

	assert.Equal(t, 10.2, cfg.AnnualRate)
	assert.Zero(t, cfg.DesgravamenRate)
	assert.Zero(t, cfg.FireInsuranceRate)
}

func TestEngineConfigOverride(t *testing.T) {
	conf := testConfiguration()
	cfg, err := conf.EngineConfig(Scenario{
		Name: "Override",
		Loan: &LoanOverride{TermYears: intPtr(30), AnnualRate: floatPtr(0)},
	})
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.TermYears)
	assert.Zero(t, cfg.AnnualRate)
	assert.Equal(t, 300000.0, cfg.Price)
	assert.Equal(t, 8.5, conf.Common.Loan.AnnualRate)
}

func TestEngineConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Configuration, *Scenario)
		expectErr string
	}{
		{
			name:      "Bad start date",
			mutate:    func(c *Configuration, _ *Scenario) { c.Common.Loan.StartDate = "15/01/2025" },
			expectErr: "invalid start date",
		},
		{
			name:      "Unknown strategy",
			mutate:    func(_ *Configuration, s *Scenario) { s.Strategy = "shorten" },
			expectErr: "unknown strategy",
		},
		{
			name: "Unknown frequency",
			mutate: func(_ *Configuration, s *Scenario) {
				s.Prepayments = []Prepayment{{Month: 1, Amount: 10, Frequency: "weekly"}}
			},
			expectErr: "unknown prepayment frequency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := testConfiguration()
			scenario := Scenario{Name: "Broken"}
			tt.mutate(conf, &scenario)

			_, err := conf.EngineConfig(scenario)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.expectErr)
				assert.Contains(t, err.Error(), "Broken")
			}
		})
	}
}

func TestEngineConfigEmptyStartDate(t *testing.T) {
	conf := testConfiguration()
	conf.Common.Loan.StartDate = ""

	cfg, err := conf.EngineConfig(Scenario{Name: "Today"})
	require.NoError(t, err)
	assert.True(t, cfg.StartDate.IsZero())
}
