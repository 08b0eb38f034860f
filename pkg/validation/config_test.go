package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLoanTerms(t *testing.T) {
	tests := []struct {
		name        string
		price       float64
		downPayment float64
		termYears   int
		expectErr   string
	}{
		{name: "Valid loan", price: 300000, downPayment: 60000, termYears: 20},
		{name: "Fully paid up front", price: 100000, downPayment: 100000, termYears: 5},
		{name: "Negative price", price: -1, termYears: 20, expectErr: "price must not be negative"},
		{name: "Negative down payment", price: 1000, downPayment: -5, termYears: 20, expectErr: "down payment must not be negative"},
		{name: "Down payment above price", price: 1000, downPayment: 2000, termYears: 20, expectErr: "exceeds price"},
		{name: "Zero term", price: 1000, termYears: 0, expectErr: "term must be at least one year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLoanTerms("Scenario 'A'", tt.price, tt.downPayment, tt.termYears)
			if tt.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.expectErr)
				assert.Contains(t, err.Error(), "Scenario 'A'")
			}
		})
	}
}

func TestValidateRates(t *testing.T) {
	assert.NoError(t, ValidateRates("loan", map[string]float64{"annualRate": 8.5, "desgravamenRate": 0}))

	err := ValidateRates("loan", map[string]float64{"annualRate": 8.5, "fireInsuranceRate": -0.1})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "fireInsuranceRate")
	}
}

func TestValidateEventMonths(t *testing.T) {
	t.Run("Prepayments", func(t *testing.T) {
		warnings := ValidateEventMonths("Scenario 'A'", []MonthWarning{
			{Kind: "prepayment", Month: 12, Amount: 1000},
			{Kind: "prepayment", Month: 500, Amount: 1000},
			{Kind: "prepayment", Month: 24, Amount: 0},
			{Kind: "prepayment", Month: 12, Amount: 500},
		}, 240, true)

		assert.Len(t, warnings, 2)
		assert.Contains(t, warnings[0], "month 500")
		assert.Contains(t, warnings[1], "zero amount")
	})

	t.Run("Refinancing", func(t *testing.T) {
		warnings := ValidateEventMonths("Scenario 'B'", []MonthWarning{
			{Kind: "refinancing", Month: 36},
			{Kind: "refinancing", Month: 36},
			{Kind: "refinancing", Month: 361},
		}, 360, false)

		assert.Len(t, warnings, 2)
		assert.Contains(t, warnings[0], "only the first applies")
		assert.Contains(t, warnings[1], "month 361")
	})

	t.Run("No events", func(t *testing.T) {
		assert.Empty(t, ValidateEventMonths("x", nil, 12, true))
	})
}
