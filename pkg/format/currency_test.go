package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "S/ 0.00"},
		{"Small", 12.5, "S/ 12.50"},
		{"Thousands", 1234.56, "S/ 1,234.56"},
		{"Millions", 1234567.891, "S/ 1,234,567.89"},
		{"Negative", -2500, "-S/ 2,500.00"},
		{"Rounds half up", 0.125, "S/ 0.13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Currency(tt.amount))
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	assert.Equal(t, "240,000.00", NumericCurrency(240000))
	assert.Equal(t, "-1,000.10", NumericCurrency(-1000.1))
	assert.Equal(t, "999.99", NumericCurrency(999.994))
	assert.Equal(t, "0.00", NumericCurrency(-0.001))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "8.50%", Percent(8.5))
	assert.Equal(t, "33.33%", Percent(33.3333))
}
