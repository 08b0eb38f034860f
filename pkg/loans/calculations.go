// Package loans provides common loan processing utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-engine/pkg/constants"
)

// Frequency describes how often a prepayment fires.
type Frequency string

const (
	// FrequencyUnique fires exactly once, at the declared month.
	FrequencyUnique Frequency = "unique"
	// FrequencyRecurring fires at the declared month and every Interval months after.
	FrequencyRecurring Frequency = "recurring"
)

// Prepayment is an extra principal payment declaration. Month is 1-based.
type Prepayment struct {
	Month     int       `json:"month" yaml:"month"`
	Amount    float64   `json:"amount" yaml:"amount"`
	Frequency Frequency `json:"frequency" yaml:"frequency"`
	Interval  int       `json:"interval,omitempty" yaml:"interval,omitempty"` // months, recurring only
}

// EffectiveInterval returns the recurrence interval, defaulting to a year.
func (p Prepayment) EffectiveInterval() int {
	if p.Interval <= 0 {
		return constants.DefaultRecurringInterval
	}
	return p.Interval
}

// AppliesTo reports whether the prepayment fires at the given month.
func (p Prepayment) AppliesTo(month int) bool {
	switch p.Frequency {
	case FrequencyUnique:
		return p.Month == month
	case FrequencyRecurring:
		return month >= p.Month && (month-p.Month)%p.EffectiveInterval() == 0
	}
	return false
}

// Validate checks the declaration for values the resolver cannot interpret.
func (p Prepayment) Validate() error {
	switch p.Frequency {
	case FrequencyUnique, FrequencyRecurring:
	default:
		return fmt.Errorf("unknown prepayment frequency %q", p.Frequency)
	}
	if p.Month < 1 {
		return fmt.Errorf("prepayment month must be at least 1, got %d", p.Month)
	}
	if p.Amount < 0 {
		return fmt.Errorf("prepayment amount must not be negative, got %.2f", p.Amount)
	}
	return nil
}

// CalculateQuota returns the constant periodic payment that amortizes
// principal to zero over the given number of periods at periodicRate.
func CalculateQuota(principal, periodicRate float64, periods int) float64 {
	if periods <= 0 || principal <= 0 {
		return 0
	}
	if periodicRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(periods)
	}

	power := math.Pow(1+periodicRate, float64(periods))
	return principal * (periodicRate * power) / (power - 1)
}

// ExtraCapitalFor returns the total extra principal declared for the given
// month. Declaration order does not matter and amounts are additive.
func ExtraCapitalFor(month int, prepayments []Prepayment) float64 {
	amount := 0.00
	for _, p := range prepayments {
		if p.AppliesTo(month) {
			amount += p.Amount
		}
	}
	return amount
}

// MonthlyRecurring builds the single synthetic prepayment used when searching
// for a recurring monthly extra amount.
func MonthlyRecurring(amount float64) Prepayment {
	return Prepayment{
		Month:     1,
		Amount:    amount,
		Frequency: FrequencyRecurring,
		Interval:  1,
	}
}
