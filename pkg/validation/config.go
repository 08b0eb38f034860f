// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"sort"

	"github.com/iwvelando/mortgage-engine/pkg/mathutil"
)

// ValidateLoanTerms checks the values a schedule cannot be built without.
func ValidateLoanTerms(label string, price, downPayment float64, termYears int) error {
	if price < 0 {
		return fmt.Errorf("%s: price must not be negative, got %.2f", label, price)
	}
	if downPayment < 0 {
		return fmt.Errorf("%s: down payment must not be negative, got %.2f", label, downPayment)
	}
	if downPayment > price {
		return fmt.Errorf("%s: down payment %.2f exceeds price %.2f", label, downPayment, price)
	}
	if termYears <= 0 {
		return fmt.Errorf("%s: term must be at least one year, got %d", label, termYears)
	}
	return nil
}

// ValidateRates rejects negative annual or insurance rates.
func ValidateRates(label string, rates map[string]float64) error {
	names := make([]string, 0, len(rates))
	for name := range rates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if rates[name] < 0 {
			return fmt.Errorf("%s: %s must not be negative, got %.4f", label, name, rates[name])
		}
	}
	return nil
}

// MonthWarning describes one dated action for ValidateEventMonths.
type MonthWarning struct {
	Kind   string
	Month  int
	Amount float64
}

// ValidateEventMonths returns warnings for actions that can never take effect
// within maxMonths or that carry no amount. Amount is only checked when
// checkAmount is set.
func ValidateEventMonths(label string, events []MonthWarning, maxMonths int, checkAmount bool) []string {
	var warnings []string
	seen := make(map[string]map[int]bool)

	for _, e := range events {
		if e.Month > maxMonths {
			warnings = append(warnings, fmt.Sprintf("%s: %s at month %d is after the last month of the term (%d) and will never apply",
				label, e.Kind, e.Month, maxMonths))
		}
		if checkAmount && mathutil.IsZero(e.Amount) {
			warnings = append(warnings, fmt.Sprintf("%s: %s at month %d has a zero amount", label, e.Kind, e.Month))
		}
		if seen[e.Kind] == nil {
			seen[e.Kind] = make(map[int]bool)
		}
		if seen[e.Kind][e.Month] && !checkAmount {
			warnings = append(warnings, fmt.Sprintf("%s: more than one %s at month %d, only the first applies",
				label, e.Kind, e.Month))
		}
		seen[e.Kind][e.Month] = true
	}

	return warnings
}
