package config

import (
	"errors"
	"fmt"

	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/iwvelando/mortgage-engine/pkg/validation"
)

// ValidateConfiguration checks every active scenario. Hard errors make a
// scenario impossible to simulate; warnings flag declarations that will be
// ignored or have no effect.
func (c *Configuration) ValidateConfiguration() ([]string, error) {
	var warnings []string
	var errs []error

	if err := c.Rates.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			errs = append(errs, err)
		}
	}

	active := c.ActiveScenarios()
	if len(active) == 0 {
		warnings = append(warnings, "no active scenarios")
	}

	names := make(map[string]bool)
	for _, s := range active {
		label := fmt.Sprintf("Scenario '%s'", s.Name)
		if names[s.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate scenario name", label))
		}
		names[s.Name] = true

		w, err := c.validateScenario(label, s)
		warnings = append(warnings, w...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return warnings, errors.Join(errs...)
}

func (c *Configuration) validateScenario(label string, s Scenario) ([]string, error) {
	loan := c.EffectiveLoan(s)
	var warnings []string

	if err := validation.ValidateLoanTerms(label, loan.Price, loan.DownPayment, loan.TermYears); err != nil {
		return nil, err
	}
	if err := validation.ValidateRates(label, map[string]float64{
		"annualRate":        loan.AnnualRate,
		"tcea":              loan.TCEA,
		"desgravamenRate":   loan.DesgravamenRate,
		"fireInsuranceRate": loan.FireInsuranceRate,
		"monthlySalary":     loan.MonthlySalary,
	}); err != nil {
		return nil, err
	}
	if _, err := c.EngineConfig(s); err != nil {
		return nil, err
	}
	for i, r := range s.Refinancing {
		if err := toRefinancing([]Refinancing{r})[0].Validate(); err != nil {
			return nil, fmt.Errorf("%s: refinancing %d: %w", label, i+1, err)
		}
	}
	if s.Optimizer != nil {
		if err := s.Optimizer.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
	}

	if c.Rates.Mode == RateModeTCEA && loan.TCEA == 0 {
		warnings = append(warnings, fmt.Sprintf("%s: rate mode is tcea but no tcea is set, the loan accrues no interest", label))
	}
	if s.AggressiveContinuity && !s.IntelligentStrategy {
		warnings = append(warnings, fmt.Sprintf("%s: aggressiveContinuity has no effect without intelligentStrategy", label))
	}

	maxMonths := loan.TermYears * constants.MonthsPerYear

	prepayments := make([]validation.MonthWarning, 0, len(s.Prepayments))
	for _, p := range s.Prepayments {
		prepayments = append(prepayments, validation.MonthWarning{Kind: "prepayment", Month: p.Month, Amount: p.Amount})
	}
	warnings = append(warnings, validation.ValidateEventMonths(label, prepayments, maxMonths, true)...)

	refinancing := make([]validation.MonthWarning, 0, len(s.Refinancing))
	for _, r := range s.Refinancing {
		refinancing = append(refinancing, validation.MonthWarning{Kind: "refinancing", Month: r.Month})
	}
	warnings = append(warnings, validation.ValidateEventMonths(label, refinancing, maxMonths, false)...)

	return warnings, nil
}
