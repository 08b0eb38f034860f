package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-engine/internal/engine"
	"github.com/iwvelando/mortgage-engine/pkg/datetime"
	"github.com/iwvelando/mortgage-engine/pkg/loans"
)

// EffectiveLoan merges a scenario's override onto the common loan.
func (c *Configuration) EffectiveLoan(s Scenario) Loan {
	loan := c.Common.Loan
	o := s.Loan
	if o == nil {
		return loan
	}
	if o.Price != nil {
		loan.Price = *o.Price
	}
	if o.DownPayment != nil {
		loan.DownPayment = *o.DownPayment
	}
	if o.AnnualRate != nil {
		loan.AnnualRate = *o.AnnualRate
	}
	if o.TCEA != nil {
		loan.TCEA = *o.TCEA
	}
	if o.TermYears != nil {
		loan.TermYears = *o.TermYears
	}
	if o.DesgravamenRate != nil {
		loan.DesgravamenRate = *o.DesgravamenRate
	}
	if o.FireInsuranceRate != nil {
		loan.FireInsuranceRate = *o.FireInsuranceRate
	}
	if o.StartDate != nil {
		loan.StartDate = *o.StartDate
	}
	if o.MonthlySalary != nil {
		loan.MonthlySalary = *o.MonthlySalary
	}
	return loan
}

// EngineConfig converts a scenario into simulation input. An empty start date
// is left zero so the engine defaults it to today.
func (c *Configuration) EngineConfig(s Scenario) (engine.Config, error) {
	loan := c.EffectiveLoan(s)

	startDate, err := parseStartDate(loan.StartDate)
	if err != nil {
		return engine.Config{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	strategy, err := parseStrategy(s.Strategy)
	if err != nil {
		return engine.Config{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	prepayments, err := toPrepayments(s.Prepayments)
	if err != nil {
		return engine.Config{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	annual, desgravamen, fire := c.Rates.apply(loan)

	return engine.Config{
		Price:                loan.Price,
		DownPayment:          loan.DownPayment,
		AnnualRate:           annual,
		TermYears:            loan.TermYears,
		DesgravamenRate:      desgravamen,
		FireInsuranceRate:    fire,
		Prepayments:          prepayments,
		Strategy:             strategy,
		StartDate:            startDate,
		MonthlySalary:        loan.MonthlySalary,
		IntelligentStrategy:  s.IntelligentStrategy,
		AggressiveContinuity: s.AggressiveContinuity,
		RefinancingEvents:    toRefinancing(s.Refinancing),
	}, nil
}

func parseStartDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := datetime.ParseDate(strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", value, err)
	}
	return t, nil
}

func parseStrategy(value string) (engine.Strategy, error) {
	s := engine.Strategy(strings.ToLower(strings.TrimSpace(value)))
	if s == "" {
		return engine.ReduceTerm, nil
	}
	if !s.Valid() {
		return "", fmt.Errorf("unknown strategy %q, expected %s or %s", value, engine.ReduceTerm, engine.ReducePayment)
	}
	return s, nil
}

func toPrepayments(items []Prepayment) ([]loans.Prepayment, error) {
	out := make([]loans.Prepayment, 0, len(items))
	for i, item := range items {
		frequency := loans.Frequency(strings.ToLower(strings.TrimSpace(item.Frequency)))
		if frequency == "" {
			frequency = loans.FrequencyUnique
		}
		p := loans.Prepayment{
			Month:     item.Month,
			Amount:    item.Amount,
			Frequency: frequency,
			Interval:  item.Interval,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("prepayment %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// assignRefinancingIDs gives every refinancing entry without an ID a stable
// one derived from the scenario name and its position.
func (s *Scenario) assignRefinancingIDs() {
	for i := range s.Refinancing {
		if s.Refinancing[i].ID == "" {
			s.Refinancing[i].ID = engine.RefinancingID(s.Name, i, s.Refinancing[i].Month)
		}
	}
}

func toRefinancing(items []Refinancing) []engine.RefinancingEvent {
	out := make([]engine.RefinancingEvent, 0, len(items))
	for _, item := range items {
		out = append(out, engine.RefinancingEvent{
			ID:           item.ID,
			Month:        item.Month,
			NewRate:      item.NewRate,
			ClosingCosts: item.ClosingCosts,
			Color:        item.Color,
			Label:        item.Label,
		})
	}
	return out
}
