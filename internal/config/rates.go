package config

import (
	"fmt"
	"strings"
)

// RateMode selects which annual rate drives the schedule.
type RateMode string

const (
	// RateModeTEA uses the effective annual rate plus explicit insurance.
	RateModeTEA RateMode = "tea"
	// RateModeTCEA uses the all-in annual cost rate with insurance folded in.
	RateModeTCEA RateMode = "tcea"
)

// RateSettings is the caller's rate-mode preference.
type RateSettings struct {
	Mode RateMode `yaml:"mode,omitempty" mapstructure:"mode"`
}

// Normalize lowercases the mode and defaults it to TEA.
func (r *RateSettings) Normalize() {
	r.Mode = RateMode(strings.ToLower(strings.TrimSpace(string(r.Mode))))
	if r.Mode == "" {
		r.Mode = RateModeTEA
	}
}

// Validate rejects unknown modes.
func (r RateSettings) Validate() error {
	switch r.Mode {
	case RateModeTEA, RateModeTCEA, "":
		return nil
	}
	return fmt.Errorf("unknown rate mode %q, expected %s or %s", r.Mode, RateModeTEA, RateModeTCEA)
}

// apply returns the annual, desgravamen and fire rates the engine sees.
func (r RateSettings) apply(loan Loan) (annual, desgravamen, fire float64) {
	if r.Mode == RateModeTCEA {
		return loan.TCEA, 0, 0
	}
	return loan.AnnualRate, loan.DesgravamenRate, loan.FireInsuranceRate
}
