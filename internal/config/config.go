// Package config defines the data structures related to configuration and
// includes functions for loading the config and turning scenarios into
// simulation inputs.
package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DateLayout is the format expected in config files for loan start dates.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for the mortgage simulator.
type Configuration struct {
	Common    Common        `yaml:"common" mapstructure:"common"`
	Scenarios []Scenario    `yaml:"scenarios" mapstructure:"scenarios"`
	Rates     RateSettings  `yaml:"rates,omitempty" mapstructure:"rates"`
	Logging   LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output    OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// Common holds the loan shared by all scenarios.
type Common struct {
	Loan Loan `yaml:"loan" mapstructure:"loan"`
}

// Loan describes the property and financing terms. Rates are percentages.
type Loan struct {
	Price             float64 `yaml:"price" mapstructure:"price"`
	DownPayment       float64 `yaml:"downPayment" mapstructure:"downPayment"`
	AnnualRate        float64 `yaml:"annualRate" mapstructure:"annualRate"`
	TCEA              float64 `yaml:"tcea,omitempty" mapstructure:"tcea"`
	TermYears         int     `yaml:"termYears" mapstructure:"termYears"`
	DesgravamenRate   float64 `yaml:"desgravamenRate" mapstructure:"desgravamenRate"`
	FireInsuranceRate float64 `yaml:"fireInsuranceRate" mapstructure:"fireInsuranceRate"`
	StartDate         string  `yaml:"startDate,omitempty" mapstructure:"startDate"` // YYYY-MM-DD
	MonthlySalary     float64 `yaml:"monthlySalary,omitempty" mapstructure:"monthlySalary"`
}

// LoanOverride replaces individual fields of the common loan for one scenario.
type LoanOverride struct {
	Price             *float64 `yaml:"price,omitempty" mapstructure:"price"`
	DownPayment       *float64 `yaml:"downPayment,omitempty" mapstructure:"downPayment"`
	AnnualRate        *float64 `yaml:"annualRate,omitempty" mapstructure:"annualRate"`
	TCEA              *float64 `yaml:"tcea,omitempty" mapstructure:"tcea"`
	TermYears         *int     `yaml:"termYears,omitempty" mapstructure:"termYears"`
	DesgravamenRate   *float64 `yaml:"desgravamenRate,omitempty" mapstructure:"desgravamenRate"`
	FireInsuranceRate *float64 `yaml:"fireInsuranceRate,omitempty" mapstructure:"fireInsuranceRate"`
	StartDate         *string  `yaml:"startDate,omitempty" mapstructure:"startDate"`
	MonthlySalary     *float64 `yaml:"monthlySalary,omitempty" mapstructure:"monthlySalary"`
}

// Scenario holds the borrower's plan for one simulation.
type Scenario struct {
	Name                 string           `yaml:"name" mapstructure:"name"`
	Active               bool             `yaml:"active" mapstructure:"active"`
	Loan                 *LoanOverride    `yaml:"loan,omitempty" mapstructure:"loan"`
	Strategy             string           `yaml:"strategy,omitempty" mapstructure:"strategy"`
	IntelligentStrategy  bool             `yaml:"intelligentStrategy,omitempty" mapstructure:"intelligentStrategy"`
	AggressiveContinuity bool             `yaml:"aggressiveContinuity,omitempty" mapstructure:"aggressiveContinuity"`
	Prepayments          []Prepayment     `yaml:"prepayments,omitempty" mapstructure:"prepayments"`
	Refinancing          []Refinancing    `yaml:"refinancing,omitempty" mapstructure:"refinancing"`
	Optimizer            *OptimizerConfig `yaml:"optimizer,omitempty" mapstructure:"optimizer"`
	Compare              bool             `yaml:"compare,omitempty" mapstructure:"compare"`
}

// Prepayment declares extra capital. Frequency is "unique" (default) or
// "recurring"; Interval defaults to 12 for recurring prepayments.
type Prepayment struct {
	Month     int     `yaml:"month" mapstructure:"month"`
	Amount    float64 `yaml:"amount" mapstructure:"amount"`
	Frequency string  `yaml:"frequency,omitempty" mapstructure:"frequency"`
	Interval  int     `yaml:"interval,omitempty" mapstructure:"interval"`
}

// Refinancing switches the loan to a new TEA at Month.
type Refinancing struct {
	ID           string  `yaml:"id,omitempty" mapstructure:"id"`
	Month        int     `yaml:"month" mapstructure:"month"`
	NewRate      float64 `yaml:"newRate" mapstructure:"newRate"`
	ClosingCosts float64 `yaml:"closingCosts,omitempty" mapstructure:"closingCosts"`
	Color        string  `yaml:"color,omitempty" mapstructure:"color"`
	Label        string  `yaml:"label,omitempty" mapstructure:"label"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a configuration document of the given
// type ("yaml" or "json") from r.
func LoadConfigurationFromReader(r io.Reader, configType string) (*Configuration, error) {
	if configType == "" {
		configType = "yaml"
	}
	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}

	return decode(v)
}

// Marshal renders the configuration as YAML.
func (c *Configuration) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("unable to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("unable to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}

// ActiveScenarios returns the scenarios marked active, in declaration order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, s := range c.Scenarios {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

// newViper returns an isolated viper instance so concurrent loads never
// share state.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	configuration.Rates.Normalize()
	for i := range configuration.Scenarios {
		configuration.Scenarios[i].assignRefinancingIDs()
	}
	return &configuration, nil
}
