package config

import "fmt"

// OptimizerConfig asks for the minimum recurring monthly extra payment that
// brings the first crossover to TargetMonth or earlier.
type OptimizerConfig struct {
	TargetMonth int `yaml:"targetMonth" mapstructure:"targetMonth"`
}

// Validate ensures the directive can be searched.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}
	if o.TargetMonth < 1 {
		return fmt.Errorf("optimizer targetMonth must be at least 1, got %d", o.TargetMonth)
	}
	return nil
}
