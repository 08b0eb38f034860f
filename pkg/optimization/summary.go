// Package optimization provides shared data structures and search helpers
// for optimization results.
package optimization

// FieldMonthlyExtra names the recurring monthly extra payment searched for
// when moving the crossover month.
const FieldMonthlyExtra = "monthlyExtra"

// Summary captures the result of a single optimization directive.
type Summary struct {
	Scope        string   `json:"scope,omitempty"`
	TargetName   string   `json:"targetName,omitempty"`
	Field        string   `json:"field"`
	TargetMonth  int      `json:"targetMonth"`
	LowerBound   float64  `json:"lowerBound"`
	UpperBound   float64  `json:"upperBound"`
	Value        float64  `json:"value"`
	ValueDisplay string   `json:"valueDisplay,omitempty"`
	Iterations   int      `json:"iterations"`
	Converged    bool     `json:"converged"`
	Notes        []string `json:"notes,omitempty"`
}
