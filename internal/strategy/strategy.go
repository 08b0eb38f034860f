// Package strategy implements the intelligent payoff decision machine that
// chooses, month by month, whether declared prepayments are applied.
//
// The machine starts in Attack and enters EquilibriumPivot for exactly one
// month, the first month the scheduled amortization exceeds the interest
// charged. Conservative continuity suppresses that month's prepayment and then
// settles in Protected, where prepayments stop. Aggressive continuity applies
// the pivot month's prepayment and then settles in Acceleration, where
// prepayments keep flowing.
package strategy

import "fmt"

// State is a position in the intelligent payoff machine.
type State int

const (
	// Attack applies every declared prepayment until equilibrium is reached.
	Attack State = iota
	// EquilibriumPivot marks the single month equilibrium is first reached.
	EquilibriumPivot
	// Protected suppresses prepayments for the rest of the loan.
	Protected
	// Acceleration keeps applying prepayments after equilibrium.
	Acceleration
)

func (s State) String() string {
	switch s {
	case Attack:
		return "attack"
	case EquilibriumPivot:
		return "equilibrium_pivot"
	case Protected:
		return "protected"
	case Acceleration:
		return "acceleration"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// InEquilibrium reports whether the crossover has already happened.
func (s State) InEquilibrium() bool {
	return s != Attack
}

// Status is the display tag attached to each schedule row.
type Status string

const (
	StatusDefault      Status = "default"
	StatusAcceleration Status = "acceleration"
	StatusPivot        Status = "pivot"
	StatusProtected    Status = "protected"
)

// Policy tells the caller what to do with the month's declared prepayments.
type Policy int

const (
	// ApplyDeclared applies the resolver's extra capital unchanged.
	ApplyDeclared Policy = iota
	// Suppress forces extra capital to zero.
	Suppress
)

// Decision is the outcome of a single transition.
type Decision struct {
	Next   State
	Policy Policy
	// Tag is the status for suppressed months. Months that apply declared
	// capital are tagged by TagFor, since the tag depends on the amount.
	Tag Status
}

// TagFor returns the status for the month given the extra capital that was
// actually applied.
func (d Decision) TagFor(extra float64) Status {
	if d.Policy == Suppress {
		return d.Tag
	}
	if extra > 0 {
		return StatusAcceleration
	}
	return StatusDefault
}

// Transition computes the next state. crossover must already exclude the
// first month of the loan; it is ignored once equilibrium has been reached.
func Transition(current State, crossover, aggressive bool) Decision {
	switch current {
	case Attack:
		if !crossover {
			return Decision{Next: Attack, Policy: ApplyDeclared}
		}
		if aggressive {
			return Decision{Next: EquilibriumPivot, Policy: ApplyDeclared}
		}
		return Decision{Next: EquilibriumPivot, Policy: Suppress, Tag: StatusPivot}
	case EquilibriumPivot:
		if aggressive {
			return Decision{Next: Acceleration, Policy: ApplyDeclared}
		}
		return Decision{Next: Protected, Policy: Suppress, Tag: StatusProtected}
	case Protected:
		return Decision{Next: Protected, Policy: Suppress, Tag: StatusProtected}
	case Acceleration:
		return Decision{Next: Acceleration, Policy: ApplyDeclared}
	}
	return Decision{Next: current, Policy: ApplyDeclared}
}

// Machine carries the state of one simulation run.
type Machine struct {
	enabled    bool
	aggressive bool
	state      State
}

// NewMachine returns a machine in Attack. A disabled machine always applies
// declared capital and tags rows as default.
func NewMachine(enabled, aggressive bool) *Machine {
	return &Machine{enabled: enabled, aggressive: aggressive, state: Attack}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Step advances the machine by one month and returns the extra capital to
// apply along with the row status.
func (m *Machine) Step(crossover bool, declared float64) (float64, Status) {
	if !m.enabled {
		return declared, StatusDefault
	}

	decision := Transition(m.state, crossover, m.aggressive)
	m.state = decision.Next

	extra := declared
	if decision.Policy == Suppress {
		extra = 0
	}
	return extra, decision.TagFor(extra)
}
