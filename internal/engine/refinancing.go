package engine

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// RefinancingEvent switches the loan to a new TEA at Month. ClosingCosts are
// financed by adding them to the outstanding balance. Color and Label are
// carried through to the rows for display only.
type RefinancingEvent struct {
	ID           string  `json:"id"`
	Month        int     `json:"month"`
	NewRate      float64 `json:"newRate"`
	ClosingCosts float64 `json:"closingCosts"`
	Color        string  `json:"color,omitempty"`
	Label        string  `json:"label,omitempty"`
}

// DisplayLabel returns the label shown for the period the event opens.
func (e RefinancingEvent) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return fmt.Sprintf("Refinanciamiento - TEA %s%%", strconv.FormatFloat(e.NewRate, 'f', -1, 64))
}

// Validate checks the event for values the simulation cannot interpret.
func (e RefinancingEvent) Validate() error {
	if e.Month < 1 {
		return fmt.Errorf("refinancing month must be at least 1, got %d", e.Month)
	}
	if e.NewRate < 0 {
		return fmt.Errorf("refinancing rate must not be negative, got %.4f", e.NewRate)
	}
	if e.ClosingCosts < 0 {
		return fmt.Errorf("refinancing closing costs must not be negative, got %.2f", e.ClosingCosts)
	}
	return nil
}

// RefinancingID derives a stable identifier for the index-th refinancing
// event of scope, so repeated runs of the same input produce the same IDs.
func RefinancingID(scope string, index, month int) string {
	name := fmt.Sprintf("%s/%d/%d", scope, index, month)
	return "refi-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// AssignIDs returns a copy of events where every event without an ID gets
// RefinancingID(scope, i, month).
func AssignIDs(scope string, events []RefinancingEvent) []RefinancingEvent {
	out := make([]RefinancingEvent, len(events))
	for i, e := range events {
		if e.ID == "" {
			e.ID = RefinancingID(scope, i, e.Month)
		}
		out[i] = e
	}
	return out
}

// RefinancingPlan is an immutable, month-ordered view of refinancing events.
type RefinancingPlan struct {
	events []RefinancingEvent
}

// NewRefinancingPlan sorts a copy of events by month. Events sharing a month
// keep their declaration order and only the first of them takes effect.
func NewRefinancingPlan(events []RefinancingEvent) RefinancingPlan {
	sorted := append([]RefinancingEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Month < sorted[j].Month
	})
	return RefinancingPlan{events: sorted}
}

// Events returns the ordered events.
func (p RefinancingPlan) Events() []RefinancingEvent {
	return append([]RefinancingEvent(nil), p.events...)
}

// Empty reports whether the plan has no events.
func (p RefinancingPlan) Empty() bool {
	return len(p.events) == 0
}

// EventForMonth returns the event that takes effect at month.
func (p RefinancingPlan) EventForMonth(month int) (RefinancingEvent, bool) {
	for _, e := range p.events {
		if e.Month == month {
			return e, true
		}
		if e.Month > month {
			break
		}
	}
	return RefinancingEvent{}, false
}

// latest returns the most recent event at or before month.
func (p RefinancingPlan) latest(month int) (RefinancingEvent, bool) {
	var found RefinancingEvent
	ok := false
	for _, e := range p.events {
		if e.Month > month {
			break
		}
		if ok && e.Month == found.Month {
			continue
		}
		found = e
		ok = true
	}
	return found, ok
}

// ActiveRateForMonth returns the TEA in force at month.
func (p RefinancingPlan) ActiveRateForMonth(month int, baseRate float64) float64 {
	if e, ok := p.latest(month); ok {
		return e.NewRate
	}
	return baseRate
}

// ColorForMonth returns the tint of the refinancing period containing month.
func (p RefinancingPlan) ColorForMonth(month int) string {
	if e, ok := p.latest(month); ok {
		return e.Color
	}
	return ""
}
