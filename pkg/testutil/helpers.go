// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/mortgage-engine/internal/engine"
	"github.com/iwvelando/mortgage-engine/internal/scenario"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindScenario(results []scenario.Result, name string) *scenario.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindRow returns the schedule row for a 1-based month, or nil when the
// schedule ended earlier.
func FindRow(schedule []engine.ScheduleRow, month int) *engine.ScheduleRow {
	if month < 1 || month > len(schedule) {
		return nil
	}
	if row := &schedule[month-1]; row.Month == month {
		return row
	}
	for i := range schedule {
		if schedule[i].Month == month {
			return &schedule[i]
		}
	}
	return nil
}
