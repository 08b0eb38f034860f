package testutil

import (
	"testing"

	"github.com/iwvelando/mortgage-engine/internal/engine"
	"github.com/iwvelando/mortgage-engine/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindScenario(t *testing.T) {
	results := []scenario.Result{
		{Name: "Scenario A", Config: engine.Config{Price: 1000}},
		{Name: "Scenario B", Config: engine.Config{Price: 2000}},
		{Name: "Another Scenario", Config: engine.Config{Price: 3000}},
	}

	tests := []struct {
		name        string
		searchName  string
		expectFound bool
		price       float64
	}{
		{"Find existing scenario A", "Scenario A", true, 1000},
		{"Find existing scenario B", "Scenario B", true, 2000},
		{"Find scenario with longer name", "Another Scenario", true, 3000},
		{"Search for non-existent scenario", "Non-existent", false, 0},
		{"Case sensitive search", "scenario a", false, 0},
		{"Empty name", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindScenario(results, tt.searchName)
			if !tt.expectFound {
				assert.Nil(t, found)
				return
			}
			require.NotNil(t, found)
			assert.Equal(t, tt.searchName, found.Name)
			assert.Equal(t, tt.price, found.Config.Price)
		})
	}

	t.Run("Returns pointer into slice", func(t *testing.T) {
		found := FindScenario(results, "Scenario B")
		require.NotNil(t, found)
		found.Config.Price = 2500
		assert.Equal(t, 2500.0, results[1].Config.Price)
	})

	assert.Nil(t, FindScenario(nil, "Scenario A"))
}

func TestFindRow(t *testing.T) {
	schedule := []engine.ScheduleRow{{Month: 1}, {Month: 2}, {Month: 3}}

	row := FindRow(schedule, 2)
	require.NotNil(t, row)
	assert.Equal(t, 2, row.Month)

	assert.Nil(t, FindRow(schedule, 0))
	assert.Nil(t, FindRow(schedule, 4))
	assert.Nil(t, FindRow(nil, 1))
}
