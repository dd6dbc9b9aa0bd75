package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformDemand(days, morning, afternoon, night int) []map[Shift]int {
	demand := make([]map[Shift]int, days)
	for day := range days {
		demand[day] = map[Shift]int{
			ShiftMorning:   morning,
			ShiftAfternoon: afternoon,
			ShiftNight:     night,
		}
	}
	return demand
}

func mustSchedule(t *testing.T, grid [][]Shift) Schedule {
	t.Helper()
	schedule, err := NewSchedule(grid)
	require.NoError(t, err)
	return schedule
}

func TestValidateCleanSchedule(t *testing.T) {
	config := DefaultConfig()
	schedule := mustSchedule(t, [][]Shift{
		{ShiftMorning, ShiftOff},
		{ShiftOff, ShiftMorning},
	})
	demand := uniformDemand(2, 1, 0, 0)

	violations := ValidateSchedule(schedule, demand, config)

	assert.Empty(t, violations)
}

func TestValidateDetectsInvalidSymbol(t *testing.T) {
	config := DefaultConfig()
	schedule := mustSchedule(t, [][]Shift{
		{Shift("X"), ShiftOff},
		{ShiftMorning, ShiftMorning},
	})
	demand := uniformDemand(2, 1, 0, 0)

	violations := ValidateSchedule(schedule, demand, config)

	require.NotEmpty(t, violations)
	assert.Equal(t, ViolationSymbol, violations[0].Kind)
	assert.Equal(t, 0, violations[0].Nurse)
	assert.Equal(t, 0, violations[0].Day)
}

func TestValidateDetectsCoverageBreach(t *testing.T) {
	config := DefaultConfig()
	schedule := mustSchedule(t, [][]Shift{
		{ShiftMorning, ShiftOff},
		{ShiftOff, ShiftOff},
	})
	demand := uniformDemand(2, 1, 0, 0)

	violations := ValidateSchedule(schedule, demand, config)

	require.Len(t, violations, 1)
	assert.Equal(t, ViolationCoverage, violations[0].Kind)
	assert.Equal(t, 1, violations[0].Day)
}

func TestValidateDetectsMissingDaysOff(t *testing.T) {
	config := DefaultConfig()
	config.MaxConsecutiveWorkDays = 0 // isolate the days-off rule
	schedule := mustSchedule(t, [][]Shift{
		{ShiftMorning, ShiftMorning, ShiftMorning},
	})
	demand := uniformDemand(3, 1, 0, 0)

	violations := ValidateSchedule(schedule, demand, config)

	require.Len(t, violations, 1)
	assert.Equal(t, ViolationDaysOff, violations[0].Kind)
	assert.Equal(t, 0, violations[0].Nurse)
}

func TestValidateReportsFirstConsecutiveBreachOnly(t *testing.T) {
	// Scenario: 6 working days in a row with a limit of 5 must yield exactly
	// one CONSEC violation, ending at day 5.
	config := DefaultConfig()
	config.MinDaysOff = 0
	config.RestAfterNight = RestNone

	row := make([]Shift, 10)
	for day := range row {
		row[day] = ShiftMorning
	}
	row[6] = ShiftOff
	row[9] = ShiftOff
	schedule := mustSchedule(t, [][]Shift{row})

	demand := make([]map[Shift]int, 10)
	for day := range demand {
		required := 1
		if day == 6 || day == 9 {
			required = 0
		}
		demand[day] = map[Shift]int{ShiftMorning: required, ShiftAfternoon: 0, ShiftNight: 0}
	}

	violations := ValidateSchedule(schedule, demand, config)

	require.Len(t, violations, 1)
	assert.Equal(t, ViolationConsecutive, violations[0].Kind)
	assert.Equal(t, 5, violations[0].Day)
}

func TestValidateRestAfterNightPolicies(t *testing.T) {
	demand := []map[Shift]int{
		{ShiftMorning: 0, ShiftAfternoon: 0, ShiftNight: 1},
		{ShiftMorning: 1, ShiftAfternoon: 0, ShiftNight: 0},
	}
	schedule := mustSchedule(t, [][]Shift{
		{ShiftNight, ShiftMorning},
	})

	cases := []struct {
		name     string
		policy   RestPolicy
		breaches int
	}{
		{"day-off forbids any work after a night", RestDayOff, 1},
		{"no-morning forbids only the morning", RestNoMorning, 1},
		{"none disables the rule", RestNone, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			config := DefaultConfig()
			config.RestAfterNight = c.policy
			config.MinDaysOff = 0

			violations := ValidateSchedule(schedule, demand, config)

			rests := 0
			for _, violation := range violations {
				if violation.Kind == ViolationRest {
					rests++
				}
			}
			assert.Equal(t, c.breaches, rests)
		})
	}
}

func TestValidateNoMorningPolicyAllowsAfternoon(t *testing.T) {
	config := DefaultConfig()
	config.RestAfterNight = RestNoMorning
	config.MinDaysOff = 0

	schedule := mustSchedule(t, [][]Shift{
		{ShiftNight, ShiftAfternoon},
	})
	demand := []map[Shift]int{
		{ShiftMorning: 0, ShiftAfternoon: 0, ShiftNight: 1},
		{ShiftMorning: 0, ShiftAfternoon: 1, ShiftNight: 0},
	}

	violations := ValidateSchedule(schedule, demand, config)

	assert.Empty(t, violations)
}

func TestValidateDetectsNightCapBreach(t *testing.T) {
	config := DefaultConfig()
	config.MaxNightsPerNurse = 1
	config.RestAfterNight = RestNone
	config.MinDaysOff = 0

	schedule := mustSchedule(t, [][]Shift{
		{ShiftNight, ShiftNight},
	})
	demand := uniformDemand(2, 0, 0, 1)

	violations := ValidateSchedule(schedule, demand, config)

	require.Len(t, violations, 1)
	assert.Equal(t, ViolationNightCap, violations[0].Kind)
}

func TestValidateIsIdempotent(t *testing.T) {
	config := DefaultConfig()
	schedule := mustSchedule(t, [][]Shift{
		{ShiftNight, ShiftNight, ShiftMorning},
	})
	demand := uniformDemand(3, 0, 0, 1)

	first := ValidateSchedule(schedule, demand, config)
	second := ValidateSchedule(schedule, demand, config)

	assert.Equal(t, first, second)
}
