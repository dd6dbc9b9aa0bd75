package model

import (
	"fmt"

	"github.com/samber/lo"
)

// RestPolicy selects what a night shift implies for the following day.
type RestPolicy string

const (
	// RestNone disables the rule.
	RestNone RestPolicy = "none"
	// RestDayOff forces a full OFF day after every night shift.
	RestDayOff RestPolicy = "day-off"
	// RestNoMorning only forbids a morning shift after a night shift.
	RestNoMorning RestPolicy = "no-morning"
)

// RosteringConfig carries the rule parameters and objective weights of one
// solve request. It is passed by value and never mutated.
type RosteringConfig struct {
	Shifts                 []Shift
	MinDaysOff             int
	MaxConsecutiveWorkDays int
	MaxNightsPerNurse      int
	RestAfterNight         RestPolicy

	PreferenceWeight   int64
	BalanceWeight      int64
	NightBalanceWeight int64
}

func DefaultConfig() RosteringConfig {
	return RosteringConfig{
		Shifts:                 []Shift{ShiftMorning, ShiftAfternoon, ShiftNight},
		MinDaysOff:             1,
		MaxConsecutiveWorkDays: 5,
		MaxNightsPerNurse:      3,
		RestAfterNight:         RestDayOff,
		PreferenceWeight:       10,
		BalanceWeight:          3,
		NightBalanceWeight:     2,
	}
}

func (c RosteringConfig) Validate() error {
	if len(c.Shifts) == 0 {
		return fmt.Errorf("%w: config declares no shifts", ErrInvalidInput)
	}
	if lo.Contains(c.Shifts, ShiftOff) {
		return fmt.Errorf("%w: %q is not an assignable shift", ErrInvalidInput, ShiftOff)
	}
	if len(lo.Uniq(c.Shifts)) != len(c.Shifts) {
		return fmt.Errorf("%w: duplicate shift symbols in config", ErrInvalidInput)
	}
	if c.MinDaysOff < 0 || c.MaxConsecutiveWorkDays < 0 || c.MaxNightsPerNurse < 0 {
		return fmt.Errorf("%w: rule caps must be non-negative", ErrInvalidInput)
	}
	if c.PreferenceWeight < 0 || c.BalanceWeight < 0 || c.NightBalanceWeight < 0 {
		return fmt.Errorf("%w: objective weights must be non-negative", ErrInvalidInput)
	}
	switch c.RestAfterNight {
	case RestNone, RestDayOff, RestNoMorning:
	default:
		return fmt.Errorf("%w: unknown rest policy %q", ErrInvalidInput, c.RestAfterNight)
	}
	return nil
}

// shiftPosition returns the index of a shift within the configured shift set,
// or -1 when absent.
func (c RosteringConfig) shiftPosition(shift Shift) int {
	return lo.IndexOf(c.Shifts, shift)
}
