package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ErrInvalidInput marks malformed-input failures detected before any solving
// attempt. They are disjoint from infeasibility, which is a normal outcome.
var ErrInvalidInput = errors.New("invalid rostering input")

type PreferenceKind string

const (
	Prefer PreferenceKind = "prefer"
	Avoid  PreferenceKind = "avoid"
)

// Preference is a soft desire of one nurse for one day. Target may be
// ShiftOff: preferring OFF penalizes working, avoiding OFF penalizes resting.
type Preference struct {
	Nurse  int
	Day    int
	Kind   PreferenceKind
	Target Shift
}

// NewPreference rejects unrecognized kinds at construction time instead of
// silently dropping them at objective-build time.
func NewPreference(nurse, day int, kind PreferenceKind, target Shift) (Preference, error) {
	if kind != Prefer && kind != Avoid {
		return Preference{}, fmt.Errorf("%w: unknown preference kind %q", ErrInvalidInput, kind)
	}
	return Preference{Nurse: nurse, Day: day, Kind: kind, Target: target}, nil
}

// WeightedPreference attaches a signed weight to one (nurse, day, shift)
// pattern: positive weights penalize the pattern, negative weights reward it.
type WeightedPreference struct {
	Nurse  int
	Day    int
	Shift  Shift
	Weight int64
}

// Request is one complete, immutable solve invocation.
type Request struct {
	Nurses      int
	Days        int
	Demand      []map[Shift]int
	Preferences []Preference
	Weighted    []WeightedPreference
	Config      RosteringConfig

	TimeLimit time.Duration
	Workers   int
	LogSearch bool
}

// Validate checks the request against the malformed-input error class:
// demand dimensions, missing demand entries, invalid symbols and out-of-range
// preference indices all fail here, never inside the solver.
func (r Request) Validate() error {
	if r.Nurses <= 0 {
		return fmt.Errorf("%w: nurse count must be positive, got %d", ErrInvalidInput, r.Nurses)
	}
	if r.Days <= 0 {
		return fmt.Errorf("%w: day count must be positive, got %d", ErrInvalidInput, r.Days)
	}
	if err := r.Config.Validate(); err != nil {
		return err
	}
	if r.TimeLimit < 0 {
		return fmt.Errorf("%w: time limit must be non-negative", ErrInvalidInput)
	}

	if len(r.Demand) != r.Days {
		return fmt.Errorf("%w: demand must have %d entries, got %d", ErrInvalidInput, r.Days, len(r.Demand))
	}
	for day, entry := range r.Demand {
		for _, shift := range r.Config.Shifts {
			required, ok := entry[shift]
			if !ok {
				return fmt.Errorf("%w: demand[%d] missing shift %q", ErrInvalidInput, day, shift)
			}
			if required < 0 {
				return fmt.Errorf("%w: demand[%d][%q] must be non-negative, got %d", ErrInvalidInput, day, shift, required)
			}
		}
		for shift := range entry {
			if shift == ShiftOff {
				return fmt.Errorf("%w: demand[%d] must not cover %q", ErrInvalidInput, day, ShiftOff)
			}
			if r.Config.shiftPosition(shift) < 0 {
				return fmt.Errorf("%w: demand[%d] declares unknown shift %q", ErrInvalidInput, day, shift)
			}
		}
	}

	for _, preference := range r.Preferences {
		if _, err := NewPreference(preference.Nurse, preference.Day, preference.Kind, preference.Target); err != nil {
			return err
		}
		if err := r.checkCell(preference.Nurse, preference.Day, preference.Target); err != nil {
			return err
		}
	}
	for _, weighted := range r.Weighted {
		if err := r.checkCell(weighted.Nurse, weighted.Day, weighted.Shift); err != nil {
			return err
		}
	}
	return nil
}

func (r Request) checkCell(nurse, day int, shift Shift) error {
	if nurse < 0 || nurse >= r.Nurses {
		return fmt.Errorf("%w: preference nurse %d out of range [0, %d)", ErrInvalidInput, nurse, r.Nurses)
	}
	if day < 0 || day >= r.Days {
		return fmt.Errorf("%w: preference day %d out of range [0, %d)", ErrInvalidInput, day, r.Days)
	}
	if shift != ShiftOff && r.Config.shiftPosition(shift) < 0 {
		return fmt.Errorf("%w: preference targets unknown shift %q", ErrInvalidInput, shift)
	}
	return nil
}

// RawInstance mirrors the JSON instance format accepted by the CLI and the
// HTTP API. Pointer fields distinguish "absent" from zero overrides.
type RawInstance struct {
	Nurses           int              `json:"nurses" mapstructure:"nurses"`
	Days             int              `json:"days" mapstructure:"days"`
	Demand           []map[string]int `json:"demand" mapstructure:"demand"`
	Preferences      []RawPreference  `json:"preferences" mapstructure:"preferences"`
	Config           *RawConfig       `json:"config" mapstructure:"config"`
	TimeLimitSeconds float64          `json:"timeLimitSeconds" mapstructure:"timeLimitSeconds"`
	Workers          int              `json:"workers" mapstructure:"workers"`
	LogSearch        bool             `json:"logSearch" mapstructure:"logSearch"`
}

type RawPreference struct {
	Nurse  int    `json:"nurse" mapstructure:"nurse"`
	Day    int    `json:"day" mapstructure:"day"`
	Type   string `json:"type" mapstructure:"type"`
	Shift  string `json:"shift" mapstructure:"shift"`
	Weight *int64 `json:"weight,omitempty" mapstructure:"weight"`
}

type RawConfig struct {
	Shifts                 []string `json:"shifts" mapstructure:"shifts"`
	MinDaysOff             *int     `json:"minDaysOff" mapstructure:"minDaysOff"`
	MaxConsecutiveWorkDays *int     `json:"maxConsecutiveWorkDays" mapstructure:"maxConsecutiveWorkDays"`
	MaxNightsPerNurse      *int     `json:"maxNightsPerNurse" mapstructure:"maxNightsPerNurse"`
	RestAfterNight         *string  `json:"restAfterNight" mapstructure:"restAfterNight"`
	PreferenceWeight       *int64   `json:"preferenceWeight" mapstructure:"preferenceWeight"`
	BalanceWeight          *int64   `json:"balanceWeight" mapstructure:"balanceWeight"`
	NightBalanceWeight     *int64   `json:"nightBalanceWeight" mapstructure:"nightBalanceWeight"`
}

// ToRequest converts the wire format into a validated Request, starting from
// DefaultConfig and overlaying only the fields the instance sets.
func (raw RawInstance) ToRequest() (Request, error) {
	config := DefaultConfig()
	if raw.Config != nil {
		if len(raw.Config.Shifts) > 0 {
			config.Shifts = make([]Shift, len(raw.Config.Shifts))
			for i, symbol := range raw.Config.Shifts {
				config.Shifts[i] = Shift(symbol)
			}
		}
		if raw.Config.MinDaysOff != nil {
			config.MinDaysOff = *raw.Config.MinDaysOff
		}
		if raw.Config.MaxConsecutiveWorkDays != nil {
			config.MaxConsecutiveWorkDays = *raw.Config.MaxConsecutiveWorkDays
		}
		if raw.Config.MaxNightsPerNurse != nil {
			config.MaxNightsPerNurse = *raw.Config.MaxNightsPerNurse
		}
		if raw.Config.RestAfterNight != nil {
			config.RestAfterNight = RestPolicy(*raw.Config.RestAfterNight)
		}
		if raw.Config.PreferenceWeight != nil {
			config.PreferenceWeight = *raw.Config.PreferenceWeight
		}
		if raw.Config.BalanceWeight != nil {
			config.BalanceWeight = *raw.Config.BalanceWeight
		}
		if raw.Config.NightBalanceWeight != nil {
			config.NightBalanceWeight = *raw.Config.NightBalanceWeight
		}
	}

	request := Request{
		Nurses:    raw.Nurses,
		Days:      raw.Days,
		Config:    config,
		TimeLimit: time.Duration(raw.TimeLimitSeconds * float64(time.Second)),
		Workers:   raw.Workers,
		LogSearch: raw.LogSearch,
	}

	request.Demand = make([]map[Shift]int, len(raw.Demand))
	for day, entry := range raw.Demand {
		request.Demand[day] = make(map[Shift]int, len(entry))
		for symbol, required := range entry {
			request.Demand[day][Shift(symbol)] = required
		}
	}

	for _, rawPreference := range raw.Preferences {
		if rawPreference.Weight != nil {
			request.Weighted = append(request.Weighted, WeightedPreference{
				Nurse:  rawPreference.Nurse,
				Day:    rawPreference.Day,
				Shift:  Shift(rawPreference.Shift),
				Weight: *rawPreference.Weight,
			})
			continue
		}

		preference, err := NewPreference(
			rawPreference.Nurse,
			rawPreference.Day,
			PreferenceKind(strings.ToLower(rawPreference.Type)),
			Shift(rawPreference.Shift),
		)
		if err != nil {
			return Request{}, err
		}
		request.Preferences = append(request.Preferences, preference)
	}

	if err := request.Validate(); err != nil {
		return Request{}, err
	}
	return request, nil
}

// InputFromJSON loads an instance file into a validated Request.
func InputFromJSON(file string) (Request, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Request{}, fmt.Errorf("cannot read instance file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var raw RawInstance
	if err := mapstructure.Decode(inputJson, &raw); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return raw.ToRequest()
}
