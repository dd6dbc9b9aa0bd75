package model

import "fmt"

type ViolationKind string

const (
	ViolationSymbol      ViolationKind = "SYMBOL"
	ViolationCoverage    ViolationKind = "COVER"
	ViolationDaysOff     ViolationKind = "OFF"
	ViolationConsecutive ViolationKind = "CONSEC"
	ViolationRest        ViolationKind = "REST"
	ViolationNightCap    ViolationKind = "NIGHTS"
)

// Violation is a concrete, localized failure of one hard rule. Nurse or Day
// is -1 when the rule is not scoped to that dimension.
type Violation struct {
	Kind    ViolationKind
	Nurse   int
	Day     int
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s", v.Kind, v.Message)
}

// ValidateSchedule independently re-checks a candidate schedule against the
// hard rules. It re-derives every rule from the grid alone, without reference
// to the model builder's variables or encodings, so that an encoding bug
// shows up as a violation instead of being re-confirmed. An empty list is
// required for any schedule reported as feasible.
func ValidateSchedule(schedule Schedule, demand []map[Shift]int, config RosteringConfig) []Violation {
	var violations []Violation

	nurses := schedule.Nurses()
	days := schedule.Days()

	allowed := map[Shift]bool{ShiftOff: true}
	for _, shift := range config.Shifts {
		allowed[shift] = true
	}

	// Cell symbols
	for nurse := range nurses {
		for day := range days {
			if !allowed[schedule.At(nurse, day)] {
				violations = append(violations, Violation{
					Kind:    ViolationSymbol,
					Nurse:   nurse,
					Day:     day,
					Message: fmt.Sprintf("nurse %d day %d: invalid symbol %q", nurse, day, schedule.At(nurse, day)),
				})
			}
		}
	}

	// Exact coverage
	for day := range days {
		for _, shift := range config.Shifts {
			have := schedule.Count(day, shift)
			need := demand[day][shift]
			if have != need {
				violations = append(violations, Violation{
					Kind:    ViolationCoverage,
					Nurse:   -1,
					Day:     day,
					Message: fmt.Sprintf("day %d shift %s: have %d need %d", day, shift, have, need),
				})
			}
		}
	}

	// Minimum days off
	if config.MinDaysOff > 0 {
		for nurse := range nurses {
			off := days - schedule.WorkDays(nurse)
			if off < config.MinDaysOff {
				violations = append(violations, Violation{
					Kind:    ViolationDaysOff,
					Nurse:   nurse,
					Day:     -1,
					Message: fmt.Sprintf("nurse %d: off=%d < min_days_off=%d", nurse, off, config.MinDaysOff),
				})
			}
		}
	}

	// Max consecutive working days; only the first breaching window per nurse
	// is reported, identified by its end day.
	limit := config.MaxConsecutiveWorkDays
	if limit > 0 && days >= limit+1 {
		for nurse := range nurses {
			consecutive := 0
			for day := range days {
				if schedule.At(nurse, day) == ShiftOff {
					consecutive = 0
					continue
				}
				consecutive++
				if consecutive > limit {
					violations = append(violations, Violation{
						Kind:    ViolationConsecutive,
						Nurse:   nurse,
						Day:     day,
						Message: fmt.Sprintf("nurse %d: more than %d consecutive work days ending at day %d", nurse, limit, day),
					})
					break
				}
			}
		}
	}

	// Rest after night, per configured policy
	if config.RestAfterNight != RestNone && days >= 2 {
		for nurse := range nurses {
			for day := range days - 1 {
				if schedule.At(nurse, day) != ShiftNight {
					continue
				}
				next := schedule.At(nurse, day+1)

				var broken bool
				switch config.RestAfterNight {
				case RestDayOff:
					broken = next != ShiftOff
				case RestNoMorning:
					broken = next == ShiftMorning
				}

				if broken {
					violations = append(violations, Violation{
						Kind:    ViolationRest,
						Nurse:   nurse,
						Day:     day,
						Message: fmt.Sprintf("nurse %d: night on day %d but day %d is %s", nurse, day, day+1, next),
					})
				}
			}
		}
	}

	// Night cap
	for nurse := range nurses {
		nights := schedule.Nights(nurse)
		if nights > config.MaxNightsPerNurse {
			violations = append(violations, Violation{
				Kind:    ViolationNightCap,
				Nurse:   nurse,
				Day:     -1,
				Message: fmt.Sprintf("nurse %d: nights=%d > max=%d", nurse, nights, config.MaxNightsPerNurse),
			})
		}
	}

	return violations
}
