package model

import "rostering/internal/cp"

// Hard rules. All of them are conjunctive: violating any single one makes a
// candidate schedule infeasible regardless of its objective value.

// workChannelConstraints define work(n,d) as the sum of that cell's shift
// literals: work(n,d) - sum_s x(n,d,s) == 0.
func (b *modelBuilder) workChannelConstraints() []cp.LinearConstraint {
	constraints := make([]cp.LinearConstraint, 0, b.request.Nurses*b.request.Days)
	for nurse := range b.request.Nurses {
		for day := range b.request.Days {
			terms := cp.Vars(b.shiftVars(nurse, day)...)
			terms = append(terms, cp.Term{Var: b.indexer.WorkIndex(nurse, day), Coef: -1})
			constraints = append(constraints, cp.LinearConstraint{Terms: terms, Lo: 0, Hi: 0})
		}
	}
	return constraints
}

// singleAssignmentConstraints allow at most one shift per nurse per day.
func (b *modelBuilder) singleAssignmentConstraints() []cp.LinearConstraint {
	constraints := make([]cp.LinearConstraint, 0, b.request.Nurses*b.request.Days)
	for nurse := range b.request.Nurses {
		for day := range b.request.Days {
			constraints = append(constraints, cp.AtMost(cp.Vars(b.shiftVars(nurse, day)...), 1))
		}
	}
	return constraints
}

// coverageConstraints demand exact per-day per-shift staffing.
func (b *modelBuilder) coverageConstraints() []cp.LinearConstraint {
	constraints := make([]cp.LinearConstraint, 0, b.request.Days*len(b.request.Config.Shifts))
	for day := range b.request.Days {
		for s, shift := range b.request.Config.Shifts {
			vars := make([]int, b.request.Nurses)
			for nurse := range b.request.Nurses {
				vars[nurse] = b.indexer.Index(nurse, day, s)
			}
			constraints = append(constraints, cp.Exactly(cp.Vars(vars...), int64(b.request.Demand[day][shift])))
		}
	}
	return constraints
}

// minDaysOffConstraints cap total working days at D - min_days_off per nurse.
func (b *modelBuilder) minDaysOffConstraints() []cp.LinearConstraint {
	if b.request.Config.MinDaysOff <= 0 {
		return nil
	}

	constraints := make([]cp.LinearConstraint, 0, b.request.Nurses)
	for nurse := range b.request.Nurses {
		vars := make([]int, b.request.Days)
		for day := range b.request.Days {
			vars[day] = b.indexer.WorkIndex(nurse, day)
		}
		constraints = append(constraints, cp.AtMost(cp.Vars(vars...), int64(b.request.Days-b.request.Config.MinDaysOff)))
	}
	return constraints
}

// consecutiveWorkConstraints bound every sliding window of L+1 days to at
// most L working days. Only applies when the horizon fits a full window.
func (b *modelBuilder) consecutiveWorkConstraints() []cp.LinearConstraint {
	limit := b.request.Config.MaxConsecutiveWorkDays
	if limit <= 0 || b.request.Days < limit+1 {
		return nil
	}

	var constraints []cp.LinearConstraint
	for nurse := range b.request.Nurses {
		for start := 0; start <= b.request.Days-(limit+1); start++ {
			vars := make([]int, limit+1)
			for offset := range limit + 1 {
				vars[offset] = b.indexer.WorkIndex(nurse, start+offset)
			}
			constraints = append(constraints, cp.AtMost(cp.Vars(vars...), int64(limit)))
		}
	}
	return constraints
}

// restAfterNightConstraints encode the configured rest policy: a night shift
// forces either a full OFF day (x(n,d,N) + work(n,d+1) <= 1) or merely no
// morning shift (x(n,d,N) + x(n,d+1,M) <= 1) on the following day.
func (b *modelBuilder) restAfterNightConstraints() []cp.LinearConstraint {
	policy := b.request.Config.RestAfterNight
	if policy == RestNone || b.nightIdx < 0 || b.request.Days < 2 {
		return nil
	}

	morningIdx := b.request.Config.shiftPosition(ShiftMorning)
	if policy == RestNoMorning && morningIdx < 0 {
		return nil
	}

	var constraints []cp.LinearConstraint
	for nurse := range b.request.Nurses {
		for day := range b.request.Days - 1 {
			night := b.indexer.Index(nurse, day, b.nightIdx)

			var follower int
			if policy == RestDayOff {
				follower = b.indexer.WorkIndex(nurse, day+1)
			} else {
				follower = b.indexer.Index(nurse, day+1, morningIdx)
			}
			constraints = append(constraints, cp.AtMost(cp.Vars(night, follower), 1))
		}
	}
	return constraints
}

// nightCapConstraints bound total nights per nurse. Applies unconditionally
// whenever the shift set declares a night shift.
func (b *modelBuilder) nightCapConstraints() []cp.LinearConstraint {
	if b.nightIdx < 0 {
		return nil
	}

	constraints := make([]cp.LinearConstraint, 0, b.request.Nurses)
	for nurse := range b.request.Nurses {
		vars := make([]int, b.request.Days)
		for day := range b.request.Days {
			vars[day] = b.indexer.Index(nurse, day, b.nightIdx)
		}
		constraints = append(constraints, cp.AtMost(cp.Vars(vars...), int64(b.request.Config.MaxNightsPerNurse)))
	}
	return constraints
}
