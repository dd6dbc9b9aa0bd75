package model

import "rostering/internal/cp"

// objective composes the scalar cost to minimize:
// w_pref * sum(preference penalties) + w_balance * workload spread +
// w_night * night spread. Spreads are max minus min across nurses, which
// keeps the objective linear in the literals and is zero when balanced.
func (b *modelBuilder) objective() cp.Objective {
	objective := cp.Objective{}

	offset, terms := b.preferenceTerms()
	objective.Offset = offset
	objective.Terms = terms
	objective.Spreads = b.spreadTerms()

	return objective
}

// preferenceTerms encode every preference as a {0,1}-bounded penalty.
// prefer s:   1 - x(n,d,s)
// prefer OFF: work(n,d)
// avoid s:    x(n,d,s)
// avoid OFF:  1 - work(n,d)
// Weighted preferences contribute their signed weight when the pattern is
// realized; OFF patterns are realized when the cell carries no shift.
func (b *modelBuilder) preferenceTerms() (int64, []cp.Term) {
	weight := b.request.Config.PreferenceWeight
	var offset int64
	var terms []cp.Term

	for _, preference := range b.request.Preferences {
		work := b.indexer.WorkIndex(preference.Nurse, preference.Day)

		switch {
		case preference.Kind == Prefer && preference.Target == ShiftOff:
			terms = append(terms, cp.Term{Var: work, Coef: weight})
		case preference.Kind == Prefer:
			offset += weight
			target := b.indexer.Index(preference.Nurse, preference.Day, b.request.Config.shiftPosition(preference.Target))
			terms = append(terms, cp.Term{Var: target, Coef: -weight})
		case preference.Target == ShiftOff:
			offset += weight
			terms = append(terms, cp.Term{Var: work, Coef: -weight})
		default:
			target := b.indexer.Index(preference.Nurse, preference.Day, b.request.Config.shiftPosition(preference.Target))
			terms = append(terms, cp.Term{Var: target, Coef: weight})
		}
	}

	for _, weighted := range b.request.Weighted {
		scaled := weight * weighted.Weight
		if weighted.Shift == ShiftOff {
			offset += scaled
			work := b.indexer.WorkIndex(weighted.Nurse, weighted.Day)
			terms = append(terms, cp.Term{Var: work, Coef: -scaled})
			continue
		}
		target := b.indexer.Index(weighted.Nurse, weighted.Day, b.request.Config.shiftPosition(weighted.Shift))
		terms = append(terms, cp.Term{Var: target, Coef: scaled})
	}

	return offset, terms
}

// spreadTerms build the fairness part: one group of work literals per nurse
// for the workload spread, one group of night literals per nurse for the
// night spread.
func (b *modelBuilder) spreadTerms() []cp.SpreadTerm {
	var spreads []cp.SpreadTerm

	if b.request.Config.BalanceWeight > 0 {
		groups := make([][]int, b.request.Nurses)
		for nurse := range b.request.Nurses {
			groups[nurse] = make([]int, b.request.Days)
			for day := range b.request.Days {
				groups[nurse][day] = b.indexer.WorkIndex(nurse, day)
			}
		}
		spreads = append(spreads, cp.SpreadTerm{Groups: groups, Weight: b.request.Config.BalanceWeight})
	}

	if b.request.Config.NightBalanceWeight > 0 && b.nightIdx >= 0 {
		groups := make([][]int, b.request.Nurses)
		for nurse := range b.request.Nurses {
			groups[nurse] = make([]int, b.request.Days)
			for day := range b.request.Days {
				groups[nurse][day] = b.indexer.Index(nurse, day, b.nightIdx)
			}
		}
		spreads = append(spreads, cp.SpreadTerm{Groups: groups, Weight: b.request.Config.NightBalanceWeight})
	}

	return spreads
}
