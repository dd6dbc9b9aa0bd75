package cp

import (
	"time"

	"github.com/sirupsen/logrus"
)

const deadlineCheckInterval = 1024

type backtrackingSolver struct{}

// NewBacktrackingSolver returns the built-in branch-and-bound backend. It
// keeps bounds-consistency on every linear constraint during a depth-first
// search and prunes on the objective's linear lower bound.
func NewBacktrackingSolver() Solver {
	return &backtrackingSolver{}
}

func (solver *backtrackingSolver) Solve(model Model, params Params) (Outcome, error) {
	if err := model.validate(); err != nil {
		return Outcome{}, err
	}

	timeLimit := params.TimeLimit
	if timeLimit <= 0 {
		timeLimit = 10 * time.Second
	}

	start := time.Now()
	s := newSearch(model, start.Add(timeLimit), params.LogSearch)

	signal := signalExhausted
	if s.initRoot() {
		signal = s.run(0)
	}

	stats := Stats{
		WallTime:  time.Since(start),
		Branches:  s.branches,
		Conflicts: s.conflicts,
	}

	outcome := Outcome{Stats: stats}
	switch {
	case s.hasBest && signal != signalAborted:
		outcome.Status = StatusOptimal
	case s.hasBest:
		outcome.Status = StatusFeasible
	case signal != signalAborted:
		outcome.Status = StatusInfeasible
	default:
		outcome.Status = StatusUnknown
	}
	outcome.Stats.Status = outcome.Status

	if s.hasBest {
		outcome.Solution = s.best
		outcome.Stats.Objective = s.bestObj
	}
	return outcome, nil
}

type searchSignal int

const (
	signalExhausted searchSignal = iota // subtree fully explored
	signalStopped                       // incumbent matches the global lower bound
	signalAborted                       // deadline expired
)

type forcedLiteral struct {
	variable int
	value    int8
}

type search struct {
	model    Model
	deadline time.Time
	log      bool

	values   []int8 // -1 unassigned
	watchers [][]int
	sumMin   []int64 // achievable minimum per constraint given current assignment
	sumMax   []int64
	trail    []int
	queue    []forcedLiteral

	weight       []int64 // summed objective coefficient per variable
	linearAcc    int64
	remainingNeg int64 // sum of negative weights over unassigned variables
	rootLB       int64

	best    Solution
	bestObj int64
	hasBest bool

	nodes     int64
	branches  int64
	conflicts int64
}

func newSearch(model Model, deadline time.Time, log bool) *search {
	s := &search{
		model:    model,
		deadline: deadline,
		log:      log,
		values:   make([]int8, model.Variables),
		watchers: make([][]int, model.Variables),
		sumMin:   make([]int64, len(model.Constraints)),
		sumMax:   make([]int64, len(model.Constraints)),
		weight:   make([]int64, model.Variables),
	}

	for i := range s.values {
		s.values[i] = -1
	}
	for ci, constraint := range model.Constraints {
		s.sumMin[ci] = minSum(constraint.Terms)
		s.sumMax[ci] = maxSum(constraint.Terms)
		for _, term := range constraint.Terms {
			s.watchers[term.Var] = append(s.watchers[term.Var], ci)
		}
	}
	for _, term := range model.Objective.Terms {
		s.weight[term.Var] += term.Coef
	}
	for _, w := range s.weight {
		if w < 0 {
			s.remainingNeg += w
		}
	}
	s.rootLB = model.Objective.Offset + s.remainingNeg
	return s
}

// initRoot applies constraint forcing before any decision is made. A false
// return means the constraints are contradictory on their own.
func (s *search) initRoot() bool {
	for ci := range s.model.Constraints {
		if !s.checkConstraint(ci) {
			s.conflicts++
			return false
		}
	}
	return s.flushQueue()
}

func (s *search) run(next int) searchSignal {
	s.nodes++
	if s.nodes%deadlineCheckInterval == 0 && time.Now().After(s.deadline) {
		return signalAborted
	}

	for next < len(s.values) && s.values[next] != -1 {
		next++
	}

	if next == len(s.values) {
		s.recordLeaf()
		if s.hasBest && s.bestObj <= s.rootLB {
			return signalStopped
		}
		return signalExhausted
	}

	first, second := int8(0), int8(1)
	if s.weight[next] < 0 {
		first, second = 1, 0
	}

	for _, value := range [2]int8{first, second} {
		mark := len(s.trail)
		s.branches++
		if s.propagate(next, value) && s.withinBound() {
			signal := s.run(next + 1)
			if signal != signalExhausted {
				s.undoTo(mark)
				return signal
			}
		}
		s.undoTo(mark)
	}
	return signalExhausted
}

func (s *search) recordLeaf() {
	objective := s.linearAcc + s.model.Objective.Offset
	for _, spread := range s.model.Objective.Spreads {
		objective += spread.Weight * s.spreadValue(spread.Groups)
	}

	if !s.hasBest || objective < s.bestObj {
		if s.best == nil {
			s.best = make(Solution, len(s.values))
		}
		for i, value := range s.values {
			s.best[i] = value == 1
		}
		s.bestObj = objective
		s.hasBest = true

		if s.log {
			logrus.WithFields(logrus.Fields{
				"objective": objective,
				"branches":  s.branches,
				"conflicts": s.conflicts,
			}).Debug("incumbent improved")
		}
	}
}

func (s *search) spreadValue(groups [][]int) int64 {
	if len(groups) == 0 {
		return 0
	}
	var max, min int64
	for i, group := range groups {
		var sum int64
		for _, v := range group {
			if s.values[v] == 1 {
				sum++
			}
		}
		if i == 0 || sum > max {
			max = sum
		}
		if i == 0 || sum < min {
			min = sum
		}
	}
	return max - min
}

// withinBound reports whether the current partial assignment can still beat
// the incumbent. Spread terms are bounded below by zero.
func (s *search) withinBound() bool {
	if !s.hasBest {
		return true
	}
	return s.linearAcc+s.model.Objective.Offset+s.remainingNeg < s.bestObj
}

func (s *search) propagate(variable int, value int8) bool {
	s.queue = append(s.queue, forcedLiteral{variable, value})
	return s.flushQueue()
}

func (s *search) flushQueue() bool {
	for len(s.queue) > 0 {
		literal := s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]

		if current := s.values[literal.variable]; current != -1 {
			if current != literal.value {
				s.conflicts++
				s.queue = s.queue[:0]
				return false
			}
			continue
		}

		if !s.assign(literal.variable, literal.value) {
			s.conflicts++
			s.queue = s.queue[:0]
			return false
		}
	}
	return true
}

func (s *search) assign(variable int, value int8) bool {
	s.values[variable] = value
	s.trail = append(s.trail, variable)

	w := s.weight[variable]
	if value == 1 {
		s.linearAcc += w
	}
	if w < 0 {
		s.remainingNeg -= w
	}

	// Apply every sum delta before checking so that undoTo stays symmetric
	// even when a constraint turns out dead halfway through.
	for _, ci := range s.watchers[variable] {
		coef := s.coefOf(ci, variable)
		s.sumMin[ci] += coef*int64(value) - min64(0, coef)
		s.sumMax[ci] += coef*int64(value) - max64(0, coef)
	}
	for _, ci := range s.watchers[variable] {
		if !s.checkConstraint(ci) {
			return false
		}
	}
	return true
}

// checkConstraint detects dead constraints and enqueues forced literals for
// variables that have only one consistent value left.
func (s *search) checkConstraint(ci int) bool {
	constraint := s.model.Constraints[ci]
	if s.sumMin[ci] > constraint.Hi || s.sumMax[ci] < constraint.Lo {
		return false
	}

	for _, term := range constraint.Terms {
		if s.values[term.Var] != -1 {
			continue
		}
		var mustBeZero, mustBeOne bool
		if term.Coef > 0 {
			mustBeZero = s.sumMin[ci]+term.Coef > constraint.Hi
			mustBeOne = s.sumMax[ci]-term.Coef < constraint.Lo
		} else if term.Coef < 0 {
			mustBeZero = s.sumMax[ci]+term.Coef < constraint.Lo
			mustBeOne = s.sumMin[ci]-term.Coef > constraint.Hi
		}

		if mustBeZero && mustBeOne {
			return false
		} else if mustBeZero {
			s.queue = append(s.queue, forcedLiteral{term.Var, 0})
		} else if mustBeOne {
			s.queue = append(s.queue, forcedLiteral{term.Var, 1})
		}
	}
	return true
}

func (s *search) undoTo(mark int) {
	for len(s.trail) > mark {
		variable := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		value := s.values[variable]
		s.values[variable] = -1

		w := s.weight[variable]
		if value == 1 {
			s.linearAcc -= w
		}
		if w < 0 {
			s.remainingNeg += w
		}

		for _, ci := range s.watchers[variable] {
			coef := s.coefOf(ci, variable)
			s.sumMin[ci] -= coef*int64(value) - min64(0, coef)
			s.sumMax[ci] -= coef*int64(value) - max64(0, coef)
		}
	}
}

func (s *search) coefOf(ci, variable int) int64 {
	for _, term := range s.model.Constraints[ci].Terms {
		if term.Var == variable {
			return term.Coef
		}
	}
	return 0
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
