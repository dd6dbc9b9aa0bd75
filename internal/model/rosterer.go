package model

import (
	"time"

	"rostering/internal/cp"
)

// SolverStats echoes the oracle's per-call statistics to the caller.
type SolverStats struct {
	Status    string
	Objective int64
	WallTime  time.Duration
	Branches  int64
	Conflicts int64
}

// SolveResult is the terminal artifact of one solve request. When Feasible is
// false, Schedule and Objective are absent. A non-empty Violations list on a
// feasible result means the constraint encoding and the independent validator
// disagree: a defect in this package, surfaced instead of hidden.
type SolveResult struct {
	Feasible   bool
	Schedule   *Schedule
	Objective  *int64
	Stats      SolverStats
	Violations []Violation
}

type Rosterer interface {
	Solve(request Request) (SolveResult, error)
}

func NewRosterer(solver cp.Solver) Rosterer {
	return newCpRosterer(solver)
}
