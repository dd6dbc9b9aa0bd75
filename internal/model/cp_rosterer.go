package model

import (
	"time"

	"rostering/internal/cp"
)

const defaultTimeLimit = 10 * time.Second

type cpRosterer struct {
	solver cp.Solver
}

func newCpRosterer(solver cp.Solver) *cpRosterer {
	return &cpRosterer{solver: solver}
}

func (rosterer *cpRosterer) Solve(request Request) (SolveResult, error) {
	if err := request.Validate(); err != nil {
		return SolveResult{}, err
	}

	builder := newModelBuilder(request)
	model := builder.build()

	timeLimit := request.TimeLimit
	if timeLimit <= 0 {
		timeLimit = defaultTimeLimit
	}

	// Exactly one blocking oracle call per request: no retries, no re-solves.
	outcome, err := rosterer.solver.Solve(model, cp.Params{
		TimeLimit: timeLimit,
		Workers:   request.Workers,
		LogSearch: request.LogSearch,
	})
	if err != nil {
		return SolveResult{}, err
	}

	result := SolveResult{
		Stats: SolverStats{
			Status:    outcome.Status.String(),
			Objective: outcome.Stats.Objective,
			WallTime:  outcome.Stats.WallTime,
			Branches:  outcome.Stats.Branches,
			Conflicts: outcome.Stats.Conflicts,
		},
	}

	if outcome.Status != cp.StatusOptimal && outcome.Status != cp.StatusFeasible {
		return result, nil
	}

	schedule := builder.decode(outcome.Solution)
	objective := outcome.Stats.Objective

	result.Feasible = true
	result.Schedule = &schedule
	result.Objective = &objective
	result.Violations = ValidateSchedule(schedule, request.Demand, request.Config)
	return result, nil
}

// modelBuilder turns one request into decision variables, hard constraints
// and objective terms. Construction is single-threaded and side-effect-free.
type modelBuilder struct {
	request  Request
	indexer  Indexer
	nightIdx int // position of ShiftNight in the shift set, -1 when absent
}

func newModelBuilder(request Request) *modelBuilder {
	return &modelBuilder{
		request:  request,
		indexer:  NewIndexer(request.Nurses, request.Days, len(request.Config.Shifts)),
		nightIdx: request.Config.shiftPosition(ShiftNight),
	}
}

// build declares variables, asserts the hard rules, then composes the
// objective. Hard constraints never reference soft-preference terms.
func (b *modelBuilder) build() cp.Model {
	model := cp.Model{Variables: b.indexer.Variables()}

	model.Constraints = append(model.Constraints, b.workChannelConstraints()...)
	model.Constraints = append(model.Constraints, b.singleAssignmentConstraints()...)
	model.Constraints = append(model.Constraints, b.coverageConstraints()...)
	model.Constraints = append(model.Constraints, b.minDaysOffConstraints()...)
	model.Constraints = append(model.Constraints, b.consecutiveWorkConstraints()...)
	model.Constraints = append(model.Constraints, b.restAfterNightConstraints()...)
	model.Constraints = append(model.Constraints, b.nightCapConstraints()...)

	model.Objective = b.objective()
	return model
}

// decode reads a concrete assignment back into a schedule grid, OFF by
// default. At most one shift literal per cell is true by construction.
func (b *modelBuilder) decode(solution cp.Solution) Schedule {
	grid := make([][]Shift, b.request.Nurses)
	for nurse := range grid {
		grid[nurse] = make([]Shift, b.request.Days)
		for day := range grid[nurse] {
			grid[nurse][day] = ShiftOff
			for s, shift := range b.request.Config.Shifts {
				if solution[b.indexer.Index(nurse, day, s)] {
					grid[nurse][day] = shift
					break
				}
			}
		}
	}

	schedule, _ := NewSchedule(grid) // the grid is rectangular by construction
	return schedule
}

func (b *modelBuilder) shiftVars(nurse, day int) []int {
	vars := make([]int, len(b.request.Config.Shifts))
	for s := range b.request.Config.Shifts {
		vars[s] = b.indexer.Index(nurse, day, s)
	}
	return vars
}
