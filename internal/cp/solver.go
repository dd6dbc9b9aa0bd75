package cp

// Solver minimizes a model's objective subject to its constraints within the
// given time budget. Returns the best assignment found (if any) along with a
// proof status; determinism across runs is not guaranteed.
type Solver interface {
	Solve(model Model, params Params) (Outcome, error)
}

func NewSolver() Solver {
	return NewBacktrackingSolver()
}
