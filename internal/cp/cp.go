package cp

import (
	"fmt"
	"time"
)

// Term is a single coefficient*variable product over a boolean variable.
type Term struct {
	Var  int
	Coef int64
}

// LinearConstraint asserts Lo <= sum(Coef_i * x_i) <= Hi over boolean variables.
type LinearConstraint struct {
	Terms []Term
	Lo    int64
	Hi    int64
}

// Vars builds unit-coefficient terms for the given variables.
func Vars(vars ...int) []Term {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{Var: v, Coef: 1}
	}
	return terms
}

func AtMost(terms []Term, hi int64) LinearConstraint {
	return LinearConstraint{Terms: terms, Lo: minSum(terms), Hi: hi}
}

func AtLeast(terms []Term, lo int64) LinearConstraint {
	return LinearConstraint{Terms: terms, Lo: lo, Hi: maxSum(terms)}
}

func Exactly(terms []Term, value int64) LinearConstraint {
	return LinearConstraint{Terms: terms, Lo: value, Hi: value}
}

// SpreadTerm contributes Weight * (max group sum - min group sum) to the
// objective. Group sums are counts of true variables per group.
type SpreadTerm struct {
	Groups [][]int
	Weight int64
}

// Objective is the scalar expression to minimize: Offset plus the linear
// terms plus the spread terms.
type Objective struct {
	Offset  int64
	Terms   []Term
	Spreads []SpreadTerm
}

// Evaluate computes the objective value of a complete assignment.
func (o Objective) Evaluate(solution Solution) int64 {
	value := o.Offset
	for _, term := range o.Terms {
		if solution[term.Var] {
			value += term.Coef
		}
	}
	for _, spread := range o.Spreads {
		value += spread.Weight * spreadOf(spread.Groups, solution)
	}
	return value
}

func spreadOf(groups [][]int, solution Solution) int64 {
	if len(groups) == 0 {
		return 0
	}
	var max, min int64
	for i, group := range groups {
		var sum int64
		for _, v := range group {
			if solution[v] {
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

// Model is a complete solver instance: boolean variables 0..Variables-1,
// conjunctive linear constraints and an objective to minimize.
type Model struct {
	Variables   int
	Constraints []LinearConstraint
	Objective   Objective
}

func (m Model) validate() error {
	check := func(terms []Term) error {
		for _, term := range terms {
			if term.Var < 0 || term.Var >= m.Variables {
				return fmt.Errorf("variable %d out of range [0, %d)", term.Var, m.Variables)
			}
		}
		return nil
	}

	for _, constraint := range m.Constraints {
		if err := check(constraint.Terms); err != nil {
			return err
		}
		if constraint.Lo > constraint.Hi {
			return fmt.Errorf("constraint bounds inverted: [%d, %d]", constraint.Lo, constraint.Hi)
		}
	}
	if err := check(m.Objective.Terms); err != nil {
		return err
	}
	for _, spread := range m.Objective.Spreads {
		if spread.Weight < 0 {
			return fmt.Errorf("spread weight must be non-negative: %d", spread.Weight)
		}
		for _, group := range spread.Groups {
			if err := check(Vars(group...)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Solution holds a concrete 0/1 value for every model variable.
type Solution []bool

type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Params bounds a single solve call. Workers is a parallelism hint only.
type Params struct {
	TimeLimit time.Duration
	Workers   int
	LogSearch bool
}

type Stats struct {
	Status    Status
	Objective int64
	WallTime  time.Duration
	Branches  int64
	Conflicts int64
}

// Outcome carries the solver verdict. Solution is nil unless Status is
// StatusOptimal or StatusFeasible.
type Outcome struct {
	Status   Status
	Solution Solution
	Stats    Stats
}

func minSum(terms []Term) int64 {
	var sum int64
	for _, term := range terms {
		if term.Coef < 0 {
			sum += term.Coef
		}
	}
	return sum
}

func maxSum(terms []Term) int64 {
	var sum int64
	for _, term := range terms {
		if term.Coef > 0 {
			sum += term.Coef
		}
	}
	return sum
}
