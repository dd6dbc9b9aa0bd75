package cp

import "math/rand/v2"

// GenerateModel builds a random model with unit-coefficient cardinality
// constraints over the given number of variables. Some generated models are
// infeasible, which is a valid fixture.
func GenerateModel(variables, constraints int) Model {
	model := Model{
		Variables:   variables,
		Constraints: make([]LinearConstraint, 0, constraints),
	}

	for range constraints {
		vars := make([]int, 0, variables)
		for v := range variables {
			if rand.Float32() < 0.5 {
				vars = append(vars, v)
			}
		}
		if len(vars) == 0 {
			vars = append(vars, rand.IntN(variables))
		}

		lo := int64(rand.IntN(len(vars) + 1))
		hi := lo + int64(rand.IntN(len(vars)+1-int(lo)))
		model.Constraints = append(model.Constraints, LinearConstraint{
			Terms: Vars(vars...),
			Lo:    lo,
			Hi:    hi,
		})
	}

	return model
}

// AssertSolution checks that a complete assignment satisfies every constraint
// of the model.
func AssertSolution(model Model, solution Solution) bool {
	if len(solution) != model.Variables {
		return false
	}

	for _, constraint := range model.Constraints {
		var sum int64
		for _, term := range constraint.Terms {
			if solution[term.Var] {
				sum += term.Coef
			}
		}
		if sum < constraint.Lo || sum > constraint.Hi {
			return false
		}
	}

	return true
}
