package sat

import "math/rand"

// GenerateSATInstance builds a random instance mixing plain clauses and cardinality constraints
func GenerateSATInstance(variables uint64, constraints int) SAT {
	satInstance := SAT{
		Variables:   variables,
		Constraints: make([]Constraint, constraints),
	}

	for i := 0; i < constraints; i++ {
		literals := make([]int64, 0, variables)
		for j := uint64(0); j < variables; j++ {
			if rand.Float32() < 0.5 {
				var sign int64 = 1
				if rand.Float32() < 0.5 {
					sign = -1
				}
				literals = append(literals, sign*(1+int64(j)))
			}
		}

		if len(literals) == 0 {
			var sign int64 = 1
			if rand.Float32() < 0.5 {
				sign = -1
			}
			literals = append(literals, sign*(1+rand.Int63n(int64(variables))))
		}

		atLeast := int64(1)
		if rand.Float32() < 0.3 {
			atLeast = 1 + rand.Int63n(int64(len(literals)))
		}
		satInstance.Constraints[i] = AtLeast(literals, atLeast)
	}

	return satInstance
}

func AssertSATSolution(satInstance SAT, satSolution SATSolution) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int64]bool)
	for _, literal := range satSolution {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	assignment := make(map[int64]bool, len(satSolution))
	for _, literal := range satSolution {
		if literal > 0 {
			assignment[literal] = true
		}
	}

	// Check that all constraints are satisfied
	for _, constraint := range satInstance.Constraints {
		if !constraint.Satisfied(assignment) {
			return false
		}
	}

	return true
}
