package sat

import (
	"fmt"
	"strings"
)

// SATSolution holds one signed literal per variable of the instance: v if the variable is true, -v otherwise
type SATSolution []int64

// Constraint is a pseudo-boolean constraint: the weighted sum of the true literals must be at least AtLeast.
// A nil Weights slice stands for a weight of 1 on every literal, which makes Constraint a cardinality constraint
// (or a plain clause when AtLeast is 1)
type Constraint struct {
	Literals []int64
	Weights  []int64
	AtLeast  int64
}

// Clause returns a constraint satisfied when at least one of the literals is true
func Clause(literals ...int64) Constraint {
	return Constraint{Literals: literals, AtLeast: 1}
}

// AtLeast returns a constraint satisfied when at least n of the literals are true
func AtLeast(literals []int64, n int64) Constraint {
	return Constraint{Literals: literals, AtLeast: n}
}

func (constraint Constraint) weight(i int) int64 {
	if constraint.Weights == nil {
		return 1
	}
	return constraint.Weights[i]
}

// Satisfied checks whether the constraint holds under the given assignment (indexed by variable)
func (constraint Constraint) Satisfied(assignment map[int64]bool) bool {
	var sum int64
	for i, literal := range constraint.Literals {
		if literal > 0 && assignment[literal] || literal < 0 && !assignment[-literal] {
			sum += constraint.weight(i)
		}
	}
	return sum >= constraint.AtLeast
}

type SAT struct {
	Variables   uint64
	Constraints []Constraint
}

// ToOPB renders the instance in the OPB format of the pseudo-boolean competitions.
// Negative literals are normalized away (w*~x == w - w*x) so only linear terms are emitted.
// When objective is not empty a "min:" line with a weight of 1 per variable is emitted first
func (s SAT) ToOPB(objective []int64) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "* #variable= %d #constraint= %d\n", s.Variables, len(s.Constraints))

	if len(objective) > 0 {
		builder.WriteString("min:")
		for _, variable := range objective {
			fmt.Fprintf(&builder, " +1 x%d", variable)
		}
		builder.WriteString(" ;\n")
	}

	for _, constraint := range s.Constraints {
		degree := constraint.AtLeast
		for i, literal := range constraint.Literals {
			weight := constraint.weight(i)
			if literal < 0 {
				fmt.Fprintf(&builder, "%+d x%d ", -weight, -literal)
				degree -= weight
			} else {
				fmt.Fprintf(&builder, "%+d x%d ", weight, literal)
			}
		}
		fmt.Fprintf(&builder, ">= %d ;\n", degree)
	}
	return builder.String()
}
