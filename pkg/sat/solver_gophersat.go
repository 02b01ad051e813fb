package sat

import (
	"fmt"

	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

// gophersatSolver runs the pure-Go gophersat engine in-process, so no external executable is needed
type gophersatSolver struct{}

func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (gs *gophersatSolver) Solve(sat SAT) (SATSolution, error) {
	if sat.Variables == 0 {
		return trivialSolution(sat), nil
	}

	problem, err := toProblem(sat)
	if err != nil {
		return nil, err
	}

	engine := solver.New(problem)
	if engine.Solve() != solver.Sat {
		return nil, nil
	}
	return checkedSolution(sat, toSolution(engine.Model(), sat.Variables))
}

func (gs *gophersatSolver) Minimize(sat SAT, objective []int64) (SATSolution, error) {
	if sat.Variables == 0 {
		return trivialSolution(sat), nil
	}

	problem, err := toProblem(sat)
	if err != nil {
		return nil, err
	} else if problem.Status == solver.Unsat { // Detected while parsing, there is nothing to optimize
		return nil, nil
	}

	if len(objective) > 0 {
		lits := make([]solver.Lit, 0, len(objective))
		for _, variable := range objective {
			if variable <= 0 || uint64(variable) > sat.Variables {
				return nil, fmt.Errorf("objective variable %d is out of range [1, %d]", variable, sat.Variables)
			}
			lits = append(lits, solver.IntToLit(int32(variable)))
		}
		// gophersat sorts the cost literals along their weights, so unit weights must be explicit
		problem.SetCostFunc(lits, lo.Times(len(lits), func(_ int) int { return 1 }))
	}

	engine := solver.New(problem)
	if cost := engine.Minimize(); cost < 0 {
		return nil, nil
	}
	return checkedSolution(sat, toSolution(engine.Model(), sat.Variables))
}

// toProblem translates the instance into gophersat's PB representation
func toProblem(sat SAT) (*solver.Problem, error) {
	constrs := make([]solver.PBConstr, 0, len(sat.Constraints)+1)
	greatest := int64(0)
	for _, constraint := range sat.Constraints {
		lits := make([]int, len(constraint.Literals))
		for i, literal := range constraint.Literals {
			variable := max(literal, -literal)
			if literal == 0 || uint64(variable) > sat.Variables {
				return nil, fmt.Errorf("literal %d is out of range [1, %d]", literal, sat.Variables)
			}
			greatest = max(greatest, variable)
			lits[i] = int(literal)
		}

		var weights []int
		if constraint.Weights != nil {
			weights = lo.Map(constraint.Weights, func(weight int64, _ int) int { return int(weight) })
		}
		constrs = append(constrs, solver.PBConstr{Lits: lits, Weights: weights, AtLeast: int(constraint.AtLeast)})
	}

	// gophersat sizes its problem after the greatest variable it meets; a tautology on the last variable keeps
	// variables that only appear in the objective (or nowhere) addressable
	if uint64(greatest) < sat.Variables {
		last := int(sat.Variables)
		constrs = append(constrs, solver.PropClause(last, -last))
	}

	return solver.ParsePBConstrs(constrs), nil
}

func toSolution(model []bool, variables uint64) SATSolution {
	solution := make(SATSolution, 0, variables)
	for variable := int64(1); variable <= int64(variables); variable++ {
		if int(variable) <= len(model) && model[variable-1] {
			solution = append(solution, variable)
		} else {
			solution = append(solution, -variable)
		}
	}
	return solution
}

// checkedSolution rejects a model violating some constraint of the instance
func checkedSolution(sat SAT, solution SATSolution) (SATSolution, error) {
	assignment := lo.SliceToMap(solution, func(literal int64) (int64, bool) { return max(literal, -literal), literal > 0 })
	for i, constraint := range sat.Constraints {
		if !constraint.Satisfied(assignment) {
			return nil, fmt.Errorf("gophersat returned a model violating constraint %d: %v >= %d", i, constraint.Literals, constraint.AtLeast)
		}
	}
	return solution, nil
}

// trivialSolution answers instances without variables: satisfiable unless some constraint demands a positive sum
func trivialSolution(sat SAT) SATSolution {
	if lo.SomeBy(sat.Constraints, func(constraint Constraint) bool { return constraint.AtLeast > 0 }) {
		return nil
	}
	return SATSolution{}
}
