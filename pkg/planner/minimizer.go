package planner

import (
	"fmt"

	"github.com/limaJavier/gradplan/pkg/formula"
	"github.com/limaJavier/gradplan/pkg/model"
	"github.com/limaJavier/gradplan/pkg/sat"
)

// Selection is a minimum cardinality course set together with the size of the instance it was drawn from
type Selection struct {
	Courses     []string
	Variables   uint64
	Constraints int
	Cost        int
}

type Minimizer struct {
	solver  sat.SATSolver
	courses CourseLookup
}

func NewMinimizer(solver sat.SATSolver, courses CourseLookup) *Minimizer {
	return &Minimizer{
		solver:  solver,
		courses: courses,
	}
}

// Encode builds the formula of the majors with every completed course of the search space forced true.
// Completed courses that no requirement reaches are ignored
func (minimizer *Minimizer) Encode(majors []model.Major, completed []string) (*formula.Formula, error) {
	f := formula.New()
	encoder := NewEncoder(f, minimizer.courses)
	for _, major := range majors {
		if err := encoder.EncodeMajor(major); err != nil {
			return nil, err
		}
	}

	for _, code := range completed {
		variable := formula.CourseVariable(code)
		if _, ok := f.Table().Lookup(variable); ok {
			f.Require(variable)
		}
	}
	return f, nil
}

// FindMinimalCourses returns the smallest set of courses satisfying every major, in variable allocation order
func (minimizer *Minimizer) FindMinimalCourses(majors []model.Major, completed []string) (Selection, error) {
	f, err := minimizer.Encode(majors, completed)
	if err != nil {
		return Selection{}, err
	}

	instance := f.Instance()
	searchSpace := f.Table().SearchSpace()

	//** Check satisfiability before optimizing
	solution, err := minimizer.solver.Solve(instance)
	if err != nil {
		return Selection{}, fmt.Errorf("cannot solve instance: %w", err)
	} else if solution == nil {
		return Selection{}, ErrUnsatisfiable
	}

	//** Minimize the number of courses taken
	solution, err = minimizer.solver.Minimize(instance, searchSpace)
	if err != nil {
		return Selection{}, fmt.Errorf("cannot minimize instance: %w", err)
	} else if solution == nil {
		return Selection{}, ErrUnsatisfiable
	}

	courses := make([]string, 0)
	for _, handle := range searchSpace {
		if int(handle) > len(solution) || solution[handle-1] <= 0 {
			continue
		}
		variable, _ := f.Table().Variable(handle)
		courses = append(courses, variable.Name)
	}

	return Selection{
		Courses:     courses,
		Variables:   instance.Variables,
		Constraints: len(instance.Constraints),
		Cost:        len(courses),
	}, nil
}
