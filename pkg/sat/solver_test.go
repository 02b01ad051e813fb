package sat

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/crillab/gophersat/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGophersat(t *testing.T) {
	gs := NewGophersatSolver()
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, gs)
	})
	t.Run("Minimization", func(t *testing.T) {
		minimizationExecution(t, gs)
	})
}

func TestGophersatEdgeCases(t *testing.T) {
	gs := NewGophersatSolver()

	t.Run("Empty instance is satisfiable", func(t *testing.T) {
		solution, err := gs.Solve(SAT{})
		assert.Nil(t, err)
		assert.NotNil(t, solution)
		assert.Empty(t, solution)
	})

	t.Run("Empty instance with positive demand is unsatisfiable", func(t *testing.T) {
		solution, err := gs.Solve(SAT{Constraints: []Constraint{AtLeast(nil, 1)}})
		assert.Nil(t, err)
		assert.Nil(t, solution)
	})

	t.Run("Contradiction", func(t *testing.T) {
		instance := SAT{Variables: 1, Constraints: []Constraint{Clause(1), Clause(-1)}}
		solution, err := gs.Solve(instance)
		assert.Nil(t, err)
		assert.Nil(t, solution)

		solution, err = gs.Minimize(instance, []int64{1})
		assert.Nil(t, err)
		assert.Nil(t, solution)
	})

	t.Run("Variables outside every constraint are reported false after minimization", func(t *testing.T) {
		instance := SAT{Variables: 3, Constraints: []Constraint{Clause(1)}}
		solution, err := gs.Minimize(instance, []int64{1, 2, 3})
		assert.Nil(t, err)
		assert.Equal(t, SATSolution{1, -2, -3}, solution)
	})

	t.Run("Out of range literal", func(t *testing.T) {
		_, err := gs.Solve(SAT{Variables: 1, Constraints: []Constraint{Clause(2)}})
		assert.Error(t, err)
	})

	t.Run("Minimization over several variables", func(t *testing.T) {
		instance := SAT{Variables: 2, Constraints: []Constraint{Clause(1, 2)}}
		var solution SATSolution
		var err error
		require.NotPanics(t, func() { solution, err = gs.Minimize(instance, []int64{1, 2}) })
		require.Nil(t, err)
		require.NotNil(t, solution)
		assert.Equal(t, 1, countTrue(solution))
	})

	t.Run("Cardinality", func(t *testing.T) {
		instance := SAT{Variables: 4, Constraints: []Constraint{AtLeast([]int64{1, 2, 3, 4}, 2)}}
		solution, err := gs.Minimize(instance, []int64{1, 2, 3, 4})
		require.Nil(t, err)
		require.NotNil(t, solution)
		assert.Equal(t, 2, countTrue(solution))
	})
}

func TestToOPBRoundTrip(t *testing.T) {
	gs := NewGophersatSolver()

	for n := 0; n < 20; n++ {
		//** Arrange
		variables := uint64(rand.Intn(8) + 1)
		instance := GenerateSATInstance(variables, rand.Intn(12)+1)
		objective := allVariables(variables)

		//** Act
		opb := instance.ToOPB(objective)
		_, err := solver.ParseOPB(strings.NewReader(opb))
		solution, solveErr := gs.Minimize(instance, objective)
		expected := bruteForceMinimum(instance, objective)

		//** Assert
		require.Nil(t, err, opb) // The rendering is valid OPB
		require.Nil(t, solveErr)
		if expected == nil {
			assert.Nil(t, solution, opb)
			continue
		}
		require.NotNil(t, solution, opb)
		assert.Equal(t, *expected, countTrue(solution), opb)
	}
}

func TestOPBFormat(t *testing.T) {
	instance := SAT{Variables: 3, Constraints: []Constraint{
		Clause(1, -2),
		{Literals: []int64{-1, 3}, Weights: []int64{2, 1}, AtLeast: 2},
	}}

	assert.Equal(t, "* #variable= 3 #constraint= 2\n"+
		"min: +1 x1 +1 x2 +1 x3 ;\n"+
		"+1 x1 -1 x2 >= 0 ;\n"+
		"-2 x1 +1 x3 >= 0 ;\n", instance.ToOPB([]int64{1, 2, 3}))
}

func TestCheckedSolution(t *testing.T) {
	instance := SAT{Variables: 4, Constraints: []Constraint{AtLeast([]int64{1, 2, 3, 4}, 1)}}

	_, err := checkedSolution(instance, SATSolution{-1, -2, -3, -4})
	assert.Error(t, err)

	solution, err := checkedSolution(instance, SATSolution{-1, -2, 3, -4})
	assert.Nil(t, err)
	assert.Equal(t, SATSolution{-1, -2, 3, -4}, solution)
}

func TestParseSolution(t *testing.T) {
	output := "c comment\no 2\ns OPTIMUM FOUND\nv x1 -x2 x3\nv -x4\n"

	assert.Equal(t, "OPTIMUM FOUND", parseStatus(output))

	solution, err := parseSolution(output, 5)
	assert.Nil(t, err)
	assert.Equal(t, SATSolution{1, -2, 3, -4, -5}, solution)

	solution, err = parseSolution("s SATISFIABLE\nv 1 -2 0\n", 2)
	assert.Nil(t, err)
	assert.Equal(t, SATSolution{1, -2}, solution)

	_, err = parseSolution("v x1 -xy\n", 2)
	assert.Error(t, err)

	assert.Equal(t, "", parseStatus("c nothing\n"))
}

func TestExternalSolverFromConfig(t *testing.T) {
	_, err := NewExternalSolverFromConfig(map[string]any{"path": "roundingsat", "args": []any{"--verbosity=0"}})
	assert.Nil(t, err)

	_, err = NewExternalSolverFromConfig(map[string]any{"args": []any{"-q"}})
	assert.Error(t, err)
}

func randomExecution(t *testing.T, solver SATSolver) {
	unsatisfiableCount := 0
	for n := 0; n < 30; n++ {
		//** Arrange
		variables := uint64(rand.Intn(10) + 1)
		instance := GenerateSATInstance(variables, rand.Intn(20)+1)

		//** Act
		solution, err := solver.Solve(instance)

		//** Assert
		assert.Nil(t, err)
		if solution == nil {
			unsatisfiableCount++
			assert.Nil(t, bruteForceMinimum(instance, nil), "solver reported unsatisfiable on a satisfiable instance")
			continue
		}
		assert.True(t, AssertSATSolution(instance, solution))
	}
	t.Logf("Unsatisfiable instances: %v", unsatisfiableCount)
}

func minimizationExecution(t *testing.T, solver SATSolver) {
	for n := 0; n < 30; n++ {
		//** Arrange
		variables := uint64(rand.Intn(10) + 1)
		instance := GenerateSATInstance(variables, rand.Intn(15)+1)
		objective := allVariables(variables)

		//** Act
		solution, err := solver.Minimize(instance, objective)
		expected := bruteForceMinimum(instance, objective)

		//** Assert
		assert.Nil(t, err)
		if expected == nil {
			assert.Nil(t, solution)
			continue
		}
		require.NotNil(t, solution)
		assert.True(t, AssertSATSolution(instance, solution))
		assert.Equal(t, *expected, countTrue(solution))
	}
}

// bruteForceMinimum enumerates every assignment and returns the smallest number of true variables among
// objective over the satisfying ones, or nil if there is none
func bruteForceMinimum(instance SAT, objective []int64) *int {
	var best *int
	for mask := uint64(0); mask < uint64(1)<<instance.Variables; mask++ {
		assignment := make(map[int64]bool, instance.Variables)
		for variable := uint64(0); variable < instance.Variables; variable++ {
			assignment[int64(variable)+1] = mask&(1<<variable) != 0
		}

		satisfied := true
		for _, constraint := range instance.Constraints {
			if !constraint.Satisfied(assignment) {
				satisfied = false
				break
			}
		}
		if !satisfied {
			continue
		}

		cost := 0
		for _, variable := range objective {
			if assignment[variable] {
				cost++
			}
		}
		if best == nil || cost < *best {
			best = &cost
		}
	}
	return best
}

func allVariables(variables uint64) []int64 {
	objective := make([]int64, variables)
	for i := range objective {
		objective[i] = int64(i) + 1
	}
	return objective
}

func countTrue(solution SATSolution) int {
	count := 0
	for _, literal := range solution {
		if literal > 0 {
			count++
		}
	}
	return count
}
