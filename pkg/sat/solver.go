package sat

type SATSolver interface {
	// Returns a solution of the SAT instance if satisfiable, else returns nil (these are valid outputs where error shall be nil)
	Solve(SAT) (SATSolution, error)

	// Returns a solution of the SAT instance minimizing the number of true variables among objective, else returns nil if the instance is not satisfiable
	Minimize(sat SAT, objective []int64) (SATSolution, error)
}
