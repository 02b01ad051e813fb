package formula

import (
	"github.com/limaJavier/gradplan/pkg/sat"
	"github.com/samber/lo"
)

// Formula accumulates constraints over typed variables; Instance lowers them to a solver-agnostic SAT instance
type Formula struct {
	table       Table
	constraints []sat.Constraint
}

func New() *Formula {
	return &Formula{table: NewTable()}
}

func (formula *Formula) Table() Table {
	return formula.table
}

// Len returns the number of constraints asserted so far
func (formula *Formula) Len() int {
	return len(formula.constraints)
}

// Require asserts the variable as a fact
func (formula *Formula) Require(variable Variable) {
	formula.add(sat.Clause(formula.table.Handle(variable)))
}

// AtLeastOne asserts OR(variables)
func (formula *Formula) AtLeastOne(variables ...Variable) {
	formula.add(sat.Clause(formula.handles(variables)...))
}

// Implies asserts premise => OR(options); with no options the premise is forced false
func (formula *Formula) Implies(premise Variable, options ...Variable) {
	literals := append([]int64{-formula.table.Handle(premise)}, formula.handles(options)...)
	formula.add(sat.Clause(literals...))
}

// AtLeast asserts that at least n of the variables are true. n <= 0 asserts nothing
func (formula *Formula) AtLeast(variables []Variable, n int) {
	handles := formula.handles(variables)
	if n <= 0 {
		return
	}
	formula.add(sat.AtLeast(handles, int64(n)))
}

// EquivAtLeast binds indicator <=> (at least n of the variables are true)
func (formula *Formula) EquivAtLeast(indicator Variable, variables []Variable, n int) {
	handles := formula.handles(variables)
	reified := formula.table.Handle(indicator)
	k := int64(len(handles))
	atLeast := int64(n)

	//** indicator => sum >= n, i.e. n*~indicator + sum >= n
	if atLeast > 0 {
		formula.add(sat.Constraint{
			Literals: append([]int64{-reified}, handles...),
			Weights:  append([]int64{atLeast}, ones(len(handles))...),
			AtLeast:  atLeast,
		})
	}

	//** ~indicator => sum <= n-1, i.e. (k-n+1)*indicator + sum(~x) >= k-n+1
	slack := k - atLeast + 1
	if slack > 0 {
		formula.add(sat.Constraint{
			Literals: append([]int64{reified}, lo.Map(handles, func(handle int64, _ int) int64 { return -handle })...),
			Weights:  append([]int64{slack}, ones(len(handles))...),
			AtLeast:  slack,
		})
	} else {
		formula.add(sat.Clause(-reified)) // n > k: the threshold can never be reached
	}
}

// Instance lowers the formula into a SAT instance whose variables are the table handles
func (formula *Formula) Instance() sat.SAT {
	return sat.SAT{
		Variables:   formula.table.Len(),
		Constraints: formula.constraints,
	}
}

func (formula *Formula) handles(variables []Variable) []int64 {
	return lo.Map(variables, func(variable Variable, _ int) int64 { return formula.table.Handle(variable) })
}

func (formula *Formula) add(constraint sat.Constraint) {
	formula.constraints = append(formula.constraints, constraint)
}

func ones(n int) []int64 {
	return lo.Times(n, func(_ int) int64 { return 1 })
}
