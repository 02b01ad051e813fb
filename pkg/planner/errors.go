package planner

import "errors"

var (
	// Encoding errors
	ErrUnresolvedReference = errors.New("unresolved course reference")
	ErrUnsatisfiable       = errors.New("no valid plan exists")

	// Scheduling errors
	ErrCyclicPrerequisite = errors.New("cyclic prerequisite")
	ErrCreditDeadlock     = errors.New("credit deadlock")
	ErrInvalidSchedule    = errors.New("invalid schedule")
)
