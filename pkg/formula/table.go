package formula

// Table interface is design to give a unique handle (a positive solver variable) to every formula variable and vice versa
type Table interface {
	// Returns the handle of the variable, allocating a fresh one the first time the variable is met
	Handle(variable Variable) int64
	// Returns the handle of the variable if it was already allocated
	Lookup(variable Variable) (handle int64, ok bool)
	// Returns the variable behind a handle
	Variable(handle int64) (variable Variable, ok bool)
	// Returns the number of allocated handles
	Len() uint64
	// Returns the handles of every course variable in allocation order
	SearchSpace() []int64
}

func NewTable() Table {
	return &tableImplementation{
		handles: make(map[Variable]int64),
	}
}
