package formula

type tableImplementation struct {
	handles   map[Variable]int64
	variables []Variable // variables[h-1] is the variable behind handle h
}

func (table *tableImplementation) Handle(variable Variable) int64 {
	if handle, ok := table.handles[variable]; ok {
		return handle
	}
	table.variables = append(table.variables, variable)
	handle := int64(len(table.variables))
	table.handles[variable] = handle
	return handle
}

func (table *tableImplementation) Lookup(variable Variable) (int64, bool) {
	handle, ok := table.handles[variable]
	return handle, ok
}

func (table *tableImplementation) Variable(handle int64) (Variable, bool) {
	if handle <= 0 || handle > int64(len(table.variables)) {
		return Variable{}, false
	}
	return table.variables[handle-1], true
}

func (table *tableImplementation) Len() uint64 {
	return uint64(len(table.variables))
}

func (table *tableImplementation) SearchSpace() []int64 {
	handles := make([]int64, 0, len(table.variables))
	for i, variable := range table.variables {
		if variable.IsCourse() {
			handles = append(handles, int64(i)+1)
		}
	}
	return handles
}
