package formula

import "fmt"

type Kind int

const (
	CourseKind Kind = iota
	TrackKind
	RequirementKind
)

func (kind Kind) String() string {
	switch kind {
	case CourseKind:
		return "course"
	case TrackKind:
		return "track"
	case RequirementKind:
		return "requirement"
	}
	return fmt.Sprintf("kind(%d)", int(kind))
}

// Variable identifies a boolean variable of a formula. It is a comparable value so it can key maps directly;
// the meaning of each field depends on Kind:
//   - CourseKind: Name is the course code
//   - TrackKind: Scope is the major, Name the track and Index the track's position inside the major
//   - RequirementKind: Index is the synthetic requirement id
type Variable struct {
	Kind  Kind
	Scope string
	Name  string
	Index int
}

func CourseVariable(code string) Variable {
	return Variable{Kind: CourseKind, Name: code}
}

func TrackVariable(major string, index int, track string) Variable {
	return Variable{Kind: TrackKind, Scope: major, Name: track, Index: index}
}

func RequirementVariable(id int) Variable {
	return Variable{Kind: RequirementKind, Index: id}
}

// IsCourse reports whether the variable denotes a real course (i.e. belongs to the search space)
func (variable Variable) IsCourse() bool {
	return variable.Kind == CourseKind
}

func (variable Variable) String() string {
	switch variable.Kind {
	case CourseKind:
		return variable.Name
	case TrackKind:
		return fmt.Sprintf("track[%v#%d:%v]", variable.Scope, variable.Index, variable.Name)
	case RequirementKind:
		return fmt.Sprintf("requirement[%d]", variable.Index)
	}
	return fmt.Sprintf("%v[%v/%v/%d]", variable.Kind, variable.Scope, variable.Name, variable.Index)
}
