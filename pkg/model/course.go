package model

// Course is a catalog entry. Prerequisite groups are joined by AND, the courses inside a group by OR
type Course struct {
	Code    string
	Name    string
	Credits int
	Prereqs []PrereqGroup
}

type PrereqGroup struct {
	Courses []string
}

// Requirement is satisfied when at least Count of its eligible courses are taken
type Requirement struct {
	Name    string
	Courses []string
	Count   int
}

// Track is a named bundle of requirements; a major with tracks demands that one of them is completed
type Track struct {
	Name         string
	College      string
	Requirements []Requirement
}

type Major struct {
	Name         string
	College      string
	Tracks       []Track
	Requirements []Requirement // Always mandatory, whatever the track
}
