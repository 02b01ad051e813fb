package model

import (
	"context"
	"fmt"
)

// Catalog is an in-memory arena of courses and majors addressed by code and name. It serves both repositories
// and, being fully materialized, the synchronous lookups of the planning core. A Catalog is never mutated
// after construction
type Catalog struct {
	courses     []Course
	majors      []Major
	courseIndex map[string]int
	majorIndex  map[string]int
}

func NewCatalog(courses []Course, majors []Major) (*Catalog, error) {
	catalog := &Catalog{
		courses:     make([]Course, 0, len(courses)),
		majors:      make([]Major, 0, len(majors)),
		courseIndex: make(map[string]int, len(courses)),
		majorIndex:  make(map[string]int, len(majors)),
	}

	for _, course := range courses {
		if _, ok := catalog.courseIndex[course.Code]; ok {
			return nil, fmt.Errorf("duplicate course code \"%v\"", course.Code)
		}
		catalog.courseIndex[course.Code] = len(catalog.courses)
		catalog.courses = append(catalog.courses, course)
	}

	for _, major := range majors {
		if _, ok := catalog.majorIndex[major.Name]; ok {
			return nil, fmt.Errorf("duplicate major name \"%v\"", major.Name)
		}
		catalog.majorIndex[major.Name] = len(catalog.majors)
		catalog.majors = append(catalog.majors, major)
	}

	return catalog, nil
}

func (catalog *Catalog) Lookup(code string) (Course, bool) {
	index, ok := catalog.courseIndex[code]
	if !ok {
		return Course{}, false
	}
	return catalog.courses[index], true
}

func (catalog *Catalog) Major(name string) (Major, bool) {
	index, ok := catalog.majorIndex[name]
	if !ok {
		return Major{}, false
	}
	return catalog.majors[index], true
}

func (catalog *Catalog) Courses() []Course {
	return catalog.courses
}

func (catalog *Catalog) Majors() []Major {
	return catalog.majors
}

func (catalog *Catalog) FindByCourseCode(ctx context.Context, code string) (Course, error) {
	if err := ctx.Err(); err != nil {
		return Course{}, err
	}
	course, ok := catalog.Lookup(code)
	if !ok {
		return Course{}, fmt.Errorf("course \"%v\": %w", code, ErrNotFound)
	}
	return course, nil
}

func (catalog *Catalog) FindByName(ctx context.Context, name string) (Major, error) {
	if err := ctx.Err(); err != nil {
		return Major{}, err
	}
	major, ok := catalog.Major(name)
	if !ok {
		return Major{}, fmt.Errorf("major \"%v\": %w", name, ErrNotFound)
	}
	return major, nil
}
