package model

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type CourseRepository interface {
	// Returns ErrNotFound (possibly wrapped) if there is no course with such code
	FindByCourseCode(ctx context.Context, code string) (Course, error)
}

type MajorRepository interface {
	// Returns ErrNotFound (possibly wrapped) if there is no major with such name
	FindByName(ctx context.Context, name string) (Major, error)
}
