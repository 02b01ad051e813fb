package planner

import (
	"fmt"

	"github.com/limaJavier/gradplan/pkg/formula"
	"github.com/limaJavier/gradplan/pkg/model"
	"github.com/samber/lo"
)

// CourseLookup resolves course codes against a fully materialized course graph
type CourseLookup interface {
	Lookup(code string) (model.Course, bool)
}

// Encoder translates majors into constraints over a formula. Synthetic requirement ids are drawn from a
// counter owned by the encoder, hence they are unique per encoder and not globally
type Encoder struct {
	formula      *formula.Formula
	courses      CourseLookup
	requirements int
}

func NewEncoder(f *formula.Formula, courses CourseLookup) *Encoder {
	return &Encoder{
		formula: f,
		courses: courses,
	}
}

// EncodeMajor asserts the requirements of the major. When the major offers tracks at least one of them must be
// chosen, and a chosen track implies every one of its requirements
func (encoder *Encoder) EncodeMajor(major model.Major) error {
	if len(major.Tracks) > 0 {
		tracks := lo.Map(major.Tracks, func(track model.Track, index int) formula.Variable {
			return formula.TrackVariable(major.Name, index, track.Name)
		})
		encoder.formula.AtLeastOne(tracks...)

		for i, track := range major.Tracks {
			for _, requirement := range track.Requirements {
				indicator, err := encoder.encodeRequirement(requirement, true)
				if err != nil {
					return fmt.Errorf("major \"%v\", track \"%v\": %w", major.Name, track.Name, err)
				}
				encoder.formula.Implies(tracks[i], indicator)
			}
		}
	}

	for _, requirement := range major.Requirements {
		if _, err := encoder.encodeRequirement(requirement, false); err != nil {
			return fmt.Errorf("major \"%v\": %w", major.Name, err)
		}
	}
	return nil
}

// encodeRequirement asserts that at least Count of the eligible courses are taken. With asSubVariable the
// threshold is reified into a fresh requirement variable (returned) instead of being asserted directly
func (encoder *Encoder) encodeRequirement(requirement model.Requirement, asSubVariable bool) (formula.Variable, error) {
	codes := lo.Uniq(requirement.Courses)
	for _, code := range codes {
		if _, ok := encoder.courses.Lookup(code); !ok {
			return formula.Variable{}, fmt.Errorf("%w: course \"%v\" in requirement \"%v\"", ErrUnresolvedReference, code, requirement.Name)
		}
	}
	eligible := lo.Map(codes, func(code string, _ int) formula.Variable { return formula.CourseVariable(code) })

	var indicator formula.Variable
	if asSubVariable {
		indicator = formula.RequirementVariable(encoder.requirements)
		encoder.requirements++
		encoder.formula.EquivAtLeast(indicator, eligible, requirement.Count)
	} else {
		encoder.formula.AtLeast(eligible, requirement.Count)
	}

	if err := encoder.encodePrereqs(codes, make(map[string]bool)); err != nil {
		return formula.Variable{}, err
	}
	return indicator, nil
}

// encodePrereqs asserts course => OR(group) for every prerequisite group reachable from the codes.
// Cyclic data terminates because every course is expanded once per processed set
func (encoder *Encoder) encodePrereqs(codes []string, processed map[string]bool) error {
	for _, code := range codes {
		if processed[code] {
			continue
		}
		processed[code] = true

		course, ok := encoder.courses.Lookup(code)
		if !ok {
			return fmt.Errorf("%w: course \"%v\"", ErrUnresolvedReference, code)
		}

		for _, group := range course.Prereqs {
			options := lo.Uniq(group.Courses)
			if len(options) == 0 {
				continue
			}
			for _, option := range options {
				if _, ok := encoder.courses.Lookup(option); !ok {
					return fmt.Errorf("%w: course \"%v\" as prerequisite of \"%v\"", ErrUnresolvedReference, option, code)
				}
			}

			encoder.formula.Implies(
				formula.CourseVariable(code),
				lo.Map(options, func(option string, _ int) formula.Variable { return formula.CourseVariable(option) })...,
			)

			if err := encoder.encodePrereqs(options, processed); err != nil {
				return err
			}
		}
	}
	return nil
}
