package planner

import (
	"fmt"

	"github.com/limaJavier/gradplan/pkg/model"
	"github.com/samber/lo"
)

// Verify checks that the terms partition the courses (but the satisfied ones), that no term exceeds maxCredits
// and that every prerequisite group of a course is met by a satisfied course or by a strictly earlier term
func Verify(terms [][]string, courses []model.Course, maxCredits int, satisfied ...string) error {
	catalog := lo.SliceToMap(courses, func(course model.Course) (string, model.Course) { return course.Code, course })
	taken := lo.SliceToMap(satisfied, func(code string) (string, int) { return code, -1 })

	//** Partition and credit cap
	scheduled := make(map[string]int)
	for t, term := range terms {
		credits := 0
		for _, code := range term {
			course, ok := catalog[code]
			if !ok {
				return fmt.Errorf("%w: course \"%v\" is not part of the course set", ErrInvalidSchedule, code)
			} else if _, ok := taken[code]; ok {
				return fmt.Errorf("%w: course \"%v\" was already taken", ErrInvalidSchedule, code)
			} else if previous, ok := scheduled[code]; ok {
				return fmt.Errorf("%w: course \"%v\" is scheduled in terms %d and %d", ErrInvalidSchedule, code, previous, t)
			}
			scheduled[code] = t
			credits += course.Credits
		}
		if credits > maxCredits {
			return fmt.Errorf("%w: term %d has %d credits (max %d)", ErrInvalidSchedule, t, credits, maxCredits)
		}
	}

	for code := range catalog {
		_, isScheduled := scheduled[code]
		_, isTaken := taken[code]
		if !isScheduled && !isTaken {
			return fmt.Errorf("%w: course \"%v\" is never scheduled", ErrInvalidSchedule, code)
		}
	}

	//** Prerequisite ordering
	for code, t := range scheduled {
		for g, group := range catalog[code].Prereqs {
			if len(group.Courses) == 0 {
				continue
			}
			met := lo.SomeBy(group.Courses, func(option string) bool {
				if _, ok := taken[option]; ok {
					return true
				}
				previous, ok := scheduled[option]
				return ok && previous < t
			})
			if !met {
				return fmt.Errorf("%w: prerequisite group %d of course \"%v\" is not met before term %d", ErrInvalidSchedule, g, code, t)
			}
		}
	}
	return nil
}
