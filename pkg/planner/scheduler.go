package planner

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/limaJavier/gradplan/pkg/model"
	"github.com/samber/lo"
)

type courseState int

const (
	ineligible courseState = iota
	available
	completed
)

// unlock records that a course satisfies the group of a target course
type unlock struct {
	target int
	group  int
}

type schedulerOptions struct {
	satisfied []string
}

type SchedulerOption func(*schedulerOptions)

// WithSatisfied marks courses as taken before the first term. Groups containing them start satisfied and
// such courses are never emitted
func WithSatisfied(codes ...string) SchedulerOption {
	return func(options *schedulerOptions) {
		options.satisfied = append(options.satisfied, codes...)
	}
}

// Scheduler partitions a course set into terms so that every course comes after its prerequisite groups are
// satisfied and no term exceeds the credit cap. Courses are addressed by their index in the course set
type Scheduler struct {
	courses    []model.Course
	maxCredits int
	satisfied  map[string]bool

	groups  [][][]string // Distinct options of every non-empty prerequisite group
	unlocks [][]unlock
	depth   []int

	// Per-build state
	state      []courseState
	remaining  []int
	groupsDone [][]bool
}

func NewScheduler(courses []model.Course, maxCredits int, opts ...SchedulerOption) (*Scheduler, error) {
	options := schedulerOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	courses = lo.UniqBy(courses, func(course model.Course) string { return course.Code })
	scheduler := &Scheduler{
		courses:    courses,
		maxCredits: maxCredits,
		satisfied:  lo.SliceToMap(options.satisfied, func(code string) (string, bool) { return code, true }),
		groups:     make([][][]string, len(courses)),
		unlocks:    make([][]unlock, len(courses)),
	}

	index := make(map[string]int, len(courses))
	for i, course := range courses {
		index[course.Code] = i
	}

	//** Build the reverse unlock index; options outside the course set can never be scheduled and are not indexed
	for i, course := range courses {
		for _, group := range course.Prereqs {
			options := lo.Uniq(group.Courses)
			if len(options) == 0 {
				continue
			}
			g := len(scheduler.groups[i])
			scheduler.groups[i] = append(scheduler.groups[i], options)
			for _, option := range options {
				if j, ok := index[option]; ok {
					scheduler.unlocks[j] = append(scheduler.unlocks[j], unlock{target: i, group: g})
				}
			}
		}
	}

	if err := scheduler.computeDepths(); err != nil {
		return nil, err
	}
	return scheduler, nil
}

// computeDepths assigns every course the length of the longest chain of courses it unlocks
func (scheduler *Scheduler) computeDepths() error {
	const (
		unvisited = iota
		visiting
		visited
	)

	scheduler.depth = make([]int, len(scheduler.courses))
	marks := make([]int, len(scheduler.courses))

	var visit func(course int) error
	visit = func(course int) error {
		switch marks[course] {
		case visited:
			return nil
		case visiting:
			return fmt.Errorf("%w: course \"%v\" depends on itself", ErrCyclicPrerequisite, scheduler.courses[course].Code)
		}

		marks[course] = visiting
		depth := 0
		for _, u := range scheduler.unlocks[course] {
			if err := visit(u.target); err != nil {
				return err
			}
			depth = max(depth, 1+scheduler.depth[u.target])
		}
		scheduler.depth[course] = depth
		marks[course] = visited
		return nil
	}

	for course := range scheduler.courses {
		if err := visit(course); err != nil {
			return err
		}
	}
	return nil
}

// Build returns the courses grouped by term. Every call starts from scratch
func (scheduler *Scheduler) Build() ([][]model.Course, error) {
	left := scheduler.reset()

	terms := make([][]model.Course, 0)
	for left > 0 {
		//** Rank the available courses
		candidates := make([]int, 0)
		for course, state := range scheduler.state {
			if state == available {
				candidates = append(candidates, course)
			}
		}
		urgency := lo.SliceToMap(candidates, func(course int) (int, float64) { return course, scheduler.urgency(course) })
		slices.SortStableFunc(candidates, func(a, b int) int {
			if c := cmp.Compare(urgency[b], urgency[a]); c != 0 {
				return c
			}
			return cmp.Compare(scheduler.depth[b], scheduler.depth[a])
		})

		//** Pack the term in a single forward pass
		capacity := scheduler.maxCredits
		term := make([]int, 0)
		for _, course := range candidates {
			if credits := scheduler.courses[course].Credits; credits <= capacity {
				term = append(term, course)
				capacity -= credits
			}
		}

		if len(term) == 0 {
			pending := lo.FilterMap(scheduler.courses, func(course model.Course, i int) (string, bool) {
				return course.Code, scheduler.state[i] != completed
			})
			return nil, fmt.Errorf("%w: cannot schedule any of %v within %d credits", ErrCreditDeadlock, pending, scheduler.maxCredits)
		}

		for _, course := range term {
			scheduler.complete(course)
		}
		left -= len(term)
		terms = append(terms, lo.Map(term, func(course int, _ int) model.Course { return scheduler.courses[course] }))
	}
	return terms, nil
}

// reset initializes the per-build state and returns the number of courses to schedule
func (scheduler *Scheduler) reset() int {
	scheduler.state = make([]courseState, len(scheduler.courses))
	scheduler.remaining = make([]int, len(scheduler.courses))
	scheduler.groupsDone = make([][]bool, len(scheduler.courses))

	left := 0
	for i, course := range scheduler.courses {
		scheduler.groupsDone[i] = make([]bool, len(scheduler.groups[i]))
		for g, options := range scheduler.groups[i] {
			if lo.SomeBy(options, func(option string) bool { return scheduler.satisfied[option] }) {
				scheduler.groupsDone[i][g] = true
			} else {
				scheduler.remaining[i]++
			}
		}

		switch {
		case scheduler.satisfied[course.Code]:
			scheduler.state[i] = completed
		case scheduler.remaining[i] == 0:
			scheduler.state[i] = available
			left++
		default:
			scheduler.state[i] = ineligible
			left++
		}
	}
	return left
}

// urgency favours courses unlocking groups with few alternatives, and gateway courses which are the last
// missing piece of a dependent course
func (scheduler *Scheduler) urgency(course int) float64 {
	score := 0.0
	for _, u := range scheduler.unlocks[course] {
		score += 1 / float64(len(scheduler.groups[u.target][u.group]))
		if !scheduler.groupsDone[u.target][u.group] && scheduler.remaining[u.target] == 1 {
			score += 2
		}
	}
	return score
}

func (scheduler *Scheduler) complete(course int) {
	scheduler.state[course] = completed
	for _, u := range scheduler.unlocks[course] {
		if scheduler.groupsDone[u.target][u.group] {
			continue
		}
		scheduler.groupsDone[u.target][u.group] = true
		scheduler.remaining[u.target]--
		if scheduler.remaining[u.target] == 0 && scheduler.state[u.target] == ineligible {
			scheduler.state[u.target] = available
		}
	}
}

// Codes maps scheduled terms to course codes
func Codes(terms [][]model.Course) [][]string {
	return lo.Map(terms, func(term []model.Course, _ int) []string {
		return lo.Map(term, func(course model.Course, _ int) string { return course.Code })
	})
}
